package klyv

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyOneRuleOrder(t *testing.T) {
	cases := []struct {
		name string
		item Item
		want Category
	}{
		{
			"main function is entry point",
			Item{Kind: KindFunction, Name: "main", Auxiliary: Auxiliary{IsMain: true}},
			CategoryEntryPoint,
		},
		{
			"use statement is imports",
			Item{Kind: KindUseImport},
			CategoryImports,
		},
		{
			"mod declaration is imports",
			Item{Kind: KindModDecl},
			CategoryImports,
		},
		{
			"const is constants",
			Item{Kind: KindConst, Name: "MAX"},
			CategoryConstants,
		},
		{
			"static is constants",
			Item{Kind: KindStatic, Name: "NAME"},
			CategoryConstants,
		},
		{
			"macro def is macros",
			Item{Kind: KindMacroDef, Name: "my_macro"},
			CategoryMacros,
		},
		{
			"macro invocation is macros",
			Item{Kind: KindMacroInvocation, Name: "log"},
			CategoryMacros,
		},
		{
			"trait def is trait def",
			Item{Kind: KindTraitDef, Name: "Identifiable"},
			CategoryTraitDef,
		},
		{
			"impl block is impl block",
			Item{Kind: KindImplBlock, Name: "User", Auxiliary: Auxiliary{TraitName: "Identifiable"}},
			CategoryImplBlock,
		},
		{
			"struct named *Error is error type",
			Item{Kind: KindStruct, Name: "ParseFailureError"},
			CategoryErrorType,
		},
		{
			"enum whose doc mentions error is error type",
			Item{Kind: KindEnum, Name: "Outcome", Doc: "Represents an error condition."},
			CategoryErrorType,
		},
		{
			"struct named *Config is configuration",
			Item{Kind: KindStruct, Name: "CliConfig"},
			CategoryConfiguration,
		},
		{
			"struct named *Settings is configuration",
			Item{Kind: KindStruct, Name: "AppSettings"},
			CategoryConfiguration,
		},
		{
			"plain struct is data type",
			Item{Kind: KindStruct, Name: "User"},
			CategoryDataType,
		},
		{
			"plain enum is data type",
			Item{Kind: KindEnum, Name: "Direction"},
			CategoryDataType,
		},
		{
			"type alias is data type",
			Item{Kind: KindTypeAlias, Name: "UserId"},
			CategoryDataType,
		},
		{
			"function with Core doc is business logic",
			Item{Kind: KindFunction, Name: "validate_input", Doc: "Core business logic for validating input."},
			CategoryBusinessLogic,
		},
		{
			"function with Core-prefixed doc (any wording) is business logic",
			Item{Kind: KindFunction, Name: "calculate_metrics", Doc: "Core utility"},
			CategoryBusinessLogic,
		},
		{
			"function with unrelated doc is helper",
			Item{Kind: KindFunction, Name: "display_help", Doc: "Prints usage information."},
			CategoryHelper,
		},
		{
			"function with no doc is helper",
			Item{Kind: KindFunction, Name: "generate_id"},
			CategoryHelper,
		},
		{
			"extern block falls through to other",
			Item{Kind: KindExternBlock},
			CategoryOther,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, classifyOne(tc.item))
		})
	}
}

func TestClassifyCopiesRatherThanMutatesInput(t *testing.T) {
	items := []Item{{Kind: KindStruct, Name: "User", Category: CategoryOther}}
	out := Classify(items)
	assert.Equal(t, CategoryOther, items[0].Category, "Classify must not mutate its input slice")
	assert.Equal(t, CategoryDataType, out[0].Category)
}

func TestFirstDocLineNormalizesWhitespace(t *testing.T) {
	assert.Equal(t, "core business logic", firstDocLine("\n   Core   business\tlogic  \nsecond line"))
	assert.Equal(t, "", firstDocLine(""))
}

func TestLooksLikeErrorAndConfig(t *testing.T) {
	assert.True(t, looksLikeError("ParseError", ""))
	assert.True(t, looksLikeError("Outcome", "an error occurred"))
	assert.False(t, looksLikeError("User", "a regular type"))

	assert.True(t, looksLikeConfig("CliConfig"))
	assert.True(t, looksLikeConfig("AppSettings"))
	assert.False(t, looksLikeConfig("User"))
}
