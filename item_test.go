package klyv

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpanLenAndEmpty(t *testing.T) {
	sp := Span{Start: 4, End: 10}
	assert.Equal(t, 6, sp.Len())
	assert.False(t, sp.Empty())

	empty := Span{Start: 5, End: 5}
	assert.True(t, empty.Empty())
}

func TestSourceTextSlice(t *testing.T) {
	src := NewSourceText("input.rs", []byte("pub fn main() {}"))
	assert.Equal(t, "fn main() {}", src.Slice(Span{Start: 4, End: 16}))
	assert.Equal(t, 16, src.Len())
}

func TestSourceTextIsIndependentCopy(t *testing.T) {
	data := []byte("fn f() {}")
	src := NewSourceText("f.rs", data)
	data[0] = 'X'
	assert.Equal(t, byte('f'), src.Bytes()[0], "NewSourceText must copy its input")
}

func TestItemStringUsesNameWhenPresent(t *testing.T) {
	it := Item{Kind: KindFunction, Name: "validate_input"}
	assert.Equal(t, `Function "validate_input"`, it.String())

	anon := Item{Kind: KindUseImport}
	assert.Equal(t, "<UseImport>", anon.String())
}

func TestIsExported(t *testing.T) {
	assert.True(t, Item{Visibility: Public}.IsExported())
	assert.False(t, Item{Visibility: Restricted}.IsExported())
	assert.False(t, Item{Visibility: Private}.IsExported())
}

func TestCategoryDefaultSuffix(t *testing.T) {
	cases := map[Category]string{
		CategoryDataType:      "types",
		CategoryErrorType:     "errors",
		CategoryConfiguration: "config",
		CategoryTraitDef:      "traits",
		CategoryBusinessLogic: "logic",
		CategoryHelper:        "helpers",
		CategoryImplBlock:     "impls",
		CategoryMacros:        "macros",
		CategoryEntryPoint:    "entry",
		CategoryOther:         "other",
	}
	for cat, want := range cases {
		assert.Equal(t, want, cat.defaultSuffix(), cat.String())
	}
}

func TestItemKindString(t *testing.T) {
	assert.Equal(t, "Function", KindFunction.String())
	assert.Equal(t, "Other", KindOther.String())
}
