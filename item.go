package klyv

import "fmt"

// SourceText is the raw input, held as an immutable byte slice indexed by
// byte offset. All Spans produced by the lexer reference a SourceText by
// offset and must not outlive it.
type SourceText struct {
	name string
	data []byte
}

// NewSourceText wraps data as an immutable SourceText. name is used only
// for diagnostics (e.g. the original file's stem).
func NewSourceText(name string, data []byte) SourceText {
	cp := make([]byte, len(data))
	copy(cp, data)
	return SourceText{name: name, data: cp}
}

// Name returns the name the SourceText was constructed with.
func (s SourceText) Name() string { return s.name }

// Len returns the number of bytes in the SourceText.
func (s SourceText) Len() int { return len(s.data) }

// Bytes returns the underlying bytes. Callers must not mutate the result.
func (s SourceText) Bytes() []byte { return s.data }

// Slice returns the text covered by sp as a string.
func (s SourceText) Slice(sp Span) string {
	return string(s.data[sp.Start:sp.End])
}

// Span is a half-open [Start, End) byte range into a SourceText.
type Span struct {
	Start int
	End   int
}

// Len reports the number of bytes covered by the span.
func (sp Span) Len() int { return sp.End - sp.Start }

// Empty reports whether the span covers no bytes.
func (sp Span) Empty() bool { return sp.Start >= sp.End }

// ItemKind identifies the syntactic shape of a top-level Item.
type ItemKind int

const (
	KindUseImport ItemKind = iota
	KindModDecl
	KindFunction
	KindStruct
	KindEnum
	KindTraitDef
	KindImplBlock
	KindTypeAlias
	KindConst
	KindStatic
	KindMacroInvocation
	KindMacroDef
	KindExternBlock
	KindOther
)

func (k ItemKind) String() string {
	switch k {
	case KindUseImport:
		return "UseImport"
	case KindModDecl:
		return "ModDecl"
	case KindFunction:
		return "Function"
	case KindStruct:
		return "Struct"
	case KindEnum:
		return "Enum"
	case KindTraitDef:
		return "TraitDef"
	case KindImplBlock:
		return "ImplBlock"
	case KindTypeAlias:
		return "TypeAlias"
	case KindConst:
		return "Const"
	case KindStatic:
		return "Static"
	case KindMacroInvocation:
		return "MacroInvocation"
	case KindMacroDef:
		return "MacroDef"
	case KindExternBlock:
		return "ExternBlock"
	default:
		return "Other"
	}
}

// Visibility is the declared visibility of an Item.
type Visibility int

const (
	Private Visibility = iota
	Restricted
	Public
)

func (v Visibility) String() string {
	switch v {
	case Public:
		return "Public"
	case Restricted:
		return "Restricted"
	default:
		return "Private"
	}
}

// Category is the semantic role the Classifier assigns to an Item.
type Category int

const (
	CategoryEntryPoint Category = iota
	CategoryErrorType
	CategoryDataType
	CategoryTraitDef
	CategoryImplBlock
	CategoryConfiguration
	CategoryBusinessLogic
	CategoryHelper
	CategoryImports
	CategoryConstants
	CategoryMacros
	CategoryOther
)

func (c Category) String() string {
	switch c {
	case CategoryEntryPoint:
		return "EntryPoint"
	case CategoryErrorType:
		return "ErrorType"
	case CategoryDataType:
		return "DataType"
	case CategoryTraitDef:
		return "TraitDef"
	case CategoryImplBlock:
		return "ImplBlock"
	case CategoryConfiguration:
		return "Configuration"
	case CategoryBusinessLogic:
		return "BusinessLogic"
	case CategoryHelper:
		return "Helper"
	case CategoryImports:
		return "Imports"
	case CategoryConstants:
		return "Constants"
	case CategoryMacros:
		return "Macros"
	default:
		return "Other"
	}
}

// defaultSuffix is the stable filename suffix for each Category, used by
// the Planner's filename scheme unless overridden by Options.StemOverrides.
func (c Category) defaultSuffix() string {
	switch c {
	case CategoryDataType:
		return "types"
	case CategoryErrorType:
		return "errors"
	case CategoryConfiguration:
		return "config"
	case CategoryTraitDef:
		return "traits"
	case CategoryBusinessLogic:
		return "logic"
	case CategoryHelper:
		return "helpers"
	case CategoryImplBlock:
		return "impls"
	case CategoryMacros:
		return "macros"
	case CategoryEntryPoint:
		return "entry"
	default:
		return "other"
	}
}

// Auxiliary carries per-Item data that doesn't fit the common fields: the
// trait name an ImplBlock implements, and whether a Function is the
// program's entry point.
type Auxiliary struct {
	TraitName string // ImplBlock only; empty for inherent impls
	IsMain    bool   // Function only
}

// Item is a single top-level syntactic unit, with leading trivia resolved
// into Doc and Attributes, and a BodySpan that covers its attributes,
// keyword, header and body verbatim (everything but the doc comment, which
// is consumed into Doc and re-synthesized by the Emitter; see DESIGN.md).
type Item struct {
	Kind       ItemKind
	Name       string
	Visibility Visibility
	Attributes []Span
	Doc        string
	BodySpan   Span
	Auxiliary  Auxiliary
	Category   Category
}

func (it Item) String() string {
	if it.Name == "" {
		return fmt.Sprintf("<%s>", it.Kind)
	}
	return fmt.Sprintf("%s %q", it.Kind, it.Name)
}

// IsExported reports whether the item's visibility is Public.
func (it Item) IsExported() bool { return it.Visibility == Public }
