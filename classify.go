package klyv

import "strings"

// Classify assigns each item a Category using the closed, ordered rule
// set from spec.md §4.B: the first matching rule wins. Matches against
// Doc examine only its first non-empty line, case-insensitively and with
// whitespace normalized.
func Classify(items []Item) []Item {
	out := make([]Item, len(items))
	for i, it := range items {
		it.Category = classifyOne(it)
		out[i] = it
	}
	return out
}

func classifyOne(it Item) Category {
	doc := firstDocLine(it.Doc)

	switch {
	case it.Kind == KindFunction && it.Auxiliary.IsMain:
		return CategoryEntryPoint
	case it.Kind == KindUseImport || it.Kind == KindModDecl:
		return CategoryImports
	case it.Kind == KindConst || it.Kind == KindStatic:
		return CategoryConstants
	case it.Kind == KindMacroDef || it.Kind == KindMacroInvocation:
		return CategoryMacros
	case it.Kind == KindTraitDef:
		return CategoryTraitDef
	case it.Kind == KindImplBlock:
		return CategoryImplBlock
	case (it.Kind == KindStruct || it.Kind == KindEnum) && looksLikeError(it.Name, doc):
		return CategoryErrorType
	case it.Kind == KindStruct && looksLikeConfig(it.Name):
		return CategoryConfiguration
	case it.Kind == KindStruct || it.Kind == KindEnum || it.Kind == KindTypeAlias:
		return CategoryDataType
	case it.Kind == KindFunction && strings.HasPrefix(doc, "core"):
		return CategoryBusinessLogic
	case it.Kind == KindFunction:
		return CategoryHelper
	default:
		return CategoryOther
	}
}

// firstDocLine returns the first non-empty line of doc, lowercased and
// whitespace-normalized, for case-insensitive prefix/substring matching.
func firstDocLine(doc string) string {
	for _, line := range strings.Split(doc, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			return strings.ToLower(joinFields(line))
		}
	}
	return ""
}

func joinFields(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func looksLikeError(name, doc string) bool {
	return strings.HasSuffix(name, "Error") || strings.Contains(doc, "error")
}

func looksLikeConfig(name string) bool {
	return strings.Contains(name, "Config") || strings.Contains(name, "Settings")
}
