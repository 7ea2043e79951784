package klyv

import (
	"sort"
	"strconv"
)

// categoryOrder is the fixed, deterministic order in which non-shim
// Buckets are emitted, mod-declarations are listed in the shim, and
// filename collisions are scanned, per spec.md §4.C's filename scheme
// ("types, errors, config, traits, logic, helpers, impls, macros, entry").
// CategoryOther has no suffix named in spec.md's scheme; it is appended
// last so a file with many uncategorizable items still gets one
// deterministic, non-colliding home instead of being silently dropped.
var categoryOrder = []Category{
	CategoryDataType,
	CategoryErrorType,
	CategoryConfiguration,
	CategoryTraitDef,
	CategoryBusinessLogic,
	CategoryHelper,
	CategoryImplBlock,
	CategoryMacros,
	CategoryEntryPoint,
	CategoryOther,
}

// fallbackOrder is the rare-category merge order from spec.md §4.C: a
// Bucket with a single Macros or Other item is folded into the nearest
// non-empty bucket in this order, falling all the way back to the shim.
var fallbackOrder = []Category{
	CategoryDataType,
	CategoryBusinessLogic,
	CategoryHelper,
}

// Bucket is a named group of Items sharing a Category, destined for one
// output file. See spec.md §3.
type Bucket struct {
	Filename string
	Category Category
	Items    []Item
}

// Reexport is one `use`-style re-export the shim emits on behalf of an
// Item that moved out to a sibling file.
type Reexport struct {
	Name         string
	FromFilename string
}

// Plan is the output of the Planner stage: the non-shim Buckets, the
// shim's own retained items (Imports, Constants, and EntryPoint when the
// original stem is "main"), the ordered mod-declarations, and the
// re-export list. See spec.md §3 "Plan" and §4.C.
type Plan struct {
	OriginalStem string
	Buckets      []Bucket
	ShimFilename string
	ShimItems    []Item
	ModDecls     []string
	Reexports    []Reexport
	HeadTrivia   Span
	TailTrivia   Span
}

// PlanItems groups Classified items into a Plan, per spec.md §4.C. items
// must already have Category populated (see Classify). head and tail are
// the original file's leading and trailing trivia spans, carried through
// to the shim untouched by the bucketing below.
func PlanItems(items []Item, stem string, head, tail Span, opts Options) (Plan, []Diagnostic) {
	var diags []Diagnostic

	shimFilename := stem
	var shimItems []Item
	var rest []Item

	for _, it := range items {
		switch {
		case it.Category == CategoryImports || it.Category == CategoryConstants:
			shimItems = append(shimItems, it)
		case it.Category == CategoryEntryPoint && stem == "main":
			shimItems = append(shimItems, it)
		default:
			rest = append(rest, it)
		}
	}

	byCategory := make(map[Category][]Item)
	var implBlocks []Item
	for _, it := range rest {
		if it.Category == CategoryImplBlock {
			implBlocks = append(implBlocks, it)
			continue
		}
		byCategory[it.Category] = append(byCategory[it.Category], it)
	}

	// Co-locate impl blocks with the bucket of their implementing type,
	// per spec.md §4.C "ImplBlock items are co-located...".
	var orphanImpls []Item
	homeCategories := []Category{CategoryDataType, CategoryErrorType, CategoryConfiguration}
	for _, impl := range implBlocks {
		placed := false
		for _, cat := range homeCategories {
			if bucketHasName(byCategory[cat], impl.Name) {
				byCategory[cat] = append(byCategory[cat], impl)
				placed = true
				break
			}
		}
		if !placed {
			orphanImpls = append(orphanImpls, impl)
		}
	}

	// Rare-category single-item merge, per spec.md §4.C.
	for _, cat := range []Category{CategoryMacros, CategoryOther} {
		if len(byCategory[cat]) != 1 {
			continue
		}
		lone := byCategory[cat][0]
		merged := false
		for _, target := range fallbackOrder {
			if len(byCategory[target]) > 0 {
				byCategory[target] = append(byCategory[target], lone)
				merged = true
				break
			}
		}
		if !merged {
			shimItems = append(shimItems, lone)
		}
		delete(byCategory, cat)
	}

	usedFilenames := make(map[string]int)
	for _, name := range opts.ExistingSiblings {
		if name != stem {
			usedFilenames[name] = 1
		}
	}
	itemFile := make(map[int]string) // keyed by BodySpan.Start

	var buckets []Bucket
	var modDecls []string
	for _, cat := range categoryOrder {
		var catItems []Item
		if cat == CategoryImplBlock {
			catItems = orphanImpls
		} else {
			catItems = byCategory[cat]
		}
		if len(catItems) == 0 {
			continue
		}
		sortBySource(catItems)

		filename, collided := uniqueFilename(stem+"_"+opts.suffixFor(cat), usedFilenames)
		if collided {
			diags = append(diags, Diagnostic{
				Severity: SeverityWarning,
				Kind:     DiagnosticPlanCollisionWarning,
				Message:  "generated filename collided with an existing sibling and was renumbered: " + filename,
			})
		}

		for _, it := range catItems {
			itemFile[it.BodySpan.Start] = filename
		}

		buckets = append(buckets, Bucket{Filename: filename, Category: cat, Items: catItems})
		modDecls = append(modDecls, filename)
	}

	sortBySource(shimItems)

	var reexports []Reexport
	for _, it := range rest {
		if it.Category == CategoryImplBlock || it.Name == "" {
			continue
		}
		from, ok := itemFile[it.BodySpan.Start]
		if !ok || from == shimFilename {
			continue
		}
		if it.Visibility == Public || opts.ReexportPrivate {
			reexports = append(reexports, Reexport{Name: it.Name, FromFilename: from})
		}
	}

	return Plan{
		OriginalStem: stem,
		Buckets:      buckets,
		ShimFilename: shimFilename,
		ShimItems:    shimItems,
		ModDecls:     modDecls,
		Reexports:    reexports,
		HeadTrivia:   head,
		TailTrivia:   tail,
	}, diags
}

func bucketHasName(items []Item, name string) bool {
	if name == "" {
		return false
	}
	for _, it := range items {
		if it.Name == name {
			return true
		}
	}
	return false
}

func sortBySource(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].BodySpan.Start < items[j].BodySpan.Start
	})
}

// uniqueFilename returns base, or base with a deterministic "_N" suffix if
// base (or an earlier-numbered variant) was already used in this Plan or
// seeded into used from Options.ExistingSiblings, per spec.md §4.C. The second return value reports whether a collision
// occurred.
func uniqueFilename(base string, used map[string]int) (string, bool) {
	if used[base] == 0 {
		used[base] = 1
		return base, false
	}
	n := used[base]
	used[base] = n + 1
	var candidate string
	for {
		candidate = base + "_" + strconv.Itoa(n)
		if used[candidate] == 0 {
			used[candidate] = 1
			return candidate, true
		}
		n++
	}
}
