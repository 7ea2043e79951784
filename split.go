package klyv

// Split is the core's single conceptual entry point (spec.md §6):
// Parse → Classify → PlanItems → Emit, returning a map of filename (no
// directory, no extension) to rendered file text, plus any diagnostics
// accumulated along the way. Fatal errors (a ParseError, or an EmitError
// while rendering any file) abort the run and return a nil map with the
// error appended as a diagnostic.
//
// Split is a pure, synchronous function of (source, originalStem,
// options): it performs no I/O and holds no state across calls. Callers
// invoking it concurrently on distinct inputs need no external
// synchronization, per spec.md §5.
func Split(source SourceText, originalStem string, opts Options) (map[string]string, []Diagnostic) {
	items, head, tail, err := Parse(source)
	if err != nil {
		return nil, []Diagnostic{{
			Severity: SeverityError,
			Kind:     DiagnosticParseError,
			Message:  err.Error(),
		}}
	}

	items = Classify(items)

	var diags []Diagnostic
	for _, it := range items {
		if it.Category == CategoryOther {
			diags = append(diags, Diagnostic{
				Severity: SeverityWarning,
				Kind:     DiagnosticClassificationWarning,
				Span:     it.BodySpan,
				Message:  "item fell through classification to Other: " + it.String(),
			})
		}
	}

	plan, planDiags := PlanItems(items, originalStem, head.Span, tail.Span, opts)
	diags = append(diags, planDiags...)

	files, emitDiags := Emit(source, plan, opts)
	diags = append(diags, emitDiags...)
	if len(emitDiags) > 0 {
		return nil, diags
	}

	return files, diags
}
