package klyv

import "strings"

// Emit renders every Bucket in plan, plus the shim if opts.EmitShim, to
// file text, per spec.md §4.D. Keys in the returned map are filenames
// without a directory component; the caller adds its own extension and
// writes them to disk (spec.md §6).
func Emit(src SourceText, plan Plan, opts Options) (map[string]string, []Diagnostic) {
	out := make(map[string]string, len(plan.Buckets)+1)
	var diags []Diagnostic

	for _, b := range plan.Buckets {
		text, err := renderBucket(src, b, opts)
		if err != nil {
			diags = append(diags, Diagnostic{
				Severity: SeverityError,
				Kind:     DiagnosticEmitError,
				Message:  err.Error(),
			})
			continue
		}
		out[b.Filename] = text
	}

	if opts.EmitShim {
		text, err := renderShim(src, plan, opts)
		if err != nil {
			diags = append(diags, Diagnostic{
				Severity: SeverityError,
				Kind:     DiagnosticEmitError,
				Message:  err.Error(),
			})
		} else {
			out[plan.ShimFilename] = text
		}
	}

	return out, diags
}

// renderBucket writes the bucket's prelude header, one blank line, then
// each Item in order separated by opts.BlankLinesBetweenItems blank
// lines, ending with exactly one trailing newline.
func renderBucket(src SourceText, b Bucket, opts Options) (string, error) {
	var buf strings.Builder
	buf.WriteString(opts.PreludeHeader)
	buf.WriteString("\n\n")

	if err := writeItems(&buf, src, b.Items, opts); err != nil {
		return "", err
	}
	return finish(buf.String()), nil
}

// renderShim writes the shim: the original file's leading trivia verbatim,
// then the retained Imports/Constants/EntryPoint items, then synthesized
// `mod` declarations for every sibling, then `use` re-exports for every
// moved-out Public item, then the original file's tail trivia verbatim.
// See spec.md §4.C "Shim composition".
func renderShim(src SourceText, plan Plan, opts Options) (string, error) {
	var buf strings.Builder

	if !plan.HeadTrivia.Empty() {
		head := src.Slice(plan.HeadTrivia)
		if strings.TrimSpace(head) != "" {
			buf.WriteString(head)
			if !strings.HasSuffix(head, "\n") {
				buf.WriteString("\n")
			}
			if len(plan.ShimItems) > 0 && !strings.HasSuffix(head, "\n\n") {
				buf.WriteString("\n")
			}
		}
	}

	if err := writeItems(&buf, src, plan.ShimItems, opts); err != nil {
		return "", err
	}
	if len(plan.ShimItems) > 0 {
		buf.WriteString("\n")
	}

	if len(plan.ModDecls) > 0 {
		if buf.Len() > 0 {
			buf.WriteString("\n")
		}
		for _, filename := range plan.ModDecls {
			buf.WriteString("mod ")
			buf.WriteString(filename)
			buf.WriteString(";\n")
		}
	}

	if len(plan.Reexports) > 0 {
		if buf.Len() > 0 {
			buf.WriteString("\n")
		}
		for _, re := range plan.Reexports {
			buf.WriteString("pub use ")
			buf.WriteString(re.FromFilename)
			buf.WriteString("::")
			buf.WriteString(re.Name)
			buf.WriteString(";\n")
		}
	}

	if !plan.TailTrivia.Empty() {
		tail := src.Slice(plan.TailTrivia)
		if strings.TrimSpace(tail) != "" {
			if buf.Len() > 0 {
				buf.WriteString("\n")
			}
			buf.WriteString(tail)
		}
	}

	return finish(buf.String()), nil
}

// writeItems appends each item's reconstructed doc-comment (if any) and
// verbatim body text to buf, separated by opts.BlankLinesBetweenItems
// blank lines.
func writeItems(buf *strings.Builder, src SourceText, items []Item, opts Options) error {
	blank := strings.Repeat("\n", maxInt(opts.BlankLinesBetweenItems, 0)+1)
	for i, it := range items {
		if it.BodySpan.End > src.Len() || it.BodySpan.Start < 0 || it.BodySpan.Start > it.BodySpan.End {
			return &EmitError{Message: "item body_span exceeds SourceText: " + it.String()}
		}
		if i > 0 {
			buf.WriteString(blank)
		}
		if it.Doc != "" {
			for _, line := range strings.Split(it.Doc, "\n") {
				buf.WriteString("/// ")
				buf.WriteString(line)
				buf.WriteString("\n")
			}
		}
		buf.WriteString(src.Slice(it.BodySpan))
	}
	return nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// finish trims trailing whitespace and ensures exactly one trailing
// newline, per spec.md §4.D / §6.
func finish(s string) string {
	s = strings.TrimRight(s, " \t\r\n")
	if s == "" {
		return "\n"
	}
	return s + "\n"
}
