package klyv

// Options is the closed configuration surface of Split, per spec.md §6.
// The zero value is not valid configuration; use DefaultOptions to obtain
// one with every field populated, then override individual fields.
type Options struct {
	// PreludeHeader is written verbatim as the single-line header of every
	// non-shim sibling file.
	PreludeHeader string

	// BlankLinesBetweenItems is the number of blank lines the Emitter
	// inserts between successive Items in a Bucket.
	BlankLinesBetweenItems int

	// EmitShim controls whether the original filename is emitted at all.
	EmitShim bool

	// StemOverrides replaces the default suffix table for one or more
	// Categories (see spec.md §4.C "Filename scheme").
	StemOverrides map[Category]string

	// ReexportPrivate, if true, re-exports private items from the shim
	// too. Default false, per spec.md §6.
	ReexportPrivate bool

	// ExistingSiblings lists filenames (no directory, no extension)
	// already present in the target directory, so PlanItems can treat a
	// generated Bucket filename that collides with one of them the same
	// way it treats an intra-plan collision: renumbered, with a
	// DiagnosticPlanCollisionWarning. The core itself performs no I/O
	// (spec.md §5); callers that write output to a real directory (see
	// cmd/klyv's splitOne) are expected to populate this from a directory
	// listing taken before Split runs.
	ExistingSiblings []string
}

// DefaultOptions returns the Options described in spec.md §6.
func DefaultOptions() Options {
	return Options{
		PreludeHeader:          "use crate::prelude::*;",
		BlankLinesBetweenItems: 2,
		EmitShim:               true,
		StemOverrides:          nil,
		ReexportPrivate:        false,
		ExistingSiblings:       nil,
	}
}

// suffixFor resolves the filename suffix for category, honoring
// StemOverrides before falling back to the default table.
func (o Options) suffixFor(category Category) string {
	if s, ok := o.StemOverrides[category]; ok && s != "" {
		return s
	}
	return category.defaultSuffix()
}
