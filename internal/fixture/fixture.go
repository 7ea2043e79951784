// Package fixture loads golden multi-file test fixtures stored as txtar
// archives: one file holding the input source plus every expected sibling
// and shim file, kept self-contained and diffable in a single archive
// instead of scattered across a tree of golden files.
package fixture

import (
	"fmt"

	"golang.org/x/tools/txtar"
)

// Case is one parsed scenario fixture: an input source plus the set of
// expected output files, keyed by filename without directory or extension.
type Case struct {
	Name     string
	Input    string
	Stem     string
	Expected map[string]string
}

// Load parses a txtar archive at path into a Case. The archive's first file
// must be named "input.<ext>"; its basename without extension becomes
// Stem. Every other file in the archive is an expected output, keyed by its
// basename without extension.
func Load(path string) (Case, error) {
	arc, err := txtar.ParseFile(path)
	if err != nil {
		return Case{}, fmt.Errorf("loading fixture %s: %w", path, err)
	}
	return fromArchive(path, arc)
}

// Parse parses txtar-formatted data directly, for fixtures embedded as Go
// string literals rather than loaded from disk.
func Parse(name string, data []byte) (Case, error) {
	return fromArchive(name, txtar.Parse(data))
}

func fromArchive(name string, arc *txtar.Archive) (Case, error) {
	if len(arc.Files) == 0 {
		return Case{}, fmt.Errorf("fixture %s: archive has no files", name)
	}

	first := arc.Files[0]
	stem, err := stemOf(first.Name)
	if err != nil {
		return Case{}, fmt.Errorf("fixture %s: %w", name, err)
	}

	c := Case{
		Name:     name,
		Input:    string(first.Data),
		Stem:     stem,
		Expected: make(map[string]string, len(arc.Files)-1),
	}

	for _, f := range arc.Files[1:] {
		key, err := stemOf(f.Name)
		if err != nil {
			return Case{}, fmt.Errorf("fixture %s: %w", name, err)
		}
		c.Expected[key] = string(f.Data)
	}

	return c, nil
}

// stemOf strips a path's directory and final extension, e.g.
// "input.rs" -> "input", "foo/user_types.rs" -> "user_types".
func stemOf(name string) (string, error) {
	base := name
	for i := len(base) - 1; i >= 0; i-- {
		if base[i] == '/' {
			base = base[i+1:]
			break
		}
	}
	if base == "" {
		return "", fmt.Errorf("empty filename in archive")
	}
	for i := len(base) - 1; i >= 0; i-- {
		if base[i] == '.' {
			return base[:i], nil
		}
	}
	return base, nil
}
