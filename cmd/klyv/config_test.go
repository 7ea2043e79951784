package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sajjon/klyv"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "klyv.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadOptionsMissingFileReturnsDefaults(t *testing.T) {
	opts, err := loadOptions(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	assert.Equal(t, klyv.DefaultOptions(), opts)
}

func TestLoadOptionsOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
prelude_header: "use crate::core::*;"
blank_lines_between_items: 1
emit_shim: false
reexport_private: true
`)
	opts, err := loadOptions(path)
	require.NoError(t, err)
	assert.Equal(t, "use crate::core::*;", opts.PreludeHeader)
	assert.Equal(t, 1, opts.BlankLinesBetweenItems)
	assert.False(t, opts.EmitShim)
	assert.True(t, opts.ReexportPrivate)
}

func TestLoadOptionsStemOverrides(t *testing.T) {
	path := writeConfig(t, `
stem_overrides:
  DataType: models
  Helper: util
`)
	opts, err := loadOptions(path)
	require.NoError(t, err)
	require.Len(t, opts.StemOverrides, 2)
	assert.Equal(t, "models", opts.StemOverrides[klyv.CategoryDataType])
	assert.Equal(t, "util", opts.StemOverrides[klyv.CategoryHelper])
}

func TestLoadOptionsUnknownCategoryIsRejectedWithSuggestion(t *testing.T) {
	path := writeConfig(t, `
stem_overrides:
  DataTyp: models
`)
	_, err := loadOptions(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DataTyp")
	assert.Contains(t, err.Error(), `did you mean "DataType"?`)
}
