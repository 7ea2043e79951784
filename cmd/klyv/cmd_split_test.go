package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sajjon/klyv"
)

func TestSplitOneWritesSiblingFilesNextToInput(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "user.rs")
	src := "pub struct User { id: u64 }\n\nimpl Identifiable for User { fn id(&self) -> u64 { self.id } }\n"
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	err := splitOne(logger, path, klyv.DefaultOptions())
	require.NoError(t, err)

	typesPath := filepath.Join(dir, "user_types.rs")
	assert.FileExists(t, typesPath)

	data, err := os.ReadFile(typesPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "pub struct User")

	shimData, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(shimData), "mod user_types;")
}

func TestSplitOneFailsOnUnparsableInput(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.rs")
	require.NoError(t, os.WriteFile(path, []byte(`fn f() { let s = "unterminated; }`), 0o644))

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	err := splitOne(logger, path, klyv.DefaultOptions())
	assert.Error(t, err)
}

func TestSplitOneRenumbersOnRealCollisionWithExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "user.rs")
	src := "pub struct User { id: u64 }\n"
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "user_types.rs"), []byte("// unrelated, pre-existing file\n"), 0o644))

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	err := splitOne(logger, path, klyv.DefaultOptions())
	require.NoError(t, err)

	renumbered := filepath.Join(dir, "user_types_1.rs")
	assert.FileExists(t, renumbered)

	data, err := os.ReadFile(renumbered)
	require.NoError(t, err)
	assert.Contains(t, string(data), "pub struct User")

	preexisting, err := os.ReadFile(filepath.Join(dir, "user_types.rs"))
	require.NoError(t, err)
	assert.Contains(t, string(preexisting), "unrelated, pre-existing file")
}

func TestExpandGlobsDeduplicatesOverlappingPatterns(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.rs", "b.rs"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("fn f() {}\n"), 0o644))
	}

	paths, err := expandGlobs([]string{filepath.Join(dir, "*.rs"), filepath.Join(dir, "a.rs")})
	require.NoError(t, err)
	assert.Len(t, paths, 2)
}
