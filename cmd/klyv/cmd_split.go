package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Sajjon/klyv"
)

var (
	splitCmd = &cobra.Command{
		Use:   "split <files...>",
		Short: "Split one or more source files into sibling files plus a shim",
		Long:  "Split runs the core pipeline over each matched input file and writes the resulting files next to it. File arguments may be doublestar glob patterns.",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runSplit,
	}

	maxConcurrent int
)

func init() {
	splitCmd.Flags().IntVar(&maxConcurrent, "max-concurrent", 8, "maximum number of files processed concurrently")
	rootCmd.AddCommand(splitCmd)
}

func runSplit(cmd *cobra.Command, args []string) error {
	logger := logrus.StandardLogger()

	opts, err := loadOptions(configFile)
	if err != nil {
		return err
	}

	paths, err := expandGlobs(args)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no files matched: %s", strings.Join(args, ", "))
	}

	g := new(errgroup.Group)
	g.SetLimit(maxConcurrent)

	for _, path := range paths {
		path := path
		g.Go(func() error {
			return splitOne(logger, path, opts)
		})
	}

	return g.Wait()
}

// expandGlobs resolves each argument as a doublestar glob pattern against
// the filesystem, deduplicating matches across overlapping patterns.
func expandGlobs(args []string) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, arg := range args {
		matches, err := doublestar.FilepathGlob(arg)
		if err != nil {
			return nil, fmt.Errorf("bad glob pattern %q: %w", arg, err)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				out = append(out, m)
			}
		}
	}
	return out, nil
}

// existingSiblings lists the stems (no extension) of files already present
// in dir with the given extension, so the planner can treat a generated
// filename that collides with one of them as a real collision rather than
// silently overwriting it; see klyv.Options.ExistingSiblings.
func existingSiblings(dir, ext string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ext {
			continue
		}
		out = append(out, strings.TrimSuffix(e.Name(), ext))
	}
	return out
}

// splitOne runs the core pipeline over the file at path and writes its
// output files into the same directory.
func splitOne(logger logrus.FieldLogger, path string, opts klyv.Options) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(filepath.Base(path), ext)

	opts.ExistingSiblings = existingSiblings(dir, ext)

	src := klyv.NewSourceText(path, data)
	files, diags := klyv.Split(src, stem, opts)

	logDiagnostics(logger, path, diags)
	if hasFatal(diags) || files == nil {
		return fmt.Errorf("split failed for %s", path)
	}

	for name, text := range files {
		outPath := filepath.Join(dir, name+ext)
		if err := os.WriteFile(outPath, []byte(text), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", outPath, err)
		}
	}

	logger.WithField("source", path).Infof("wrote %d files", len(files))
	return nil
}
