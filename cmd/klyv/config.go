package main

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Sajjon/klyv"
)

// fileConfig is the on-disk shape of klyv.yaml: the core's closed Options
// set, expressed with yaml-friendly field names and string Category keys.
type fileConfig struct {
	PreludeHeader          *string           `yaml:"prelude_header"`
	BlankLinesBetweenItems *int              `yaml:"blank_lines_between_items"`
	EmitShim               *bool             `yaml:"emit_shim"`
	StemOverrides          map[string]string `yaml:"stem_overrides"`
	ReexportPrivate        *bool             `yaml:"reexport_private"`
}

// categoryNames lists every Category string accepted under stem_overrides,
// in the same order the Planner emits buckets.
var categoryNames = []string{
	"DataType", "ErrorType", "Configuration", "TraitDef", "BusinessLogic",
	"Helper", "ImplBlock", "Macros", "EntryPoint", "Other",
}

var categoryByName = map[string]klyv.Category{
	"DataType":      klyv.CategoryDataType,
	"ErrorType":     klyv.CategoryErrorType,
	"Configuration": klyv.CategoryConfiguration,
	"TraitDef":      klyv.CategoryTraitDef,
	"BusinessLogic": klyv.CategoryBusinessLogic,
	"Helper":        klyv.CategoryHelper,
	"ImplBlock":     klyv.CategoryImplBlock,
	"Macros":        klyv.CategoryMacros,
	"EntryPoint":    klyv.CategoryEntryPoint,
	"Other":         klyv.CategoryOther,
}

// loadOptions reads path, if present, and overlays it on klyv.DefaultOptions.
// A missing config file is not an error: built-in defaults apply.
func loadOptions(path string) (klyv.Options, error) {
	opts := klyv.DefaultOptions()

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return opts, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return klyv.Options{}, fmt.Errorf("reading config %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return klyv.Options{}, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if fc.PreludeHeader != nil {
		opts.PreludeHeader = *fc.PreludeHeader
	}
	if fc.BlankLinesBetweenItems != nil {
		opts.BlankLinesBetweenItems = *fc.BlankLinesBetweenItems
	}
	if fc.EmitShim != nil {
		opts.EmitShim = *fc.EmitShim
	}
	if fc.ReexportPrivate != nil {
		opts.ReexportPrivate = *fc.ReexportPrivate
	}
	if len(fc.StemOverrides) > 0 {
		overrides := make(map[klyv.Category]string, len(fc.StemOverrides))
		for name, suffix := range fc.StemOverrides {
			cat, ok := categoryByName[name]
			if !ok {
				return klyv.Options{}, fmt.Errorf("config %s: unknown category %q in stem_overrides%s", path, name, didYouMean(name))
			}
			overrides[cat] = suffix
		}
		opts.StemOverrides = overrides
	}

	return opts, nil
}
