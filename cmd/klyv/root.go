package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:          "klyv",
		Short:        "klyv splits a single source file into semantically grouped sibling files",
		Long:         `klyv takes a curly-braced source file and splits its top-level items into a handful of sibling files grouped by category, plus a shim file that re-exports whatever the original file exported.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			}
		},
	}

	configFile string
	verbose    bool
)

// Execute runs the root command.
func Execute() error {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "klyv.yaml", "path to config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug-level logging")
	return rootCmd.Execute()
}
