package main

import (
	"fmt"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Sajjon/klyv"
)

var watchCmd = &cobra.Command{
	Use:   "watch <files...>",
	Short: "Re-run split whenever a watched file changes",
	Long:  "Watch expands its arguments as doublestar glob patterns once at startup, then re-runs split on whichever matched file changes on disk, until interrupted.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
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
		return fmt.Errorf("no files matched for watch")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer watcher.Close()

	for _, path := range paths {
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		if err := splitOne(logger, path, opts); err != nil {
			logger.WithField("source", path).Error(err)
		}
	}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if err := splitOne(logger, event.Name, opts); err != nil {
				logger.WithField("source", event.Name).Error(err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error(fmt.Errorf("watcher error: %w", err))
		case <-cmd.Context().Done():
			return cmd.Context().Err()
		}
	}
}
