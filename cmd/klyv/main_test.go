package main

import (
	"testing"

	"go.uber.org/goleak"
)

// TestMain ensures split/watch's errgroup- and fsnotify-driven goroutines
// never leak past the end of a test.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
