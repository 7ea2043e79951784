package main

import (
	"github.com/sirupsen/logrus"

	"github.com/Sajjon/klyv"
)

// logDiagnostics writes one log line per diagnostic: Warn for warnings,
// Error for fatal errors. The core package itself never logs; this is the
// sole place diagnostics become log output.
func logDiagnostics(logger logrus.FieldLogger, source string, diags []klyv.Diagnostic) {
	for _, d := range diags {
		entry := logger.WithFields(logrus.Fields{
			"source": source,
			"kind":   d.Kind.String(),
		})
		if d.Severity == klyv.SeverityError {
			entry.Error(d.Message)
		} else {
			entry.Warn(d.Message)
		}
	}
}

// hasFatal reports whether diags contains at least one error-severity
// diagnostic.
func hasFatal(diags []klyv.Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == klyv.SeverityError {
			return true
		}
	}
	return false
}
