// Package testutil provides shared helpers for package tests.
package testutil

import (
	"log/slog"
	"testing"
)

// logWriter routes slog output through t.Log so it interleaves with test
// output and stays silent for passing tests without -v.
type logWriter struct {
	t *testing.T
}

func (w logWriter) Write(p []byte) (int, error) {
	w.t.Log(string(p))
	return len(p), nil
}

// Logger returns a debug-level logger wired to the test's log output.
func Logger(t *testing.T) *slog.Logger {
	t.Helper()
	return slog.New(slog.NewTextHandler(logWriter{t}, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

// SamplePageLines is OCR-shaped text for a typical directory page, with a
// running title, separator noise, and entries that exercise continuation
// merging.
var SamplePageLines = []string{
	"STILLWATER CITY DIRECTORY.",
	"----------------",
	"Abbott, Wm. E., laborer, h 12 Oak st.",
	"Adams, Geo., clerk, bds 3",
	"Elm st.",
	"Allen, Chas., carpenter, h 45 Pine st.",
}
