package cmd

import (
	"io"
	"log/slog"
)

// newLogger creates the logger used for progress messages. Quiet mode keeps only warnings and
// errors; verbose mode adds the reason for every failed connection attempt.
func newLogger(w io.Writer, isQuiet, isVerbose, isJSON bool) *slog.Logger {
	level := slog.LevelInfo
	switch {
	case isVerbose:
		level = slog.LevelDebug
	case isQuiet:
		level = slog.LevelWarn
	}

	opts := &slog.HandlerOptions{Level: level}
	if isJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
