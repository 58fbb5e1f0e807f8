// Package logging builds the process logger: JSON in production, colored tint output otherwise.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// New returns a logger at the named level and installs it as the slog default.
func New(level string, production bool) *slog.Logger {
	logger := slog.New(newHandler(os.Stdout, os.Stderr, ParseLevel(level), production))
	slog.SetDefault(logger)
	return logger
}

func newHandler(prodOut, devOut io.Writer, level slog.Level, production bool) slog.Handler {
	if production {
		return slog.NewJSONHandler(prodOut, &slog.HandlerOptions{Level: level})
	}
	return tint.NewHandler(devOut, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		AddSource:  true,
	})
}

// ParseLevel maps debug, warn and error onto slog levels. Anything else is info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
