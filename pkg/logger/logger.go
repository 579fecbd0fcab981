// Package logger provides slog-based structured logging with per-component
// child loggers.
package logger

import (
	"log/slog"
	"os"
	"strings"
)

// Options controls logger construction. Zero value means info-level JSON
// output to stdout.
type Options struct {
	Level  string // "debug", "info", "warn", "error"
	Format string // "json" or "text"
}

// FromEnv builds Options from LOG_LEVEL and LOG_FORMAT.
func FromEnv() Options {
	return Options{
		Level:  os.Getenv("LOG_LEVEL"),
		Format: os.Getenv("LOG_FORMAT"),
	}
}

// New creates the root logger.
func New(opts Options) *slog.Logger {
	handlerOpts := &slog.HandlerOptions{Level: parseLevel(opts.Level)}

	var handler slog.Handler
	if strings.EqualFold(opts.Format, "text") {
		handler = slog.NewTextHandler(os.Stdout, handlerOpts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, handlerOpts)
	}
	return slog.New(handler)
}

// Component returns a child logger tagged with a component name, so log
// lines can be filtered per subsystem.
func Component(log *slog.Logger, name string) *slog.Logger {
	return log.With("component", name)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
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
