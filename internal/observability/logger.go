// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package observability builds the zerolog logger and the Prometheus
// metrics shared by the CLI and the terminal UI.
package observability

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/pdiddy/papershelf/pkg/types"
)

// NewLogger returns a logger configured by cfg. Unknown values fall back
// to info level, console format, and stderr.
func NewLogger(cfg types.LoggingConfig) zerolog.Logger {
	return NewLoggerTo(cfg, outputFor(cfg.Output))
}

// NewLoggerTo is NewLogger with an explicit destination.
func NewLoggerTo(cfg types.LoggingConfig, w io.Writer) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	if strings.ToLower(cfg.Format) != "json" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}
	}

	return zerolog.New(w).
		With().Timestamp().Logger().
		Level(ParseLevel(cfg.Level))
}

func outputFor(name string) io.Writer {
	if strings.ToLower(name) == "stdout" {
		return os.Stdout
	}
	return os.Stderr
}

// ParseLevel converts a level name to a zerolog.Level, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}
