// Package logging provides the file-backed structured logger. The TUI
// owns the terminal while the board runs, so there is no console sink;
// headless commands share the same file.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// Open creates a zerolog logger appending to path. An empty path disables
// logging entirely. The returned closer flushes and closes the sink.
func Open(level, path string) (zerolog.Logger, func() error, error) {
	if strings.TrimSpace(path) == "" {
		return zerolog.Nop(), func() error { return nil }, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("opening log file: %w", err)
	}

	logger := zerolog.New(zerolog.SyncWriter(f)).
		Level(ParseLevel(level)).
		With().Timestamp().Logger()
	return logger, f.Close, nil
}

// ParseLevel maps a config level string to a zerolog level, defaulting to
// info on anything unrecognized.
func ParseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
