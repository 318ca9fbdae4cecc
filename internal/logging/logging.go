// Package logging provides the shared structured logger.
//
// Components take a logger tagged with their name:
//
//	log := logging.New("controller")
//	log.Debug("selected", "path", p)
//
// Output goes to stderr until Init points it elsewhere. The terminal UI sends
// it to a file because bubbletea owns the screen; the MCP server keeps stderr
// since stdout carries the protocol.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var (
	mu         sync.Mutex
	baseLogger *slog.Logger
)

// Init replaces the base logger. Loggers returned by New before Init keep
// their old output.
func Init(w io.Writer, level string) {
	mu.Lock()
	defer mu.Unlock()
	baseLogger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: ParseLevel(level),
	}))
}

// New returns a structured logger scoped to the given component name
func New(component string) *slog.Logger {
	mu.Lock()
	if baseLogger == nil {
		baseLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: ParseLevel(os.Getenv("MICROSCOPE_LOG_LEVEL")),
		}))
	}
	base := baseLogger
	mu.Unlock()

	if component == "" {
		return base
	}
	return base.With("component", component)
}

// OpenFile opens path for appending, creating its directory
func OpenFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}

// ParseLevel converts a level name to a slog.Level. Unknown names are info.
func ParseLevel(value string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
