package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// SetupLogging installs a text slog handler on w as the default logger.
// Warnings and errors are shown unless verbose asks for debug output.
func SetupLogging(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}

// SetupFileLogging sends logs to path so a full-screen UI stays clean. An
// empty path discards logs. The returned closer must be closed on exit.
func SetupFileLogging(path string, verbose bool) (io.Closer, error) {
	if path == "" {
		SetupLogging(io.Discard, verbose)
		return io.NopCloser(nil), nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}

	SetupLogging(f, verbose)
	return f, nil
}
