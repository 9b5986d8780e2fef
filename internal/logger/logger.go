package logger

import (
	"fmt"
	"log/slog"
	"os"
)

// New returns a logger writing text records to the given file, truncating it first. The terminal
// belongs to the TUI, so logs never go to stdout or stderr. The caller closes the file.
func New(path string, level slog.Level) (*slog.Logger, *os.File, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("error creating log file: %w", err)
	}

	// Create a text handler that writes to the file
	handler := slog.NewTextHandler(file, &slog.HandlerOptions{
		Level: level,
	})

	// Create a logger with the file handler
	return slog.New(handler), file, nil
}
