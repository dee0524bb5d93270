package logging

import (
	"io"
	"log/slog"
)

// Error wraps an error for structured logging.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}
	return slog.Any("error", err)
}

// WithComponent tags a logger with the component attr the console handler
// promotes into the line prefix.
func WithComponent(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		return NewNop()
	}
	return logger.With(slog.String("component", component))
}

// NewNop returns a logger that discards everything; for tests and wiring
// code that cannot fail.
func NewNop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}
