package npyexport

import (
	"io"
	"log/slog"
	"os"
)

// NewLogger creates a logger with the given handler.
// If handler is nil, a text handler writing Info and above to stderr is used.
func NewLogger(handler slog.Handler) *slog.Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}

	return slog.New(handler)
}

// NewTextLogger creates a logger writing human-readable text to w.
func NewTextLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// NewJSONLogger creates a logger writing JSON records to w.
func NewJSONLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// NoopLogger returns a logger that discards all output. It is the default.
func NoopLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
