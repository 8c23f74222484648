package logger

import (
	"io"
	"log/slog"
)

// NewNop returns a logger that discards all output. Intended for tests.
func NewNop() Interface {
	return &slogLogger{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}
