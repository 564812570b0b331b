package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/lmittmann/tint"
)

type Options struct {
	Level  slog.Level
	Format string
	// File, when set, additionally receives every record as JSON.
	File string
}

// New builds the process logger. The returned closer releases the log file, if any.
func New(stdout io.Writer, opts Options) (*slog.Logger, io.Closer, error) {
	var console slog.Handler
	switch strings.ToLower(strings.TrimSpace(opts.Format)) {
	case "json":
		console = slog.NewJSONHandler(stdout, &slog.HandlerOptions{Level: opts.Level})
	default:
		console = tint.NewHandler(stdout, &tint.Options{Level: opts.Level})
	}

	if opts.File == "" {
		return slog.New(console), io.NopCloser(nil), nil
	}

	f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	file := slog.NewJSONHandler(f, &slog.HandlerOptions{Level: opts.Level})
	return slog.New(Tee(console, file)), f, nil
}
