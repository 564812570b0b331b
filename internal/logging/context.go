package logging

import (
	"context"
	"io"
	"log/slog"
)

type ctxKey int

const (
	loggerKey ctxKey = iota
	requestIDKey
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

// WithLogger stores logger in ctx. A nil logger stores a discard logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if logger == nil {
		logger = discard
	}
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext returns the request logger, then fallback, then a discard logger.
func FromContext(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok && logger != nil {
			return logger
		}
	}
	if fallback != nil {
		return fallback
	}
	return discard
}

// With narrows the logger in ctx by args, e.g. With(ctx, s.logger, "draft_id", id),
// so everything logged further down the call carries them.
func With(ctx context.Context, fallback *slog.Logger, args ...any) (context.Context, *slog.Logger) {
	logger := FromContext(ctx, fallback)
	if len(args) > 0 {
		logger = logger.With(args...)
	}
	return WithLogger(ctx, logger), logger
}

// WithRequestID records the id of the inbound request. Outgoing calls made on its
// behalf forward it so a proposal can be followed across services.
func WithRequestID(ctx context.Context, id string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestID returns the id stored by WithRequestID, or "".
func RequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
