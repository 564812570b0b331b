package logging

import (
	"context"
	"errors"
	"log/slog"
)

// tee writes each record to the console and, when configured, the JSON log file.
// Every sink keeps its own level; the record is cloned per sink because a handler
// may retain it.
type tee struct {
	sinks []slog.Handler
}

// Tee combines sinks into one handler. Nil sinks are skipped so an optional file
// handler can be passed unconditionally.
func Tee(sinks ...slog.Handler) slog.Handler {
	t := &tee{}
	for _, s := range sinks {
		if s != nil {
			t.sinks = append(t.sinks, s)
		}
	}
	if len(t.sinks) == 1 {
		return t.sinks[0]
	}
	return t
}

func (t *tee) Enabled(ctx context.Context, level slog.Level) bool {
	for _, s := range t.sinks {
		if s.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (t *tee) Handle(ctx context.Context, record slog.Record) error {
	var errs []error
	for _, s := range t.sinks {
		if s.Enabled(ctx, record.Level) {
			if err := s.Handle(ctx, record.Clone()); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

func (t *tee) WithAttrs(attrs []slog.Attr) slog.Handler {
	return t.derive(func(s slog.Handler) slog.Handler { return s.WithAttrs(attrs) })
}

func (t *tee) WithGroup(name string) slog.Handler {
	if name == "" {
		return t
	}
	return t.derive(func(s slog.Handler) slog.Handler { return s.WithGroup(name) })
}

func (t *tee) derive(fn func(slog.Handler) slog.Handler) *tee {
	out := &tee{sinks: make([]slog.Handler, len(t.sinks))}
	for i, s := range t.sinks {
		out.sinks[i] = fn(s)
	}
	return out
}
