package db

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
)

type queryStartKey struct{}

type queryStart struct {
	at    time.Time
	query string
}

// queryTracer logs failed queries and queries slower than slow.
type queryTracer struct {
	logger *slog.Logger
	slow   time.Duration
}

func newQueryTracer(logger *slog.Logger, slow time.Duration) *queryTracer {
	return &queryTracer{logger: logger, slow: slow}
}

func (t *queryTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, queryStartKey{}, queryStart{at: time.Now(), query: normalizeQuery(data.SQL)})
}

func (t *queryTracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	start, ok := ctx.Value(queryStartKey{}).(queryStart)
	if !ok {
		return
	}
	elapsed := time.Since(start.at)

	attrs := []any{
		"operation", queryOperation(start.query),
		"duration_ms", elapsed.Milliseconds(),
		"rows_affected", data.CommandTag.RowsAffected(),
	}
	switch {
	case data.Err != nil:
		t.logger.Warn("query failed", append(attrs, "query", start.query, "error", data.Err)...)
	case elapsed >= t.slow:
		t.logger.Info("slow query", append(attrs, "query", start.query)...)
	default:
		t.logger.Debug("query", attrs...)
	}
}

func normalizeQuery(query string) string {
	normalized := strings.Join(strings.Fields(query), " ")
	if normalized == "" {
		return "sql.query"
	}
	const maxLen = 512
	if len(normalized) > maxLen {
		return normalized[:maxLen]
	}
	return normalized
}

func queryOperation(query string) string {
	parts := strings.Fields(query)
	if len(parts) == 0 {
		return ""
	}
	return strings.ToUpper(parts[0])
}
