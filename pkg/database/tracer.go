package database

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
)

const maxLoggedQueryLen = 500

type traceStartKey struct{}

type traceStart struct {
	sql   string
	start time.Time
}

// QueryLogTracer logs every statement pgx executes along with its duration.
// Bound arguments are never logged since they carry borrower details.
type QueryLogTracer struct {
	logger        *slog.Logger
	slowThreshold time.Duration
	now           func() time.Time
}

var _ pgx.QueryTracer = (*QueryLogTracer)(nil)

// NewQueryLogTracer returns a tracer writing to logger.
func NewQueryLogTracer(logger *slog.Logger, slowThreshold time.Duration) *QueryLogTracer {
	if logger == nil {
		logger = slog.Default()
	}
	return &QueryLogTracer{logger: logger, slowThreshold: slowThreshold, now: time.Now}
}

func (t *QueryLogTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, traceStartKey{}, traceStart{sql: data.SQL, start: t.now()})
}

func (t *QueryLogTracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	started, ok := ctx.Value(traceStartKey{}).(traceStart)
	if !ok {
		return
	}
	elapsed := t.now().Sub(started.start)
	attrs := []any{
		slog.String("query", compactQuery(started.sql)),
		slog.Duration("duration", elapsed),
		slog.String("command", data.CommandTag.String()),
	}

	switch {
	case data.Err != nil:
		t.logger.ErrorContext(ctx, "database query failed", append(attrs, slog.String("error", data.Err.Error()))...)
	case t.slowThreshold > 0 && elapsed > t.slowThreshold:
		t.logger.WarnContext(ctx, "slow database query", attrs...)
	default:
		t.logger.DebugContext(ctx, "database query", attrs...)
	}
}

// compactQuery collapses whitespace so multi-line SQL fits on one log line.
func compactQuery(q string) string {
	q = strings.Join(strings.Fields(q), " ")
	if len(q) > maxLoggedQueryLen {
		return q[:maxLoggedQueryLen] + "..."
	}
	return q
}
