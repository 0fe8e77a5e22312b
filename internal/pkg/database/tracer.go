package database

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/codacy-badger/mayday-ticketing-db-api/internal/pkg/logger"
	"github.com/codacy-badger/mayday-ticketing-db-api/internal/pkg/metrics"
)

const slowQueryThreshold = 100 * time.Millisecond

// queryTracer implements pgx.QueryTracer for logging and metrics
type queryTracer struct {
	enableDebug bool
}

type queryStartKey struct{}
type querySQLKey struct{}
type queryArgsKey struct{}

func newQueryTracer(enableDebug bool) *queryTracer {
	return &queryTracer{enableDebug: enableDebug}
}

func (t *queryTracer) TraceQueryStart(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	ctx = context.WithValue(ctx, queryStartKey{}, time.Now())
	ctx = context.WithValue(ctx, querySQLKey{}, data.SQL)
	ctx = context.WithValue(ctx, queryArgsKey{}, len(data.Args))
	return ctx
}

func (t *queryTracer) TraceQueryEnd(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryEndData) {
	start, ok := ctx.Value(queryStartKey{}).(time.Time)
	if !ok {
		return
	}

	duration := time.Since(start)
	sql, _ := ctx.Value(querySQLKey{}).(string)
	operation := queryOperation(sql)

	metrics.RecordDBQuery(string(DialectPostgres), operation, duration)
	if data.Err != nil {
		metrics.RecordDBError(string(DialectPostgres), operation)
	}

	if duration > slowQueryThreshold {
		logger.Warn("slow query detected",
			zap.Int64("duration_ms", duration.Milliseconds()),
			zap.String("sql", truncateSQL(sql, 200)),
		)
	} else if t.enableDebug {
		args, _ := ctx.Value(queryArgsKey{}).(int)
		logger.Debug("query executed",
			zap.Duration("duration", duration),
			zap.Int("args", args),
			zap.String("sql", truncateSQL(sql, 200)),
		)
	}
}

// queryOperation returns the lower-cased leading keyword of a statement
func queryOperation(sql string) string {
	fields := strings.Fields(sql)
	if len(fields) == 0 {
		return "unknown"
	}
	return strings.ToLower(fields[0])
}

func truncateSQL(sql string, maxLen int) string {
	if len(sql) <= maxLen {
		return sql
	}
	return sql[:maxLen] + "..."
}
