package store

import (
	"context"
	"database/sql"

	"go.uber.org/zap"
)

// Querier is satisfied by both *sql.DB and *sql.Tx.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// QueryInterceptor wraps a Querier and logs every statement at debug level.
type QueryInterceptor struct {
	q      Querier
	logger *zap.SugaredLogger
}

func NewQueryInterceptor(q Querier) QueryInterceptor {
	return QueryInterceptor{q: q, logger: zap.S().Named("query")}
}

func (qi QueryInterceptor) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	qi.logger.Debugw("query", "sql", query, "args", args)
	return qi.q.QueryContext(ctx, query, args...)
}

func (qi QueryInterceptor) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	qi.logger.Debugw("query row", "sql", query, "args", args)
	return qi.q.QueryRowContext(ctx, query, args...)
}

func (qi QueryInterceptor) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	qi.logger.Debugw("exec", "sql", query, "args", args)
	return qi.q.ExecContext(ctx, query, args...)
}
