// Package xpgx implements xdb.Pool on top of a pgx connection pool.
package xpgx

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ougirez/profitability/internal/pkg/logger"
	"github.com/ougirez/profitability/internal/pkg/store/xdb"
)

type pgxQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type querier struct {
	q pgxQuerier
}

func toSql(query sq.Sqlizer) (string, []any, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("query.ToSql: %w", err)
	}

	sql, err = sq.Dollar.ReplacePlaceholders(sql)
	if err != nil {
		return "", nil, fmt.Errorf("ReplacePlaceholders: %w", err)
	}

	return sql, args, nil
}

func (q *querier) Execx(ctx context.Context, query sq.Sqlizer) (int64, error) {
	sql, args, err := toSql(query)
	if err != nil {
		return 0, err
	}

	tag, err := q.q.Exec(ctx, sql, args...)
	if err != nil {
		return 0, err
	}

	return tag.RowsAffected(), nil
}

func (q *querier) Queryx(ctx context.Context, query sq.Sqlizer) (xdb.Rows, error) {
	sql, args, err := toSql(query)
	if err != nil {
		return nil, err
	}

	return q.q.Query(ctx, sql, args...)
}

func (q *querier) QueryRowx(ctx context.Context, query sq.Sqlizer) xdb.Row {
	sql, args, err := toSql(query)
	if err != nil {
		return xdb.ErrRow{Err: err}
	}

	return q.q.QueryRow(ctx, sql, args...)
}

type Pool struct {
	querier
	pool *pgxpool.Pool
}

var _ xdb.Pool = (*Pool)(nil)

// Connect opens a pool for dsn and waits until the server answers a ping,
// retrying up to retries times with exponential backoff.
func Connect(ctx context.Context, dsn string, retries uint64) (*Pool, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.NewWithConfig: %w", err)
	}

	err = backoff.RetryNotify(
		func() error {
			return pool.Ping(ctx)
		},
		backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), retries), ctx),
		func(err error, next time.Duration) {
			logger.Warnf(ctx, "postgres is not ready, retrying in %s: %s", next, err.Error())
		},
	)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return &Pool{querier: querier{q: pool}, pool: pool}, nil
}

func (p *Pool) InTx(ctx context.Context, fn func(q xdb.Querier) error) error {
	return pgx.BeginFunc(ctx, p.pool, func(tx pgx.Tx) error {
		return fn(&querier{q: tx})
	})
}

func (p *Pool) Dialect() xdb.Dialect {
	return xdb.DialectPostgres
}

func (p *Pool) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

func (p *Pool) Close() {
	p.pool.Close()
}
