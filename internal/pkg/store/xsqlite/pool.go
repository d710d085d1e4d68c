// Package xsqlite implements xdb.Pool on a local SQLite database file.
package xsqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"
	"github.com/ougirez/profitability/internal/pkg/logger"
	"github.com/ougirez/profitability/internal/pkg/store/xdb"
)

type sqlQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type rows struct {
	*sql.Rows
}

func (r rows) Close() {
	_ = r.Rows.Close()
}

type querier struct {
	q sqlQuerier
}

func (q *querier) Execx(ctx context.Context, query sq.Sqlizer) (int64, error) {
	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("query.ToSql: %w", err)
	}

	res, err := q.q.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return 0, err
	}

	return res.RowsAffected()
}

func (q *querier) Queryx(ctx context.Context, query sq.Sqlizer) (xdb.Rows, error) {
	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("query.ToSql: %w", err)
	}

	r, err := q.q.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}

	return rows{r}, nil
}

func (q *querier) QueryRowx(ctx context.Context, query sq.Sqlizer) xdb.Row {
	sqlStr, args, err := query.ToSql()
	if err != nil {
		return xdb.ErrRow{Err: fmt.Errorf("query.ToSql: %w", err)}
	}

	return q.q.QueryRowContext(ctx, sqlStr, args...)
}

type Pool struct {
	querier
	db *sql.DB
}

var _ xdb.Pool = (*Pool)(nil)

// Open opens the database at path with foreign keys enforced. Use ":memory:"
// for a throwaway database. The pool keeps a single connection: SQLite has one
// writer, and an in-memory database lives only as long as its connection.
func Open(ctx context.Context, path string) (*Pool, error) {
	dsn := path
	if strings.Contains(dsn, "?") {
		dsn += "&_foreign_keys=on&_busy_timeout=5000"
	} else {
		dsn += "?_foreign_keys=on&_busy_timeout=5000"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	logger.Debugf(ctx, "opened sqlite database %s", path)

	return &Pool{querier: querier{q: db}, db: db}, nil
}

func (p *Pool) InTx(ctx context.Context, fn func(q xdb.Querier) error) (err error) {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				logger.Errorf(ctx, "rollback: %s", rbErr.Error())
			}
		}
	}()

	if err = fn(&querier{q: tx}); err != nil {
		return err
	}

	return tx.Commit()
}

func (p *Pool) Dialect() xdb.Dialect {
	return xdb.DialectSQLite
}

func (p *Pool) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}

func (p *Pool) Close() {
	if err := p.db.Close(); err != nil {
		logger.Errorf(context.Background(), "close sqlite: %s", err.Error())
	}
}
