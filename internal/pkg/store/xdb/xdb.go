// Package xdb declares the storage handle the store runs its squirrel queries on.
// Queries are built with '?' placeholders; pools rewrite them for their driver.
package xdb

import (
	"context"

	sq "github.com/Masterminds/squirrel"
)

type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

type Row interface {
	Scan(dest ...any) error
}

type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
}

type Querier interface {
	// Execx runs a statement and returns the number of affected rows.
	Execx(ctx context.Context, query sq.Sqlizer) (int64, error)
	Queryx(ctx context.Context, query sq.Sqlizer) (Rows, error)
	QueryRowx(ctx context.Context, query sq.Sqlizer) Row
}

// Pool is a connection pool. InTx commits when fn returns nil and rolls back otherwise.
type Pool interface {
	Querier
	InTx(ctx context.Context, fn func(q Querier) error) error
	Dialect() Dialect
	Ping(ctx context.Context) error
	Close()
}

// ErrRow is a Row that fails every Scan, used when a query could not be built.
type ErrRow struct {
	Err error
}

func (r ErrRow) Scan(...any) error {
	return r.Err
}
