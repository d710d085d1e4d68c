package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/ougirez/profitability/internal/pkg/logger"
	"github.com/ougirez/profitability/internal/pkg/store/xdb"
)

var schema = map[xdb.Dialect][]string{
	xdb.DialectSQLite: {
		`CREATE TABLE IF NOT EXISTS indicators (
	indicators_id INTEGER PRIMARY KEY,
	title         TEXT NOT NULL UNIQUE
)`,
		`CREATE TABLE IF NOT EXISTS indic_values (
	values_id     INTEGER PRIMARY KEY,
	indicators_id INTEGER NOT NULL REFERENCES indicators (indicators_id),
	year          TEXT NOT NULL,
	value         NUMERIC NOT NULL
)`,
		`CREATE INDEX IF NOT EXISTS idx_indic_values_indicator_year ON indic_values (indicators_id, year)`,
	},
	xdb.DialectPostgres: {
		`CREATE TABLE IF NOT EXISTS indicators (
	indicators_id BIGINT PRIMARY KEY,
	title         TEXT NOT NULL UNIQUE
)`,
		`CREATE TABLE IF NOT EXISTS indic_values (
	values_id     BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
	indicators_id BIGINT NOT NULL REFERENCES indicators (indicators_id),
	year          TEXT NOT NULL,
	value         NUMERIC NOT NULL
)`,
		`CREATE INDEX IF NOT EXISTS idx_indic_values_indicator_year ON indic_values (indicators_id, year)`,
	},
}

// Migrate creates the indicators and indic_values tables if they are missing.
func (s *store) Migrate(ctx context.Context) error {
	statements, ok := schema[s.pool.Dialect()]
	if !ok {
		return fmt.Errorf("no schema for dialect %q", s.pool.Dialect())
	}

	return s.pool.InTx(ctx, func(q xdb.Querier) error {
		for _, stmt := range statements {
			if _, err := q.Execx(ctx, sq.Expr(stmt)); err != nil {
				logger.Errorf(ctx, "migrate: %s", err.Error())
				return storageErr(fmt.Errorf("migrate: %w", err))
			}
		}
		return nil
	})
}
