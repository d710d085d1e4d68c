package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/ougirez/profitability/internal/pkg/constants"
	"github.com/ougirez/profitability/internal/pkg/store/xdb"
)

const (
	tableIndicators = "indicators"
	tableValues     = "indic_values"
)

var mapping = map[error]error{
	pgx.ErrNoRows: constants.ErrDBNotFound,
	sql.ErrNoRows: constants.ErrDBNotFound,
}

func wrapErr(err error) error {
	for k, v := range mapping {
		if errors.Is(err, k) {
			return v
		}
	}
	return err
}

// builder возвращает squirrel SQL Builder обьект. Плейсхолдеры '?' переписывает пул.
func builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)
}

// storageErr maps driver errors; anything that is not a missing row is a storage failure.
func storageErr(err error) error {
	err = wrapErr(err)
	if errors.Is(err, constants.ErrDBNotFound) || errors.Is(err, constants.ErrStorage) {
		return err
	}
	return fmt.Errorf("%w: %w", constants.ErrStorage, err)
}

func collect[T any](rows xdb.Rows, scan func(xdb.Row) (T, error)) ([]T, error) {
	defer rows.Close()

	res := make([]T, 0)
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return res, nil
}
