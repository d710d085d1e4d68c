package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/ougirez/profitability/internal/domain"
	"github.com/ougirez/profitability/internal/pkg/constants"
	"github.com/ougirez/profitability/internal/pkg/logger"
	"github.com/ougirez/profitability/internal/pkg/store/xdb"
	"github.com/shopspring/decimal"
)

// ListValuesOpts filters ListValues. Nil fields are not applied.
type ListValuesOpts struct {
	IndicatorID *int64
	Year        *domain.Year
}

type ValueStore interface {
	ListValues(ctx context.Context, opts ListValuesOpts) ([]*domain.IndicatorValue, error)
	GetValue(ctx context.Context, id int64) (*domain.IndicatorValue, error)
	InsertValue(ctx context.Context, value *domain.IndicatorValue) (*domain.IndicatorValue, error)
	UpdateValue(ctx context.Context, id int64, year domain.Year, value decimal.Decimal) (*domain.IndicatorValue, error)
	DeleteValue(ctx context.Context, id int64) error
	ListYears(ctx context.Context) ([]domain.Year, error)
}

var valueColumns = []string{"values_id", "indicators_id", "year", "value"}

func returningValue() string {
	return "RETURNING " + strings.Join(valueColumns, ", ")
}

func scanValue(row xdb.Row) (*domain.IndicatorValue, error) {
	var v domain.IndicatorValue
	if err := row.Scan(&v.ID, &v.IndicatorID, &v.Year, &v.Value); err != nil {
		return nil, err
	}
	return &v, nil
}

// notFound turns a missing row into ErrNotFound for the value with the given id.
func notFound(err error, id int64) error {
	if errors.Is(err, constants.ErrDBNotFound) {
		return fmt.Errorf("%w: id %d", constants.ErrNotFound, id)
	}
	return err
}

func (s *store) ListValues(ctx context.Context, opts ListValuesOpts) ([]*domain.IndicatorValue, error) {
	query := builder().Select(valueColumns...).
		From(tableValues).
		OrderBy("values_id")

	if opts.IndicatorID != nil {
		query = query.Where(sq.Eq{"indicators_id": *opts.IndicatorID})
	}

	if opts.Year != nil {
		query = query.Where(sq.Eq{"year": *opts.Year})
	}

	rows, err := s.pool.Queryx(ctx, query)
	if err != nil {
		logger.Error(ctx, err.Error())
		return nil, storageErr(err)
	}

	selected, err := collect(rows, scanValue)
	if err != nil {
		logger.Error(ctx, err.Error())
		return nil, storageErr(err)
	}

	return selected, nil
}

func (s *store) GetValue(ctx context.Context, id int64) (*domain.IndicatorValue, error) {
	query := builder().Select(valueColumns...).
		From(tableValues).
		Where(sq.Eq{"values_id": id})

	selected, err := scanValue(s.pool.QueryRowx(ctx, query))
	if err != nil {
		return nil, notFound(storageErr(err), id)
	}

	return selected, nil
}

// InsertValue checks the indicator exists and inserts the row in one transaction.
func (s *store) InsertValue(ctx context.Context, value *domain.IndicatorValue) (*domain.IndicatorValue, error) {
	var inserted *domain.IndicatorValue

	err := s.pool.InTx(ctx, func(q xdb.Querier) error {
		if _, err := getIndicator(ctx, q, value.IndicatorID); err != nil {
			if errors.Is(err, constants.ErrDBNotFound) {
				return fmt.Errorf("%w: unknown indicator %d", constants.ErrValidation, value.IndicatorID)
			}
			return err
		}

		query := builder().Insert(tableValues).
			Columns("indicators_id", "year", "value").
			Values(value.IndicatorID, value.Year, value.Value).
			Suffix(returningValue())

		var err error
		inserted, err = scanValue(q.QueryRowx(ctx, query))
		if err != nil {
			logger.Errorf(ctx, "insertValue: %s", err.Error())
			return storageErr(err)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("insert value: %w", err)
	}

	return inserted, nil
}

// UpdateValue changes year and value of an existing row. indicators_id is never touched.
func (s *store) UpdateValue(
	ctx context.Context,
	id int64,
	year domain.Year,
	value decimal.Decimal,
) (*domain.IndicatorValue, error) {
	query := builder().Update(tableValues).
		Set("year", year).
		Set("value", value).
		Where(sq.Eq{"values_id": id}).
		Suffix(returningValue())

	updated, err := scanValue(s.pool.QueryRowx(ctx, query))
	if err != nil {
		err = notFound(storageErr(err), id)
		if !errors.Is(err, constants.ErrNotFound) {
			logger.Errorf(ctx, "updateValue: %s", err.Error())
		}
		return nil, fmt.Errorf("update value: %w", err)
	}

	return updated, nil
}

func (s *store) DeleteValue(ctx context.Context, id int64) error {
	query := builder().Delete(tableValues).
		Where(sq.Eq{"values_id": id})

	affected, err := s.pool.Execx(ctx, query)
	if err != nil {
		logger.Errorf(ctx, "deleteValue: %s", err.Error())
		return fmt.Errorf("delete value: %w", storageErr(err))
	}

	if affected == 0 {
		return fmt.Errorf("delete value: %w: id %d", constants.ErrNotFound, id)
	}

	return nil
}

// ListYears returns every distinct year that has at least one value.
func (s *store) ListYears(ctx context.Context) ([]domain.Year, error) {
	query := builder().Select("year").
		Distinct().
		From(tableValues).
		OrderBy("year")

	rows, err := s.pool.Queryx(ctx, query)
	if err != nil {
		logger.Error(ctx, err.Error())
		return nil, storageErr(err)
	}

	years, err := collect(rows, func(row xdb.Row) (domain.Year, error) {
		var year domain.Year
		err := row.Scan(&year)
		return year, err
	})
	if err != nil {
		logger.Error(ctx, err.Error())
		return nil, storageErr(err)
	}

	return years, nil
}
