package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/ougirez/profitability/internal/domain"
	"github.com/ougirez/profitability/internal/pkg/logger"
	"github.com/ougirez/profitability/internal/pkg/store/xdb"
)

type IndicatorStore interface {
	ListIndicators(ctx context.Context) ([]*domain.Indicator, error)
	GetIndicator(ctx context.Context, id int64) (*domain.Indicator, error)
	SeedIndicators(ctx context.Context, indicators []*domain.Indicator) error
}

var indicatorColumns = []string{"indicators_id", "title"}

func scanIndicator(row xdb.Row) (*domain.Indicator, error) {
	var i domain.Indicator
	if err := row.Scan(&i.ID, &i.Title); err != nil {
		return nil, err
	}
	return &i, nil
}

func (s *store) ListIndicators(ctx context.Context) ([]*domain.Indicator, error) {
	query := builder().Select(indicatorColumns...).
		From(tableIndicators).
		OrderBy("indicators_id")

	rows, err := s.pool.Queryx(ctx, query)
	if err != nil {
		logger.Error(ctx, err.Error())
		return nil, storageErr(err)
	}

	selected, err := collect(rows, scanIndicator)
	if err != nil {
		logger.Error(ctx, err.Error())
		return nil, storageErr(err)
	}

	return selected, nil
}

func (s *store) GetIndicator(ctx context.Context, id int64) (*domain.Indicator, error) {
	return getIndicator(ctx, s.pool, id)
}

func getIndicator(ctx context.Context, q xdb.Querier, id int64) (*domain.Indicator, error) {
	query := builder().Select(indicatorColumns...).
		From(tableIndicators).
		Where(sq.Eq{"indicators_id": id})

	selected, err := scanIndicator(q.QueryRowx(ctx, query))
	if err != nil {
		return nil, storageErr(err)
	}

	return selected, nil
}

// SeedIndicators inserts the catalog, leaving already present indicators untouched.
func (s *store) SeedIndicators(ctx context.Context, indicators []*domain.Indicator) error {
	if len(indicators) == 0 {
		return nil
	}

	query := builder().Insert(tableIndicators).
		Columns(indicatorColumns...)

	for _, i := range indicators {
		query = query.Values(i.ID, i.Title)
	}

	query = query.Suffix("ON CONFLICT DO NOTHING")

	if _, err := s.pool.Execx(ctx, query); err != nil {
		logger.Errorf(ctx, "SeedIndicators: %s", err.Error())
		return storageErr(fmt.Errorf("seed indicators: %w", err))
	}

	return nil
}
