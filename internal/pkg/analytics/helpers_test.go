package analytics

import (
	"github.com/ougirez/profitability/internal/domain"
	"github.com/shopspring/decimal"
)

func row(id, indicatorID int64, year, value string) *domain.IndicatorValue {
	return &domain.IndicatorValue{
		ID:          id,
		IndicatorID: indicatorID,
		Year:        year,
		Value:       decimal.RequireFromString(value),
	}
}

// seededYear returns rows for indicators 1..7 in year with the given values.
func seededYear(year string, values ...string) []*domain.IndicatorValue {
	rows := make([]*domain.IndicatorValue, 0, len(values))
	for i, v := range values {
		rows = append(rows, row(int64(len(rows)+1), int64(i+1), year, v))
	}
	return rows
}
