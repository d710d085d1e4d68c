package analytics

import (
	"fmt"

	"github.com/ougirez/profitability/internal/domain"
	"github.com/ougirez/profitability/internal/pkg/constants"
	"github.com/shopspring/decimal"
)

// NumeratorID is the indicator every profitability ratio divides.
const NumeratorID int64 = 1

type RatioDef struct {
	DivisorID int64
	Label     string
}

// ProfitabilityRatios lists the ratios in display order.
var ProfitabilityRatios = []RatioDef{
	{DivisorID: 2, Label: "Profitability of assets"},
	{DivisorID: 3, Label: "Profitability of sales"},
	{DivisorID: 4, Label: "Profitability of basic production assets"},
	{DivisorID: 5, Label: "Profitability of current assets"},
	{DivisorID: 6, Label: "Profitability of capital"},
	{DivisorID: 7, Label: "Profitability of investments"},
}

var hundred = decimal.NewFromInt(100)

// ComputeRatios returns value[1] / value[k] * 100 rounded to 2 places (half away
// from zero) for every ratio in ProfitabilityRatios, using the rows of year.
// When an indicator has several rows for the year the last one wins.
func ComputeRatios(rows []*domain.IndicatorValue, year domain.Year) ([]domain.Ratio, error) {
	values := make(map[int64]decimal.Decimal, len(ProfitabilityRatios)+1)
	for _, r := range rows {
		if r.Year != year {
			continue
		}
		values[r.IndicatorID] = r.Value
	}

	numerator, ok := values[NumeratorID]
	if !ok {
		return nil, fmt.Errorf("%w: indicator %d has no value for %s", constants.ErrMissingIndicator, NumeratorID, year)
	}
	for _, def := range ProfitabilityRatios {
		if _, ok := values[def.DivisorID]; !ok {
			return nil, fmt.Errorf("%w: indicator %d has no value for %s", constants.ErrMissingIndicator, def.DivisorID, year)
		}
	}

	ratios := make([]domain.Ratio, 0, len(ProfitabilityRatios))
	for _, def := range ProfitabilityRatios {
		divisor := values[def.DivisorID]
		if divisor.IsZero() {
			return nil, fmt.Errorf("%w: indicator %d is zero for %s", constants.ErrDivisionByZero, def.DivisorID, year)
		}

		percent := numerator.Div(divisor).Mul(hundred).Round(2)
		ratios = append(ratios, domain.Ratio{
			DivisorID: def.DivisorID,
			Label:     def.Label,
			Percent:   percent.InexactFloat64(),
		})
	}

	return ratios, nil
}

// StatisticsYear picks the year statistics are computed for. A selected year is
// used as is. Without one, policy "latest" takes the most recent year in rows and
// any other policy takes fallback.
func StatisticsYear(selected *domain.Year, rows []*domain.IndicatorValue, policy string, fallback domain.Year) domain.Year {
	if selected != nil {
		return *selected
	}

	if policy == constants.AllYearsPolicyLatest {
		if years := DistinctYears(rows); len(years) > 0 {
			return years[len(years)-1]
		}
	}

	return fallback
}

func ComputeStatistics(rows []*domain.IndicatorValue, year domain.Year, company string) (*domain.Statistics, error) {
	ratios, err := ComputeRatios(rows, year)
	if err != nil {
		return nil, err
	}

	return &domain.Statistics{
		Company: company,
		Year:    year,
		Ratios:  ratios,
	}, nil
}
