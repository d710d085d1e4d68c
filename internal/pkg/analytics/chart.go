package analytics

import "github.com/ougirez/profitability/internal/domain"

// BuildChart groups rows by indicator and year into bar series aligned to the
// sorted distinct years. The last row wins per (indicator, year), absent pairs
// are zero, and indicators without rows get no series. Series follow the order
// in which indicators first appear in rows.
func BuildChart(rows []*domain.IndicatorValue, catalog domain.Catalog) domain.ChartData {
	order := make([]int64, 0)
	byIndicator := make(map[int64]domain.YearData)

	for _, r := range rows {
		data, ok := byIndicator[r.IndicatorID]
		if !ok {
			data = make(domain.YearData)
			byIndicator[r.IndicatorID] = data
			order = append(order, r.IndicatorID)
		}
		data[r.Year] = r.Value.InexactFloat64()
	}

	years := DistinctYears(rows)

	series := make([]domain.ChartSeries, 0, len(order))
	for _, id := range order {
		data := byIndicator[id]

		values := make([]float64, len(years))
		for i, year := range years {
			values[i] = data[year]
		}

		series = append(series, domain.ChartSeries{
			IndicatorID: id,
			Title:       catalog.Title(id),
			Values:      values,
		})
	}

	return domain.ChartData{
		Years:  years,
		Series: series,
	}
}
