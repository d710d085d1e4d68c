package analytics

import "github.com/ougirez/profitability/internal/domain"

// FilterValues keeps the rows matching filter, preserving their order.
func FilterValues(rows []*domain.IndicatorValue, filter domain.ValueFilter) []*domain.IndicatorValue {
	res := make([]*domain.IndicatorValue, 0, len(rows))
	for _, r := range rows {
		if filter.Match(r) {
			res = append(res, r)
		}
	}
	return res
}

// Enrich attaches indicator titles from the catalog, preserving row order.
func Enrich(rows []*domain.IndicatorValue, catalog domain.Catalog) []*domain.ValueRow {
	res := make([]*domain.ValueRow, 0, len(rows))
	for _, r := range rows {
		res = append(res, &domain.ValueRow{
			IndicatorValue: *r,
			IndicatorTitle: catalog.Title(r.IndicatorID),
		})
	}
	return res
}
