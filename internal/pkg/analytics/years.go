package analytics

import (
	"sort"
	"strconv"

	"github.com/ougirez/profitability/internal/domain"
)

// SortYears sorts year labels ascending by their integer value. Labels that do
// not parse as integers go last, in lexical order.
func SortYears(years []domain.Year) {
	sort.SliceStable(years, func(i, j int) bool {
		a, errA := strconv.Atoi(years[i])
		b, errB := strconv.Atoi(years[j])
		switch {
		case errA == nil && errB == nil:
			return a < b
		case errA == nil:
			return true
		case errB == nil:
			return false
		default:
			return years[i] < years[j]
		}
	})
}

// DistinctYears returns the years present in rows, sorted with SortYears.
func DistinctYears(rows []*domain.IndicatorValue) []domain.Year {
	seen := make(map[domain.Year]struct{}, len(rows))
	years := make([]domain.Year, 0, len(rows))
	for _, r := range rows {
		if _, ok := seen[r.Year]; ok {
			continue
		}
		seen[r.Year] = struct{}{}
		years = append(years, r.Year)
	}

	SortYears(years)
	return years
}
