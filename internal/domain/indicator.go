package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Year is a year label as stored in indic_values.year.
type Year = string

// YearData maps a year to a value; later writes for the same year overwrite earlier ones.
type YearData = map[Year]float64

type Indicator struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

type IndicatorValue struct {
	ID          int64           `json:"id"`
	IndicatorID int64           `json:"indicator_id"`
	Year        Year            `json:"year"`
	Value       decimal.Decimal `json:"value"`
}

// ValueRow is an IndicatorValue enriched with its indicator title for list display.
type ValueRow struct {
	IndicatorValue
	IndicatorTitle string `json:"indicator_title"`
}

// Label renders the row the way the value list shows it.
func (r *ValueRow) Label() string {
	return fmt.Sprintf("%s, %s, %s", r.IndicatorTitle, r.Year, r.Value.String())
}

// Catalog is the fixed indicator vocabulary keyed by id.
type Catalog map[int64]*Indicator

func NewCatalog(indicators []*Indicator) Catalog {
	c := make(Catalog, len(indicators))
	for _, i := range indicators {
		c[i.ID] = i
	}
	return c
}

// Title returns the indicator title or a placeholder for ids outside the catalog.
func (c Catalog) Title(id int64) string {
	if i, ok := c[id]; ok {
		return i.Title
	}
	return fmt.Sprintf("indicator #%d", id)
}

// ValueFilter selects value rows. Nil fields match everything.
type ValueFilter struct {
	IndicatorID *int64
	Year        *Year
}

func (f ValueFilter) Match(v *IndicatorValue) bool {
	if f.IndicatorID != nil && *f.IndicatorID != v.IndicatorID {
		return false
	}
	if f.Year != nil && *f.Year != v.Year {
		return false
	}
	return true
}
