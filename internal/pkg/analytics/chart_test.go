package analytics

import (
	"reflect"
	"testing"

	"github.com/ougirez/profitability/internal/domain"
)

var testCatalog = domain.NewCatalog([]*domain.Indicator{
	{ID: 1, Title: "Net profit"},
	{ID: 2, Title: "Total assets"},
	{ID: 3, Title: "Sales revenue"},
})

func TestBuildChart(t *testing.T) {
	rows := []*domain.IndicatorValue{
		row(1, 1, "2019", "10"),
		row(2, 1, "2020", "20"),
		row(3, 2, "2020", "5"),
	}

	chart := BuildChart(rows, testCatalog)

	if !reflect.DeepEqual(chart.Years, []string{"2019", "2020"}) {
		t.Fatalf("years = %v", chart.Years)
	}
	if len(chart.Series) != 2 {
		t.Fatalf("expected 2 series, got %d", len(chart.Series))
	}

	want := []domain.ChartSeries{
		{IndicatorID: 1, Title: "Net profit", Values: []float64{10, 20}},
		{IndicatorID: 2, Title: "Total assets", Values: []float64{0, 5}},
	}
	if !reflect.DeepEqual(chart.Series, want) {
		t.Fatalf("series = %+v, want %+v", chart.Series, want)
	}
}

func TestBuildChartOmitsIndicatorsWithoutRows(t *testing.T) {
	rows := []*domain.IndicatorValue{
		row(1, 3, "2020", "1"),
	}

	chart := BuildChart(rows, testCatalog)
	if len(chart.Series) != 1 || chart.Series[0].IndicatorID != 3 {
		t.Fatalf("expected only indicator 3, got %+v", chart.Series)
	}
}

func TestBuildChartLastRowWins(t *testing.T) {
	rows := []*domain.IndicatorValue{
		row(1, 1, "2020", "10"),
		row(2, 1, "2020", "30"),
	}

	chart := BuildChart(rows, testCatalog)
	if got := chart.Series[0].Values; !reflect.DeepEqual(got, []float64{30}) {
		t.Fatalf("expected overwrite to 30, got %v", got)
	}
}

func TestBuildChartSortsYearsNumerically(t *testing.T) {
	rows := []*domain.IndicatorValue{
		row(1, 2, "2021", "1"),
		row(2, 1, "999", "2"),
		row(3, 1, "2019", "3"),
	}

	chart := BuildChart(rows, testCatalog)
	if !reflect.DeepEqual(chart.Years, []string{"999", "2019", "2021"}) {
		t.Fatalf("years = %v", chart.Years)
	}
	if chart.Series[0].IndicatorID != 2 {
		t.Fatalf("expected series in first-appearance order, got %+v", chart.Series)
	}
	if !reflect.DeepEqual(chart.Series[1].Values, []float64{2, 3, 0}) {
		t.Fatalf("unexpected aligned values %v", chart.Series[1].Values)
	}
}

func TestBuildChartEmpty(t *testing.T) {
	chart := BuildChart(nil, testCatalog)
	if len(chart.Years) != 0 || len(chart.Series) != 0 {
		t.Fatalf("expected empty chart, got %+v", chart)
	}
}
