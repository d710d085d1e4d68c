package analytics

import (
	"errors"
	"testing"

	"github.com/ougirez/profitability/internal/domain"
	"github.com/ougirez/profitability/internal/pkg/constants"
)

func TestComputeRatios(t *testing.T) {
	rows := seededYear("2020", "200", "100", "50", "100", "100", "100", "100")

	ratios, err := ComputeRatios(rows, "2020")
	if err != nil {
		t.Fatalf("ComputeRatios() error = %v", err)
	}
	if len(ratios) != 6 {
		t.Fatalf("expected 6 ratios, got %d", len(ratios))
	}

	want := []float64{200, 400, 200, 200, 200, 200}
	for i, r := range ratios {
		if r.Percent != want[i] {
			t.Errorf("ratio %d (divisor %d) = %v, want %v", i, r.DivisorID, r.Percent, want[i])
		}
		if r.DivisorID != int64(i+2) {
			t.Errorf("ratio %d divisor = %d, want %d", i, r.DivisorID, i+2)
		}
		if r.Label == "" {
			t.Errorf("ratio %d has no label", i)
		}
	}
}

func TestComputeRatiosRounding(t *testing.T) {
	tests := []struct {
		name      string
		numerator string
		divisor   string
		want      float64
	}{
		{name: "third", numerator: "1", divisor: "3", want: 33.33},
		{name: "two thirds", numerator: "2", divisor: "3", want: 66.67},
		{name: "half away from zero", numerator: "1", divisor: "800", want: 0.13},
		{name: "negative", numerator: "-1", divisor: "3", want: -33.33},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := seededYear("2021", tt.numerator, tt.divisor, "1", "1", "1", "1", "1")
			ratios, err := ComputeRatios(rows, "2021")
			if err != nil {
				t.Fatalf("ComputeRatios() error = %v", err)
			}
			if ratios[0].Percent != tt.want {
				t.Fatalf("got %v, want %v", ratios[0].Percent, tt.want)
			}
		})
	}
}

func TestComputeRatiosDivisionByZero(t *testing.T) {
	rows := seededYear("2020", "200", "0", "50", "100", "100", "100", "100")

	if _, err := ComputeRatios(rows, "2020"); !errors.Is(err, constants.ErrDivisionByZero) {
		t.Fatalf("expected ErrDivisionByZero, got %v", err)
	}
}

func TestComputeRatiosMissingIndicator(t *testing.T) {
	full := seededYear("2020", "200", "100", "50", "100", "100", "100", "100")

	tests := []struct {
		name string
		rows []*domain.IndicatorValue
		year string
	}{
		{name: "no rows", rows: nil, year: "2020"},
		{name: "numerator missing", rows: full[1:], year: "2020"},
		{name: "last divisor missing", rows: full[:6], year: "2020"},
		{name: "other year", rows: full, year: "2019"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ComputeRatios(tt.rows, tt.year); !errors.Is(err, constants.ErrMissingIndicator) {
				t.Fatalf("expected ErrMissingIndicator, got %v", err)
			}
		})
	}
}

func TestComputeRatiosLastRowWins(t *testing.T) {
	rows := seededYear("2020", "200", "100", "50", "100", "100", "100", "100")
	rows = append(rows, row(100, 2, "2020", "400"))

	ratios, err := ComputeRatios(rows, "2020")
	if err != nil {
		t.Fatalf("ComputeRatios() error = %v", err)
	}
	if ratios[0].Percent != 50 {
		t.Fatalf("expected later duplicate to win (50), got %v", ratios[0].Percent)
	}
}

func TestComputeRatiosIgnoresOtherYears(t *testing.T) {
	rows := seededYear("2020", "200", "100", "50", "100", "100", "100", "100")
	rows = append(rows, row(100, 1, "2021", "999"))

	ratios, err := ComputeRatios(rows, "2020")
	if err != nil {
		t.Fatalf("ComputeRatios() error = %v", err)
	}
	if ratios[0].Percent != 200 {
		t.Fatalf("expected 2021 row to be ignored, got %v", ratios[0].Percent)
	}
}

func TestStatisticsYear(t *testing.T) {
	rows := []*domain.IndicatorValue{
		row(1, 1, "2019", "1"),
		row(2, 1, "2023", "1"),
		row(3, 1, "2020", "1"),
	}
	selected := "2019"

	tests := []struct {
		name     string
		selected *string
		rows     []*domain.IndicatorValue
		policy   string
		want     string
	}{
		{name: "selected wins", selected: &selected, rows: rows, policy: constants.AllYearsPolicyLatest, want: "2019"},
		{name: "fixed fallback", rows: rows, policy: constants.AllYearsPolicyFixed, want: "2021"},
		{name: "latest", rows: rows, policy: constants.AllYearsPolicyLatest, want: "2023"},
		{name: "latest without rows", rows: nil, policy: constants.AllYearsPolicyLatest, want: "2021"},
		{name: "unknown policy", rows: rows, policy: "", want: "2021"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StatisticsYear(tt.selected, tt.rows, tt.policy, constants.DefaultFallbackYear)
			if got != tt.want {
				t.Fatalf("StatisticsYear() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestComputeStatistics(t *testing.T) {
	rows := seededYear("2021", "10", "100", "100", "100", "100", "100", "100")

	stats, err := ComputeStatistics(rows, "2021", constants.DefaultCompany)
	if err != nil {
		t.Fatalf("ComputeStatistics() error = %v", err)
	}
	if stats.Year != "2021" || stats.Company != constants.DefaultCompany || len(stats.Ratios) != 6 {
		t.Fatalf("unexpected statistics %+v", stats)
	}
}
