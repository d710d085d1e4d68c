package domain

// Ratio is one profitability ratio: indicator 1 divided by DivisorID, in percent.
type Ratio struct {
	DivisorID int64   `json:"divisor_id"`
	Label     string  `json:"label"`
	Percent   float64 `json:"percent"`
}

type Statistics struct {
	Company string  `json:"company"`
	Year    Year    `json:"year"`
	Ratios  []Ratio `json:"ratios"`
}

type ChartSeries struct {
	IndicatorID int64     `json:"indicator_id"`
	Title       string    `json:"title"`
	Values      []float64 `json:"values"`
}

// ChartData is a grouped bar chart: one series per indicator aligned to Years.
type ChartData struct {
	Years  []Year        `json:"years"`
	Series []ChartSeries `json:"series"`
}

// View is everything one refresh of the filters produces.
type View struct {
	Rows            []*ValueRow `json:"rows"`
	Statistics      *Statistics `json:"statistics,omitempty"`
	StatisticsError string      `json:"statistics_error,omitempty"`
	Chart           ChartData   `json:"chart"`
}

type ErrorResponse struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}
