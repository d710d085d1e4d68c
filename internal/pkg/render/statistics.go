package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io"

	"github.com/ougirez/profitability/internal/domain"
	"github.com/shopspring/decimal"
)

var statisticsTemplate = template.Must(template.New("statistics").
	Funcs(template.FuncMap{
		"percent": func(p float64) string {
			return decimal.NewFromFloat(p).StringFixed(2)
		},
	}).
	Parse(`Profitability indicators {{.Company}} for <b class="year" style="color: red; font-size: 14px">{{.Year}}</b> is:
{{range .Ratios}}<hr>
{{.Label}}: <b class="ratio" style="color: blue; font-size: 14px">{{percent .Percent}}%</b>
{{end}}`))

// StatisticsHTML writes the statistics block shown next to the value list.
func StatisticsHTML(w io.Writer, stats *domain.Statistics) error {
	var buf bytes.Buffer
	if err := statisticsTemplate.Execute(&buf, stats); err != nil {
		return fmt.Errorf("statisticsTemplate.Execute: %w", err)
	}

	_, err := buf.WriteTo(w)
	return err
}
