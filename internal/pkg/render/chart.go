package render

import (
	"errors"
	"fmt"
	"io"

	"github.com/ougirez/profitability/internal/domain"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

var ErrEmptyChart = errors.New("chart has no series")

const (
	chartWidth  = 10 * vg.Inch
	chartHeight = 6 * vg.Inch
	barWidth    = vg.Length(14)
)

// ChartPNG draws one bar set per series, grouped over a shared year axis.
func ChartPNG(w io.Writer, chart domain.ChartData, title string) error {
	if len(chart.Series) == 0 || len(chart.Years) == 0 {
		return ErrEmptyChart
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Year"
	p.Y.Label.Text = "Value"
	p.Legend.Top = true

	n := len(chart.Series)
	for i, s := range chart.Series {
		bars, err := plotter.NewBarChart(plotter.Values(s.Values), barWidth)
		if err != nil {
			return fmt.Errorf("plotter.NewBarChart, series-%s: %w", s.Title, err)
		}

		bars.LineStyle.Width = vg.Length(0)
		bars.Color = plotutil.Color(i)
		bars.Offset = vg.Length(float64(i)-float64(n-1)/2) * barWidth

		p.Add(bars)
		p.Legend.Add(s.Title, bars)
	}

	p.NominalX(chart.Years...)

	writer, err := p.WriterTo(chartWidth, chartHeight, "png")
	if err != nil {
		return fmt.Errorf("plot.WriterTo: %w", err)
	}

	if _, err = writer.WriteTo(w); err != nil {
		return fmt.Errorf("write png: %w", err)
	}

	return nil
}
