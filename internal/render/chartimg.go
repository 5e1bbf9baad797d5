package render

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"ynabviz/internal/core"
)

// ErrNoBars is returned when no category has a budget to chart.
var ErrNoBars = errors.New("no budgeted categories to chart")

// ChartImage renders a PNG bar chart of the balance percentage per budgeted
// category. Zero-budget categories are skipped like in Assemble.
func ChartImage(categories []core.CategoryData, opts Options) ([]byte, error) {
	var bars []chart.Value
	maxPct, minPct := 100.0, 0.0
	for _, c := range categories {
		if !c.HasBudget() {
			continue
		}
		share, err := Shares(c)
		if err != nil {
			return nil, err
		}
		v := float64(share.Percentage)
		if v > maxPct {
			maxPct = v
		}
		if v < minPct {
			minPct = v
		}
		bars = append(bars, chart.Value{
			Label: c.Name,
			Value: v,
			Style: chart.Style{
				FillColor:   drawing.ColorFromHex(colorBalance[1:]),
				StrokeColor: drawing.ColorFromHex(colorBalance[1:]),
			},
		})
	}
	if len(bars) == 0 {
		return nil, ErrNoBars
	}

	graph := chart.BarChart{
		Title:    opts.title() + " (balance %)",
		Width:    120*len(bars) + 160,
		Height:   400,
		BarWidth: 60,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: minPct, Max: maxPct},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f%%", f)
				}
				return ""
			},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}
	return buf.Bytes(), nil
}
