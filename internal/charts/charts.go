// Package charts renders the weight-history trend chart attached to the
// history reply.
package charts

import (
	"bytes"
	"fmt"
	"time"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/bitcoinrandomizer-ship-it/weight-tracker-bot/internal/service"
)

// GenerateWeightChart renders a PNG time series of the history window.
// Entries arrive newest first, as the report carries them. Returns nil with
// no error when there are fewer than two points to draw.
func GenerateWeightChart(entries []service.HistoryEntry) ([]byte, error) {
	if len(entries) < 2 {
		return nil, nil
	}

	xValues := make([]time.Time, len(entries))
	yValues := make([]float64, len(entries))
	for i, entry := range entries {
		// Reverse into chronological order.
		j := len(entries) - 1 - i
		xValues[j] = entry.Date
		yValues[j] = entry.WeightKg
	}

	graph := chart.Chart{
		Width:  800,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    30,
				Left:   30,
				Right:  30,
				Bottom: 30,
			},
			FillColor: chart.ColorWhite,
		},
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatterWithFormat("02/01"),
			Style: chart.Style{
				FontSize:  12,
				FontColor: chart.ColorBlack,
			},
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%.1f kg", v.(float64))
			},
			Style: chart.Style{
				FontSize:  12,
				FontColor: chart.ColorBlack,
			},
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "Peso",
				XValues: xValues,
				YValues: yValues,
				Style: chart.Style{
					StrokeColor: chart.ColorBlue,
					StrokeWidth: 2,
					DotColor:    chart.ColorBlue,
					DotWidth:    3,
				},
			},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render weight chart: %w", err)
	}
	return buf.Bytes(), nil
}
