// Package chart renders price-history PNG artifacts.
package chart

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	gochart "github.com/wcharczuk/go-chart/v2"

	"TickerDesk/internal/model"
)

// FileName returns the deterministic chart file name for a symbol.
func FileName(symbol string) string {
	return symbol + "_chart.png"
}

// Render writes a close-price line chart for the symbol into dir and
// returns the file path. At least two points are required.
func Render(symbol string, points []model.PricePoint, dir string) (string, error) {
	if len(points) < 2 {
		return "", fmt.Errorf("chart %s: need at least 2 points, got %d", symbol, len(points))
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("chart dir: %w", err)
	}

	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i] = float64(p.Date.Unix())
		ys[i] = p.Close
	}

	graph := gochart.Chart{
		Title:  fmt.Sprintf("%s - 1 Year Price Chart", symbol),
		Width:  1000,
		Height: 500,
		XAxis: gochart.XAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return time.Unix(int64(f), 0).Format("2006-01-02")
				}
				return ""
			},
		},
		Series: []gochart.Series{
			gochart.ContinuousSeries{
				Name:    symbol + " Close",
				XValues: xs,
				YValues: ys,
			},
		},
	}

	path := filepath.Join(dir, FileName(symbol))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create chart file: %w", err)
	}
	defer f.Close()

	if err := graph.Render(gochart.PNG, f); err != nil {
		return "", fmt.Errorf("render chart: %w", err)
	}
	return path, nil
}
