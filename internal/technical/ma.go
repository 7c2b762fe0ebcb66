// Package technical computes moving-average indicators from price
// histories.
package technical

import (
	"TickerDesk/internal/model"
	"TickerDesk/internal/valuation"
)

// MovingAverage computes the simple moving average of the last window
// closes. It returns nil when there are not enough points.
func MovingAverage(points []model.PricePoint, window int) *float64 {
	if window <= 0 || len(points) < window {
		return nil
	}
	sum := 0.0
	for i := len(points) - window; i < len(points); i++ {
		sum += points[i].Close
	}
	return model.Float(sum / float64(window))
}

// Compute derives the last close, 50- and 200-day moving averages, and
// the trend classification from a price history.
func Compute(symbol string, points []model.PricePoint) model.Technicals {
	t := model.Technicals{Symbol: symbol, Trend: model.TrendUnavailable}
	if len(points) == 0 {
		return t
	}
	t.LastClose = model.Float(points[len(points)-1].Close)
	t.MA50 = MovingAverage(points, 50)
	t.MA200 = MovingAverage(points, 200)
	t.Trend = valuation.TrendFromMAs(t.MA50, t.MA200)
	return t
}
