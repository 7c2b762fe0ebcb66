package technical

import (
	"math"
	"testing"
	"time"

	"TickerDesk/internal/model"
)

func points(closes ...float64) []model.PricePoint {
	out := make([]model.PricePoint, len(closes))
	for i, c := range closes {
		out[i] = model.PricePoint{
			Date:  time.Now().AddDate(0, 0, -(len(closes) - i)),
			Close: c,
		}
	}
	return out
}

func TestMovingAverage(t *testing.T) {
	ma := MovingAverage(points(1, 2, 3, 4, 5), 3)
	if ma == nil {
		t.Fatal("expected value, got nil")
	}
	if math.Abs(*ma-4.0) > 1e-9 {
		t.Errorf("MA(3) of last three = %f, want 4.0", *ma)
	}

	if got := MovingAverage(points(1, 2), 3); got != nil {
		t.Errorf("expected nil for insufficient data, got %f", *got)
	}
	if got := MovingAverage(points(1, 2, 3), 0); got != nil {
		t.Errorf("expected nil for non-positive window, got %f", *got)
	}
}

func TestCompute(t *testing.T) {
	empty := Compute("AAPL", nil)
	if empty.LastClose != nil || empty.Trend != model.TrendUnavailable {
		t.Errorf("empty history should give unavailable technicals: %+v", empty)
	}

	// 200 rising closes: MA50 above MA200.
	closes := make([]float64, 200)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	tech := Compute("AAPL", points(closes...))
	if tech.LastClose == nil || *tech.LastClose != 299 {
		t.Fatalf("unexpected last close: %+v", tech.LastClose)
	}
	if tech.MA50 == nil || tech.MA200 == nil {
		t.Fatal("expected both MAs with 200 points")
	}
	if tech.Trend != model.TrendBullish {
		t.Errorf("rising series should be Bullish, got %s", tech.Trend)
	}

	// Too short for MA200: trend unavailable, MA50 still present.
	short := Compute("AAPL", points(closes[:100]...))
	if short.MA50 == nil {
		t.Error("expected MA50 with 100 points")
	}
	if short.MA200 != nil {
		t.Error("expected nil MA200 with 100 points")
	}
	if short.Trend != model.TrendUnavailable {
		t.Errorf("expected Unavailable trend, got %s", short.Trend)
	}
}
