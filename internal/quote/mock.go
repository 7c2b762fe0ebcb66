package quote

import (
	"context"
	"time"

	"TickerDesk/internal/model"
)

// MockSource returns controllable fixed data for development and testing.
type MockSource struct {
	Snap    *model.QuoteSnapshot
	Hist    map[string][]model.PricePoint // keyed by period
	Fund    *model.Fundamentals
	Matches []model.SymbolMatch

	SnapErr   error
	HistErr   error
	FundErr   error
	SearchErr error

	// FailSymbols lists symbols for which every call fails.
	FailSymbols map[string]error
}

func (m *MockSource) Name() string { return "mock" }

func (m *MockSource) symbolErr(symbol string) error {
	if m.FailSymbols == nil {
		return nil
	}
	return m.FailSymbols[symbol]
}

func (m *MockSource) Snapshot(_ context.Context, symbol string) (*model.QuoteSnapshot, error) {
	if err := m.symbolErr(symbol); err != nil {
		return nil, err
	}
	if m.SnapErr != nil {
		return nil, m.SnapErr
	}
	if m.Snap != nil {
		s := *m.Snap
		s.Symbol = symbol
		return &s, nil
	}
	return &model.QuoteSnapshot{Symbol: symbol}, nil
}

func (m *MockSource) History(_ context.Context, symbol, period string) ([]model.PricePoint, error) {
	if err := m.symbolErr(symbol); err != nil {
		return nil, err
	}
	if m.HistErr != nil {
		return nil, m.HistErr
	}
	if points, ok := m.Hist[period]; ok {
		return points, nil
	}
	return GenerateMockPoints(100, 30), nil
}

func (m *MockSource) Fundamentals(_ context.Context, symbol string) (*model.Fundamentals, error) {
	if err := m.symbolErr(symbol); err != nil {
		return nil, err
	}
	if m.FundErr != nil {
		return nil, m.FundErr
	}
	if m.Fund != nil {
		f := *m.Fund
		f.Symbol = symbol
		return &f, nil
	}
	return &model.Fundamentals{Symbol: symbol}, nil
}

func (m *MockSource) Search(_ context.Context, _ string) ([]model.SymbolMatch, error) {
	if m.SearchErr != nil {
		return nil, m.SearchErr
	}
	return m.Matches, nil
}

// GenerateMockPoints builds a gently sloping close series ending today.
func GenerateMockPoints(basePrice float64, count int) []model.PricePoint {
	points := make([]model.PricePoint, count)
	for i := 0; i < count; i++ {
		points[i] = model.PricePoint{
			Date:  time.Now().AddDate(0, 0, -(count - i)),
			Close: basePrice * (1 + float64(i-count/2)*0.001),
		}
	}
	return points
}
