package quote

import (
	"context"
	"fmt"

	"TickerDesk/internal/model"
)

// History periods accepted by a Source.
const (
	Period1D = "1d"
	Period5D = "5d"
	Period6M = "6mo"
	Period1Y = "1y"
)

// Source defines the interface for fetching market data from a provider.
// Implementations may return partial data and may fail transiently; the
// Adapter is the boundary that converts failures into absent values.
type Source interface {
	Snapshot(ctx context.Context, symbol string) (*model.QuoteSnapshot, error)
	History(ctx context.Context, symbol, period string) ([]model.PricePoint, error)
	Fundamentals(ctx context.Context, symbol string) (*model.Fundamentals, error)
	Search(ctx context.Context, query string) ([]model.SymbolMatch, error)
	Name() string
}

// APIError is a non-2xx response from the quote provider.
type APIError struct {
	StatusCode int
	Endpoint   string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("quote provider error: status %d, endpoint %s: %s", e.StatusCode, e.Endpoint, e.Message)
}
