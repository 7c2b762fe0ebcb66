package quote

import (
	"context"
	"log"

	"TickerDesk/internal/model"
)

// Adapter wraps a Source with the degradation policy: provider failures
// for a single symbol never propagate past this boundary. Any field that
// cannot be obtained is returned as nil, never as a sentinel value.
type Adapter struct {
	src Source
}

// NewAdapter creates an Adapter over the given Source.
func NewAdapter(src Source) *Adapter {
	return &Adapter{src: src}
}

// Source returns the underlying provider source.
func (a *Adapter) Source() Source { return a.src }

// GetSnapshot returns the current price, previous close, and derived
// change fields for a symbol. The cheap quote path is tried first; missing
// fields fall back to the last two closes of a short history pull.
func (a *Adapter) GetSnapshot(ctx context.Context, symbol string) model.QuoteSnapshot {
	snap := model.QuoteSnapshot{Symbol: symbol}

	if s, err := a.src.Snapshot(ctx, symbol); err != nil {
		log.Printf("[WARN] snapshot %s: %v", symbol, err)
	} else {
		snap.CurrentPrice = s.CurrentPrice
		snap.PreviousClose = s.PreviousClose
	}

	if snap.CurrentPrice == nil || snap.PreviousClose == nil {
		if points, err := a.src.History(ctx, symbol, Period5D); err != nil {
			log.Printf("[WARN] snapshot fallback %s: %v", symbol, err)
		} else if len(points) > 0 {
			if snap.CurrentPrice == nil {
				snap.CurrentPrice = model.Float(points[len(points)-1].Close)
			}
			if snap.PreviousClose == nil && len(points) > 1 {
				snap.PreviousClose = model.Float(points[len(points)-2].Close)
			}
		}
	}

	// Change fields are derived only when both inputs are present; zero is
	// a valid change, so absence stays nil.
	if snap.CurrentPrice != nil && snap.PreviousClose != nil {
		change := *snap.CurrentPrice - *snap.PreviousClose
		snap.Change = model.Float(change)
		if *snap.PreviousClose != 0 {
			snap.PercentChange = model.Float(change / *snap.PreviousClose * 100)
		}
	}

	return snap
}

// GetHistory returns the time-ordered close history for a symbol, or an
// empty history when the provider fails.
func (a *Adapter) GetHistory(ctx context.Context, symbol, period string) []model.PricePoint {
	points, err := a.src.History(ctx, symbol, period)
	if err != nil {
		log.Printf("[WARN] history %s (%s): %v", symbol, period, err)
		return nil
	}
	return points
}

// GetFundamentals returns valuation metrics for a symbol, degrading to an
// all-fields-absent result on provider failure.
func (a *Adapter) GetFundamentals(ctx context.Context, symbol string) model.Fundamentals {
	f, err := a.src.Fundamentals(ctx, symbol)
	if err != nil {
		log.Printf("[WARN] fundamentals %s: %v", symbol, err)
		return model.Fundamentals{Symbol: symbol}
	}
	return *f
}
