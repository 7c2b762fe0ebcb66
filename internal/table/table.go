// Package table builds the live watchlist price table.
package table

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"TickerDesk/internal/quote"
)

// NA is the literal marker shown for any unavailable field.
const NA = "N/A"

// Row is one formatted watchlist table row. Values are pre-formatted to
// two decimal places with an explicit sign on change fields, or NA.
type Row struct {
	Symbol        string `json:"symbol"`
	CurrentPrice  string `json:"current_price"`
	Change        string `json:"change"`
	PercentChange string `json:"percent_change"`
	PERatio       string `json:"pe_ratio"`
	PBRatio       string `json:"pb_ratio"`
}

// Builder assembles table rows via the quote adapter, one row per
// watchlist entry.
type Builder struct {
	quotes  *quote.Adapter
	workers int
}

// NewBuilder creates a Builder with the given fan-out width. A width of
// 1 means sequential fetching.
func NewBuilder(quotes *quote.Adapter, workers int) *Builder {
	if workers <= 0 {
		workers = 4
	}
	return &Builder{quotes: quotes, workers: workers}
}

// BuildRows returns one row per symbol, in watchlist order. Rows are
// fetched independently: one symbol's failure degrades only that row and
// never cancels its siblings.
func (b *Builder) BuildRows(ctx context.Context, symbols []string) []Row {
	rows := make([]Row, len(symbols))
	sem := make(chan struct{}, b.workers)
	var wg sync.WaitGroup

	for i, symbol := range symbols {
		wg.Add(1)
		go func(i int, symbol string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			rows[i] = b.buildRow(ctx, symbol)
		}(i, symbol)
	}
	wg.Wait()
	return rows
}

func (b *Builder) buildRow(ctx context.Context, symbol string) Row {
	snap := b.quotes.GetSnapshot(ctx, symbol)
	fund := b.quotes.GetFundamentals(ctx, symbol)
	return Row{
		Symbol:        symbol,
		CurrentPrice:  formatValue(snap.CurrentPrice),
		Change:        formatSigned(snap.Change),
		PercentChange: formatSignedPct(snap.PercentChange),
		PERatio:       formatValue(fund.PERatio),
		PBRatio:       formatValue(fund.PBRatio),
	}
}

// Unavailable reports whether every data field of the row is NA.
func (r Row) Unavailable() bool {
	return r.CurrentPrice == NA && r.Change == NA && r.PercentChange == NA &&
		r.PERatio == NA && r.PBRatio == NA
}

// Format renders rows as an aligned plain-text table for logs.
func Format(rows []Row) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%-8s %12s %10s %10s %8s %8s\n",
		"Symbol", "Price", "Change", "% Change", "P/E", "P/B"))
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("%-8s %12s %10s %10s %8s %8s\n",
			r.Symbol, r.CurrentPrice, r.Change, r.PercentChange, r.PERatio, r.PBRatio))
	}
	return b.String()
}

func formatValue(v *float64) string {
	if v == nil {
		return NA
	}
	return fmt.Sprintf("%.2f", *v)
}

func formatSigned(v *float64) string {
	if v == nil {
		return NA
	}
	return fmt.Sprintf("%+.2f", *v)
}

func formatSignedPct(v *float64) string {
	if v == nil {
		return NA
	}
	return fmt.Sprintf("%+.2f%%", *v)
}
