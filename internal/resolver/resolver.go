// Package resolver maps free-text company or ticker queries to canonical
// ticker symbols.
package resolver

import (
	"context"
	"fmt"
	"strings"

	"TickerDesk/internal/llm"
	"TickerDesk/internal/model"
	"TickerDesk/internal/quote"
)

const resolvePrompt = "Extract the stock ticker symbol (Yahoo Finance format) for this query: '%s'. Reply only with the ticker symbol."

// Resolver resolves queries either single-shot via the text-completion
// service or interactively via the provider search endpoint.
type Resolver struct {
	completer llm.Completer
	src       quote.Source
}

// New creates a Resolver.
func New(completer llm.Completer, src quote.Source) *Resolver {
	return &Resolver{completer: completer, src: src}
}

// Resolve extracts a ticker symbol from a free-text query. The reply is
// trimmed and uppercased but not validated against an exchange listing;
// an invalid symbol fails soft downstream with empty data.
func (r *Resolver) Resolve(ctx context.Context, query string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", nil
	}
	reply, err := r.completer.Complete(ctx, fmt.Sprintf(resolvePrompt, query))
	if err != nil {
		return "", fmt.Errorf("resolve symbol: %w", err)
	}
	symbol := model.NormalizeSymbol(reply)
	if fields := strings.Fields(symbol); len(fields) > 0 {
		symbol = fields[0]
	}
	return symbol, nil
}

// Search returns zero or more symbol matches for a query. Zero matches is
// a success, distinct from a provider failure. When more than one match
// is returned the caller must let the user pick exactly one; no best-match
// heuristic is applied here.
func (r *Resolver) Search(ctx context.Context, query string) ([]model.SymbolMatch, error) {
	matches, err := r.src.Search(ctx, strings.TrimSpace(query))
	if err != nil {
		return nil, fmt.Errorf("search symbol: %w", err)
	}
	return matches, nil
}
