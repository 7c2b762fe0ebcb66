package model

import (
	"strings"
	"time"
)

// PricePoint is a single (date, close) observation in a price history.
type PricePoint struct {
	Date  time.Time
	Close float64
}

// QuoteSnapshot is a point-in-time price reading for one symbol.
// Optional fields are nil when the provider could not supply them;
// zero is a valid value and is never used as an absence marker.
type QuoteSnapshot struct {
	Symbol        string
	CurrentPrice  *float64
	PreviousClose *float64
	Change        *float64
	PercentChange *float64
}

// Fundamentals holds valuation metrics for a company. Every field is
// optional; absence is a first-class value, not an error.
type Fundamentals struct {
	Symbol        string
	MarketCap     *float64
	PERatio       *float64
	PBRatio       *float64
	DebtToEquity  *float64
	ROE           *float64
	ROA           *float64
	RevenueGrowth *float64
}

// SymbolMatch is one candidate from an ambiguous symbol search. It is
// held only until the user disambiguates.
type SymbolMatch struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Exchange string `json:"exchange"`
}

// NormalizeSymbol trims and uppercases a ticker symbol. Symbols are
// normalized before any storage or lookup.
func NormalizeSymbol(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// Float returns a pointer to v, for building optional fields.
func Float(v float64) *float64 { return &v }
