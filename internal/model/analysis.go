package model

// Verdict is the three-way valuation classification, plus an explicit
// marker for when the input ratios are missing.
type Verdict string

const (
	Undervalued        Verdict = "Undervalued"
	FairlyValued       Verdict = "Fairly valued"
	Overvalued         Verdict = "Overvalued"
	VerdictUnavailable Verdict = "Unavailable"
)

// Trend classifies the moving-average cross of a price history.
type Trend string

const (
	TrendBullish     Trend = "Bullish"
	TrendBearish     Trend = "Bearish"
	TrendUnavailable Trend = "Unavailable"
)

// Technicals holds moving-average derived metrics for one symbol.
type Technicals struct {
	Symbol    string
	LastClose *float64
	MA50      *float64
	MA200     *float64
	Trend     Trend
}

// AnalysisResult accumulates the output of the four pipeline stages for
// a single query. It is created fresh per request and not persisted.
type AnalysisResult struct {
	Query         string       `json:"query"`
	Symbol        string       `json:"symbol"`
	History       []PricePoint `json:"-"`
	LatestPrice   *float64     `json:"latest_price"`
	Valuation     Verdict      `json:"valuation"`
	ValuationText string       `json:"valuation_text"`
	AnalysisText  string       `json:"analysis_text"`
	ChartPath     string       `json:"chart_path,omitempty"`
}
