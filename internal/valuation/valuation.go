// Package valuation classifies a company from its P/E and P/B ratios.
package valuation

import "TickerDesk/internal/model"

// Classification thresholds. A ratio must be strictly below its bound,
// so pe == 15 is not Undervalued.
const (
	UndervaluedMaxPE = 15.0
	UndervaluedMaxPB = 1.5
	FairMaxPE        = 25.0
	FairMaxPB        = 3.0
)

// Classify maps the P/E and P/B ratios to a verdict. If either ratio is
// absent the result is Unavailable, not a guess.
func Classify(pe, pb *float64) model.Verdict {
	if pe == nil || pb == nil {
		return model.VerdictUnavailable
	}
	switch {
	case *pe < UndervaluedMaxPE && *pb < UndervaluedMaxPB:
		return model.Undervalued
	case *pe < FairMaxPE && *pb < FairMaxPB:
		return model.FairlyValued
	default:
		return model.Overvalued
	}
}

// TrendFromMAs classifies the 50/200 moving-average cross.
func TrendFromMAs(ma50, ma200 *float64) model.Trend {
	if ma50 == nil || ma200 == nil {
		return model.TrendUnavailable
	}
	if *ma50 > *ma200 {
		return model.TrendBullish
	}
	return model.TrendBearish
}
