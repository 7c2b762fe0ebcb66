// Package pipeline orchestrates the four analysis stages: symbol
// resolution, data fetch, valuation narrative, and analysis narrative.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"strings"

	"TickerDesk/internal/chart"
	"TickerDesk/internal/llm"
	"TickerDesk/internal/model"
	"TickerDesk/internal/quote"
	"TickerDesk/internal/resolver"
	"TickerDesk/internal/technical"
	"TickerDesk/internal/valuation"
)

// Fixed fallback texts for stages that degrade without invoking the
// narrative service.
const (
	TextNoSymbol        = "No symbol available for valuation."
	TextNoValuationData = "Valuation data unavailable."
	TextNoAnalysisData  = "No data available for analysis."
	TextValuationFault  = "Valuation commentary unavailable."
	TextAnalysisFault   = "Analysis unavailable."
)

const valuationPrompt = "Stock %s fundamentals: P/E: %s, P/B: %s, ROE: %s. " +
	"Rule-based classification: %s. Provide a short valuation commentary."

const analysisPrompt = "Analyze the stock %s based on its last 1 year price trend and fundamentals. " +
	"The current stock price is %.2f. The 50/200-day moving average trend is %s. " +
	"Give a concise technical + fundamental outlook in 4-5 lines."

// Pipeline runs the analysis stages in strict order, accumulating a
// partial result. A fault in stage N never discards stages 1..N-1.
type Pipeline struct {
	Resolver  *resolver.Resolver
	Quotes    *quote.Adapter
	Completer llm.Completer
	ChartDir  string
}

// New creates a Pipeline.
func New(res *resolver.Resolver, quotes *quote.Adapter, completer llm.Completer, chartDir string) *Pipeline {
	return &Pipeline{Resolver: res, Quotes: quotes, Completer: completer, ChartDir: chartDir}
}

// Run executes all stages for one query and always returns a result.
func (p *Pipeline) Run(ctx context.Context, query string) *model.AnalysisResult {
	result := &model.AnalysisResult{Query: query, Valuation: model.VerdictUnavailable}

	// Stage 1: resolve. An empty query short-circuits the whole run with
	// no collaborator calls; that is not an error.
	if strings.TrimSpace(query) == "" {
		return result
	}
	symbol, err := p.Resolver.Resolve(ctx, query)
	if err != nil {
		log.Printf("[WARN] resolve %q: %v", query, err)
		result.ValuationText = TextNoSymbol
		result.AnalysisText = TextNoAnalysisData
		return result
	}
	result.Symbol = symbol
	if symbol == "" {
		result.ValuationText = TextNoSymbol
		result.AnalysisText = TextNoAnalysisData
		return result
	}

	// Stage 2: fetch 1-year history, latest close, and chart artifact.
	result.History = p.Quotes.GetHistory(ctx, symbol, quote.Period1Y)
	if len(result.History) > 0 {
		result.LatestPrice = model.Float(result.History[len(result.History)-1].Close)
		if path, err := chart.Render(symbol, result.History, p.ChartDir); err != nil {
			log.Printf("[WARN] chart %s: %v", symbol, err)
		} else {
			result.ChartPath = path
		}
	}

	// Stage 3: valuation verdict and narrative.
	p.valuationStage(ctx, result)

	// Stage 4: analysis narrative.
	p.analysisStage(ctx, result)

	return result
}

func (p *Pipeline) valuationStage(ctx context.Context, result *model.AnalysisResult) {
	fund := p.Quotes.GetFundamentals(ctx, result.Symbol)
	result.Valuation = valuation.Classify(fund.PERatio, fund.PBRatio)
	if result.Valuation == model.VerdictUnavailable {
		result.ValuationText = TextNoValuationData
		return
	}
	prompt := fmt.Sprintf(valuationPrompt, result.Symbol,
		formatRatio(fund.PERatio), formatRatio(fund.PBRatio), formatRatio(fund.ROE),
		result.Valuation)
	text, err := p.Completer.Complete(ctx, prompt)
	if err != nil {
		log.Printf("[WARN] valuation narrative %s: %v", result.Symbol, err)
		result.ValuationText = TextValuationFault
		return
	}
	result.ValuationText = text
}

func (p *Pipeline) analysisStage(ctx context.Context, result *model.AnalysisResult) {
	if len(result.History) == 0 || result.LatestPrice == nil {
		result.AnalysisText = TextNoAnalysisData
		return
	}
	tech := technical.Compute(result.Symbol, p.Quotes.GetHistory(ctx, result.Symbol, quote.Period6M))
	prompt := fmt.Sprintf(analysisPrompt, result.Symbol, *result.LatestPrice, tech.Trend)
	text, err := p.Completer.Complete(ctx, prompt)
	if err != nil {
		log.Printf("[WARN] analysis narrative %s: %v", result.Symbol, err)
		result.AnalysisText = TextAnalysisFault
		return
	}
	result.AnalysisText = text
}

func formatRatio(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.2f", *v)
}
