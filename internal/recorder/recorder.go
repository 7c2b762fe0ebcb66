package recorder

// AnalysisEvent holds the outcome of one analysis pipeline run.
type AnalysisEvent struct {
	Query       string
	Symbol      string
	LatestPrice *float64
	Valuation   string
	ChartPath   string
}

// RefreshEvent summarises one live-table refresh.
type RefreshEvent struct {
	Rows        int
	Unavailable int
}

// Recorder persists historical events for later inspection.
type Recorder interface {
	RecordAnalysis(evt *AnalysisEvent) error
	RecordRefresh(evt *RefreshEvent) error
	Close() error
}
