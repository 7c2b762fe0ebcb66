package recorder

import (
	"path/filepath"
	"testing"

	"TickerDesk/internal/model"
)

func TestSQLiteRecorder_RoundTrip(t *testing.T) {
	rec, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer rec.Close()

	err = rec.RecordAnalysis(&AnalysisEvent{
		Query:       "apple stock",
		Symbol:      "AAPL",
		LatestPrice: model.Float(190.5),
		Valuation:   "Overvalued",
		ChartPath:   "data/charts/AAPL_chart.png",
	})
	if err != nil {
		t.Fatalf("record analysis: %v", err)
	}

	// A missing price records as NULL, not zero.
	if err := rec.RecordAnalysis(&AnalysisEvent{Query: "unknown", Symbol: ""}); err != nil {
		t.Fatalf("record analysis without price: %v", err)
	}

	if err := rec.RecordRefresh(&RefreshEvent{Rows: 3, Unavailable: 1}); err != nil {
		t.Fatalf("record refresh: %v", err)
	}

	var count int
	if err := rec.db.QueryRow("SELECT COUNT(*) FROM analysis_history").Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Errorf("analysis rows = %d, want 2", count)
	}

	var price *float64
	err = rec.db.QueryRow("SELECT latest_price FROM analysis_history WHERE query = 'unknown'").Scan(&price)
	if err != nil {
		t.Fatal(err)
	}
	if price != nil {
		t.Errorf("expected NULL latest_price, got %v", *price)
	}

	var rows, unavailable int
	err = rec.db.QueryRow("SELECT row_count, unavailable_count FROM refresh_history").Scan(&rows, &unavailable)
	if err != nil {
		t.Fatal(err)
	}
	if rows != 3 || unavailable != 1 {
		t.Errorf("refresh row = (%d, %d), want (3, 1)", rows, unavailable)
	}
}

func TestSQLiteRecorder_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	rec, err := NewSQLiteRecorder(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := rec.RecordRefresh(&RefreshEvent{Rows: 1}); err != nil {
		t.Fatal(err)
	}
	if err := rec.Close(); err != nil {
		t.Fatal(err)
	}

	rec2, err := NewSQLiteRecorder(path)
	if err != nil {
		t.Fatal(err)
	}
	defer rec2.Close()

	var count int
	if err := rec2.db.QueryRow("SELECT COUNT(*) FROM refresh_history").Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("refresh rows after reopen = %d, want 1", count)
	}
}
