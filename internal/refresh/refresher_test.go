package refresh

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TickerDesk/internal/model"
	"TickerDesk/internal/quote"
	"TickerDesk/internal/recorder"
	"TickerDesk/internal/table"
	"TickerDesk/internal/watchlist"
)

type captureRecorder struct {
	refreshes []*recorder.RefreshEvent
}

func (c *captureRecorder) RecordAnalysis(evt *recorder.AnalysisEvent) error { return nil }
func (c *captureRecorder) RecordRefresh(evt *recorder.RefreshEvent) error {
	c.refreshes = append(c.refreshes, evt)
	return nil
}
func (c *captureRecorder) Close() error { return nil }

func newStore(t *testing.T, symbols ...string) *watchlist.Store {
	t.Helper()
	store := watchlist.NewStore(filepath.Join(t.TempDir(), "watchlist.json"))
	for _, s := range symbols {
		_, err := store.Add(s)
		require.NoError(t, err)
	}
	return store
}

func TestRegister_InvalidCron(t *testing.T) {
	ref := NewRefresher(context.Background(), newStore(t), nil, &captureRecorder{})
	assert.Error(t, ref.Register("not a cron spec"))
	assert.NoError(t, ref.Register("0 */5 * * * *"))
}

func TestRunNow_RecordsRefresh(t *testing.T) {
	src := &quote.MockSource{
		Snap: &model.QuoteSnapshot{
			Symbol:        "AAPL",
			CurrentPrice:  model.Float(190),
			PreviousClose: model.Float(188),
		},
		FailSymbols: map[string]error{"MSFT": assert.AnError},
	}
	builder := table.NewBuilder(quote.NewAdapter(src), 2)
	rec := &captureRecorder{}

	ref := NewRefresher(context.Background(), newStore(t, "AAPL", "MSFT"), builder, rec)
	ref.RunNow()

	require.Len(t, rec.refreshes, 1)
	assert.Equal(t, 2, rec.refreshes[0].Rows)
	assert.Equal(t, 1, rec.refreshes[0].Unavailable)
}

func TestRunNow_EmptyWatchlist(t *testing.T) {
	rec := &captureRecorder{}
	ref := NewRefresher(context.Background(), newStore(t), nil, rec)
	ref.RunNow()
	assert.Empty(t, rec.refreshes)
}
