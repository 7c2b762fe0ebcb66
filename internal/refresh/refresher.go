// Package refresh periodically rebuilds the live watchlist table. The
// table builder has no timers of its own; each tick is simply a fresh
// BuildRows call.
package refresh

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"TickerDesk/internal/recorder"
	"TickerDesk/internal/table"
	"TickerDesk/internal/watchlist"
)

// Refresher drives cron-scheduled watchlist refreshes.
type Refresher struct {
	Cron     *cron.Cron
	Store    *watchlist.Store
	Builder  *table.Builder
	Recorder recorder.Recorder
	Ctx      context.Context
}

// NewRefresher creates a Refresher.
func NewRefresher(ctx context.Context, store *watchlist.Store, builder *table.Builder, rec recorder.Recorder) *Refresher {
	return &Refresher{
		Cron:     cron.New(cron.WithSeconds()),
		Store:    store,
		Builder:  builder,
		Recorder: rec,
		Ctx:      ctx,
	}
}

// Register schedules the refresh task with the given cron expression.
func (r *Refresher) Register(spec string) error {
	if _, err := r.Cron.AddFunc(spec, r.refreshTask); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (r *Refresher) Start() {
	r.Cron.Start()
	log.Println("[INFO] refresh scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (r *Refresher) Stop() {
	r.Cron.Stop()
	log.Println("[INFO] refresh scheduler stopped")
}

// RunNow executes a refresh immediately (for manual trigger).
func (r *Refresher) RunNow() {
	r.refreshTask()
}

func (r *Refresher) refreshTask() {
	symbols := r.Store.Symbols()
	if len(symbols) == 0 {
		log.Println("[INFO] refresh: watchlist empty, nothing to do")
		return
	}

	rows := r.Builder.BuildRows(r.Ctx, symbols)

	unavailable := 0
	for _, row := range rows {
		if row.Unavailable() {
			unavailable++
		}
	}
	log.Printf("[INFO] watchlist refresh: %d rows, %d unavailable\n%s",
		len(rows), unavailable, table.Format(rows))

	if err := r.Recorder.RecordRefresh(&recorder.RefreshEvent{
		Rows:        len(rows),
		Unavailable: unavailable,
	}); err != nil {
		log.Printf("[ERROR] record refresh: %v", err)
	}
}
