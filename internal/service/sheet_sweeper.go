package service

import (
	"context"
	"log"
	"time"

	"asistencia/internal/port"
)

// SheetSweeperConfig holds settings for the idle sheet sweeper.
type SheetSweeperConfig struct {
	Interval    time.Duration
	IdleTimeout time.Duration
}

// SheetSweeper periodically drops sheets whose session has gone idle.
type SheetSweeper struct {
	store port.SheetStore
	cfg   SheetSweeperConfig
	now   func() time.Time
}

// NewSheetSweeper creates a new SheetSweeper.
func NewSheetSweeper(store port.SheetStore, cfg SheetSweeperConfig) *SheetSweeper {
	return &SheetSweeper{store: store, cfg: cfg, now: time.Now}
}

// Start runs the sweep loop until ctx is canceled.
func (w *SheetSweeper) Start(ctx context.Context) {
	ticker := time.NewTicker(w.cfg.Interval)
	defer ticker.Stop()

	log.Printf("sheetSweeper: started (interval=%s, idle=%s)", w.cfg.Interval, w.cfg.IdleTimeout)

	for {
		select {
		case <-ctx.Done():
			log.Printf("sheetSweeper: shutdown complete")
			return
		case <-ticker.C:
			w.Sweep(ctx)
		}
	}
}

// Sweep removes idle sheets once and returns how many were dropped.
func (w *SheetSweeper) Sweep(ctx context.Context) int {
	removed, err := w.store.PurgeIdle(ctx, w.now().Add(-w.cfg.IdleTimeout))
	if err != nil {
		log.Printf("sheetSweeper: PurgeIdle error: %v", err)
		return 0
	}
	if removed > 0 {
		log.Printf("sheetSweeper: removed %d idle sheets", removed)
	}
	return removed
}
