package server

import (
	"context"
	"time"

	"log/slog"

	"github.com/hrygo/guppshupp/store"
)

const (
	retentionDays     = 30
	retentionInterval = 24 * time.Hour
)

// retentionRunner periodically deletes conversations, personality responses,
// and analytics older than the retention window. Memory snapshots are kept.
type retentionRunner struct {
	store    *store.Store
	days     int
	interval time.Duration
}

func newRetentionRunner(s *store.Store) *retentionRunner {
	return &retentionRunner{
		store:    s,
		days:     retentionDays,
		interval: retentionInterval,
	}
}

// Run blocks until ctx is done. One cleanup fires per interval tick.
func (r *retentionRunner) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.runOnce(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (r *retentionRunner) runOnce(ctx context.Context) {
	cutoff := time.Now().AddDate(0, 0, -r.days).Unix()
	if err := r.store.DeleteExpiredData(ctx, cutoff); err != nil {
		slog.Error("retention cleanup failed", "error", err)
		return
	}
	slog.Info("retention cleanup complete", "cutoff_ts", cutoff, "days", r.days)
}
