package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/facetdev/facet/internal/controller"
)

const (
	defaultPollInterval = 15 * time.Second
	maxBackoff          = 2 * time.Minute
)

// StartPoller launches a background goroutine that refetches the bound
// profile at a fixed cadence. It returns immediately. Consecutive fetch
// failures stretch the cadence exponentially so an unreachable service is
// not hammered; any success snaps it back.
//
// Ticks are skipped while the user is editing or a submit is in flight, so
// a background sync never races the edit overlay. Staleness of late
// results is the controller's concern, not the poller's.
func StartPoller(ctx context.Context, ctrl *controller.Controller, interval time.Duration, logger *slog.Logger) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	go func() {
		for {
			snap := ctrl.Snapshot()
			wait := calculateBackoff(snap.ConsecutiveFailures, interval)

			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			}

			snap = ctrl.Snapshot()
			switch {
			case snap.BoundID == "":
				// Nothing bound yet; wait for the first Bind.
			case snap.Editing, snap.State == controller.StateSubmitting:
				logger.Debug("poll skipped", "reason", "edit in progress")
			default:
				ctrl.Refetch(ctx)
			}
		}
	}()
}

// calculateBackoff returns the wait before the next poll: the base interval
// doubled per consecutive failure, capped at maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	wait := base
	for i := 0; i < failures; i++ {
		wait *= 2
		if wait >= maxBackoff {
			return maxBackoff
		}
	}
	return wait
}
