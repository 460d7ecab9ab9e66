package app

import (
	"context"
	"time"
)

// StartSweeper periodically deletes expired hold rows. The sweep is pure
// hygiene: every read and consumption path already ignores expired holds, so
// seats become bookable the instant their hold expires regardless of when the
// sweeper next runs.
func (app *Application) StartSweeper(ctx context.Context) {
	interval := app.config.SweepInterval
	if interval <= 0 {
		interval = time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	app.logger.Info("hold sweeper started", "interval", interval)

	for {
		select {
		case <-ctx.Done():
			app.logger.Info("hold sweeper stopped")
			return
		case <-ticker.C:
			app.SweepExpiredHolds(ctx)
		}
	}
}

func (app *Application) SweepExpiredHolds(ctx context.Context) {
	sweepCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	removed, err := app.holdRepo.DeleteExpired(sweepCtx)
	if err != nil {
		app.logger.Error("failed to sweep expired holds", "error", err)
		return
	}

	if removed > 0 {
		app.logger.Info("expired holds swept", "removed", removed)
	}
}
