package engine

import (
	"context"
	"time"

	"emvibook/internal/logger"
)

// RunSweeper periodically sweeps the ledger until ctx is cancelled.
// Intended to run in its own goroutine next to the HTTP server.
func (s *Service) RunSweeper(ctx context.Context, interval time.Duration) {
	logger.Infof("Sweeper started (interval %s)", interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Sweeper stopped")
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}
