package service

import (
	"context"
	"time"

	"github.com/bnema/framer/internal/infrastructure/logger"
	"github.com/bnema/framer/internal/port"
)

// RunPurge removes expired job records every interval until ctx is done.
// Stores with native expiry do not implement port.ExpiredPurger and never
// reach here.
func RunPurge(ctx context.Context, purger port.ExpiredPurger, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			n, err := purger.PurgeExpired(ctx)
			if err != nil {
				logger.Warn.Printf("purge of expired jobs failed: %v", err)
				continue
			}
			if n > 0 {
				logger.Info.Printf("purged %d expired jobs", n)
			}
		}
	}
}
