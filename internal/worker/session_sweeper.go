package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/admin-console/internal/observability"
)

// Sweeper drops idle console clients.
type Sweeper interface {
	Sweep(maxIdle time.Duration) int
	Len() int
}

// RunSessionSweeper sweeps every interval until ctx is cancelled. A
// non-positive interval disables it.
func RunSessionSweeper(ctx context.Context, sweeper Sweeper, interval, maxIdle time.Duration, metrics *observability.Metrics, logger *zap.Logger) {
	if interval <= 0 || maxIdle <= 0 {
		logger.Info("session sweeper disabled")
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			dropped := sweeper.Sweep(maxIdle)
			metrics.RecordSwept(dropped)
			if dropped > 0 {
				logger.Info("idle console clients swept", zap.Int("dropped", dropped), zap.Int("remaining", sweeper.Len()))
			}
		}
	}
}
