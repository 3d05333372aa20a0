package bridge

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Sweeper periodically discards expired commands from the queue. The queue
// already drops stale commands lazily on enqueue and drain, but a shell
// that stopped polling would otherwise hold abandoned commands until the
// next write.
type Sweeper struct {
	log      *zap.Logger
	queue    *Queue
	interval time.Duration
}

func NewSweeper(log *zap.Logger, queue *Queue, interval time.Duration) *Sweeper {
	return &Sweeper{
		log:      log,
		queue:    queue,
		interval: interval,
	}
}

// Start runs the sweeper in a goroutine until the context is cancelled.
func (s *Sweeper) Start(ctx context.Context) {
	s.log.Info("Starting injection queue sweeper", zap.Duration("interval", s.interval))
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if dropped := s.queue.Sweep(); dropped > 0 {
					s.log.Debug("Swept expired injection commands", zap.Int("count", dropped))
				}
			}
		}
	}()
}
