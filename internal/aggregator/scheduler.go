package aggregator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/openmrkt/nftpulse/internal/logger"
)

// Scheduler fires the aggregation job on a fixed interval using a cron
// runner. Ticks that arrive while a run is still in flight are skipped: the
// Aggregator's RUNNING guard turns them into a logged no-op instead of a
// second concurrent run.
type Scheduler struct {
	cron     *cron.Cron
	agg      *Aggregator
	interval time.Duration
}

// NewScheduler creates a scheduler that triggers agg every interval
// (default 10 minutes when interval <= 0).
func NewScheduler(agg *Aggregator, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &Scheduler{
		cron:     cron.New(),
		agg:      agg,
		interval: interval,
	}
}

// Start registers the job and starts the cron runner in its own goroutine.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(fmt.Sprintf("@every %s", s.interval), func() {
		s.runOnce(ctx)
	})
	if err != nil {
		return fmt.Errorf("schedule stats job: %w", err)
	}

	s.cron.Start()
	logger.L().Info().Dur("interval", s.interval).Msg("stats scheduler started")
	return nil
}

// Stop halts the cron runner and waits for an in-flight job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	logger.L().Info().Msg("stats scheduler stopped")
}

func (s *Scheduler) runOnce(ctx context.Context) {
	if err := s.agg.UpdateAllStats(ctx); err != nil {
		if errors.Is(err, ErrRunInProgress) {
			logger.L().Warn().Msg("stats tick skipped, previous run still in progress")
			return
		}
		logger.L().Error().Err(err).Msg("stats run failed")
	}
}
