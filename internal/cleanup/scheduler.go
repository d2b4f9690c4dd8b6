package cleanup

import (
	"context"
	"time"

	"go.uber.org/zap"
)

type Scheduler struct {
	cleanup  *CleanupService
	interval time.Duration
	log      *zap.Logger
	stopCh   chan struct{}
}

func NewScheduler(cleanup *CleanupService, interval time.Duration, log *zap.Logger) *Scheduler {
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	return &Scheduler{
		cleanup:  cleanup,
		interval: interval,
		log:      log,
		stopCh:   make(chan struct{}),
	}
}

func (s *Scheduler) Start(ctx context.Context) {
	s.log.Info("starting reservation cleanup scheduler", zap.Duration("interval", s.interval))
	go s.run(ctx)
}

func (s *Scheduler) Stop() {
	s.log.Info("stopping reservation cleanup scheduler")
	close(s.stopCh)
}

func (s *Scheduler) run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	// Sweep once at start so restarts do not extend expired holds.
	if err := s.cleanup.ReleaseExpiredReservations(ctx); err != nil {
		s.log.Error("initial reservation cleanup failed", zap.Error(err))
	}

	for {
		select {
		case <-ticker.C:
			if err := s.cleanup.ReleaseExpiredReservations(ctx); err != nil {
				s.log.Error("reservation cleanup failed", zap.Error(err))
			}
		case <-s.stopCh:
			s.log.Info("reservation cleanup stopped")
			return
		case <-ctx.Done():
			s.log.Info("reservation cleanup cancelled")
			return
		}
	}
}
