package scheduler

import (
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"
)

// Store is the slice of the session registry the pruning job needs.
type Store interface {
	Prune(maxAge time.Duration) int
}

// Scheduler periodically prunes settled plan runs from the session store.
type Scheduler struct {
	scheduler *gocron.Scheduler
	store     Store
	interval  time.Duration
	retention time.Duration
	logger    *slog.Logger
}

// New creates a pruning scheduler.
func New(store Store, interval, retention time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		store:     store,
		interval:  interval,
		retention: retention,
		logger:    logger,
	}
}

// Start schedules the periodic prune job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if s.retention <= 0 {
		s.logger.Info("session pruning disabled; nothing to schedule")
		return nil
	}

	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 30
	}

	_, err := s.scheduler.Every(minutes).Minutes().Do(func() {
		if removed := s.store.Prune(s.retention); removed > 0 {
			s.logger.Info("pruned settled plan runs", "count", removed)
		}
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
