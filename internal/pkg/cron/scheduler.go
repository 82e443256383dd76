// Package cron hosts the background jobs that run outside the request path.
// The only job today is the nightly absence materializer.
package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler wraps robfig/cron with context-aware, logged jobs.
type Scheduler struct {
	cron   *cron.Cron
	logger *slog.Logger
}

func NewScheduler(logger *slog.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		logger: logger,
	}
}

// AddJob registers fn under the given cron spec (standard 5-field syntax).
// Each run gets its own timeout-bounded context; failures are logged, never
// fatal to the process.
func (s *Scheduler) AddJob(name string, spec string, timeout time.Duration, fn func(ctx context.Context) error) error {
	_, err := s.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		start := time.Now()
		if err := fn(ctx); err != nil {
			s.logger.Error("cron job failed", "job", name, "error", err, "elapsed", time.Since(start))
			return
		}
		s.logger.Info("cron job finished", "job", name, "elapsed", time.Since(start))
	})
	return err
}

// Start launches the scheduler in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop waits for running jobs to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
