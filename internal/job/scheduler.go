// Package job schedules recurring sitemap generation runs.
package job

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jonesrussell/gositemap/internal/logger"
)

// RunFunc is one generation pass.
type RunFunc func(ctx context.Context) error

// Status is a point-in-time view of the scheduler.
type Status struct {
	Scheduled bool      `json:"scheduled"`
	Running   bool      `json:"running"`
	LastRun   time.Time `json:"last_run,omitzero"`
	LastError string    `json:"last_error,omitempty"`
}

// Scheduler triggers generation runs on a cron schedule. Overlapping
// runs are skipped rather than queued: a run that is still writing
// files must not race a second writer over the same output directory.
type Scheduler struct {
	cron *cron.Cron
	log  logger.Interface
	run  RunFunc

	mu        sync.Mutex
	scheduled bool
	running   bool
	lastRun   time.Time
	lastErr   error
}

// NewScheduler creates a scheduler around one run function.
func NewScheduler(log logger.Interface, run RunFunc) *Scheduler {
	if log == nil {
		log = logger.NewNoOp()
	}

	return &Scheduler{
		cron: cron.New(),
		log:  log.WithComponent("scheduler"),
		run:  run,
	}
}

// Start registers the cron expression and starts the schedule.
func (s *Scheduler) Start(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.trigger); err != nil {
		return fmt.Errorf("invalid cron expression %q: %w", spec, err)
	}

	s.cron.Start()

	s.mu.Lock()
	s.scheduled = true
	s.mu.Unlock()

	s.log.Info("Generation schedule started", "cron", spec)

	return nil
}

// Stop stops the schedule and waits for an in-flight run to finish, up
// to the context deadline.
func (s *Scheduler) Stop(ctx context.Context) error {
	stopCtx := s.cron.Stop()

	s.mu.Lock()
	s.scheduled = false
	s.mu.Unlock()

	select {
	case <-stopCtx.Done():
		s.log.Info("Generation schedule stopped")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("stop scheduler: %w", ctx.Err())
	}
}

// RunNow executes one generation pass immediately, outside the schedule.
// It returns an error when a run is already in flight.
func (s *Scheduler) RunNow(ctx context.Context) error {
	if !s.tryBegin() {
		return fmt.Errorf("generation run already in progress")
	}

	err := s.run(ctx)
	s.finish(err)

	return err
}

// Status returns the current scheduler state.
func (s *Scheduler) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := Status{
		Scheduled: s.scheduled,
		Running:   s.running,
		LastRun:   s.lastRun,
	}
	if s.lastErr != nil {
		status.LastError = s.lastErr.Error()
	}

	return status
}

// trigger is the cron callback. A run already in flight makes this a
// logged no-op.
func (s *Scheduler) trigger() {
	if !s.tryBegin() {
		s.log.Warn("Skipping scheduled run, previous run still in progress")
		return
	}

	err := s.run(context.Background())
	s.finish(err)

	if err != nil {
		s.log.Error("Scheduled generation run failed", "error", err)
	}
}

// tryBegin marks a run as started unless one is already in flight.
func (s *Scheduler) tryBegin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return false
	}
	s.running = true
	return true
}

// finish records the run outcome.
func (s *Scheduler) finish(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.running = false
	s.lastRun = time.Now()
	s.lastErr = err
}
