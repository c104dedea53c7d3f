package cache

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"
)

// MaintenanceScheduler runs Store.Maintain on a cron schedule. The cache is
// accretive (nothing is ever deleted), so maintenance is limited to file
// compaction and planner statistics.
type MaintenanceScheduler struct {
	store    Store
	schedule string
	cron     *cron.Cron
	mu       sync.Mutex
	logger   *slog.Logger
	running  bool
}

// NewMaintenanceScheduler creates a scheduler for the given store. The
// schedule uses standard cron syntax, e.g. "0 4 * * *" for daily at 4 AM. An
// empty schedule disables the scheduler.
func NewMaintenanceScheduler(store Store, schedule string) *MaintenanceScheduler {
	return &MaintenanceScheduler{
		store:    store,
		schedule: schedule,
		cron:     cron.New(),
		logger:   slog.Default().With("component", "cache.maintenance"),
	}
}

// Start begins scheduled maintenance. It returns immediately; jobs run on the
// cron goroutine until the context is cancelled or Stop is called.
func (s *MaintenanceScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.schedule == "" {
		s.logger.Info("maintenance schedule not configured, skipping scheduler")
		return nil
	}

	if _, err := cron.ParseStandard(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", s.schedule, err)
	}

	_, err := s.cron.AddFunc(s.schedule, func() {
		s.runMaintenance(ctx)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule maintenance: %w", err)
	}

	s.cron.Start()
	s.running = true

	s.logger.Info("maintenance scheduler started", "schedule", s.schedule)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// runMaintenance executes one maintenance cycle.
func (s *MaintenanceScheduler) runMaintenance(ctx context.Context) {
	s.logger.Info("starting scheduled cache maintenance")

	if err := s.store.Maintain(ctx); err != nil {
		s.logger.Error("scheduled maintenance failed", "error", err)
		return
	}

	s.logger.Debug("scheduled maintenance completed")
}

// Stop stops the scheduler and waits for any running job to complete.
func (s *MaintenanceScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron != nil && s.running {
		ctx := s.cron.Stop()
		<-ctx.Done()
		s.running = false
		s.logger.Info("maintenance scheduler stopped")
	}
}
