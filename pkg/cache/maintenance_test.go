package cache

import (
	"context"
	"testing"
)

func TestMaintenanceScheduler_EmptyScheduleIsDisabled(t *testing.T) {
	s := NewMaintenanceScheduler(NewMemoryStore(), "")
	if err := s.Start(context.Background()); err != nil {
		t.Errorf("empty schedule should start as a no-op, got %v", err)
	}
	s.Stop()
}

func TestMaintenanceScheduler_InvalidSchedule(t *testing.T) {
	s := NewMaintenanceScheduler(NewMemoryStore(), "not a cron expression")
	if err := s.Start(context.Background()); err == nil {
		t.Error("expected error for invalid cron schedule")
	}
}

func TestMaintenanceScheduler_StartAndStop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := NewMaintenanceScheduler(NewMemoryStore(), "0 4 * * *")
	if err := s.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	s.Stop()
	// A second Stop must be safe.
	s.Stop()
}
