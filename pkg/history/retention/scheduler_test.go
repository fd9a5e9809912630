package retention

import (
	"context"
	"testing"

	"rustrial-os/confgen/pkg/history/storage"
)

// TestScheduler_StartStop tests the scheduler lifecycle.
func TestScheduler_StartStop(t *testing.T) {
	pruner := NewPruner(storage.NewMemoryStorage(), &Config{
		RetentionDays: 30,
		PruneSchedule: "@daily",
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := pruner.Start(ctx); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	if !pruner.scheduler.IsRunning() {
		t.Error("IsRunning() = false after Start()")
	}
	if pruner.NextPruning() == nil {
		t.Error("NextPruning() = nil while scheduler is running")
	}

	pruner.Stop()
	if pruner.scheduler.IsRunning() {
		t.Error("IsRunning() = true after Stop()")
	}
}

// TestScheduler_EmptySchedule tests that no schedule means no scheduler.
func TestScheduler_EmptySchedule(t *testing.T) {
	pruner := NewPruner(storage.NewMemoryStorage(), &Config{
		RetentionDays: 30,
		PruneSchedule: "",
	})

	if err := pruner.Start(context.Background()); err != nil {
		t.Fatalf("Start() with empty schedule failed: %v", err)
	}
	if pruner.scheduler.IsRunning() {
		t.Error("IsRunning() = true with empty schedule")
	}
}

// TestScheduler_InvalidSchedule tests cron expression validation.
func TestScheduler_InvalidSchedule(t *testing.T) {
	pruner := NewPruner(storage.NewMemoryStorage(), &Config{
		PruneSchedule: "not a cron expression",
	})

	if err := pruner.Start(context.Background()); err == nil {
		t.Fatal("Start() with invalid schedule succeeded, want error")
	}
}

// TestScheduler_StopWithoutStart tests that Stop is safe to call anytime.
func TestScheduler_StopWithoutStart(t *testing.T) {
	pruner := NewPruner(storage.NewMemoryStorage(), nil)

	pruner.Stop()
	pruner.Stop()
}
