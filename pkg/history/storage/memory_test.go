package storage

import (
	"context"
	"testing"
	"time"

	"rustrial-os/confgen/pkg/history"
)

// seedRecords stores three runs two hours, one hour, and zero hours old.
func seedRecords(t *testing.T, s history.Storage, now time.Time) {
	t.Helper()

	ctx := context.Background()
	records := []*history.Record{
		{
			ID:         "run-old",
			RunTime:    now.Add(-2 * time.Hour),
			ConfigPath: "config.toml",
			Target:     "rust",
			Status:     history.StatusSuccess,
		},
		{
			ID:         "run-mid",
			RunTime:    now.Add(-1 * time.Hour),
			ConfigPath: "config.toml",
			Target:     "c-header",
			Status:     history.StatusFailure,
			Error:      "validation failed with 2 errors",
		},
		{
			ID:         "run-new",
			RunTime:    now,
			ConfigPath: "other.yaml",
			Target:     "rust",
			Status:     history.StatusSuccess,
		},
	}

	for _, record := range records {
		if err := s.Store(ctx, record); err != nil {
			t.Fatalf("Store() failed: %v", err)
		}
	}
}

// TestMemoryStorage_StoreAndQuery tests storing and querying records.
func TestMemoryStorage_StoreAndQuery(t *testing.T) {
	storage := NewMemoryStorage()
	ctx := context.Background()

	record := &history.Record{
		ID:          "run-1",
		RunTime:     time.Now(),
		ConfigPath:  "config.toml",
		ConfigHash:  history.HashString("[memory]\n"),
		OutputPath:  "src/config.rs",
		Target:      "rust",
		Status:      history.StatusSuccess,
		Fields:      10,
		Duration:    12 * time.Millisecond,
		ToolVersion: "1.0.0",
	}

	if err := storage.Store(ctx, record); err != nil {
		t.Fatalf("Store() failed: %v", err)
	}

	results, err := storage.Query(ctx, &history.Query{})
	if err != nil {
		t.Fatalf("Query() failed: %v", err)
	}

	if len(results) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(results))
	}
	if results[0].ID != "run-1" {
		t.Errorf("Expected ID 'run-1', got '%s'", results[0].ID)
	}
	if results[0].Fields != 10 {
		t.Errorf("Expected 10 fields, got %d", results[0].Fields)
	}
}

// TestMemoryStorage_QueryNewestFirst tests that results come back in
// reverse chronological order.
func TestMemoryStorage_QueryNewestFirst(t *testing.T) {
	storage := NewMemoryStorage()
	now := time.Now()
	seedRecords(t, storage, now)

	results, err := storage.Query(context.Background(), &history.Query{})
	if err != nil {
		t.Fatalf("Query() failed: %v", err)
	}

	if len(results) != 3 {
		t.Fatalf("Expected 3 records, got %d", len(results))
	}

	wantOrder := []string{"run-new", "run-mid", "run-old"}
	for i, want := range wantOrder {
		if results[i].ID != want {
			t.Errorf("results[%d].ID = %q, want %q", i, results[i].ID, want)
		}
	}
}

// TestMemoryStorage_QueryWithTimeRange tests time range filtering.
func TestMemoryStorage_QueryWithTimeRange(t *testing.T) {
	storage := NewMemoryStorage()
	now := time.Now()
	seedRecords(t, storage, now)

	// Runs from the last 90 minutes
	startTime := now.Add(-90 * time.Minute)
	results, err := storage.Query(context.Background(), &history.Query{
		StartTime: &startTime,
	})
	if err != nil {
		t.Fatalf("Query() failed: %v", err)
	}

	if len(results) != 2 {
		t.Errorf("Expected 2 records, got %d", len(results))
	}
	for _, r := range results {
		if r.ID == "run-old" {
			t.Error("Old record should not be in results")
		}
	}
}

// TestMemoryStorage_QueryWithFilters tests status and target filtering.
func TestMemoryStorage_QueryWithFilters(t *testing.T) {
	storage := NewMemoryStorage()
	now := time.Now()
	seedRecords(t, storage, now)
	ctx := context.Background()

	results, err := storage.Query(ctx, &history.Query{Status: history.StatusFailure})
	if err != nil {
		t.Fatalf("Query() failed: %v", err)
	}
	if len(results) != 1 || results[0].ID != "run-mid" {
		t.Errorf("Status filter returned %d records, want the single failed run", len(results))
	}

	results, err = storage.Query(ctx, &history.Query{Target: "rust"})
	if err != nil {
		t.Fatalf("Query() failed: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("Target filter returned %d records, want 2", len(results))
	}

	results, err = storage.Query(ctx, &history.Query{ConfigPath: "other.yaml"})
	if err != nil {
		t.Fatalf("Query() failed: %v", err)
	}
	if len(results) != 1 || results[0].ID != "run-new" {
		t.Errorf("ConfigPath filter returned %d records, want the single other.yaml run", len(results))
	}
}

// TestMemoryStorage_QueryPagination tests limit and offset handling.
func TestMemoryStorage_QueryPagination(t *testing.T) {
	storage := NewMemoryStorage()
	now := time.Now()
	seedRecords(t, storage, now)
	ctx := context.Background()

	results, err := storage.Query(ctx, &history.Query{Limit: 2})
	if err != nil {
		t.Fatalf("Query() failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Limit 2 returned %d records", len(results))
	}
	if results[0].ID != "run-new" {
		t.Errorf("First page starts at %q, want 'run-new'", results[0].ID)
	}

	results, err = storage.Query(ctx, &history.Query{Limit: 2, Offset: 2})
	if err != nil {
		t.Fatalf("Query() failed: %v", err)
	}
	if len(results) != 1 || results[0].ID != "run-old" {
		t.Errorf("Second page returned %d records, want just 'run-old'", len(results))
	}

	results, err = storage.Query(ctx, &history.Query{Offset: 10})
	if err != nil {
		t.Fatalf("Query() failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("Offset past the end returned %d records, want 0", len(results))
	}
}

// TestMemoryStorage_Count tests counting with and without filters.
func TestMemoryStorage_Count(t *testing.T) {
	storage := NewMemoryStorage()
	now := time.Now()
	seedRecords(t, storage, now)
	ctx := context.Background()

	count, err := storage.Count(ctx, &history.Query{})
	if err != nil {
		t.Fatalf("Count() failed: %v", err)
	}
	if count != 3 {
		t.Errorf("Count() = %d, want 3", count)
	}

	count, err = storage.Count(ctx, &history.Query{Status: history.StatusSuccess})
	if err != nil {
		t.Fatalf("Count() failed: %v", err)
	}
	if count != 2 {
		t.Errorf("Count(success) = %d, want 2", count)
	}
}

// TestMemoryStorage_Delete tests filtered deletion.
func TestMemoryStorage_Delete(t *testing.T) {
	storage := NewMemoryStorage()
	now := time.Now()
	seedRecords(t, storage, now)
	ctx := context.Background()

	cutoff := now.Add(-90 * time.Minute)
	deleted, err := storage.Delete(ctx, &history.Query{EndTime: &cutoff})
	if err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if deleted != 1 {
		t.Errorf("Delete() removed %d records, want 1", deleted)
	}

	if storage.Size() != 2 {
		t.Errorf("Size() = %d after delete, want 2", storage.Size())
	}
	if storage.GetByID("run-old") != nil {
		t.Error("run-old still present after delete")
	}
}

// TestMemoryStorage_CopiesRecords tests that stored records are isolated
// from caller mutation.
func TestMemoryStorage_CopiesRecords(t *testing.T) {
	storage := NewMemoryStorage()
	ctx := context.Background()

	record := &history.Record{
		ID:      "run-1",
		RunTime: time.Now(),
		Target:  "rust",
		Status:  history.StatusSuccess,
	}
	if err := storage.Store(ctx, record); err != nil {
		t.Fatalf("Store() failed: %v", err)
	}

	// Mutating the original must not affect the stored copy
	record.Status = history.StatusFailure

	stored := storage.GetByID("run-1")
	if stored == nil {
		t.Fatal("GetByID() returned nil")
	}
	if stored.Status != history.StatusSuccess {
		t.Errorf("Stored status = %q, want %q", stored.Status, history.StatusSuccess)
	}

	// Mutating a query result must not affect the stored copy either
	results, err := storage.Query(ctx, &history.Query{})
	if err != nil {
		t.Fatalf("Query() failed: %v", err)
	}
	results[0].Target = "c-header"

	if got := storage.GetByID("run-1").Target; got != "rust" {
		t.Errorf("Stored target = %q after result mutation, want 'rust'", got)
	}
}
