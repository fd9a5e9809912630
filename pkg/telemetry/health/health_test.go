package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestChecker_CheckLiveness(t *testing.T) {
	checker := New(0)

	status := checker.CheckLiveness(context.Background())
	if status.Status != "ok" {
		t.Errorf("liveness status = %q, want ok", status.Status)
	}
	if status.Timestamp.IsZero() {
		t.Error("liveness timestamp not set")
	}
}

func TestChecker_CheckReadinessNoChecks(t *testing.T) {
	checker := New(0)

	status := checker.CheckReadiness(context.Background())
	if status.Status != "ready" {
		t.Errorf("readiness status = %q, want ready", status.Status)
	}
}

func TestChecker_CheckReadinessHealthy(t *testing.T) {
	checker := New(0)
	checker.RegisterCheck("storage", func(ctx context.Context) error { return nil })
	checker.RegisterCheck("document", func(ctx context.Context) error { return nil })

	status := checker.CheckReadiness(context.Background())
	if status.Status != "ready" {
		t.Errorf("readiness status = %q, want ready", status.Status)
	}
	if len(status.Checks) != 2 {
		t.Fatalf("checks = %d, want 2", len(status.Checks))
	}
	if status.Checks["storage"].Status != "ok" {
		t.Errorf("storage check = %q, want ok", status.Checks["storage"].Status)
	}
}

func TestChecker_CheckReadinessDegraded(t *testing.T) {
	checker := New(0)
	checker.RegisterCheck("storage", func(ctx context.Context) error { return nil })
	checker.RegisterCheck("document", func(ctx context.Context) error {
		return errors.New("document directory removed")
	})

	status := checker.CheckReadiness(context.Background())
	if status.Status != "degraded" {
		t.Errorf("readiness status = %q, want degraded", status.Status)
	}
	if status.Checks["document"].Message != "document directory removed" {
		t.Errorf("document message = %q", status.Checks["document"].Message)
	}
}

func TestChecker_CheckTimeout(t *testing.T) {
	checker := New(20 * time.Millisecond)
	checker.RegisterCheck("slow", func(ctx context.Context) error {
		select {
		case <-time.After(time.Second):
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})

	status := checker.CheckReadiness(context.Background())
	if status.Status != "degraded" {
		t.Errorf("readiness status = %q, want degraded", status.Status)
	}
}

func TestLivenessHandler(t *testing.T) {
	checker := New(0)

	rec := httptest.NewRecorder()
	checker.LivenessHandler()(rec, httptest.NewRequest("GET", "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var status HealthStatus
	if err := json.Unmarshal(rec.Body.Bytes(), &status); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if status.Status != "ok" {
		t.Errorf("body status = %q, want ok", status.Status)
	}
}

func TestReadinessHandlerDegraded(t *testing.T) {
	checker := New(0)
	checker.RegisterCheck("storage", func(ctx context.Context) error {
		return errors.New("database locked")
	})

	rec := httptest.NewRecorder()
	checker.ReadinessHandler()(rec, httptest.NewRequest("GET", "/ready", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

func TestHandlersRejectPost(t *testing.T) {
	checker := New(0)

	rec := httptest.NewRecorder()
	checker.LivenessHandler()(rec, httptest.NewRequest("POST", "/health", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

func TestMount(t *testing.T) {
	checker := New(0)
	mux := http.NewServeMux()
	Mount(mux, checker, "1.0.0", "abc123", "2026-08-25")

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/version", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var info VersionInfo
	if err := json.Unmarshal(rec.Body.Bytes(), &info); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if info.Version != "1.0.0" {
		t.Errorf("version = %q", info.Version)
	}
	if info.GoVersion == "" {
		t.Error("go version empty")
	}
}
