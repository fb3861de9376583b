package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type pingerMock struct {
	err error
}

func (m *pingerMock) Ping(_ context.Context) error {
	return m.err
}

func TestLive_Always200(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler("test-version", Check{Name: "termbase", Pinger: &pingerMock{}})

	req := httptest.NewRequest(http.MethodGet, "/live", nil)
	rec := httptest.NewRecorder()

	h.Live(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Status != "ok" {
		t.Errorf("expected status 'ok', got %q", resp.Status)
	}

	if resp.Timestamp.IsZero() {
		t.Error("expected non-zero timestamp")
	}
}

func TestReady_TermbaseUp(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler("test-version", Check{Name: "termbase", Pinger: &pingerMock{err: nil}})

	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	rec := httptest.NewRecorder()

	h.Ready(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Status != "ok" {
		t.Errorf("expected status 'ok', got %q", resp.Status)
	}
}

func TestReady_TermbaseDown(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler("test-version", Check{Name: "termbase", Pinger: &pingerMock{err: errors.New("kalcium: login: connection refused")}})

	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	rec := httptest.NewRecorder()

	h.Ready(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", rec.Code)
	}

	var resp HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Status != "down" {
		t.Errorf("expected status 'down', got %q", resp.Status)
	}
}

func TestHealth_AllOK(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler("v1.0.0", Check{Name: "termbase", Pinger: &pingerMock{err: nil}})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	h.Health(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Status != "ok" {
		t.Errorf("expected status 'ok', got %q", resp.Status)
	}

	if resp.Version != "v1.0.0" {
		t.Errorf("expected version 'v1.0.0', got %q", resp.Version)
	}

	tbComp, ok := resp.Components["termbase"]
	if !ok {
		t.Fatal("expected 'termbase' component in response")
	}

	if tbComp.Status != "ok" {
		t.Errorf("expected termbase status 'ok', got %q", tbComp.Status)
	}
}

func TestHealth_TermbaseDown(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler("v1.0.0", Check{Name: "termbase", Pinger: &pingerMock{err: errors.New("kalcium: login: connection refused")}})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	h.Health(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", rec.Code)
	}

	var resp HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Status != "down" {
		t.Errorf("expected status 'down', got %q", resp.Status)
	}

	tbComp, ok := resp.Components["termbase"]
	if !ok {
		t.Fatal("expected 'termbase' component in response")
	}

	if tbComp.Status != "down" {
		t.Errorf("expected termbase status 'down', got %q", tbComp.Status)
	}
}

func TestHealth_IncludesLatency(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler("v1.0.0", Check{Name: "termbase", Pinger: &pingerMock{err: nil}})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	h.Health(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	tbComp, ok := resp.Components["termbase"]
	if !ok {
		t.Fatal("expected 'termbase' component in response")
	}

	if tbComp.Latency == "" {
		t.Error("expected non-empty latency for termbase component")
	}
}

func TestHealth_ReportsEveryCheck(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler("v1.0.0",
		Check{Name: "termbase", Pinger: &pingerMock{}},
		Check{Name: "llm", Pinger: &pingerMock{err: errors.New("no key")}},
	)

	rec := httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", rec.Code)
	}

	var resp HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Components["termbase"].Status != "ok" || resp.Components["llm"].Status != "down" {
		t.Errorf("unexpected components: %+v", resp.Components)
	}
}

func TestReady_NoChecks(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	NewHealthHandler("dev").Ready(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}
