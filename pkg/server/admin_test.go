package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"cheddar-hq/adapter/pkg/config"
	"cheddar-hq/adapter/pkg/lifecycle"
)

type failingController struct {
	lifecycle.Provider
}

func (failingController) SetLifecycleStatus(lifecycle.Status) error {
	return errors.New("owner unreachable")
}

func (failingController) LastTransition() time.Time { return time.Time{} }

func TestLifecycleAdminHandler_Get(t *testing.T) {
	holder, _ := lifecycle.NewHolder(lifecycle.Paused, nil)
	handler := LifecycleAdminHandler(holder, nil)

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/admin/lifecycle", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var state LifecycleState
	if err := json.NewDecoder(rec.Body).Decode(&state); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if state.Status != lifecycle.Paused {
		t.Errorf("expected PAUSED, got %s", state.Status)
	}
	if !state.AcceptingRequests {
		t.Error("expected PAUSED to accept requests")
	}
	if state.LastTransition.IsZero() {
		t.Error("expected last transition time")
	}
}

func TestLifecycleAdminHandler_Put(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantCode   int
		wantStatus lifecycle.Status
	}{
		{"pause", `{"status":"PAUSED"}`, http.StatusOK, lifecycle.Paused},
		{"lowercase with dashes", `{"status":"halting-low-priority-events"}`, http.StatusOK, lifecycle.HaltingLowPriorityEvents},
		{"unknown status", `{"status":"SLEEPING"}`, http.StatusBadRequest, lifecycle.Running},
		{"empty status", `{}`, http.StatusBadRequest, lifecycle.Running},
		{"malformed json", `{"status":`, http.StatusBadRequest, lifecycle.Running},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			holder, _ := lifecycle.NewHolder(lifecycle.Running, nil)
			handler := LifecycleAdminHandler(holder, nil)

			req := httptest.NewRequest(http.MethodPut, "/admin/lifecycle", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			handler(rec, req)

			if rec.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d: %s", tt.wantCode, rec.Code, rec.Body.String())
			}
			if got, _ := holder.LifecycleStatus(); got != tt.wantStatus {
				t.Errorf("expected status %s, got %s", tt.wantStatus, got)
			}
			if tt.wantCode == http.StatusBadRequest && !strings.Contains(rec.Body.String(), "invalid_request_error") {
				t.Errorf("expected invalid_request_error body, got %s", rec.Body.String())
			}
		})
	}
}

func TestLifecycleAdminHandler_SetFailure(t *testing.T) {
	handler := LifecycleAdminHandler(failingController{lifecycle.StaticProvider(lifecycle.Running)}, nil)

	req := httptest.NewRequest(http.MethodPut, "/admin/lifecycle", strings.NewReader(`{"status":"PAUSED"}`))
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
}

func TestLifecycleAdminHandler_MethodNotAllowed(t *testing.T) {
	holder, _ := lifecycle.NewHolder(lifecycle.Running, nil)
	handler := LifecycleAdminHandler(holder, nil)

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodDelete, "/admin/lifecycle", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", rec.Code)
	}
	if rec.Header().Get("Allow") != "GET, PUT" {
		t.Errorf("unexpected Allow header %q", rec.Header().Get("Allow"))
	}
}

func TestServer_AdminRoute(t *testing.T) {
	cfg := testConfig()
	cfg.Server.Admin.Enabled = true
	env := newTestEnv(t, cfg, nil)
	env.setStatus(t, lifecycle.Running)
	handler := env.server.Handler()

	req := httptest.NewRequest(http.MethodPut, "/admin/lifecycle", strings.NewReader(`{"status":"HALTING_HIGH_PRIORITY_EVENTS"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	// The admin route itself is not subject to admission.
	req = httptest.NewRequest(http.MethodPut, "/admin/lifecycle", strings.NewReader(`{"status":"RUNNING"}`))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected admin route to bypass admission, got %d", rec.Code)
	}
	if got := env.currentStatus(); got != lifecycle.Running {
		t.Errorf("expected RUNNING, got %s", got)
	}
}

func TestServer_AdminRouteRequiresToken(t *testing.T) {
	cfg := testConfig()
	cfg.Server.Admin.Enabled = true
	cfg.Server.Admin.Tokens = []config.AdminToken{{Name: "ops", Value: "let-me-in"}}
	env := newTestEnv(t, cfg, nil)
	env.setStatus(t, lifecycle.Running)
	handler := env.server.Handler()

	req := httptest.NewRequest(http.MethodPut, "/admin/lifecycle", strings.NewReader(`{"status":"PAUSED"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}
	if got := env.currentStatus(); got != lifecycle.Running {
		t.Errorf("unauthenticated request changed status to %s", got)
	}

	req = httptest.NewRequest(http.MethodPut, "/admin/lifecycle", strings.NewReader(`{"status":"PAUSED"}`))
	req.Header.Set("Authorization", "Bearer let-me-in")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with token, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := env.currentStatus(); got != lifecycle.Paused {
		t.Errorf("expected PAUSED, got %s", got)
	}
}
