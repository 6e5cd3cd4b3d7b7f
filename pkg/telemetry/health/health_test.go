package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"cheddar-hq/adapter/pkg/config"
	"cheddar-hq/adapter/pkg/lifecycle"
	"cheddar-hq/adapter/pkg/status"
)

// TestNew tests the creation of a new health checker.
func TestNew(t *testing.T) {
	tests := []struct {
		name            string
		timeout         time.Duration
		expectedTimeout time.Duration
	}{
		{name: "default timeout", timeout: 0, expectedTimeout: 5 * time.Second},
		{name: "negative timeout", timeout: -time.Second, expectedTimeout: 5 * time.Second},
		{name: "custom timeout", timeout: 10 * time.Second, expectedTimeout: 10 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checker := New(tt.timeout)

			if checker.checkTimeout != tt.expectedTimeout {
				t.Errorf("expected timeout %v, got %v", tt.expectedTimeout, checker.checkTimeout)
			}
			if checker.CheckCount() != 0 {
				t.Errorf("expected 0 checks, got %d", checker.CheckCount())
			}
		})
	}
}

// TestRegisterCheck tests registering, listing and removing checks.
func TestRegisterCheck(t *testing.T) {
	checker := New(5 * time.Second)

	called := false
	checker.RegisterCheck("zeta", func(ctx context.Context) error {
		called = true
		return nil
	})
	checker.RegisterCheck("alpha", func(ctx context.Context) error { return nil })

	if checker.CheckCount() != 2 {
		t.Errorf("expected 2 checks, got %d", checker.CheckCount())
	}

	names := checker.ListChecks()
	if len(names) != 2 || names[0] != "alpha" || names[1] != "zeta" {
		t.Errorf("expected sorted names [alpha zeta], got %v", names)
	}

	check := checker.GetCheck("zeta")
	if check == nil {
		t.Fatal("expected non-nil check")
	}
	_ = check(context.Background())
	if !called {
		t.Error("expected check to be called")
	}

	checker.UnregisterCheck("zeta")
	if checker.GetCheck("zeta") != nil {
		t.Error("expected check to be removed")
	}
}

// TestCheckReadiness_NoChecks tests readiness with nothing registered.
func TestCheckReadiness_NoChecks(t *testing.T) {
	checker := New(5 * time.Second)

	result := checker.CheckReadiness(context.Background())
	if result.Status != StatusReady {
		t.Errorf("expected status %q, got %q", StatusReady, result.Status)
	}
	if !result.Ready() {
		t.Error("expected Ready() to be true")
	}
}

// TestCheckReadiness_SomeUnhealthy tests readiness with a failing check.
func TestCheckReadiness_SomeUnhealthy(t *testing.T) {
	checker := New(5 * time.Second)
	checker.RegisterCheck("healthy", func(ctx context.Context) error { return nil })
	checker.RegisterCheck("unhealthy", func(ctx context.Context) error {
		return errors.New("component unhealthy")
	})

	result := checker.CheckReadiness(context.Background())

	if result.Status != StatusDegraded {
		t.Errorf("expected status %q, got %q", StatusDegraded, result.Status)
	}
	if result.Checks["healthy"].Status != StatusOK {
		t.Errorf("expected healthy check ok, got %q", result.Checks["healthy"].Status)
	}
	if msg := result.Checks["unhealthy"].Message; msg != "component unhealthy" {
		t.Errorf("expected message 'component unhealthy', got %q", msg)
	}
}

// TestCheckReadiness_Timeout tests readiness with a check that times out.
func TestCheckReadiness_Timeout(t *testing.T) {
	checker := New(100 * time.Millisecond)

	checker.RegisterCheck("slow", func(ctx context.Context) error {
		time.Sleep(200 * time.Millisecond)
		return nil
	})

	result := checker.CheckReadiness(context.Background())

	slowResult := result.Checks["slow"]
	if slowResult.Status != StatusUnhealthy {
		t.Errorf("expected slow check to be unhealthy, got %q", slowResult.Status)
	}
	if slowResult.Message != ErrCheckTimeout.Error() {
		t.Errorf("expected timeout message, got %q", slowResult.Message)
	}
}

// TestRun tests the error-returning form of the readiness checks.
func TestRun(t *testing.T) {
	checker := New(5 * time.Second)

	if err := checker.Run(context.Background()); !errors.Is(err, ErrNoChecks) {
		t.Errorf("expected ErrNoChecks, got %v", err)
	}

	checker.RegisterCheck("b", func(ctx context.Context) error { return errors.New("b failed") })
	checker.RegisterCheck("a", func(ctx context.Context) error { return errors.New("a failed") })
	checker.RegisterCheck("c", func(ctx context.Context) error { return nil })

	err := checker.Run(context.Background())
	var checkErr *CheckError
	if !errors.As(err, &checkErr) {
		t.Fatalf("expected *CheckError, got %T (%v)", err, err)
	}
	if checkErr.Name != "a" || err.Error() != "a: a failed" {
		t.Errorf("expected first failure by name, got %v", err)
	}

	checker.UnregisterCheck("a")
	checker.UnregisterCheck("b")
	if err := checker.Run(context.Background()); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}

// TestCheckResult_JSON tests that durations are reported in milliseconds.
func TestCheckResult_JSON(t *testing.T) {
	data, err := json.Marshal(CheckResult{Status: StatusOK, Duration: 1500 * time.Microsecond})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if decoded["duration_ms"] != 1.5 {
		t.Errorf("expected duration_ms 1.5, got %v", decoded["duration_ms"])
	}
	if decoded["status"] != StatusOK {
		t.Errorf("expected status ok, got %v", decoded["status"])
	}
}

// TestAdapterCheck tests the lifecycle-driven readiness check.
func TestAdapterCheck(t *testing.T) {
	tests := []struct {
		name     string
		provider lifecycle.Provider
		wantErr  error
	}{
		{name: "running", provider: lifecycle.StaticProvider(lifecycle.Running)},
		{name: "paused", provider: lifecycle.StaticProvider(lifecycle.Paused)},
		{name: "starting", provider: lifecycle.StaticProvider(lifecycle.Starting), wantErr: ErrNotAccepting},
		{name: "halted", provider: lifecycle.StaticProvider(lifecycle.Halted), wantErr: ErrNotAccepting},
		{
			name: "provider error",
			provider: lifecycle.ProviderFunc(func() (lifecycle.Status, error) {
				return "", context.DeadlineExceeded
			}),
			wantErr: context.DeadlineExceeded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			check := AdapterCheck(status.NewTracker(tt.provider))
			err := check(context.Background())

			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

// TestLivenessHandler tests the liveness HTTP handler.
func TestLivenessHandler(t *testing.T) {
	handler := New(5 * time.Second).LivenessHandler()

	tests := []struct {
		name           string
		method         string
		expectedStatus int
		checkBody      bool
	}{
		{name: "GET request", method: http.MethodGet, expectedStatus: http.StatusOK, checkBody: true},
		{name: "HEAD request", method: http.MethodHead, expectedStatus: http.StatusOK},
		{name: "POST request", method: http.MethodPost, expectedStatus: http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/health", nil)
			rec := httptest.NewRecorder()

			handler(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, rec.Code)
			}

			if tt.method == http.MethodHead && rec.Body.Len() != 0 {
				t.Error("expected empty body for HEAD")
			}

			if tt.checkBody {
				var result HealthStatus
				if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
					t.Fatalf("failed to unmarshal response: %v", err)
				}
				if result.Status != StatusOK {
					t.Errorf("expected status 'ok', got %q", result.Status)
				}
			}
		})
	}
}

// TestReadinessHandler tests the readiness HTTP handler against the lifecycle.
func TestReadinessHandler(t *testing.T) {
	holder, err := lifecycle.NewHolder(lifecycle.Starting, nil)
	if err != nil {
		t.Fatalf("NewHolder() error = %v", err)
	}
	checker := New(time.Second)
	checker.RegisterCheck("adapter", AdapterCheck(status.NewTracker(holder)))
	handler := checker.ReadinessHandler()

	tests := []struct {
		lifecycleStatus lifecycle.Status
		expectedStatus  int
		expectedHealth  string
	}{
		{lifecycle.Starting, http.StatusServiceUnavailable, StatusDegraded},
		{lifecycle.Running, http.StatusOK, StatusReady},
		{lifecycle.HaltingLowPriorityEvents, http.StatusOK, StatusReady},
		{lifecycle.HaltingHighPriorityEvents, http.StatusServiceUnavailable, StatusDegraded},
	}

	for _, tt := range tests {
		t.Run(tt.lifecycleStatus.String(), func(t *testing.T) {
			if err := holder.SetLifecycleStatus(tt.lifecycleStatus); err != nil {
				t.Fatalf("SetLifecycleStatus() error = %v", err)
			}

			rec := httptest.NewRecorder()
			handler(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

			if rec.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, rec.Code)
			}

			var result HealthStatus
			if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
				t.Fatalf("failed to unmarshal response: %v", err)
			}
			if result.Status != tt.expectedHealth {
				t.Errorf("expected health %q, got %q", tt.expectedHealth, result.Status)
			}
		})
	}
}

// TestStatusHandler tests the adapter status endpoint.
func TestStatusHandler(t *testing.T) {
	tests := []struct {
		name           string
		provider       lifecycle.Provider
		inProgress     int
		expectedStatus int
		wantAccepting  bool
		wantError      bool
	}{
		{
			name:           "running",
			provider:       lifecycle.StaticProvider(lifecycle.Running),
			inProgress:     3,
			expectedStatus: http.StatusOK,
			wantAccepting:  true,
		},
		{
			name:           "halted",
			provider:       lifecycle.StaticProvider(lifecycle.Halted),
			inProgress:     1,
			expectedStatus: http.StatusServiceUnavailable,
		},
		{
			name: "provider error",
			provider: lifecycle.ProviderFunc(func() (lifecycle.Status, error) {
				return "", errors.New("lifecycle unavailable")
			}),
			inProgress:     2,
			expectedStatus: http.StatusInternalServerError,
			wantError:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracker := status.NewTracker(tt.provider)
			for i := 0; i < tt.inProgress; i++ {
				tracker.RequestProcessingStarted()
			}

			rec := httptest.NewRecorder()
			StatusHandler(tracker, nil)(rec, httptest.NewRequest(http.MethodGet, "/status", nil))

			if rec.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, rec.Code)
			}

			var resp StatusResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to unmarshal response: %v", err)
			}
			if resp.RequestsInProgress != int64(tt.inProgress) {
				t.Errorf("expected %d in progress, got %d", tt.inProgress, resp.RequestsInProgress)
			}
			if resp.AcceptingRequests != tt.wantAccepting {
				t.Errorf("expected accepting %v, got %v", tt.wantAccepting, resp.AcceptingRequests)
			}
			if (resp.Error != "") != tt.wantError {
				t.Errorf("unexpected error field %q", resp.Error)
			}
		})
	}
}

// TestVersionHandler tests the version endpoint.
func TestVersionHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	VersionHandler("1.2.3", "abc123", "2026-10-19")(rec, httptest.NewRequest(http.MethodGet, "/version", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var info VersionInfo
	if err := json.Unmarshal(rec.Body.Bytes(), &info); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if info.Version != "1.2.3" || info.Commit != "abc123" || info.GoVersion == "" {
		t.Errorf("unexpected version info: %+v", info)
	}
}

// TestHandlers_Register tests mounting the endpoints at configured paths.
func TestHandlers_Register(t *testing.T) {
	checker := New(time.Second)
	tracker := status.NewTracker(lifecycle.StaticProvider(lifecycle.Running))
	cfg := &config.HealthConfig{
		LivenessPath:  "/livez",
		ReadinessPath: "/readyz",
		StatusPath:    "/statusz",
	}

	mux := http.NewServeMux()
	Handlers{
		Liveness:  checker.LivenessHandler(),
		Readiness: checker.ReadinessHandler(),
		Status:    StatusHandler(tracker, nil),
		Version:   VersionHandler("dev", "none", "unknown"),
	}.Register(mux, cfg)

	for _, path := range Paths(cfg) {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Errorf("%s: expected status 200, got %d", path, rec.Code)
		}
		if !strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
			t.Errorf("%s: expected JSON content type, got %q", path, rec.Header().Get("Content-Type"))
		}
	}
}

// TestRateLimitedHandler tests the rate-limited handler.
func TestRateLimitedHandler(t *testing.T) {
	handler := RateLimitedHandler(New(5*time.Second).LivenessHandler(), 2)

	// The burst equals the rate, so the first two requests succeed.
	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		handler(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
		if rec.Code != http.StatusOK {
			t.Errorf("request %d: expected status %d, got %d", i, http.StatusOK, rec.Code)
		}
	}

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("expected status %d, got %d", http.StatusTooManyRequests, rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("expected Retry-After header on 429")
	}
}

// TestRateLimitedHandler_Disabled tests rate limiting with 0 or negative limit.
func TestRateLimitedHandler_Disabled(t *testing.T) {
	handler := RateLimitedHandler(New(5*time.Second).LivenessHandler(), 0)

	for i := 0; i < 10; i++ {
		rec := httptest.NewRecorder()
		handler(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
		if rec.Code != http.StatusOK {
			t.Errorf("request %d: expected status %d, got %d", i, http.StatusOK, rec.Code)
		}
	}
}

// TestConcurrentChecks tests concurrent readiness checks.
func TestConcurrentChecks(t *testing.T) {
	checker := New(5 * time.Second)
	checker.RegisterCheck("adapter", AdapterCheck(status.NewTracker(lifecycle.StaticProvider(lifecycle.Running))))

	done := make(chan bool, 5)
	for i := 0; i < 5; i++ {
		go func() {
			result := checker.CheckReadiness(context.Background())
			if result.Status != StatusReady {
				t.Errorf("expected status 'ready', got %q", result.Status)
			}
			done <- true
		}()
	}

	for i := 0; i < 5; i++ {
		<-done
	}
}
