package main

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cheddar-hq/adapter/pkg/config"
	"cheddar-hq/adapter/pkg/lifecycle"
)

func TestBuildAdapter(t *testing.T) {
	cfg := config.DefaultConfig()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	a, err := buildAdapter(cfg, logger)
	if err != nil {
		t.Fatalf("buildAdapter() error = %v", err)
	}

	if got, _ := a.holder.LifecycleStatus(); got != lifecycle.Starting {
		t.Errorf("initial status = %s, want STARTING", got)
	}
	if a.checker.CheckCount() != 1 {
		t.Errorf("expected the adapter readiness check, got %v", a.checker.ListChecks())
	}
	if a.reporter == nil {
		t.Error("expected a status reporter when status reports are enabled")
	}
	if !a.collector.Enabled() {
		t.Error("expected metrics to be enabled by default")
	}

	handler := a.server.Handler()

	// STARTING does not accept requests.
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("/ready while STARTING = %d, want 503", rec.Code)
	}

	if err := a.holder.SetLifecycleStatus(lifecycle.Running); err != nil {
		t.Fatal(err)
	}
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("/ready while RUNNING = %d, want 200", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if !strings.Contains(rec.Body.String(), `cheddar_adapter_lifecycle_status{status="RUNNING"} 1`) {
		t.Errorf("expected lifecycle gauge in metrics output:\n%s", rec.Body.String())
	}
}

func TestBuildAdapter_ReporterDisabled(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Telemetry.StatusReport.Enabled = false

	a, err := buildAdapter(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("buildAdapter() error = %v", err)
	}
	if a.reporter != nil {
		t.Error("expected no reporter when status reports are disabled")
	}
}

func TestBuildAdapter_InvalidInitialStatus(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Lifecycle.InitialStatus = "BOOTING"

	if _, err := buildAdapter(cfg, slog.New(slog.NewTextHandler(io.Discard, nil))); err == nil {
		t.Error("expected error for unknown initial status")
	}
}

func TestApplyRunOverrides(t *testing.T) {
	origFlags, origVerbose := runFlags, verbose
	defer func() {
		runFlags, verbose = origFlags, origVerbose
	}()

	runFlags.listenAddress = "0.0.0.0:9999"
	runFlags.logLevel = "warn"
	verbose = false

	cfg := config.DefaultConfig()
	if err := applyRunOverrides(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.ListenAddress != "0.0.0.0:9999" {
		t.Errorf("listen address = %q", cfg.Server.ListenAddress)
	}
	if cfg.Telemetry.Logging.Level != "warn" {
		t.Errorf("log level = %q", cfg.Telemetry.Logging.Level)
	}

	verbose = true
	if err := applyRunOverrides(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Telemetry.Logging.Level != "debug" {
		t.Errorf("verbose should force debug, got %q", cfg.Telemetry.Logging.Level)
	}

	verbose = false
	runFlags.logLevel = "loud"
	if err := applyRunOverrides(cfg); err == nil {
		t.Error("expected invalid log level override to fail validation")
	}
}

func TestApplyLogLevel(t *testing.T) {
	levelVar := new(slog.LevelVar)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	applyLogLevel(logger, levelVar, "debug")
	if levelVar.Level() != slog.LevelDebug {
		t.Errorf("level = %v, want debug", levelVar.Level())
	}

	applyLogLevel(logger, levelVar, "shout")
	if levelVar.Level() != slog.LevelDebug {
		t.Errorf("invalid level should be ignored, got %v", levelVar.Level())
	}
}

func TestPrintBanner(t *testing.T) {
	origCfg := cfgFile
	defer func() { cfgFile = origCfg }()
	cfgFile = ""

	cfg := config.DefaultConfig()
	cfg.Server.UpstreamURL = "http://127.0.0.1:9000"

	buf := &bytes.Buffer{}
	printBanner(buf, cfg)

	out := buf.String()
	for _, want := range []string{
		"Using default configuration",
		"Status endpoint: http://127.0.0.1:8080/status",
		"Metrics endpoint: http://127.0.0.1:8080/metrics",
		"Forwarding to http://127.0.0.1:9000",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("banner missing %q:\n%s", want, out)
		}
	}
}
