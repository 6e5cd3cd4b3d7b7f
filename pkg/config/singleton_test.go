package config

import (
	"sync"
	"testing"
)

func resetGlobal() {
	SetConfig(nil)
	initOnce = *new(sync.Once)
}

func TestInitialize(t *testing.T) {
	resetGlobal()
	defer resetGlobal()

	configPath := writeConfig(t, `
server:
  listen_address: "127.0.0.1:8181"
`)

	if err := Initialize(configPath); err != nil {
		t.Fatalf("failed to initialize config: %v", err)
	}

	cfg := GetConfig()
	if cfg == nil {
		t.Fatal("expected non-nil config after initialization")
	}
	if cfg.Server.ListenAddress != "127.0.0.1:8181" {
		t.Errorf("expected listen address %q, got %q", "127.0.0.1:8181", cfg.Server.ListenAddress)
	}
}

func TestInitialize_MultipleCallsIgnored(t *testing.T) {
	resetGlobal()
	defer resetGlobal()

	first := writeConfig(t, "server:\n  listen_address: \"127.0.0.1:8080\"\n")
	second := writeConfig(t, "server:\n  listen_address: \"0.0.0.0:9090\"\n")

	if err := Initialize(first); err != nil {
		t.Fatalf("first initialize failed: %v", err)
	}
	if err := Initialize(second); err != nil {
		t.Fatalf("second initialize failed: %v", err)
	}

	if got := GetConfig().Server.ListenAddress; got != "127.0.0.1:8080" {
		t.Errorf("expected first config to win, got %q", got)
	}
}

func TestReloadConfig(t *testing.T) {
	resetGlobal()
	defer resetGlobal()

	path := writeConfig(t, "telemetry:\n  logging:\n    level: debug\n")

	cfg, err := ReloadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Telemetry.Logging.Level != "debug" {
		t.Errorf("expected debug, got %q", cfg.Telemetry.Logging.Level)
	}
	if GetConfig() != cfg {
		t.Error("expected reloaded config to replace the global instance")
	}

	bad := writeConfig(t, "telemetry:\n  logging:\n    level: loud\n")
	if _, err := ReloadConfig(bad); err == nil {
		t.Fatal("expected reload error")
	}
	if GetConfig() != cfg {
		t.Error("failed reload must keep the previous configuration")
	}
}

func TestMustGetConfig_Panics(t *testing.T) {
	resetGlobal()
	defer resetGlobal()

	defer func() {
		if recover() == nil {
			t.Error("expected panic when config is not initialized")
		}
	}()
	_ = MustGetConfig()
}

func TestGetConfig_Concurrent(t *testing.T) {
	resetGlobal()
	defer resetGlobal()
	SetConfig(DefaultConfig())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = GetConfig()
		}()
		go func() {
			defer wg.Done()
			SetConfig(DefaultConfig())
		}()
	}
	wg.Wait()
}
