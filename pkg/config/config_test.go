package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.Port != 5000 {
		t.Errorf("expected port 5000, got %d", cfg.Port)
	}
	if cfg.BindHost != "0.0.0.0" {
		t.Errorf("unexpected bind host %q", cfg.BindHost)
	}
	if cfg.DefaultYear != 2024 || cfg.DefaultEvent != "Abu Dhabi" || cfg.DefaultSessionKind != "R" {
		t.Errorf("unexpected default session: %d %q %q", cfg.DefaultYear, cfg.DefaultEvent, cfg.DefaultSessionKind)
	}
	if cfg.CacheEnabled {
		t.Error("expected cache disabled by default")
	}
	if cfg.LiveFeedURL != "" {
		t.Error("expected live feed disabled by default")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("F1API_PORT", "8080")
	t.Setenv("F1API_DEFAULT_EVENT", "Monaco")
	t.Setenv("F1API_CACHE_ENABLED", "true")

	cfg := Load()
	if cfg.Port != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.Port)
	}
	if cfg.DefaultEvent != "Monaco" {
		t.Errorf("expected Monaco, got %q", cfg.DefaultEvent)
	}
	if !cfg.CacheEnabled {
		t.Error("expected cache enabled")
	}
}

func TestListenAddr(t *testing.T) {
	cfg := Config{BindHost: "127.0.0.1", Port: 5000}
	if cfg.ListenAddr() != "127.0.0.1:5000" {
		t.Errorf("unexpected addr %q", cfg.ListenAddr())
	}
}
