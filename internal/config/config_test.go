package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing config must not error: %v", err)
	}
	if cfg.Session.DurationSeconds != 60 || cfg.Session.WarnAtSeconds != 10 {
		t.Fatalf("unexpected defaults: %+v", cfg.Session)
	}
	if cfg.Server.URL == "" {
		t.Fatalf("expected default server URL")
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := "server:\n  url: http://quiz.example\n  timeout: 2s\nsession:\n  durationSeconds: 30\n"
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.URL != "http://quiz.example" {
		t.Fatalf("url not applied: %s", cfg.Server.URL)
	}
	if cfg.Session.DurationSeconds != 30 {
		t.Fatalf("duration not applied: %d", cfg.Session.DurationSeconds)
	}
	if cfg.Session.WarnAtSeconds != 10 {
		t.Fatalf("unset field must keep its default, got %d", cfg.Session.WarnAtSeconds)
	}
}

func TestTTLDuration(t *testing.T) {
	if got := TTLDuration("", 3*time.Second); got != 3*time.Second {
		t.Fatalf("empty raw must fall back, got %s", got)
	}
	if got := TTLDuration("1500ms", time.Second); got != 1500*time.Millisecond {
		t.Fatalf("parse failed: %s", got)
	}
	if got := TTLDuration("bogus", time.Second); got != time.Second {
		t.Fatalf("malformed raw must fall back, got %s", got)
	}
}
