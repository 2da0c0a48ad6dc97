package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfig_DefaultPort(t *testing.T) {
	cfg := NewDefaultConfig()
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port default = %d, want %d", cfg.Server.Port, 8080)
	}
}

func TestConfig_PortEnvOverride(t *testing.T) {
	t.Setenv("NIVESH_PORT", "9090")

	cfg := NewDefaultConfig()
	applyEnvOverrides(cfg)

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d after env override, want %d", cfg.Server.Port, 9090)
	}
}

func TestConfig_AuthEnvOverride(t *testing.T) {
	t.Setenv("NIVESH_AUTH_EMAIL", "owner@example.com")
	t.Setenv("NIVESH_AUTH_PASSWORD", "hunter2")

	cfg := NewDefaultConfig()
	applyEnvOverrides(cfg)

	if cfg.Auth.Email != "owner@example.com" {
		t.Errorf("Auth.Email = %s, want owner@example.com", cfg.Auth.Email)
	}
	if cfg.Auth.Password != "hunter2" {
		t.Errorf("Auth.Password = %s, want hunter2", cfg.Auth.Password)
	}
}

func TestLoadConfig_FileMerge(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nivesh.toml")
	content := `
environment = "production"

[server]
port = 9191

[clients.nse]
rate_limit = 2
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Server.Port != 9191 {
		t.Errorf("Server.Port = %d, want 9191", cfg.Server.Port)
	}
	if cfg.Clients.NSE.RateLimit != 2 {
		t.Errorf("NSE.RateLimit = %d, want 2", cfg.Clients.NSE.RateLimit)
	}
	// untouched fields keep defaults
	if cfg.Storage.Address != "ws://localhost:8000" {
		t.Errorf("Storage.Address = %s, want default", cfg.Storage.Address)
	}
	if !cfg.IsProduction() {
		t.Error("expected production environment")
	}
}

func TestLoadConfig_MissingFileIsSkipped(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/nivesh.toml")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected defaults for missing file, got port %d", cfg.Server.Port)
	}
}

func TestNSEConfig_GetTimeout(t *testing.T) {
	cfg := NSEConfig{Timeout: "45s"}
	if got := cfg.GetTimeout(); got != 45*time.Second {
		t.Errorf("GetTimeout = %v, want 45s", got)
	}

	cfg.Timeout = "garbage"
	if got := cfg.GetTimeout(); got != 30*time.Second {
		t.Errorf("GetTimeout fallback = %v, want 30s", got)
	}
}

func TestRefreshConfig_GetInterval(t *testing.T) {
	cfg := RefreshConfig{Interval: "6h"}
	if got := cfg.GetInterval(); got != 6*time.Hour {
		t.Errorf("GetInterval = %v, want 6h", got)
	}

	cfg.Interval = ""
	if got := cfg.GetInterval(); got != 24*time.Hour {
		t.Errorf("GetInterval fallback = %v, want 24h", got)
	}
}

func TestIsFresh(t *testing.T) {
	if IsFresh(time.Time{}, FreshnessCorporate) {
		t.Error("zero time should never be fresh")
	}
	if !IsFresh(time.Now().Add(-time.Hour), FreshnessCorporate) {
		t.Error("1h old should be fresh within 7d")
	}
	if IsFresh(time.Now().Add(-8*24*time.Hour), FreshnessCorporate) {
		t.Error("8d old should be stale against 7d")
	}
}

func TestStartOfDay(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	ts := time.Date(2026, 8, 28, 15, 42, 13, 0, loc)
	got := StartOfDay(ts)

	if got.Hour() != 0 || got.Minute() != 0 || got.Second() != 0 {
		t.Errorf("StartOfDay = %v, want midnight", got)
	}
	if got.Location() != loc {
		t.Error("StartOfDay should preserve location")
	}
	if got.Day() != 28 {
		t.Errorf("StartOfDay day = %d, want 28", got.Day())
	}
}
