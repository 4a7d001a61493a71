package config

import (
	"os"
	"path/filepath"
	"testing"
)

// loadFrom writes contents as config/config.yaml in a scratch dir and runs
// LoadConfig from there.
func loadFrom(t *testing.T, contents string) *Config {
	t.Helper()
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "config"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config", "config.yaml"), []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	return LoadConfig()
}

func TestLoadConfigFillsDefaults(t *testing.T) {
	cfg := loadFrom(t, `
auth:
  jwt_secret: "test-secret"
`)

	if cfg.Server.Port != 8080 {
		t.Fatalf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Database.Path != "maintdesk.db" {
		t.Fatalf("expected default db path, got %q", cfg.Database.Path)
	}
	if cfg.Auth.TokenTTLHours != 12 {
		t.Fatalf("expected default token ttl 12h, got %d", cfg.Auth.TokenTTLHours)
	}
	if cfg.Reminders.At != "08:00" {
		t.Fatalf("expected default sweep time 08:00, got %q", cfg.Reminders.At)
	}
}

func TestLoadConfigSweepOnWhenRemindersOmitted(t *testing.T) {
	cfg := loadFrom(t, `
auth:
  jwt_secret: "test-secret"
`)

	if cfg.Reminders.Enabled == nil || !*cfg.Reminders.Enabled {
		t.Fatal("omitting the reminders section must leave the daily sweep enabled")
	}
}

func TestLoadConfigSweepExplicitDisable(t *testing.T) {
	cfg := loadFrom(t, `
auth:
  jwt_secret: "test-secret"
reminders:
  enabled: false
`)

	if cfg.Reminders.Enabled == nil || *cfg.Reminders.Enabled {
		t.Fatal("an explicit enabled: false must turn the sweep off")
	}
}

func TestLoadConfigKeepsExplicitValues(t *testing.T) {
	cfg := loadFrom(t, `
server:
  port: 9090
reminders:
  enabled: true
  at: "06:30"
  timezone: "Europe/Berlin"
`)

	if cfg.Server.Port != 9090 {
		t.Fatalf("expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Reminders.At != "06:30" || cfg.Reminders.Timezone != "Europe/Berlin" {
		t.Fatalf("explicit reminder settings lost: %+v", cfg.Reminders)
	}
}
