package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
precision = 3
reject_duplicates = true

[cache]
enabled = false
dir = "/tmp/stagekit-cache"
ttl = "90m"
redis_addr = "localhost:6379"

[serve]
addr = ":9000"
`)

	cfg, err := loadConfig(path, true)
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if cfg.Precision != 3 || !cfg.RejectDuplicates {
		t.Errorf("top-level = %+v", cfg)
	}
	if cfg.Cache.Enabled || cfg.Cache.Dir != "/tmp/stagekit-cache" || cfg.Cache.RedisAddr != "localhost:6379" {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
	if cfg.Cache.TTL.Duration != 90*time.Minute {
		t.Errorf("Cache.TTL = %v, want 90m", cfg.Cache.TTL.Duration)
	}
	if cfg.Serve.Addr != ":9000" {
		t.Errorf("Serve.Addr = %q", cfg.Serve.Addr)
	}
}

func TestLoadConfigPartial(t *testing.T) {
	path := writeConfig(t, "precision = 4\n")

	cfg, err := loadConfig(path, true)
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	def := DefaultConfig()
	if cfg.Precision != 4 {
		t.Errorf("Precision = %d, want 4", cfg.Precision)
	}
	if cfg.Cache.Enabled != def.Cache.Enabled || cfg.Serve.Addr != def.Serve.Addr {
		t.Errorf("unset keys should keep defaults, got %+v", cfg)
	}
}

func TestLoadConfigMissing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.toml")

	cfg, err := loadConfig(missing, false)
	if err != nil {
		t.Fatalf("implicit missing config should not fail: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}

	if _, err := loadConfig(missing, true); err == nil {
		t.Error("explicit missing config should fail")
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"syntax", "precision = \n"},
		{"unknown key", "colour = \"red\"\n"},
		{"bad duration", "[cache]\nttl = \"soon\"\n"},
		{"negative precision", "precision = -1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := loadConfig(writeConfig(t, tt.content), true); err == nil {
				t.Error("expected error")
			}
		})
	}
}
