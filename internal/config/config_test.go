package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.PollTimeoutMs != 5000 || cfg.IdentityField != "id" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.PollTimeout() != 5*time.Second {
		t.Fatalf("want 5s poll timeout, got %v", cfg.PollTimeout())
	}
}

func TestLoadJSON(t *testing.T) {
	path := writeFile(t, "sift.json", `{"checkpoint":"job-a","sourceTopic":"in","sinkTopic":"out","pollTimeoutMs":250}`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Checkpoint != "job-a" || cfg.SourceTopic != "in" || cfg.PollTimeoutMs != 250 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	// untouched fields keep defaults
	if cfg.IdentityField != "id" {
		t.Fatalf("want default identity field, got %q", cfg.IdentityField)
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "sift.yaml", "checkpoint: job-b\nsourceTopic: in\nsinkTopic: out\nlog:\n  level: debug\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Checkpoint != "job-b" || cfg.Log.Level != "debug" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoadBadFile(t *testing.T) {
	path := writeFile(t, "sift.json", `{not json`)
	if _, err := Load(path); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestFromEnvOverlays(t *testing.T) {
	t.Setenv("SIFT_CHECKPOINT", "job-env")
	t.Setenv("SIFT_POLL_TIMEOUT_MS", "100")
	t.Setenv("SIFT_LOG_LEVEL", "warn")

	cfg := Default()
	FromEnv(&cfg)
	if cfg.Checkpoint != "job-env" || cfg.PollTimeoutMs != 100 || cfg.Log.Level != "warn" {
		t.Fatalf("env overlay not applied: %+v", cfg)
	}
}

func TestFromEnvIgnoresInvalidNumbers(t *testing.T) {
	t.Setenv("SIFT_POLL_TIMEOUT_MS", "not-a-number")
	cfg := Default()
	FromEnv(&cfg)
	if cfg.PollTimeoutMs != 5000 {
		t.Fatalf("want default kept, got %d", cfg.PollTimeoutMs)
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error without checkpoint/topics")
	}
	cfg.Checkpoint = "job-a"
	cfg.SourceTopic = "in"
	cfg.SinkTopic = "out"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}
