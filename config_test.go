package ulog

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "ulog.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
default_level = "warn"
maximum_level = "debug"
colors = true
timestamp_source = "wallclock"
registry_capacity = 16

[levels]
wifi = "verbose"
heap = "none"
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.DefaultLevel != "warn" || cfg.MaximumLevel != "debug" {
		t.Errorf("levels not decoded: %+v", cfg)
	}
	if !cfg.Colors || cfg.TimestampSource != "wallclock" || cfg.RegistryCapacity != 16 {
		t.Errorf("options not decoded: %+v", cfg)
	}
	if cfg.Levels["wifi"] != "verbose" || cfg.Levels["heap"] != "none" {
		t.Errorf("levels table not decoded: %+v", cfg.Levels)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestConfigOptionsAndApply(t *testing.T) {
	cfg := &Config{
		DefaultLevel: "info",
		MaximumLevel: "debug",
		Levels:       map[string]string{"wifi": "debug"},
	}
	opts, err := cfg.Options()
	if err != nil {
		t.Fatalf("Options: %v", err)
	}

	c := &capture{}
	logger := New(append(opts, WithSink(c.sink))...)
	if err := cfg.Apply(logger); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	logger.Debugf("wifi", "kept")
	logger.Debugf("app", "dropped")    // wildcard info
	logger.Verbosef("wifi", "dropped") // ceiling debug
	if got := c.count(); got != 1 {
		t.Fatalf("got %d lines, want 1: %q", got, c.all())
	}
}

func TestConfigApplyRejectsBadLevelAtomically(t *testing.T) {
	logger, _ := newCaptureLogger(WithDefaultLevel(LevelInfo))

	cfg := &Config{
		DefaultLevel: "verbose",
		Levels:       map[string]string{"wifi": "nonsense"},
	}
	if err := cfg.Apply(logger); err == nil {
		t.Fatal("expected error for bad level name")
	}
	// Validation happens before any update, so the wildcard is untouched.
	if got := logger.GetLevel("app"); got != LevelInfo {
		t.Fatalf("partial apply: wildcard moved to %v", got)
	}
}

func TestConfigOptionsBadTimestampSource(t *testing.T) {
	cfg := &Config{TimestampSource: "sundial"}
	if _, err := cfg.Options(); err == nil {
		t.Fatal("expected error for unknown timestamp source")
	}
}
