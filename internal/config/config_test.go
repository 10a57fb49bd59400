package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "takeoff.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	c := Default()
	if c.Unit != "ft" || c.LogLevel != "info" || c.LogFormat != "text" || c.HTTPAddr != ":8080" {
		t.Errorf("unexpected defaults %+v", c)
	}
	if c.ParallelToleranceDeg != 5 || c.DominanceThresholdPct != 60 || c.WatchDebounce != 300*time.Millisecond {
		t.Errorf("unexpected numeric defaults %+v", c)
	}
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
unit: m
log_format: json
dominance_threshold_pct: 75
watch_debounce: 1s
tools_base_dir: /srv/plans
`)

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Unit != "m" || c.LogFormat != "json" || c.DominanceThresholdPct != 75 {
		t.Errorf("overrides not applied: %+v", c)
	}
	if c.WatchDebounce != time.Second {
		t.Errorf("debounce %v, want 1s", c.WatchDebounce)
	}
	if c.ToolsBaseDir != "/srv/plans" {
		t.Errorf("base dir %q", c.ToolsBaseDir)
	}
	if c.LogLevel != "info" || c.ParallelToleranceDeg != 5 {
		t.Errorf("defaults not applied to unset keys: %+v", c)
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing explicit config")
	}

	t.Chdir(t.TempDir())
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load without default file: %v", err)
	}
	if c != Default() {
		t.Errorf("expected defaults, got %+v", c)
	}
}

func TestLoadInvalid(t *testing.T) {
	for _, content := range []string{"unit: [", "parallel_tolerance_deg: -1\n"} {
		if _, err := Load(writeConfig(t, content)); err == nil {
			t.Errorf("expected error for %q", content)
		}
	}
}
