package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("built-in defaults do not validate: %v", err)
	}
	if cfg.Palette.Name != "viridis" || cfg.Palette.Invert {
		t.Errorf("default palette = %+v, want viridis, not inverted", cfg.Palette)
	}
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("Load(\"\") differs from defaults (-want +got):\n%s", diff)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("missing file should yield defaults (-want +got):\n%s", diff)
	}
}

func TestLoadOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "floret.yaml")
	writeFile(t, path, `
spiral:
  max_points: 3000
cache:
  ttl: 15m
  store: flat
  path: /var/cache/floret.gob.gz
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Spiral.MaxPoints != 3000 {
		t.Errorf("max_points = %d, want 3000", cfg.Spiral.MaxPoints)
	}
	// Keys absent from the file keep their defaults.
	if cfg.Spiral.MinPoints != 5 {
		t.Errorf("min_points = %d, want default 5", cfg.Spiral.MinPoints)
	}
	if cfg.Limits.Padding != 1.1 {
		t.Errorf("padding = %g, want default 1.1", cfg.Limits.Padding)
	}
	if cfg.Cache.TTL.Std() != 15*time.Minute {
		t.Errorf("ttl = %v, want 15m", cfg.Cache.TTL.Std())
	}
	if cfg.Cache.Store != "flat" {
		t.Errorf("store = %q, want %q", cfg.Cache.Store, "flat")
	}
}

func TestLoadEnvironmentOverlay(t *testing.T) {
	t.Setenv(EnvVar, "production")

	dir := t.TempDir()
	base := filepath.Join(dir, "floret.yaml")
	writeFile(t, base, "spiral:\n  max_points: 3000\n  default_points: 400\n")
	writeFile(t, filepath.Join(dir, "floret.production.yaml"), "spiral:\n  max_points: 2000\n")

	cfg, err := Load(base)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Spiral.MaxPoints != 2000 {
		t.Errorf("max_points = %d, want environment overlay 2000", cfg.Spiral.MaxPoints)
	}
	if cfg.Spiral.DefaultPoints != 400 {
		t.Errorf("default_points = %d, want base overlay 400", cfg.Spiral.DefaultPoints)
	}
}

func TestLoadMissingEnvironmentOverlay(t *testing.T) {
	t.Setenv(EnvVar, "staging")

	dir := t.TempDir()
	base := filepath.Join(dir, "floret.yaml")
	writeFile(t, base, "spiral:\n  max_points: 3000\n")

	cfg, err := Load(base)
	if err != nil {
		t.Fatalf("unknown environment must not fail: %v", err)
	}
	if cfg.Spiral.MaxPoints != 3000 {
		t.Errorf("max_points = %d, want 3000", cfg.Spiral.MaxPoints)
	}
}

func TestEnv(t *testing.T) {
	t.Setenv(EnvVar, "")
	if got := Env(); got != "default" {
		t.Errorf("Env() = %q, want %q", got, "default")
	}
	t.Setenv(EnvVar, " development ")
	if got := Env(); got != "development" {
		t.Errorf("Env() = %q, want %q", got, "development")
	}
}

func TestLoadParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	writeFile(t, path, "spiral: [not a mapping")
	if _, err := Load(path); err == nil {
		t.Fatal("malformed YAML loaded without error")
	}
}

func TestLoadWarmPatterns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "floret.yaml")
	writeFile(t, path, `
cache:
  warm:
    - angle_start: 0
      angle_end: 100
      sample_count: 500
    - angle_start: 0
      angle_end: 200
      sample_count: 1000
      truncate: true
      truncate_factor: 2
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	want := []WarmPattern{
		{AngleEnd: 100, SampleCount: 500},
		{AngleEnd: 200, SampleCount: 1000, Truncate: true, TruncateFactor: 2},
	}
	if diff := cmp.Diff(want, cfg.Cache.Warm); diff != "" {
		t.Errorf("warm patterns mismatch (-want +got):\n%s", diff)
	}
}

func TestDurationUnmarshal(t *testing.T) {
	var c Cache
	if err := yaml.Unmarshal([]byte("ttl: 90s"), &c); err != nil {
		t.Fatal(err)
	}
	if c.TTL.Std() != 90*time.Second {
		t.Errorf("ttl = %v, want 90s", c.TTL.Std())
	}

	if err := yaml.Unmarshal([]byte("ttl: ninety"), &c); err == nil {
		t.Fatal("invalid duration parsed without error")
	} else if !strings.Contains(err.Error(), "invalid duration") {
		t.Errorf("error %q does not name the bad duration", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		mention string
	}{
		{"min points too small", func(c *Config) { c.Spiral.MinPoints = 2 }, "min_points"},
		{"max below min", func(c *Config) { c.Spiral.MaxPoints = 4 }, "max_points"},
		{"default out of range", func(c *Config) { c.Spiral.DefaultPoints = 1 }, "default_points"},
		{"angle range", func(c *Config) { c.Spiral.MaxAngleRange = 0 }, "max_angle_range"},
		{"padding below one", func(c *Config) { c.Limits.Padding = 0.9 }, "padding"},
		{"limit default", func(c *Config) { c.Limits.Default = 0 }, "limits.default"},
		{"unknown store", func(c *Config) { c.Cache.Store = "redis" }, "cache.store"},
		{"png size", func(c *Config) { c.Export.PNGSize = 0 }, "png_size"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("invalid config validated")
			}
			if !strings.Contains(err.Error(), tt.mention) {
				t.Errorf("error %q does not mention %q", err, tt.mention)
			}
		})
	}
}

func TestWatchReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "floret.yaml")
	writeFile(t, path, "spiral:\n  max_points: 3000\n")

	initial, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	reloaded := make(chan *Config, 4)
	w, err := Watch(path, initial, nil, func(c *Config) { reloaded <- c })
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if got := w.Current().Spiral.MaxPoints; got != 3000 {
		t.Fatalf("initial snapshot max_points = %d, want 3000", got)
	}

	writeFile(t, path, "spiral:\n  max_points: 2500\n")
	select {
	case cfg := <-reloaded:
		if cfg.Spiral.MaxPoints != 2500 {
			t.Errorf("reloaded max_points = %d, want 2500", cfg.Spiral.MaxPoints)
		}
		if w.Current().Spiral.MaxPoints != 2500 {
			t.Errorf("Current() not updated after reload")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("reload callback never fired")
	}
}

func TestWatchKeepsPreviousOnBadReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "floret.yaml")
	writeFile(t, path, "spiral:\n  max_points: 3000\n")

	initial, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	w, err := Watch(path, initial, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	// An invalid rewrite must not replace the snapshot.
	writeFile(t, path, "spiral:\n  min_points: 1\n")
	deadline := time.After(2 * time.Second)
	for {
		select {
		case <-deadline:
			if got := w.Current().Spiral.MaxPoints; got != 3000 {
				t.Fatalf("snapshot replaced by invalid config: max_points = %d", got)
			}
			return
		case <-time.After(50 * time.Millisecond):
			if got := w.Current().Spiral.MaxPoints; got != 3000 {
				t.Fatalf("snapshot replaced by invalid config: max_points = %d", got)
			}
		}
	}
}
