// Package config holds floret's typed configuration: explicit defaults,
// optional YAML overlay, environment-selected overlay files, and a
// file-watching reloader. Components read fields from a Config struct
// populated once at startup; there are no key-path lookups at call time.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvVar selects the deployment environment ("default", "development",
// "production"). It picks which overlay file Load applies on top of the
// base configuration.
const EnvVar = "FLORET_ENV"

// Config is the full configuration tree.
type Config struct {
	Spiral   Spiral   `yaml:"spiral"`
	Cache    Cache    `yaml:"cache"`
	Limits   Limits   `yaml:"limits"`
	Palette  Palette  `yaml:"palette"`
	Export   Export   `yaml:"export"`
	Estimate Estimate `yaml:"estimate"`
	Profiles Profiles `yaml:"profiles"`
}

// Spiral bounds the generator's inputs. All four values drive the
// parameter validator.
type Spiral struct {
	MinPoints     int     `yaml:"min_points"`
	MaxPoints     int     `yaml:"max_points"`
	DefaultPoints int     `yaml:"default_points"`
	MaxAngleRange float64 `yaml:"max_angle_range"`
}

// Cache configures the memory tiers and the optional pre-baked disk store.
type Cache struct {
	// MaxSizeMB caps the session tier; the memo tier gets half of it.
	// Overridden by the selected performance profile when zero.
	MaxSizeMB int `yaml:"max_size_mb"`

	// TTL expires memoized tessellations; "0" disables session-age expiry.
	TTL Duration `yaml:"ttl"`

	// Store selects the disk tier: "badger", "flat", or "" for none.
	Store string `yaml:"store"`

	// Path is the Badger directory or the flat-file path.
	Path string `yaml:"path"`

	// Warm lists parameter tuples to precompute at startup.
	Warm []WarmPattern `yaml:"warm"`
}

// WarmPattern is one parameter tuple precomputed at startup.
type WarmPattern struct {
	AngleStart     float64 `yaml:"angle_start"`
	AngleEnd       float64 `yaml:"angle_end"`
	SampleCount    int     `yaml:"sample_count"`
	Truncate       bool    `yaml:"truncate"`
	TruncateFactor float64 `yaml:"truncate_factor"`
}

// Limits configures the plot-limit calculator.
type Limits struct {
	Padding float64 `yaml:"padding"`
	Default float64 `yaml:"default"` // symmetric fallback when no finite vertices exist
}

// Palette selects the default colormap for new sessions. Unknown names fall
// back to the built-in default at use time; they are not a load error.
type Palette struct {
	Name   string `yaml:"name"`
	Invert bool   `yaml:"invert"`
}

// Export configures output dimensions.
type Export struct {
	PNGSize     int    `yaml:"png_size"` // pixels, square
	SVGWidthMM  int    `yaml:"svg_width_mm"`
	SVGHeightMM int    `yaml:"svg_height_mm"`
	Background  string `yaml:"background"` // hex color
}

// Estimate parameterizes the affine compute-time model
// base_ms + per_point_ms * n, used only for user-facing estimates.
type Estimate struct {
	BaseMS     float64 `yaml:"base_ms"`
	PerPointMS float64 `yaml:"per_point_ms"`
}

// Profiles holds the closed set of performance profiles and the host
// thresholds that select them.
type Profiles struct {
	High   ProfileSpec `yaml:"high"`
	Medium ProfileSpec `yaml:"medium"`
	Low    ProfileSpec `yaml:"low"`
}

// ProfileSpec is one performance profile: selection thresholds plus the
// operating limits the profile imposes.
type ProfileSpec struct {
	MinCores    int `yaml:"min_cores"`
	MinMemoryMB int `yaml:"min_memory_mb"`
	MaxPoints   int `yaml:"max_points"`
	DebounceMS  int `yaml:"debounce_ms"`
	CacheSizeMB int `yaml:"cache_size_mb"`
}

// Duration is a time.Duration that unmarshals from YAML strings like "30m".
type Duration time.Duration

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("config: invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Default returns the built-in configuration. Every Load starts from these
// values, so absent YAML keys always have a defined fallback.
func Default() *Config {
	return &Config{
		Spiral: Spiral{
			MinPoints:     5,
			MaxPoints:     5000,
			DefaultPoints: 500,
			MaxAngleRange: 500,
		},
		Cache: Cache{
			TTL: Duration(30 * time.Minute),
		},
		Limits: Limits{
			Padding: 1.1,
			Default: 10,
		},
		Palette: Palette{
			Name: "viridis",
		},
		Export: Export{
			PNGSize:     2000,
			SVGWidthMM:  200,
			SVGHeightMM: 200,
			Background:  "#ffffff",
		},
		Estimate: Estimate{
			BaseMS:     40,
			PerPointMS: 0.6,
		},
		Profiles: Profiles{
			High:   ProfileSpec{MinCores: 8, MinMemoryMB: 8192, MaxPoints: 5000, DebounceMS: 300, CacheSizeMB: 256},
			Medium: ProfileSpec{MinCores: 4, MinMemoryMB: 4096, MaxPoints: 2000, DebounceMS: 500, CacheSizeMB: 128},
			Low:    ProfileSpec{MaxPoints: 1000, DebounceMS: 800, CacheSizeMB: 64},
		},
	}
}

// Env returns the active environment name from FLORET_ENV, defaulting to
// "default".
func Env() string {
	if env := strings.TrimSpace(os.Getenv(EnvVar)); env != "" {
		return env
	}
	return "default"
}

// Load builds the configuration: defaults, then the YAML file at path (if
// it exists), then the environment overlay "<name>.<env>.yaml" next to it.
// An empty path returns the defaults. Unknown environments simply have no
// overlay file and are not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	if err := overlayFile(cfg, path, false); err != nil {
		return nil, err
	}
	if env := Env(); env != "default" {
		ext := filepath.Ext(path)
		envPath := strings.TrimSuffix(path, ext) + "." + env + ext
		if err := overlayFile(cfg, envPath, true); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// overlayFile decodes path into cfg. YAML only overwrites keys present in
// the file, so prior values act as per-field defaults.
func overlayFile(cfg *Config, path string, optional bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if optional && os.IsNotExist(err) {
			return nil
		}
		if os.IsNotExist(err) {
			// Base file absent: run on defaults.
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

// Validate rejects configurations that would break the pipeline's
// invariants.
func (c *Config) Validate() error {
	if c.Spiral.MinPoints < 3 {
		return fmt.Errorf("config: spiral.min_points must be at least 3 (tessellation minimum), got %d", c.Spiral.MinPoints)
	}
	if c.Spiral.MaxPoints < c.Spiral.MinPoints {
		return fmt.Errorf("config: spiral.max_points (%d) below spiral.min_points (%d)", c.Spiral.MaxPoints, c.Spiral.MinPoints)
	}
	if c.Spiral.DefaultPoints < c.Spiral.MinPoints || c.Spiral.DefaultPoints > c.Spiral.MaxPoints {
		return fmt.Errorf("config: spiral.default_points (%d) outside [%d, %d]", c.Spiral.DefaultPoints, c.Spiral.MinPoints, c.Spiral.MaxPoints)
	}
	if c.Spiral.MaxAngleRange <= 0 {
		return fmt.Errorf("config: spiral.max_angle_range must be positive, got %g", c.Spiral.MaxAngleRange)
	}
	if c.Limits.Padding < 1 {
		return fmt.Errorf("config: limits.padding must be at least 1, got %g", c.Limits.Padding)
	}
	if c.Limits.Default <= 0 {
		return fmt.Errorf("config: limits.default must be positive, got %g", c.Limits.Default)
	}
	switch c.Cache.Store {
	case "", "badger", "flat":
	default:
		return fmt.Errorf("config: cache.store must be \"badger\", \"flat\" or empty, got %q", c.Cache.Store)
	}
	if c.Export.PNGSize <= 0 {
		return fmt.Errorf("config: export.png_size must be positive, got %d", c.Export.PNGSize)
	}
	return nil
}
