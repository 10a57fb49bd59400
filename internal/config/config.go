// Package config loads the takeoff CLI configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultFile is read when no --config flag is given. It may be absent.
const DefaultFile = ".takeoff.yaml"

// Config holds CLI settings. Command-line flags override these values.
type Config struct {
	// Unit is the default display unit: ft, m or in (default "ft").
	Unit string `yaml:"unit"`

	// LogLevel is one of debug, info, warn, error (default "info").
	LogLevel string `yaml:"log_level"`

	// LogFormat is text or json (default "text").
	LogFormat string `yaml:"log_format"`

	// HTTPAddr is the listen address of `takeoff serve` (default ":8080").
	HTTPAddr string `yaml:"http_addr"`

	// ToolsBaseDir confines the PDF tools of `serve` and `mcp` to one directory.
	ToolsBaseDir string `yaml:"tools_base_dir"`

	// ParallelToleranceDeg is the angle under which two lines are parallel (default 5).
	ParallelToleranceDeg float64 `yaml:"parallel_tolerance_deg"`

	// DominanceThresholdPct flags a single area above this share of the page total (default 60).
	DominanceThresholdPct float64 `yaml:"dominance_threshold_pct"`

	// WatchDebounce delays re-rendering after a sheet is saved (default 300ms).
	WatchDebounce time.Duration `yaml:"watch_debounce"`
}

// Default returns a configuration with every default applied
func Default() Config {
	var c Config
	c.applyDefaults()
	return c
}

func (c *Config) applyDefaults() {
	if c.Unit == "" {
		c.Unit = "ft"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogFormat == "" {
		c.LogFormat = "text"
	}
	if c.HTTPAddr == "" {
		c.HTTPAddr = ":8080"
	}
	if c.ParallelToleranceDeg == 0 {
		c.ParallelToleranceDeg = 5
	}
	if c.DominanceThresholdPct == 0 {
		c.DominanceThresholdPct = 60
	}
	if c.WatchDebounce == 0 {
		c.WatchDebounce = 300 * time.Millisecond
	}
}

// Load reads a configuration file. An empty path reads DefaultFile if it
// exists and falls back to Default otherwise; an explicit path must exist.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file: %w", err)
	}
	if cfg.ParallelToleranceDeg < 0 || cfg.DominanceThresholdPct < 0 || cfg.WatchDebounce < 0 {
		return Config{}, fmt.Errorf("parsing config file: negative thresholds are not allowed")
	}

	cfg.applyDefaults()
	return cfg, nil
}
