// Chronoline - Session Replay Timeline and Playback Engine
// Copyright 2026 Chronoline Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/chronoline/chronoline

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/chronoline/chronoline/internal/logging"
)

// DefaultConfigPaths lists the paths where config files are searched in
// order of priority. The first file found wins.
var DefaultConfigPaths = []string{
	"chronoline.yaml",
	"chronoline.yml",
	"/etc/chronoline/config.yaml",
	"/etc/chronoline/config.yml",
}

// ConfigPathEnvVar overrides the config file path when set.
const ConfigPathEnvVar = "CHRONOLINE_CONFIG"

// envPrefix namespaces environment overrides, e.g.
// CHRONOLINE_ENGINE_MAX_ZOOM -> engine.max_zoom.
const envPrefix = "CHRONOLINE_"

// Config is the root configuration for the timeline engine and its host.
type Config struct {
	Engine  Engine         `koanf:"engine"`
	Logging logging.Config `koanf:"logging"`
}

// Engine holds the engine tunables. Every value has a working default;
// hosts override only what they need.
type Engine struct {
	// DebounceWindow is the quiet period used to coalesce bursts of
	// geometry/data events into a single window+bucket recompute.
	DebounceWindow time.Duration `koanf:"debounce_window" validate:"gt=0"`

	// MinPixelsPerBucket / MaxPixelsPerBucket bound the on-screen density
	// of timeline ticks. The window builder picks the smallest bucket size
	// from the nice ladder that keeps density inside this band.
	MinPixelsPerBucket int `koanf:"min_pixels_per_bucket" validate:"gt=0"`
	MaxPixelsPerBucket int `koanf:"max_pixels_per_bucket" validate:"gt=0"`

	// MaxZoom caps the zoom multiplier accepted by SetZoom. Zoom below 1
	// is always rejected by the scale mapper itself.
	MaxZoom float64 `koanf:"max_zoom" validate:"gte=1"`

	// DefaultSpeed is the playback speed a new session starts with.
	// MinSpeed and MaxSpeed bound what SetSpeed accepts.
	DefaultSpeed float64 `koanf:"default_speed" validate:"gt=0"`
	MinSpeed     float64 `koanf:"min_speed" validate:"gt=0"`
	MaxSpeed     float64 `koanf:"max_speed" validate:"gt=0"`
}

// defaultConfig returns a Config with all default values. Defaults are
// applied first, then overridden by the config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Engine: Engine{
			DebounceWindow:     50 * time.Millisecond,
			MinPixelsPerBucket: 8,
			MaxPixelsPerBucket: 20,
			MaxZoom:            32,
			DefaultSpeed:       1,
			MinSpeed:           0.25,
			MaxSpeed:           16,
		},
		Logging: logging.DefaultConfig(),
	}
}

// Default returns the built-in configuration without touching the
// filesystem or environment. Library consumers that do not want the
// file/env layers start here and override fields directly.
func Default() *Config {
	return defaultConfig()
}

// Load builds the configuration in three layers: struct defaults, an
// optional YAML file, then environment variables (highest priority).
func Load() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: config file (optional)
	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	// Layer 3: environment variables
	// CHRONOLINE_ENGINE_DEBOUNCE_WINDOW -> engine.debounce_window
	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(s, envPrefix)
		s = strings.ToLower(s)
		return strings.Replace(s, "_", ".", 1)
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first existing config file path, or "".
func findConfigFile() string {
	if path := os.Getenv(ConfigPathEnvVar); path != "" {
		return path
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// Validate checks struct tags plus the cross-field constraints the tag
// language cannot express.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}

	e := c.Engine
	if e.MaxPixelsPerBucket <= e.MinPixelsPerBucket {
		return fmt.Errorf("engine.max_pixels_per_bucket (%d) must exceed engine.min_pixels_per_bucket (%d)",
			e.MaxPixelsPerBucket, e.MinPixelsPerBucket)
	}
	if e.MinSpeed > e.MaxSpeed {
		return fmt.Errorf("engine.min_speed (%v) must not exceed engine.max_speed (%v)", e.MinSpeed, e.MaxSpeed)
	}
	if e.DefaultSpeed < e.MinSpeed || e.DefaultSpeed > e.MaxSpeed {
		return fmt.Errorf("engine.default_speed (%v) must lie within [min_speed, max_speed] = [%v, %v]",
			e.DefaultSpeed, e.MinSpeed, e.MaxSpeed)
	}
	return nil
}
