// Chronoline - Session Replay Timeline and Playback Engine
// Copyright 2026 Chronoline Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/chronoline/chronoline

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default configuration rejected: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero debounce window", func(c *Config) { c.Engine.DebounceWindow = 0 }},
		{"negative min pixels", func(c *Config) { c.Engine.MinPixelsPerBucket = -1 }},
		{"density band inverted", func(c *Config) {
			c.Engine.MinPixelsPerBucket = 20
			c.Engine.MaxPixelsPerBucket = 8
		}},
		{"density band collapsed", func(c *Config) {
			c.Engine.MinPixelsPerBucket = 10
			c.Engine.MaxPixelsPerBucket = 10
		}},
		{"max zoom below one", func(c *Config) { c.Engine.MaxZoom = 0.5 }},
		{"speed bounds inverted", func(c *Config) {
			c.Engine.MinSpeed = 8
			c.Engine.MaxSpeed = 2
			c.Engine.DefaultSpeed = 4
		}},
		{"default speed out of bounds", func(c *Config) { c.Engine.DefaultSpeed = 100 }},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

// writeConfigFile drops a YAML config in a temp dir and points the
// config-path env var at it so Load is independent of the working
// directory.
func writeConfigFile(t *testing.T, content string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chronoline.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)
}

func TestLoadDefaults(t *testing.T) {
	writeConfigFile(t, "") // empty file, defaults all the way through

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Engine.DebounceWindow != 50*time.Millisecond {
		t.Errorf("DebounceWindow = %v, want 50ms", cfg.Engine.DebounceWindow)
	}
	if cfg.Engine.MinPixelsPerBucket != 8 || cfg.Engine.MaxPixelsPerBucket != 20 {
		t.Errorf("density band = [%d, %d], want [8, 20]",
			cfg.Engine.MinPixelsPerBucket, cfg.Engine.MaxPixelsPerBucket)
	}
	if cfg.Engine.MaxZoom != 32 || cfg.Engine.DefaultSpeed != 1 {
		t.Errorf("MaxZoom = %v, DefaultSpeed = %v", cfg.Engine.MaxZoom, cfg.Engine.DefaultSpeed)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Errorf("logging defaults = %q/%q, want info/json", cfg.Logging.Level, cfg.Logging.Format)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	writeConfigFile(t, `
engine:
  max_zoom: 8
  debounce_window: 75ms
logging:
  level: debug
`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Engine.MaxZoom != 8 {
		t.Errorf("MaxZoom = %v, want 8 from file", cfg.Engine.MaxZoom)
	}
	if cfg.Engine.DebounceWindow != 75*time.Millisecond {
		t.Errorf("DebounceWindow = %v, want 75ms from file", cfg.Engine.DebounceWindow)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug from file", cfg.Logging.Level)
	}
	// Untouched fields keep their defaults.
	if cfg.Engine.MaxSpeed != 16 {
		t.Errorf("MaxSpeed = %v, want default 16", cfg.Engine.MaxSpeed)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	writeConfigFile(t, "engine:\n  max_zoom: 8\n")
	t.Setenv("CHRONOLINE_ENGINE_MAX_ZOOM", "64")
	t.Setenv("CHRONOLINE_ENGINE_DEBOUNCE_WINDOW", "120ms")
	t.Setenv("CHRONOLINE_LOGGING_FORMAT", "console")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Engine.MaxZoom != 64 {
		t.Errorf("MaxZoom = %v, want env override 64", cfg.Engine.MaxZoom)
	}
	if cfg.Engine.DebounceWindow != 120*time.Millisecond {
		t.Errorf("DebounceWindow = %v, want env override 120ms", cfg.Engine.DebounceWindow)
	}
	if cfg.Logging.Format != "console" {
		t.Errorf("Logging.Format = %q, want env override console", cfg.Logging.Format)
	}
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	writeConfigFile(t, "engine:\n  min_pixels_per_bucket: 30\n")

	if _, err := Load(); err == nil {
		t.Error("Load accepted a density band with min above max")
	}
}
