package config

import (
	"errors"
	"log/slog"
	"testing"
)

func TestFromEnv(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		c, err := FromEnv(env(nil))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if c != Default() {
			t.Errorf("expected the defaults but found %+v", c)
		}
		if err := c.Validate(); err != nil {
			t.Errorf("expected the defaults to be valid but found %v", err)
		}
	})
	t.Run("Overrides", func(t *testing.T) {
		c, err := FromEnv(env(map[string]string{
			EnvSurfaceID:    "track",
			EnvSurfaceWidth: "1000",
			EnvFPS:          "30",
			EnvSeed:         "42",
			EnvLogLevel:     "debug",
			EnvLogFile:      "race.log",
		}))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if c.SurfaceID != "track" || c.SurfaceWidth != 1000 || c.FPS != 30 || c.Seed != 42 || c.LogFile != "race.log" {
			t.Errorf("expected the environment to win but found %+v", c)
		}
		if c.LogLevel != slog.LevelDebug {
			t.Errorf("expected level %s but found %s", slog.LevelDebug, c.LogLevel)
		}
		if c.SurfaceHeight != 600 || c.CellWidth != 10 || c.CellHeight != 20 {
			t.Errorf("expected unset fields to keep their defaults but found %+v", c)
		}
	})
	t.Run("Invalid", func(t *testing.T) {
		for key, value := range map[string]string{
			EnvSurfaceWidth:  "wide",
			EnvSurfaceHeight: "1e",
			EnvCellWidth:     "x",
			EnvCellHeight:    "?",
			EnvFPS:           "fast",
			EnvSeed:          "1.5",
			EnvLogLevel:      "loud",
		} {
			if _, err := FromEnv(env(map[string]string{key: value})); !errors.Is(err, ErrInvalidValue) {
				t.Errorf("expected ErrInvalidValue for %s=%q but found %v", key, value, err)
			}
		}
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
	}{
		{"SurfaceWidth", func(c *Config) { c.SurfaceWidth = -1 }},
		{"CellHeight", func(c *Config) { c.CellHeight = -20 }},
		{"FPS", func(c *Config) { c.FPS = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.modify(&c)
			if err := c.Validate(); !errors.Is(err, ErrInvalidValue) {
				t.Errorf("expected ErrInvalidValue but found %v", err)
			}
		})
	}
}

func env(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}
