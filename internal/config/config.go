// Package config loads the camel race settings from the environment. A .env file in the working
// directory is loaded first if present; anything left unset falls back to Default.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"dario.cat/mergo"
	"github.com/joho/godotenv"
)

const (
	EnvSurfaceID     = "RACE_SURFACE_ID"
	EnvSurfaceWidth  = "RACE_SURFACE_WIDTH"
	EnvSurfaceHeight = "RACE_SURFACE_HEIGHT"
	EnvCellWidth     = "RACE_CELL_WIDTH"
	EnvCellHeight    = "RACE_CELL_HEIGHT"
	EnvFPS           = "RACE_FPS"
	EnvSeed          = "RACE_SEED"
	EnvLogFile       = "RACE_LOG_FILE"
	EnvLogLevel      = "RACE_LOG_LEVEL"
)

var ErrInvalidValue = errors.New("invalid configuration value")

// Config holds every setting of the application. Zero values mean "use the default".
type Config struct {
	SurfaceID     string  // SurfaceID is the identifier the race engine looks its surface up by
	SurfaceWidth  float64 // SurfaceWidth is the logical width of the track in pixels
	SurfaceHeight float64 // SurfaceHeight is the logical height of the track in pixels
	CellWidth     float64 // CellWidth is how many pixels wide a terminal cell is
	CellHeight    float64 // CellHeight is how many pixels tall a terminal cell is
	FPS           int     // FPS is the refresh rate the race is animated at
	Seed          int64   // Seed makes speed variations reproducible; 0 draws a fresh sequence
	LogFile       string  // LogFile is where logs are written
	LogLevel      slog.Level
}

// Default returns the configuration used for anything the environment does not set.
func Default() Config {
	return Config{
		SurfaceID:     "race-canvas",
		SurfaceWidth:  800,
		SurfaceHeight: 600,
		CellWidth:     10,
		CellHeight:    20,
		FPS:           60,
		LogFile:       "app.log",
		LogLevel:      slog.LevelInfo,
	}
}

// Load reads the optional .env file and the environment, then fills unset fields from Default.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("error loading .env file: %w", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a configuration from the given lookup function, filling unset fields from
// Default.
func FromEnv(getenv func(string) string) (Config, error) {
	var c Config
	var err error

	c.SurfaceID = getenv(EnvSurfaceID)
	c.LogFile = getenv(EnvLogFile)
	if c.SurfaceWidth, err = parseFloat(getenv, EnvSurfaceWidth); err != nil {
		return c, err
	}
	if c.SurfaceHeight, err = parseFloat(getenv, EnvSurfaceHeight); err != nil {
		return c, err
	}
	if c.CellWidth, err = parseFloat(getenv, EnvCellWidth); err != nil {
		return c, err
	}
	if c.CellHeight, err = parseFloat(getenv, EnvCellHeight); err != nil {
		return c, err
	}
	if c.FPS, err = parseInt(getenv, EnvFPS); err != nil {
		return c, err
	}
	seed, err := parseInt(getenv, EnvSeed)
	if err != nil {
		return c, err
	}
	c.Seed = int64(seed)
	if v := getenv(EnvLogLevel); v != "" {
		if err := c.LogLevel.UnmarshalText([]byte(strings.ToUpper(v))); err != nil {
			return c, fmt.Errorf("%w: %s=%q", ErrInvalidValue, EnvLogLevel, v)
		}
	}

	// slog.LevelInfo is the zero level, so an explicit INFO is indistinguishable from unset; both
	// mean the default level.
	if err := mergo.Merge(&c, Default()); err != nil {
		return c, fmt.Errorf("error applying configuration defaults: %w", err)
	}
	return c, nil
}

// Validate reports settings that cannot produce a drawable race.
func (c Config) Validate() error {
	switch {
	case c.SurfaceWidth <= 0 || c.SurfaceHeight <= 0:
		return fmt.Errorf("%w: surface size must be positive", ErrInvalidValue)
	case c.CellWidth <= 0 || c.CellHeight <= 0:
		return fmt.Errorf("%w: cell size must be positive", ErrInvalidValue)
	case c.FPS <= 0:
		return fmt.Errorf("%w: fps must be positive", ErrInvalidValue)
	}
	return nil
}

func parseFloat(getenv func(string) string, key string) (float64, error) {
	v := getenv(key)
	if v == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q", ErrInvalidValue, key, v)
	}
	return f, nil
}

func parseInt(getenv func(string) string, key string) (int, error) {
	v := getenv(key)
	if v == "" {
		return 0, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q", ErrInvalidValue, key, v)
	}
	return i, nil
}
