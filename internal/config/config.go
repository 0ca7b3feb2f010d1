// SPDX-License-Identifier: EPL-2.0

// Package config loads runtime settings for the command line tool.
//
// Values come from, in increasing order of precedence: built-in defaults,
// a .env file in the working directory, SKTAPES_* environment variables
// and the YAML file named by SKTAPES_CONFIG.
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

var (
	ErrInvalidWorkers    = errors.New("decode workers must be at least 1")
	ErrInvalidBufferSize = errors.New("buffer size must be at least 2 samples")
	ErrInvalidTarget     = errors.New("normalize target must be at or below 0 dBFS")
	ErrInvalidCrossfade  = errors.New("loop crossfade must not be negative")
)

type Log struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSize    int    `yaml:"max_size"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAge     int    `yaml:"max_age"`
	Compress   bool   `yaml:"compress"`
}

type Ingest struct {
	Workers    int `yaml:"workers"`
	BufferSize int `yaml:"buffer_size"`
}

type Edit struct {
	NormalizeTargetDB float64 `yaml:"normalize_target_db"`
	LoopCrossfade     float64 `yaml:"loop_crossfade"`
}

type Export struct {
	Dir string `yaml:"dir"`
}

// Config stores the application configuration.
type Config struct {
	Log    Log    `yaml:"log"`
	Ingest Ingest `yaml:"ingest"`
	Edit   Edit   `yaml:"edit"`
	Export Export `yaml:"export"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Log: Log{
			Level:      "info",
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
		},
		Ingest: Ingest{
			Workers:    runtime.NumCPU(),
			BufferSize: 4096,
		},
		Edit: Edit{
			NormalizeTargetDB: -1,
			LoopCrossfade:     0.05,
		},
		Export: Export{
			Dir: ".",
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

// Load reads the configuration. A missing .env file is not an error; a
// missing or malformed SKTAPES_CONFIG file is.
func Load() (*Config, error) {
	// does not override variables already set
	_ = godotenv.Load()

	cfg := Default()
	cfg.Log.Level = getEnv("SKTAPES_LOG_LEVEL", cfg.Log.Level)
	cfg.Log.File = getEnv("SKTAPES_LOG_FILE", cfg.Log.File)
	cfg.Log.MaxSize = getEnvInt("SKTAPES_LOG_MAX_SIZE", cfg.Log.MaxSize)
	cfg.Log.MaxBackups = getEnvInt("SKTAPES_LOG_MAX_BACKUPS", cfg.Log.MaxBackups)
	cfg.Log.MaxAge = getEnvInt("SKTAPES_LOG_MAX_AGE", cfg.Log.MaxAge)
	cfg.Log.Compress = getEnvBool("SKTAPES_LOG_COMPRESS", cfg.Log.Compress)
	cfg.Ingest.Workers = getEnvInt("SKTAPES_DECODE_WORKERS", cfg.Ingest.Workers)
	cfg.Ingest.BufferSize = getEnvInt("SKTAPES_BUFFER_SIZE", cfg.Ingest.BufferSize)
	cfg.Edit.NormalizeTargetDB = getEnvFloat("SKTAPES_NORMALIZE_TARGET_DB", cfg.Edit.NormalizeTargetDB)
	cfg.Edit.LoopCrossfade = getEnvFloat("SKTAPES_LOOP_CROSSFADE", cfg.Edit.LoopCrossfade)
	cfg.Export.Dir = getEnv("SKTAPES_EXPORT_DIR", cfg.Export.Dir)

	if path := os.Getenv("SKTAPES_CONFIG"); path != "" {
		if err := cfg.overlay(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// overlay replaces the fields present in the YAML file at path.
func (c *Config) overlay(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) Validate() error {
	switch {
	case c.Ingest.Workers < 1:
		return ErrInvalidWorkers
	case c.Ingest.BufferSize < 2:
		return ErrInvalidBufferSize
	case c.Edit.NormalizeTargetDB > 0:
		return ErrInvalidTarget
	case c.Edit.LoopCrossfade < 0:
		return ErrInvalidCrossfade
	}
	return nil
}
