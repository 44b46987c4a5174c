// Package config reads CLI settings from the environment.
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	LogLevel     string `env:"COREOBJ_LOG_LEVEL" envDefault:"warn"`
	NoColor      bool   `env:"COREOBJ_NO_COLOR"`
	DefaultClass string `env:"COREOBJ_DEFAULT_CLASS"`
}

func Load() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	if _, err := cfg.Level(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Level maps LogLevel onto a slog level.
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelWarn, fmt.Errorf("invalid COREOBJ_LOG_LEVEL %q: %w", c.LogLevel, err)
	}
	return level, nil
}
