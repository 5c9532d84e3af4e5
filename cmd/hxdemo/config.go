package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/hxforge/pkg/logger"
)

// Config is the hxdemo configuration file.
type Config struct {
	Address         string              `yaml:"address"`
	ShutdownTimeout time.Duration       `yaml:"shutdown_timeout"`
	Log             logger.Config       `yaml:"log"`
	Sentry          logger.SentryConfig `yaml:"sentry"`
	Metrics         MetricsConfig       `yaml:"metrics"`
	Poll            PollConfig          `yaml:"poll"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// PollConfig controls the simulated background job.
type PollConfig struct {
	// Step is the progress added on every poll, in percent.
	Step int `yaml:"step"`
}

func defaultConfig() Config {
	return Config{
		Address:         ":8080",
		ShutdownTimeout: 10 * time.Second,
		Log:             logger.Config{Format: "json", Level: "info"},
		Metrics:         MetricsConfig{Enabled: true, Path: "/metrics"},
		Poll:            PollConfig{Step: 20},
	}
}

// loadConfig reads path over the defaults. An empty path returns the defaults.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	var errs []error
	if c.Address == "" {
		errs = append(errs, errors.New("address is required"))
	}
	if c.Poll.Step <= 0 || c.Poll.Step > 100 {
		errs = append(errs, fmt.Errorf("poll.step must be within 1..100, got %d", c.Poll.Step))
	}
	if c.Metrics.Enabled && c.Metrics.Path == "" {
		errs = append(errs, errors.New("metrics.path is required when metrics are enabled"))
	}
	return errors.Join(errs...)
}
