// SPDX-License-Identifier: MIT
// Copyright (c) 2026 the scip authors

package bridge

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the bridge's tunables. All durations are milliseconds in
// the file.
type Config struct {
	PollIntervalMs    int    `yaml:"poll_interval_ms"`
	ScanTimeoutMs     int    `yaml:"scan_timeout_ms"`
	SerialTimeoutMs   int    `yaml:"serial_timeout_ms"`
	BaudRate          int    `yaml:"baud_rate"`
	PeripheralAddress string `yaml:"peripheral_address"` // empty accepts any
	LogLevel          string `yaml:"log_level"`
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		PollIntervalMs:  20,
		ScanTimeoutMs:   5000,
		SerialTimeoutMs: 500,
		BaudRate:        115200,
		LogLevel:        "info",
	}
}

// LoadConfig reads a YAML config file over the defaults. Missing fields
// keep their default values.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the config for invalid values.
func (c Config) Validate() error {
	if c.PollIntervalMs <= 0 {
		return fmt.Errorf("poll_interval_ms must be > 0")
	}
	if c.ScanTimeoutMs <= 0 {
		return fmt.Errorf("scan_timeout_ms must be > 0")
	}
	if c.SerialTimeoutMs <= 0 {
		return fmt.Errorf("serial_timeout_ms must be > 0")
	}
	if c.BaudRate <= 0 {
		return fmt.Errorf("baud_rate must be > 0")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be debug, info, warn, or error, got %q", c.LogLevel)
	}
	return nil
}

func (c Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalMs) * time.Millisecond
}

func (c Config) ScanTimeout() time.Duration {
	return time.Duration(c.ScanTimeoutMs) * time.Millisecond
}

func (c Config) SerialTimeout() time.Duration {
	return time.Duration(c.SerialTimeoutMs) * time.Millisecond
}
