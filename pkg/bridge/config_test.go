// SPDX-License-Identifier: MIT
// Copyright (c) 2026 the scip authors

package bridge

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bridge.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
	if cfg.PollInterval() != 20*time.Millisecond {
		t.Fatalf("poll interval = %v", cfg.PollInterval())
	}
	if cfg.ScanTimeout() != 5*time.Second {
		t.Fatalf("scan timeout = %v", cfg.ScanTimeout())
	}
	if cfg.BaudRate != 115200 {
		t.Fatalf("baud rate = %d", cfg.BaudRate)
	}
}

func TestLoadConfigOverlaysDefaults(t *testing.T) {
	path := writeConfigFile(t, "scan_timeout_ms: 10000\nperipheral_address: \"AA:BB:CC:DD:EE:FF\"\n")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.ScanTimeoutMs != 10000 {
		t.Fatalf("scan_timeout_ms = %d", cfg.ScanTimeoutMs)
	}
	if cfg.PeripheralAddress != "AA:BB:CC:DD:EE:FF" {
		t.Fatalf("peripheral_address = %q", cfg.PeripheralAddress)
	}
	// Untouched fields keep their defaults.
	if cfg.PollIntervalMs != 20 {
		t.Fatalf("poll_interval_ms = %d", cfg.PollIntervalMs)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"zero poll interval", "poll_interval_ms: 0\n"},
		{"negative baud rate", "baud_rate: -1\n"},
		{"bad log level", "log_level: loud\n"},
		{"malformed yaml", "poll_interval_ms: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfigFile(t, tt.content)
			if _, err := LoadConfig(path); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
