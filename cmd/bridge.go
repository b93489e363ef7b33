// SPDX-License-Identifier: MIT
// Copyright (c) 2026 the scip authors

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/example/scip/pkg/bridge"
)

var bridgeConfigPath string

var bridgeCmd = &cobra.Command{
	Use:   "bridge <device>",
	Short: "Relay frames between a serial port and a wireless UART device",
	Long: `Bridge owns the given serial device and relays frames to and from a
BLE wireless UART peripheral. The wireless link is controlled in-band:
CONNECT, DISCONNECT and BLUETOOTHSTATUS lines on the serial side are
executed by the bridge itself and never forwarded.

Runs until interrupted or the serial device fails.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		device := args[0]

		cfg := bridge.DefaultConfig()
		if bridgeConfigPath != "" {
			var err error
			cfg, err = bridge.LoadConfig(bridgeConfigPath)
			if err != nil {
				return err
			}
		}

		level, err := zerolog.ParseLevel(cfg.LogLevel)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %v", cfg.LogLevel, err)
		}
		logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(level).
			With().Timestamp().Logger()

		port, err := bridge.OpenPort(device, cfg.BaudRate, cfg.SerialTimeout())
		if err != nil {
			return err
		}
		serial := bridge.NewSerialChannel(port)
		defer serial.Close()

		central := bridge.NewBluetoothCentral()
		b := bridge.New(cfg, serial, central, logger)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		err = b.Run(ctx)
		if errors.Is(err, context.Canceled) {
			logger.Info().Msg("bridge stopped")
			return nil
		}
		return err
	},
}

func init() {
	bridgeCmd.Flags().StringVarP(&bridgeConfigPath, "config", "c", "", "Bridge config file (YAML)")
	rootCmd.AddCommand(bridgeCmd)
}
