// SPDX-License-Identifier: MIT
// Copyright (c) 2026 the scip authors

// Package bridge relays SCIP frames between a local serial port and a
// wireless UART peripheral reached over BLE GATT. The serial side is owned
// for the life of the process; the wireless side is connected and torn
// down on command and replaced wholesale on every reconnect.
package bridge

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/example/scip/pkg/scip"
)

// State is the wireless connection state, owned exclusively by the bridge.
type State int

const (
	StateDisconnected State = iota
	StateDiscovering
	StateConnected
)

func (s State) String() string {
	switch s {
	case StateDiscovering:
		return "discovering"
	case StateConnected:
		return "connected"
	default:
		return "disconnected"
	}
}

// Clock abstracts time so ticks can be driven deterministically in tests.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type realClock struct{}

func (realClock) Now() time.Time        { return time.Now() }
func (realClock) Sleep(d time.Duration) { time.Sleep(d) }

// Bridge pumps bytes between the serial channel and the BLE channel,
// intercepting bridge-addressed control frames. It is a single cooperative
// loop: exactly one tick executes at a time, so no internal locking is
// needed.
type Bridge struct {
	cfg     Config
	serial  *SerialChannel
	central Central
	clock   Clock
	log     zerolog.Logger

	state      State
	peripheral Peripheral
	ble        *BLEChannel
}

// New creates a bridge over an already-open serial channel.
func New(cfg Config, serial *SerialChannel, central Central, logger zerolog.Logger) *Bridge {
	return &Bridge{
		cfg:     cfg,
		serial:  serial,
		central: central,
		clock:   realClock{},
		log:     logger,
		state:   StateDisconnected,
	}
}

// WithClock swaps the clock, for deterministic tests.
func (b *Bridge) WithClock(clock Clock) *Bridge {
	b.clock = clock
	return b
}

// State returns the current wireless connection state.
func (b *Bridge) State() State {
	return b.state
}

// Run ticks until ctx is cancelled or the serial transport fails. A
// wireless failure inside a tick is logged and converted into a full
// wireless-state reset; it never tears down the serial side.
func (b *Bridge) Run(ctx context.Context) error {
	b.log.Info().
		Str("service_uuid", ServiceUUID).
		Dur("poll_interval", b.cfg.PollInterval()).
		Msg("bridge running")

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := b.Tick(ctx); err != nil {
			if errors.Is(err, ErrSerial) {
				return err
			}
			b.log.Warn().Err(err).Msg("tick failed, resetting wireless state")
			b.resetWireless()
		}

		b.clock.Sleep(b.cfg.PollInterval())
	}
}

// Tick performs one iteration: wireless to serial, then serial to
// wireless or local command handling.
func (b *Bridge) Tick(ctx context.Context) error {
	if b.state == StateConnected {
		data, err := b.ble.Poll()
		switch {
		case err == nil:
			b.log.Debug().Str("data", data).Msg("wireless -> serial")
			if err := b.serial.WriteString(data); err != nil {
				return err
			}
		case errors.Is(err, ErrNoData):
			// level-triggered read, unchanged value
		default:
			return err
		}
	}

	line, err := b.serial.PollLine()
	if errors.Is(err, ErrNoData) {
		return nil
	}
	if err != nil {
		return err
	}

	if len(line) > 0 && scip.TransitMode(line[0]) == scip.ClientToBridgeRequest {
		// Addressed to the bridge itself; never forwarded.
		return b.handleLocal(ctx, line)
	}

	if b.state != StateConnected {
		b.log.Debug().Str("line", line).Msg("not connected, discarding serial line")
		return nil
	}

	b.log.Debug().Str("line", line).Msg("serial -> wireless")
	return b.ble.WriteString(line + "\n")
}

// handleLocal decodes and executes a bridge-addressed control frame.
// A malformed frame is logged and dropped; it is not a transport failure.
func (b *Bridge) handleLocal(ctx context.Context, line string) error {
	frame, err := scip.DecodeFrame(line)
	if err != nil {
		b.log.Warn().Err(err).Str("line", line).Msg("dropping malformed bridge command")
		return nil
	}

	switch frame.Command {
	case scip.CommandConnect:
		return b.connect(ctx)
	case scip.CommandDisconnect:
		b.log.Info().Msg("disconnecting by request")
		b.resetWireless()
		return nil
	case scip.CommandBluetoothStatus:
		return b.writeBluetoothStatus()
	default:
		b.log.Warn().Err(&scip.UnknownCommandError{Command: frame.Command}).
			Msg("dropping non-bridge command with bridge marker")
		return nil
	}
}

// connect drives Disconnected -> Discovering -> Connected. On any failure
// or on scan timeout the state falls back to Disconnected rather than
// blocking. The previous wireless handles are dropped first; nothing
// stale survives a reconnect.
func (b *Bridge) connect(ctx context.Context) error {
	b.resetWireless()
	b.state = StateDiscovering
	b.log.Info().Msg("connecting to wireless UART device")

	if err := b.central.Enable(); err != nil {
		b.state = StateDisconnected
		return err
	}

	deadline := b.clock.Now().Add(b.cfg.ScanTimeout())
	scanCtx, cancel := context.WithDeadline(ctx, deadline)
	defer cancel()

	for b.clock.Now().Before(deadline) {
		addr, err := b.central.FindPeripheral(scanCtx, ServiceUUID, b.cfg.PeripheralAddress)
		if errors.Is(err, ErrDiscoveryTimeout) || errors.Is(err, context.DeadlineExceeded) {
			break
		}
		if err != nil {
			b.state = StateDisconnected
			return err
		}

		peripheral, err := b.central.Connect(scanCtx, addr)
		if err != nil {
			b.log.Warn().Err(err).Str("addr", addr).Msg("connect failed, continuing discovery")
			continue
		}

		rx, tx, err := resolveCharacteristics(peripheral)
		if err != nil {
			// Candidate lacks a required characteristic; drop it and keep
			// discovering.
			b.log.Warn().Err(err).Str("addr", addr).Msg("candidate rejected")
			peripheral.Disconnect()
			continue
		}

		b.peripheral = peripheral
		b.ble = NewBLEChannel(rx, tx)
		b.state = StateConnected
		b.log.Info().Str("addr", addr).Msg("connected to wireless UART device")
		return nil
	}

	// Timeout is the normal fallback, not a tick failure.
	b.state = StateDisconnected
	b.log.Info().Msg("discovery timed out")
	return nil
}

// resolveCharacteristics looks up both required characteristics on a
// freshly connected candidate.
func resolveCharacteristics(p Peripheral) (rx, tx Characteristic, err error) {
	rx, err = p.DiscoverCharacteristic(ServiceUUID, RXCharacteristicUUID)
	if err != nil {
		return nil, nil, err
	}
	tx, err = p.DiscoverCharacteristic(ServiceUUID, TXCharacteristicUUID)
	if err != nil {
		return nil, nil, err
	}
	return rx, tx, nil
}

// writeBluetoothStatus answers a BLUETOOTHSTATUS request on the serial
// side.
func (b *Bridge) writeBluetoothStatus() error {
	response, err := scip.EncodeResponse(scip.CommandBluetoothStatus, scip.BluetoothStatusResponse{
		Connected: b.state == StateConnected,
	})
	if err != nil {
		return fmt.Errorf("encode bluetooth status: %w", err)
	}
	return b.serial.WriteString(response)
}

// resetWireless drops all wireless handles and the dedup baseline and
// returns the state to Disconnected. The serial side is untouched.
func (b *Bridge) resetWireless() {
	if b.peripheral != nil {
		if err := b.peripheral.Disconnect(); err != nil {
			b.log.Debug().Err(err).Msg("disconnect during reset")
		}
	}
	b.peripheral = nil
	b.ble = nil
	b.state = StateDisconnected
}
