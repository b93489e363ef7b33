// SPDX-License-Identifier: MIT
// Copyright (c) 2026 the scip authors

package bridge

import (
	"context"
	"errors"
)

// Channel and transport sentinels.
var (
	// ErrNoData reports that a poll produced nothing; it is the normal idle
	// result for both channel adapters, not a failure.
	ErrNoData = errors.New("no data available")

	// ErrSerial marks a serial transport failure. The wired link is assumed
	// stable, so the orchestrator treats these as fatal to the process.
	ErrSerial = errors.New("serial transport failure")

	// ErrBluetooth marks a wireless transport failure; the orchestrator
	// recovers by resetting the wireless state.
	ErrBluetooth = errors.New("bluetooth transport failure")

	ErrNotConnected          = errors.New("not connected")
	ErrMissingService        = errors.New("the service needed could not be found")
	ErrMissingCharacteristic = errors.New("the characteristics needed could not be found")
	ErrDiscoveryTimeout      = errors.New("discovery timed out")
)

// Characteristic is one GATT attribute on a connected peripheral.
type Characteristic interface {
	// Read fills p with the characteristic's current value and returns the
	// number of bytes read.
	Read(p []byte) (int, error)
	// Write sends data to the characteristic.
	Write(p []byte) error
}

// Peripheral is an active connection to a wireless UART device.
type Peripheral interface {
	// Address returns the peripheral's address string.
	Address() string
	// DiscoverCharacteristic finds a characteristic by UUID within a service.
	DiscoverCharacteristic(serviceUUID, charUUID string) (Characteristic, error)
	// Disconnect terminates the connection.
	Disconnect() error
}

// Central abstracts the BLE hardware adapter so the orchestrator stays
// transport-agnostic and testable against a fake.
type Central interface {
	// Enable powers on the adapter. Called again on every reconnect.
	Enable() error
	// FindPeripheral scans for the first peripheral advertising the given
	// service UUID, optionally filtered by address (empty accepts any),
	// until found or ctx is done.
	FindPeripheral(ctx context.Context, serviceUUID, addressFilter string) (string, error)
	// Connect establishes a connection to the peripheral at addr.
	Connect(ctx context.Context, addr string) (Peripheral, error)
}
