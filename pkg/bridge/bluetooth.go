// SPDX-License-Identifier: MIT
// Copyright (c) 2026 the scip authors

package bridge

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"tinygo.org/x/bluetooth"
)

// BluetoothCentral implements Central on tinygo.org/x/bluetooth.
//
// The platform stack offers no way to power the adapter off, so the
// power-cycle on reconnect degrades to re-enabling it.
type BluetoothCentral struct {
	adapter *bluetooth.Adapter
}

// NewBluetoothCentral returns a Central backed by the default adapter.
func NewBluetoothCentral() *BluetoothCentral {
	return &BluetoothCentral{adapter: bluetooth.DefaultAdapter}
}

func (c *BluetoothCentral) Enable() error {
	if err := c.adapter.Enable(); err != nil {
		return fmt.Errorf("%w: enable adapter: %v", ErrBluetooth, err)
	}
	return nil
}

func (c *BluetoothCentral) FindPeripheral(ctx context.Context, serviceUUID, addressFilter string) (string, error) {
	uuid, err := bluetooth.ParseUUID(serviceUUID)
	if err != nil {
		return "", fmt.Errorf("%w: parse service UUID: %v", ErrBluetooth, err)
	}

	var mu sync.Mutex
	var found string

	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			c.adapter.StopScan()
		case <-done:
		}
	}()

	err = c.adapter.Scan(func(adapter *bluetooth.Adapter, result bluetooth.ScanResult) {
		if !result.HasServiceUUID(uuid) {
			return
		}
		addr := result.Address.String()
		if addressFilter != "" && !strings.EqualFold(addr, addressFilter) {
			return
		}
		mu.Lock()
		found = addr
		mu.Unlock()
		adapter.StopScan()
	})
	close(done)

	if err != nil && ctx.Err() == nil {
		return "", fmt.Errorf("%w: scan: %v", ErrBluetooth, err)
	}

	mu.Lock()
	defer mu.Unlock()
	if found == "" {
		return "", ErrDiscoveryTimeout
	}
	return found, nil
}

func (c *BluetoothCentral) Connect(ctx context.Context, addr string) (Peripheral, error) {
	var address bluetooth.Address
	address.Set(addr)

	// The underlying Connect blocks with its own timeout; wrap it so our
	// ctx deadline is also respected.
	type connectResult struct {
		device bluetooth.Device
		err    error
	}
	ch := make(chan connectResult, 1)
	go func() {
		device, err := c.adapter.Connect(address, bluetooth.ConnectionParams{})
		ch <- connectResult{device, err}
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: connect to %s: %v", ErrBluetooth, addr, ctx.Err())
	case result := <-ch:
		if result.err != nil {
			return nil, fmt.Errorf("%w: connect to %s: %v", ErrBluetooth, addr, result.err)
		}
		return &bluetoothPeripheral{device: result.device}, nil
	}
}

// Compile-time check that BluetoothCentral implements Central.
var _ Central = (*BluetoothCentral)(nil)

type bluetoothPeripheral struct {
	device bluetooth.Device
}

func (p *bluetoothPeripheral) Address() string {
	return p.device.Address.String()
}

func (p *bluetoothPeripheral) DiscoverCharacteristic(serviceUUID, charUUID string) (Characteristic, error) {
	svcUUID, err := bluetooth.ParseUUID(serviceUUID)
	if err != nil {
		return nil, fmt.Errorf("%w: parse service UUID: %v", ErrBluetooth, err)
	}
	chUUID, err := bluetooth.ParseUUID(charUUID)
	if err != nil {
		return nil, fmt.Errorf("%w: parse characteristic UUID: %v", ErrBluetooth, err)
	}

	svcs, err := p.device.DiscoverServices([]bluetooth.UUID{svcUUID})
	if err != nil || len(svcs) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingService, serviceUUID)
	}

	chars, err := svcs[0].DiscoverCharacteristics([]bluetooth.UUID{chUUID})
	if err != nil || len(chars) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingCharacteristic, charUUID)
	}

	return &bluetoothCharacteristic{char: chars[0]}, nil
}

func (p *bluetoothPeripheral) Disconnect() error {
	return p.device.Disconnect()
}

type bluetoothCharacteristic struct {
	char bluetooth.DeviceCharacteristic
}

func (c *bluetoothCharacteristic) Read(p []byte) (int, error) {
	n, err := c.char.Read(p)
	if err != nil {
		return 0, fmt.Errorf("%w: read characteristic: %v", ErrBluetooth, err)
	}
	return n, nil
}

func (c *bluetoothCharacteristic) Write(p []byte) error {
	if _, err := c.char.WriteWithoutResponse(p); err != nil {
		return fmt.Errorf("%w: write characteristic: %v", ErrBluetooth, err)
	}
	return nil
}
