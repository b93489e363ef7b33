// SPDX-License-Identifier: MIT
// Copyright (c) 2026 the scip authors

package bridge

import (
	"context"
	"testing"
	"time"
)

// fakePort simulates a serial port whose bytes arrive in bursts.
type fakePort struct {
	inbound  []byte
	written  []byte
	readyErr error
	readErr  error
	writeErr error
	closed   bool
}

// feed queues bytes as if they had arrived on the wire.
func (p *fakePort) feed(data string) {
	p.inbound = append(p.inbound, data...)
}

func (p *fakePort) ReadyToRead() (uint32, error) {
	if p.readyErr != nil {
		return 0, p.readyErr
	}
	return uint32(len(p.inbound)), nil
}

func (p *fakePort) Read(buf []byte) (int, error) {
	if p.readErr != nil {
		return 0, p.readErr
	}
	if len(p.inbound) == 0 || len(buf) == 0 {
		return 0, nil
	}
	n := copy(buf, p.inbound)
	p.inbound = p.inbound[n:]
	return n, nil
}

func (p *fakePort) Write(buf []byte) (int, error) {
	if p.writeErr != nil {
		return 0, p.writeErr
	}
	p.written = append(p.written, buf...)
	return len(buf), nil
}

func (p *fakePort) Close() error {
	p.closed = true
	return nil
}

// fakeCharacteristic records writes and serves a settable read value.
type fakeCharacteristic struct {
	value    []byte
	readErr  error
	writeErr error
	writes   [][]byte
}

func (c *fakeCharacteristic) Read(p []byte) (int, error) {
	if c.readErr != nil {
		return 0, c.readErr
	}
	return copy(p, c.value), nil
}

func (c *fakeCharacteristic) Write(p []byte) error {
	if c.writeErr != nil {
		return c.writeErr
	}
	cp := make([]byte, len(p))
	copy(cp, p)
	c.writes = append(c.writes, cp)
	return nil
}

// flat concatenates all recorded writes.
func (c *fakeCharacteristic) flat() []byte {
	var out []byte
	for _, w := range c.writes {
		out = append(out, w...)
	}
	return out
}

// fakePeripheral exposes a configurable set of characteristics.
type fakePeripheral struct {
	addr         string
	chars        map[string]*fakeCharacteristic // keyed by characteristic UUID
	disconnected bool
}

func newFakePeripheral(addr string, withTX bool) *fakePeripheral {
	chars := map[string]*fakeCharacteristic{
		RXCharacteristicUUID: {},
	}
	if withTX {
		chars[TXCharacteristicUUID] = &fakeCharacteristic{}
	}
	return &fakePeripheral{addr: addr, chars: chars}
}

func (p *fakePeripheral) Address() string { return p.addr }

func (p *fakePeripheral) DiscoverCharacteristic(serviceUUID, charUUID string) (Characteristic, error) {
	if serviceUUID != ServiceUUID {
		return nil, ErrMissingService
	}
	c, ok := p.chars[charUUID]
	if !ok {
		return nil, ErrMissingCharacteristic
	}
	return c, nil
}

func (p *fakePeripheral) Disconnect() error {
	p.disconnected = true
	return nil
}

func (p *fakePeripheral) rx() *fakeCharacteristic { return p.chars[RXCharacteristicUUID] }
func (p *fakePeripheral) tx() *fakeCharacteristic { return p.chars[TXCharacteristicUUID] }

// fakeCentral serves a scripted sequence of discovery results.
type fakeCentral struct {
	peripherals []*fakePeripheral // consumed in order by FindPeripheral
	enableErr   error
	enabled     int
	scanErr     error
}

func (c *fakeCentral) Enable() error {
	if c.enableErr != nil {
		return c.enableErr
	}
	c.enabled++
	return nil
}

func (c *fakeCentral) FindPeripheral(_ context.Context, _ string, filter string) (string, error) {
	if c.scanErr != nil {
		return "", c.scanErr
	}
	for _, p := range c.peripherals {
		if filter != "" && p.addr != filter {
			continue
		}
		return p.addr, nil
	}
	return "", ErrDiscoveryTimeout
}

func (c *fakeCentral) Connect(_ context.Context, addr string) (Peripheral, error) {
	for i, p := range c.peripherals {
		if p.addr == addr {
			// Consumed: a rejected candidate is not rediscovered.
			c.peripherals = append(c.peripherals[:i], c.peripherals[i+1:]...)
			return p, nil
		}
	}
	return nil, ErrNotConnected
}

// fakeClock advances instantly instead of sleeping.
type fakeClock struct {
	now     time.Time
	onSleep func()
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Sleep(d time.Duration) {
	c.now = c.now.Add(d)
	if c.onSleep != nil {
		c.onSleep()
	}
}

func TestFakePortImplementsPort(t *testing.T) {
	var _ Port = (*fakePort)(nil)
}

func TestFakeCentralImplementsCentral(t *testing.T) {
	var _ Central = (*fakeCentral)(nil)
	var _ Peripheral = (*fakePeripheral)(nil)
	var _ Characteristic = (*fakeCharacteristic)(nil)
}
