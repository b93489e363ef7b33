// SPDX-License-Identifier: MIT
// Copyright (c) 2026 the scip authors

package bridge

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func newTestBridge(central *fakeCentral) (*Bridge, *fakePort) {
	port := &fakePort{}
	b := New(DefaultConfig(), NewSerialChannel(port), central, zerolog.Nop())
	b.WithClock(&fakeClock{now: time.Unix(1000, 0)})
	return b, port
}

// connectBridge drives the bridge into the connected state through a
// serial CONNECT command.
func connectBridge(t *testing.T, b *Bridge, port *fakePort) {
	t.Helper()
	port.feed("^CONNECT${}${}\n")
	if err := b.Tick(context.Background()); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if b.State() != StateConnected {
		t.Fatalf("state = %v, want connected", b.State())
	}
}

func TestBridgeConnectCommand(t *testing.T) {
	peripheral := newFakePeripheral("AA:BB:CC:DD:EE:FF", true)
	central := &fakeCentral{peripherals: []*fakePeripheral{peripheral}}
	b, port := newTestBridge(central)

	connectBridge(t, b, port)

	if central.enabled != 1 {
		t.Fatalf("Enable called %d times, want 1", central.enabled)
	}
	// The command is bridge-local and must not reach the peripheral.
	if len(peripheral.tx().writes) != 0 {
		t.Fatalf("CONNECT was forwarded to the peripheral: %v", peripheral.tx().writes)
	}
}

func TestBridgeConnectTimeout(t *testing.T) {
	central := &fakeCentral{} // nothing advertising
	b, port := newTestBridge(central)

	port.feed("^CONNECT${}${}\n")
	if err := b.Tick(context.Background()); err != nil {
		t.Fatalf("timeout is not a tick failure, got %v", err)
	}
	if b.State() != StateDisconnected {
		t.Fatalf("state = %v, want disconnected", b.State())
	}
}

func TestBridgeConnectAddressFilter(t *testing.T) {
	wanted := newFakePeripheral("11:11:11:11:11:11", true)
	central := &fakeCentral{peripherals: []*fakePeripheral{
		newFakePeripheral("22:22:22:22:22:22", true),
		wanted,
	}}
	b, port := newTestBridge(central)
	b.cfg.PeripheralAddress = "11:11:11:11:11:11"

	connectBridge(t, b, port)

	if wanted.disconnected {
		t.Fatal("the selected peripheral was disconnected")
	}
}

func TestBridgeConnectRejectsIncompleteCandidate(t *testing.T) {
	incomplete := newFakePeripheral("AA:AA:AA:AA:AA:AA", false) // no TX characteristic
	complete := newFakePeripheral("BB:BB:BB:BB:BB:BB", true)
	central := &fakeCentral{peripherals: []*fakePeripheral{incomplete, complete}}
	b, port := newTestBridge(central)

	connectBridge(t, b, port)

	if !incomplete.disconnected {
		t.Fatal("rejected candidate was not disconnected")
	}
	if complete.disconnected {
		t.Fatal("accepted candidate was disconnected")
	}
}

func TestBridgeBluetoothStatus(t *testing.T) {
	central := &fakeCentral{}
	b, port := newTestBridge(central)

	port.feed("^BLUETOOTHSTATUS${}${}\n")
	if err := b.Tick(context.Background()); err != nil {
		t.Fatalf("Tick: %v", err)
	}

	response := string(port.written)
	if !strings.HasPrefix(response, "&BLUETOOTHSTATUS$"+`{"connected":false}`+"$") {
		t.Fatalf("response = %q", response)
	}
	if !strings.HasSuffix(response, "\n") {
		t.Fatalf("response not newline terminated: %q", response)
	}
}

func TestBridgeBluetoothStatusConnected(t *testing.T) {
	peripheral := newFakePeripheral("AA:BB:CC:DD:EE:FF", true)
	central := &fakeCentral{peripherals: []*fakePeripheral{peripheral}}
	b, port := newTestBridge(central)

	connectBridge(t, b, port)
	port.written = nil

	port.feed("^BLUETOOTHSTATUS${}${}\n")
	if err := b.Tick(context.Background()); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if !strings.HasPrefix(string(port.written), "&BLUETOOTHSTATUS$"+`{"connected":true}`+"$") {
		t.Fatalf("response = %q", string(port.written))
	}
}

func TestBridgeForwardsSerialToWireless(t *testing.T) {
	peripheral := newFakePeripheral("AA:BB:CC:DD:EE:FF", true)
	central := &fakeCentral{peripherals: []*fakePeripheral{peripheral}}
	b, port := newTestBridge(central)
	connectBridge(t, b, port)

	port.feed("?PING${}${}\n")
	if err := b.Tick(context.Background()); err != nil {
		t.Fatalf("Tick: %v", err)
	}

	tx := peripheral.tx()
	want := "?PING${}${}\n"
	if len(tx.writes) != len(want) {
		t.Fatalf("writes = %d, want %d one-byte chunks", len(tx.writes), len(want))
	}
	if got := string(tx.flat()); got != want {
		t.Fatalf("forwarded = %q, want %q", got, want)
	}
}

func TestBridgeDiscardsSerialWhenDisconnected(t *testing.T) {
	central := &fakeCentral{}
	b, port := newTestBridge(central)

	port.feed("?PING${}${}\n")
	if err := b.Tick(context.Background()); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if len(port.written) != 0 {
		t.Fatalf("unexpected serial write: %q", string(port.written))
	}
}

func TestBridgeForwardsWirelessToSerial(t *testing.T) {
	peripheral := newFakePeripheral("AA:BB:CC:DD:EE:FF", true)
	central := &fakeCentral{peripherals: []*fakePeripheral{peripheral}}
	b, port := newTestBridge(central)
	connectBridge(t, b, port)

	peripheral.rx().value = []byte("~PING${}${}\n")
	if err := b.Tick(context.Background()); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if got := string(port.written); got != "~PING${}${}\n" {
		t.Fatalf("serial got %q", got)
	}

	// A second tick re-reads the same characteristic value and must not
	// forward it again.
	port.written = nil
	if err := b.Tick(context.Background()); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if len(port.written) != 0 {
		t.Fatalf("duplicate forwarded: %q", string(port.written))
	}
}

func TestBridgeDisconnectCommand(t *testing.T) {
	peripheral := newFakePeripheral("AA:BB:CC:DD:EE:FF", true)
	central := &fakeCentral{peripherals: []*fakePeripheral{peripheral}}
	b, port := newTestBridge(central)
	connectBridge(t, b, port)

	port.feed("^DISCONNECT${}${}\n")
	if err := b.Tick(context.Background()); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if b.State() != StateDisconnected {
		t.Fatalf("state = %v, want disconnected", b.State())
	}
	if !peripheral.disconnected {
		t.Fatal("peripheral was not disconnected")
	}
}

func TestBridgeMalformedLocalCommandDropped(t *testing.T) {
	central := &fakeCentral{}
	b, port := newTestBridge(central)

	port.feed("^GARBAGE\n")
	if err := b.Tick(context.Background()); err != nil {
		t.Fatalf("malformed bridge command is not a tick failure, got %v", err)
	}
}

func TestBridgeTickSerialFailureIsFatal(t *testing.T) {
	central := &fakeCentral{}
	b, port := newTestBridge(central)
	port.readyErr = errors.New("device unplugged")

	err := b.Tick(context.Background())
	if !errors.Is(err, ErrSerial) {
		t.Fatalf("expected ErrSerial, got %v", err)
	}
}

func TestBridgeRunResetsWirelessOnFailure(t *testing.T) {
	peripheral := newFakePeripheral("AA:BB:CC:DD:EE:FF", true)
	central := &fakeCentral{peripherals: []*fakePeripheral{peripheral}}
	b, port := newTestBridge(central)
	connectBridge(t, b, port)

	peripheral.rx().readErr = errors.New("link lost")

	ctx, cancel := context.WithCancel(context.Background())
	b.WithClock(&fakeClock{now: time.Unix(1000, 0), onSleep: cancel})

	err := b.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run = %v, want context.Canceled", err)
	}
	if b.State() != StateDisconnected {
		t.Fatalf("state = %v, want disconnected after wireless failure", b.State())
	}
	if !peripheral.disconnected {
		t.Fatal("failed peripheral was not disconnected")
	}
}

func TestBridgeRunSerialFailureStops(t *testing.T) {
	central := &fakeCentral{}
	b, port := newTestBridge(central)
	port.readyErr = errors.New("device unplugged")

	err := b.Run(context.Background())
	if !errors.Is(err, ErrSerial) {
		t.Fatalf("Run = %v, want ErrSerial", err)
	}
}
