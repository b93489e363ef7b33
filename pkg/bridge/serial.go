// SPDX-License-Identifier: MIT
// Copyright (c) 2026 the scip authors

package bridge

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"go.bug.st/serial"
)

// Port is the subset of a serial port the channel adapter needs. The
// concrete implementation is go.bug.st/serial; tests inject a fake.
type Port interface {
	io.Reader
	io.Writer
	// ReadyToRead returns the number of bytes that can be read without
	// blocking.
	ReadyToRead() (uint32, error)
	Close() error
}

// OpenPort opens the serial device at 8-N-1 with a bounded read timeout,
// so a poll can return before a full line has arrived.
func OpenPort(device string, baudRate int, readTimeout time.Duration) (Port, error) {
	mode := &serial.Mode{
		BaudRate: baudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	port, err := serial.Open(device, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %v", device, err)
	}
	if err := port.SetReadTimeout(readTimeout); err != nil {
		port.Close()
		return nil, fmt.Errorf("failed to set read timeout on %s: %v", device, err)
	}
	return port, nil
}

// SerialChannel assembles newline-delimited lines from a serial port
// without blocking. A partial line is carried over between polls, since
// the port's read timeout may elapse before a full line has arrived.
type SerialChannel struct {
	port    Port
	pending []byte
}

// NewSerialChannel wraps an open port.
func NewSerialChannel(port Port) *SerialChannel {
	return &SerialChannel{port: port}
}

// PollLine returns the next completed line with its terminator stripped.
// It returns ErrNoData when no bytes are immediately available or the
// pending line is still incomplete. Transport failures wrap ErrSerial.
func (s *SerialChannel) PollLine() (string, error) {
	available, err := s.port.ReadyToRead()
	if err != nil {
		return "", fmt.Errorf("%w: ready to read: %v", ErrSerial, err)
	}
	if available == 0 {
		return "", ErrNoData
	}

	// One byte at a time, stopping as soon as a terminator is produced so
	// a second line queued behind this one stays in the port buffer.
	buf := make([]byte, 1)
	for i := uint32(0); i < available; i++ {
		n, err := s.port.Read(buf)
		if err != nil {
			return "", fmt.Errorf("%w: read: %v", ErrSerial, err)
		}
		if n == 0 {
			break
		}
		s.pending = append(s.pending, buf[0])
		if buf[0] == '\n' || buf[0] == '\r' {
			break
		}
	}

	n := len(s.pending)
	if n == 0 || (s.pending[n-1] != '\n' && s.pending[n-1] != '\r') {
		return "", ErrNoData
	}
	if len(bytes.TrimSpace(s.pending)) == 0 {
		// A blank line carries no frame.
		s.pending = s.pending[:0]
		return "", ErrNoData
	}

	line := string(s.pending[:n-1])
	s.pending = s.pending[:0]
	return line, nil
}

// WriteString writes raw bytes through to the port.
func (s *SerialChannel) WriteString(data string) error {
	if _, err := io.WriteString(s.port, data); err != nil {
		return fmt.Errorf("%w: write: %v", ErrSerial, err)
	}
	return nil
}

// Close closes the underlying port.
func (s *SerialChannel) Close() error {
	return s.port.Close()
}
