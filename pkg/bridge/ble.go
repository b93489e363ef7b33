// SPDX-License-Identifier: MIT
// Copyright (c) 2026 the scip authors

package bridge

import "bytes"

// BLEChannel adapts the wireless UART characteristics to a text channel.
//
// The RX characteristic is level-triggered: reading it re-reports the
// current value whether or not it changed, so the previous read is kept
// to suppress duplicates. The TX characteristic accepts a fixed write
// size, so outbound text is chunked.
type BLEChannel struct {
	rx Characteristic
	tx Characteristic

	previous []byte
	readBuf  [RXCharacteristicSize]byte
}

// NewBLEChannel wraps the resolved RX and TX characteristics.
func NewBLEChannel(rx, tx Characteristic) *BLEChannel {
	return &BLEChannel{
		rx:       rx,
		tx:       tx,
		previous: make([]byte, 0, RXCharacteristicSize),
	}
}

// Poll reads the RX characteristic. If the value is identical to the
// immediately preceding read it returns ErrNoData; otherwise the value
// becomes the new baseline and is returned as text.
func (c *BLEChannel) Poll() (string, error) {
	n, err := c.rx.Read(c.readBuf[:])
	if err != nil {
		return "", err
	}
	value := c.readBuf[:n]

	if bytes.Equal(value, c.previous) {
		return "", ErrNoData
	}
	c.previous = append(c.previous[:0], value...)

	return string(value), nil
}

// WriteString splits data into fixed-size chunks, zero-padding the final
// partial chunk, and performs one write per chunk sequentially. The link
// offers no multi-chunk atomic write, so each write completes before the
// next begins.
func (c *BLEChannel) WriteString(data string) error {
	return writeChunked(c.tx, data, TXCharacteristicSize)
}

func writeChunked(tx Characteristic, data string, chunkSize int) error {
	for offset := 0; offset < len(data); offset += chunkSize {
		chunk := make([]byte, chunkSize)
		copy(chunk, data[offset:])
		if err := tx.Write(chunk); err != nil {
			return err
		}
	}
	return nil
}
