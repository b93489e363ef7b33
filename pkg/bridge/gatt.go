// SPDX-License-Identifier: MIT
// Copyright (c) 2026 the scip authors

package bridge

// Wireless UART GATT identifiers, fixed by the vehicle peripheral firmware.
const (
	ServiceUUID = "01ff0100-ba5e-f4ee-5ca1-eb1e5e4b1ce0"

	// TX characteristic: write-only, accepts one byte per write.
	TXCharacteristicUUID = "01ff0101-ba5e-f4ee-5ca1-eb1e5e4b1ce0"
	TXCharacteristicSize = 1

	// RX characteristic: read-only, returns up to 244 bytes per read.
	RXCharacteristicUUID = "01ff0101-ba5e-f4ee-5ca1-eb1e5e4b1ce1"
	RXCharacteristicSize = 244
)
