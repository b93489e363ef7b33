// SPDX-License-Identifier: MIT
// Copyright (c) 2026 the scip authors

// Package scip implements the SCIP line protocol spoken between the vehicle
// controller client and the vehicle server, over either a direct serial link
// or the serial-to-bluetooth bridge.
//
// A frame is a single line of text:
//
//	<marker><COMMAND>$<payload>$<metadata><\n or \r>
//
// The marker is one of four transit-mode characters, payload and metadata
// are JSON documents, and "{}" is the canonical empty-payload encoding.
// This package provides frame encoding/decoding, the command registry, and
// correlation of decoded frames to typed responses.
package scip

// Protocol framing
const (
	// Separator splits the command, payload, and metadata sections.
	Separator = "$"

	// MinFrameLen is the shortest well-formed frame: marker, at least one
	// command byte, two separators, and one payload byte.
	MinFrameLen = 5

	// EmptyPayload is the canonical encoding of an absent payload; the
	// codec cannot otherwise distinguish "no payload" from an empty object.
	EmptyPayload = "{}"
)

// BaudRate is the serial line rate used on both sides of the link.
const BaudRate = 115200
