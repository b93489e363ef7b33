// SPDX-License-Identifier: MIT
// Copyright (c) 2026 the scip authors

package scip

import (
	"fmt"
	"strings"
)

// Command identifies one of the closed set of protocol commands.
type Command int

// Vehicle-directed commands travel between the controller and the vehicle
// server; bridge-directed commands are consumed by the serial bridge itself.
const (
	CommandPing Command = iota
	CommandStart
	CommandStop
	CommandStatus
	CommandStaticStatus
	CommandError
	CommandConnect
	CommandDisconnect
	CommandBluetoothStatus
)

var commandNames = map[Command]string{
	CommandPing:            "PING",
	CommandStart:           "START",
	CommandStop:            "STOP",
	CommandStatus:          "STATUS",
	CommandStaticStatus:    "STATICSTATUS",
	CommandError:           "ERROR",
	CommandConnect:         "CONNECT",
	CommandDisconnect:      "DISCONNECT",
	CommandBluetoothStatus: "BLUETOOTHSTATUS",
}

// ParseCommand parses a command token case-insensitively.
// The wire token "UNKNOWN" is an alias the server uses for frames it could
// not interpret; it maps to CommandError.
func ParseCommand(text string) (Command, error) {
	switch strings.ToUpper(text) {
	case "PING":
		return CommandPing, nil
	case "START":
		return CommandStart, nil
	case "STOP":
		return CommandStop, nil
	case "STATUS":
		return CommandStatus, nil
	case "STATICSTATUS":
		return CommandStaticStatus, nil
	case "UNKNOWN", "ERROR":
		return CommandError, nil
	case "CONNECT":
		return CommandConnect, nil
	case "DISCONNECT":
		return CommandDisconnect, nil
	case "BLUETOOTHSTATUS":
		return CommandBluetoothStatus, nil
	default:
		return 0, &ParseError{What: "command", Text: text}
	}
}

// String returns the wire token for the command.
func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Command(%d)", int(c))
}

// IsBridgeLocal reports whether the command is addressed to the serial
// bridge rather than the vehicle server.
func (c Command) IsBridgeLocal() bool {
	switch c {
	case CommandConnect, CommandDisconnect, CommandBluetoothStatus:
		return true
	default:
		return false
	}
}

// RequestMode returns the transit mode a request frame for this command
// carries. The mapping is static: vehicle commands are client-to-server,
// bridge commands are client-to-bridge.
func (c Command) RequestMode() TransitMode {
	if c.IsBridgeLocal() {
		return ClientToBridgeRequest
	}
	return ClientToServerRequest
}

// ResponseMode returns the transit mode a response frame for this command
// carries.
func (c Command) ResponseMode() TransitMode {
	if c.IsBridgeLocal() {
		return BridgeToClientResponse
	}
	return ServerToClientResponse
}

// TransitMode is the single leading marker character of a frame.
type TransitMode byte

const (
	ClientToServerRequest  TransitMode = '?'
	ServerToClientResponse TransitMode = '~'
	ClientToBridgeRequest  TransitMode = '^'
	BridgeToClientResponse TransitMode = '&'
)

// ParseTransitMode validates a marker byte.
func ParseTransitMode(b byte) (TransitMode, error) {
	switch m := TransitMode(b); m {
	case ClientToServerRequest, ServerToClientResponse,
		ClientToBridgeRequest, BridgeToClientResponse:
		return m, nil
	default:
		return 0, &ParseError{What: "transit marker", Text: string(b)}
	}
}

// TransitType distinguishes request frames from response frames.
type TransitType int

const (
	TransitRequest TransitType = iota
	TransitResponse
)

// TransitType derives the request/response direction from the marker.
func (m TransitMode) TransitType() TransitType {
	switch m {
	case ServerToClientResponse, BridgeToClientResponse:
		return TransitResponse
	default:
		return TransitRequest
	}
}

func (t TransitType) String() string {
	if t == TransitResponse {
		return "response"
	}
	return "request"
}
