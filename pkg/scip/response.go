// SPDX-License-Identifier: MIT
// Copyright (c) 2026 the scip authors

package scip

import "encoding/json"

// Event is a decoded frame with a strongly-typed payload value. Events are
// constructed only by decoding and are not retained by this package.
type Event[T any] struct {
	Command  Command
	Mode     TransitMode
	Type     TransitType
	Value    T
	Metadata Metadata
}

// EventCommand implements Response.
func (e *Event[T]) EventCommand() Command { return e.Command }

// EventMetadata implements Response.
func (e *Event[T]) EventMetadata() Metadata { return e.Metadata }

// Response is one variant of the tagged union of typed responses. Callers
// type-switch on the concrete *Event[...] instantiation.
type Response interface {
	EventCommand() Command
	EventMetadata() Metadata
}

// DecodeResponse correlates a decoded frame to its typed response shape.
// It is stateless and side-effect-free; no synchronization is required
// even when invoked from multiple readers.
func DecodeResponse(f *Frame) (Response, error) {
	switch f.Command {
	case CommandPing:
		return decodeEvent[PingResponse](f)
	case CommandStart:
		return decodeEvent[StartResponse](f)
	case CommandStop:
		return decodeEvent[StopResponse](f)
	case CommandStatus:
		return decodeEvent[StatusResponse](f)
	case CommandStaticStatus:
		return decodeEvent[StaticStatusResponse](f)
	case CommandError:
		return decodeEvent[ErrorResponse](f)
	case CommandBluetoothStatus:
		return decodeEvent[BluetoothStatusResponse](f)
	default:
		// CONNECT and DISCONNECT have no response shape.
		return nil, &UnknownCommandError{Command: f.Command}
	}
}

func decodeEvent[T any](f *Frame) (*Event[T], error) {
	data := f.Payload
	// "{}" is a map to the JSON decoder while the empty shapes want null.
	if data == EmptyPayload {
		data = "null"
	}
	var value T
	if err := json.Unmarshal([]byte(data), &value); err != nil {
		if pe, ok := err.(*ParseError); ok {
			return nil, pe
		}
		return nil, &ParseError{What: "payload", Text: f.Payload}
	}
	return &Event[T]{
		Command:  f.Command,
		Mode:     f.Mode,
		Type:     f.Mode.TransitType(),
		Value:    value,
		Metadata: f.Metadata,
	}, nil
}
