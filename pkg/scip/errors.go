// SPDX-License-Identifier: MIT
// Copyright (c) 2026 the scip authors

package scip

import "fmt"

// ParseError reports a malformed frame, command, payload, or metadata.
// It never aborts the caller; correlated state is left untouched.
type ParseError struct {
	What string // which part failed to parse
	Text string // the offending text
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s from %q", e.What, e.Text)
}

// UnknownCommandError reports a well-formed frame whose command is not
// actionable in the current context.
type UnknownCommandError struct {
	Command Command
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("command %s is not actionable here", e.Command)
}

// ServerError is a numeric error code returned by the vehicle server.
//
// Codes are partitioned into disjoint bands: 0-6 malformed request,
// 10-11 malformed response, 21-27 domain failures, and the catch-all 99
// outside all bands. Decoding goes through an explicit lookup table so no
// invalid value is representable.
type ServerError uint8

const (
	ServerErrMalformedRequestPrefix    ServerError = 0
	ServerErrMalformedRequestCommand   ServerError = 1
	ServerErrMalformedRequestSeparator ServerError = 2
	ServerErrMalformedRequestArguments ServerError = 3
	ServerErrMalformedRequestMetadata  ServerError = 4
	ServerErrMalformedRequestType      ServerError = 5
	ServerErrMalformedRequestOther     ServerError = 6

	ServerErrMalformedResponseType  ServerError = 10
	ServerErrMalformedResponseOther ServerError = 11

	ServerErrStartAlreadyStarted      ServerError = 21
	ServerErrStartMagnetOdometer      ServerError = 22
	ServerErrStartMotorControl        ServerError = 23
	ServerErrStopNotStarted           ServerError = 24
	ServerErrStopThreadUnresponsive   ServerError = 25
	ServerErrStatusDistanceLock       ServerError = 26
	ServerErrPingNegativeLatency      ServerError = 27

	ServerErrAnyOther ServerError = 99
)

var serverErrorMessages = map[ServerError]string{
	ServerErrMalformedRequestPrefix:    "Malformed request - Failed prefix parsing",
	ServerErrMalformedRequestCommand:   "Malformed request - Failed command parsing",
	ServerErrMalformedRequestSeparator: "Malformed request - Failed separator parsing",
	ServerErrMalformedRequestArguments: "Malformed request - Failed arguments parsing",
	ServerErrMalformedRequestMetadata:  "Malformed request - Failed metadata parsing",
	ServerErrMalformedRequestType:      "Malformed request - Type error",
	ServerErrMalformedRequestOther:     "Malformed request - Other error",
	ServerErrMalformedResponseType:     "Malformed response - Type error",
	ServerErrMalformedResponseOther:    "Malformed response - Other error",
	ServerErrStartAlreadyStarted:       "Failed to start - Already started",
	ServerErrStartMagnetOdometer:       "Failed to start - Magnet odometer failed",
	ServerErrStartMotorControl:         "Failed to start - Motor control failed",
	ServerErrStopNotStarted:            "Failed to stop - Not started",
	ServerErrStopThreadUnresponsive:    "Failed to stop - Start thread would not respond",
	ServerErrStatusDistanceLock:        "Failed status - Could not acquire distance mutex lock",
	ServerErrPingNegativeLatency:       "Failed ping - Negative latency",
	ServerErrAnyOther:                  "Any other error",
}

// ServerErrorFromCode decodes a numeric code through the lookup table.
// A code inside a defined band or equal to the catch-all decodes to its
// named variant; anything else fails.
func ServerErrorFromCode(code uint8) (ServerError, error) {
	e := ServerError(code)
	if _, ok := serverErrorMessages[e]; !ok {
		return 0, &ParseError{What: "server error code", Text: fmt.Sprintf("%d", code)}
	}
	return e, nil
}

// Error returns the human-readable message for the code.
func (e ServerError) Error() string {
	if msg, ok := serverErrorMessages[e]; ok {
		return msg
	}
	return serverErrorMessages[ServerErrAnyOther]
}
