// SPDX-License-Identifier: MIT
// Copyright (c) 2026 the scip authors

package scip

import (
	"encoding/json"
	"fmt"
)

// Request argument shapes. Field names are wire-exact.

type PingArguments struct {
	Time float64 `json:"time"`
}

type StartArguments struct {
	Distance     float64 `json:"distance"`
	ReverseBrake bool    `json:"reverse_brake"`
}

type StopArguments struct{}

type StatusArguments struct{}

type StaticStatusArguments struct{}

// Response shapes.

type PingResponse struct {
	SentTime float64 `json:"sent_time"`
}

type StartResponse struct{}

type StopResponse struct{}

type StaticStatusResponse struct {
	NumberOfMagnets int     `json:"number_of_magnets"`
	WheelDiameter   float64 `json:"wheel_diameter"`
}

// DistanceInformation carries odometry readings, distance in centimeters.
type DistanceInformation struct {
	Distance         float64 `json:"distance"`
	Velocity         float64 `json:"velocity"`
	MagnetHitCounter int     `json:"magnet_hit_counter"`
}

type StatusResponse struct {
	Running  bool                `json:"running"`
	Uptime   int                 `json:"uptime"`
	Runtime  int                 `json:"runtime"`
	Stage    StatusStage         `json:"stage"`
	Distance DistanceInformation `json:"distance"`
}

// ErrorResponse is the payload of an ERROR frame from the server.
type ErrorResponse struct {
	ErrorVariant uint8  `json:"error_variant"`
	Message      string `json:"message"`
}

// ServerError resolves the numeric variant through the lookup table.
// An unrecognized future code maps to the catch-all sentinel rather than
// failing, so it never aborts the caller.
func (r ErrorResponse) ServerError() ServerError {
	e, err := ServerErrorFromCode(r.ErrorVariant)
	if err != nil {
		return ServerErrAnyOther
	}
	return e
}

type BluetoothStatusResponse struct {
	Connected bool `json:"connected"`
}

// StatusStage is the drive stage reported in a STATUS response. It is
// numeric on the wire; decoding goes through an explicit lookup table so
// no invalid value is representable.
type StatusStage uint8

const (
	StageStopped   StatusStage = 0
	StageForward   StatusStage = 1
	StageCoast     StatusStage = 2
	StageBackward  StatusStage = 3
	StageFinalized StatusStage = 4
)

var statusStageNames = map[StatusStage]string{
	StageStopped:   "Stopped",
	StageForward:   "Forward",
	StageCoast:     "Coast",
	StageBackward:  "Backward",
	StageFinalized: "Finalized",
}

// StatusStageFromCode validates a numeric stage code.
func StatusStageFromCode(code uint8) (StatusStage, error) {
	s := StatusStage(code)
	if _, ok := statusStageNames[s]; !ok {
		return 0, &ParseError{What: "status stage", Text: fmt.Sprintf("%d", code)}
	}
	return s, nil
}

func (s StatusStage) String() string {
	if name, ok := statusStageNames[s]; ok {
		return name
	}
	return fmt.Sprintf("StatusStage(%d)", uint8(s))
}

// MarshalJSON emits the numeric wire form.
func (s StatusStage) MarshalJSON() ([]byte, error) {
	return json.Marshal(uint8(s))
}

// UnmarshalJSON parses the numeric wire form through the lookup table.
func (s *StatusStage) UnmarshalJSON(data []byte) error {
	var code uint8
	if err := json.Unmarshal(data, &code); err != nil {
		return &ParseError{What: "status stage", Text: string(data)}
	}
	stage, err := StatusStageFromCode(code)
	if err != nil {
		return err
	}
	*s = stage
	return nil
}
