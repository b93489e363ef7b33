// SPDX-License-Identifier: MIT
// Copyright (c) 2026 the scip authors

package scip

import (
	"encoding/json"
	"strings"
	"time"
)

// Metadata is sent alongside every request and response.
type Metadata struct {
	Time float64 `json:"time"`
}

// NowMetadata returns metadata stamped with the current Unix time.
func NowMetadata() Metadata {
	return Metadata{Time: float64(time.Now().UnixNano()) / float64(time.Second)}
}

// Frame is one decoded protocol line. Payload holds the raw serialized
// text between the separators; typed decoding happens in the correlator.
type Frame struct {
	Mode     TransitMode
	Command  Command
	Payload  string
	Metadata Metadata
}

// DecodeFrame decodes a single protocol line. A trailing \n or \r is
// tolerated. Errors are returned to the caller and never abort anything.
func DecodeFrame(line string) (*Frame, error) {
	line = strings.TrimRight(line, "\r\n")

	// Sanity check before any indexing
	if len(line) < MinFrameLen {
		return nil, &ParseError{What: "frame", Text: line}
	}

	parts := strings.Split(line, Separator)
	if len(parts) != 3 {
		return nil, &ParseError{What: "frame separators", Text: line}
	}

	if len(parts[0]) < 2 {
		return nil, &ParseError{What: "frame prefix", Text: parts[0]}
	}
	mode, err := ParseTransitMode(parts[0][0])
	if err != nil {
		return nil, err
	}
	command, err := ParseCommand(parts[0][1:])
	if err != nil {
		return nil, err
	}

	// Metadata is parsed unconditionally; the payload stays raw until the
	// correlator knows the command's response shape.
	var metadata Metadata
	if err := json.Unmarshal([]byte(parts[2]), &metadata); err != nil {
		return nil, &ParseError{What: "metadata", Text: parts[2]}
	}

	return &Frame{
		Mode:     mode,
		Command:  command,
		Payload:  parts[1],
		Metadata: metadata,
	}, nil
}

// Encode serializes the frame back to wire form, newline terminated.
func (f *Frame) Encode() string {
	payload := f.Payload
	if payload == "" || payload == "null" {
		payload = EmptyPayload
	}
	var b strings.Builder
	b.WriteByte(byte(f.Mode))
	b.WriteString(f.Command.String())
	b.WriteString(Separator)
	b.WriteString(payload)
	b.WriteString(Separator)
	md, _ := json.Marshal(f.Metadata)
	b.Write(md)
	b.WriteByte('\n')
	return b.String()
}

// EncodePayload serializes a payload value, substituting the empty-payload
// sentinel for null or empty serializations.
func EncodePayload(v any) (string, error) {
	if v == nil {
		return EmptyPayload, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return "", &ParseError{What: "payload", Text: err.Error()}
	}
	if s := string(data); s != "null" && s != "" {
		return s, nil
	}
	return EmptyPayload, nil
}

// EncodeRequest builds a complete request frame for the command, with the
// marker derived from the command's transit mode and metadata stamped now.
func EncodeRequest(command Command, args any) (string, error) {
	payload, err := EncodePayload(args)
	if err != nil {
		return "", err
	}
	f := &Frame{
		Mode:     command.RequestMode(),
		Command:  command,
		Payload:  payload,
		Metadata: NowMetadata(),
	}
	return f.Encode(), nil
}

// EncodeResponse builds a complete response frame for the command.
func EncodeResponse(command Command, value any) (string, error) {
	payload, err := EncodePayload(value)
	if err != nil {
		return "", err
	}
	f := &Frame{
		Mode:     command.ResponseMode(),
		Command:  command,
		Payload:  payload,
		Metadata: NowMetadata(),
	}
	return f.Encode(), nil
}
