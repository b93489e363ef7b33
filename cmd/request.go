// SPDX-License-Identifier: MIT
// Copyright (c) 2026 the scip authors

package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/example/scip/pkg/scip"
)

// roundTrip writes one request line and waits for the matching typed
// response. Lines that fail to decode and responses for other commands
// are skipped; an ERROR response is returned as an error for any request.
func roundTrip(conn Connection, lr *LineReader, request string, want scip.Command, timeout time.Duration) (scip.Response, error) {
	if _, err := io.WriteString(conn, request); err != nil {
		return nil, fmt.Errorf("write request: %v", err)
	}

	deadline := time.Now().Add(timeout)
	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return nil, fmt.Errorf("timed out after %v waiting for %s", timeout, want)
		}

		line, err := lr.Next(remaining)
		if err != nil {
			return nil, err
		}

		frame, err := scip.DecodeFrame(line)
		if err != nil {
			continue
		}
		response, err := scip.DecodeResponse(frame)
		if err != nil {
			continue
		}

		if errEvent, ok := response.(*scip.Event[scip.ErrorResponse]); ok {
			return nil, fmt.Errorf("device error: %s", errEvent.Value.ServerError())
		}
		if response.EventCommand() == want {
			return response, nil
		}
	}
}
