// SPDX-License-Identifier: MIT
// Copyright (c) 2026 the scip authors

package cmd

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/scip/pkg/scip"
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Print every frame arriving on the link",
	Long: `Monitor passively decodes each inbound line and prints the typed event
with a timestamp. Lines that fail to decode are reported and skipped;
monitoring continues until the connection closes or Ctrl+C.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, desc, err := OpenConnection()
		if err != nil {
			return err
		}
		defer conn.Close()
		fmt.Printf("Connected: %s\n", desc)
		fmt.Printf("Press Ctrl+C to exit\n\n")

		lr := NewLineReader(conn)
		for {
			line, err := lr.Next(24 * time.Hour)
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return err
			}

			timestamp := time.Now().Format("15:04:05.000")

			frame, err := scip.DecodeFrame(line)
			if err != nil {
				fmt.Printf("[%s] undecodable line %q: %v\n", timestamp, line, err)
				continue
			}
			response, err := scip.DecodeResponse(frame)
			if err != nil {
				fmt.Printf("[%s] %c%s %s\n", timestamp, frame.Mode, frame.Command, frame.Payload)
				continue
			}

			fmt.Printf("[%s] %s\n", timestamp, formatResponse(response))
		}
	},
}

// formatResponse renders one typed event as a single line.
func formatResponse(r scip.Response) string {
	switch event := r.(type) {
	case *scip.Event[scip.PingResponse]:
		return fmt.Sprintf("PING sent_time=%.0f", event.Value.SentTime)
	case *scip.Event[scip.StartResponse]:
		return "START acknowledged"
	case *scip.Event[scip.StopResponse]:
		return "STOP acknowledged"
	case *scip.Event[scip.StatusResponse]:
		v := event.Value
		return fmt.Sprintf("STATUS running=%t stage=%s uptime=%dms runtime=%dms distance=%.3fm velocity=%.3fm/s hits=%d",
			v.Running, v.Stage, v.Uptime, v.Runtime,
			v.Distance.Distance, v.Distance.Velocity, v.Distance.MagnetHitCounter)
	case *scip.Event[scip.StaticStatusResponse]:
		return fmt.Sprintf("STATICSTATUS magnets=%d wheel_diameter=%.3fm",
			event.Value.NumberOfMagnets, event.Value.WheelDiameter)
	case *scip.Event[scip.ErrorResponse]:
		return fmt.Sprintf("ERROR %d: %s", event.Value.ErrorVariant, event.Value.ServerError())
	case *scip.Event[scip.BluetoothStatusResponse]:
		return fmt.Sprintf("BLUETOOTHSTATUS connected=%t", event.Value.Connected)
	default:
		return fmt.Sprintf("%s response", r.EventCommand())
	}
}

func init() {
	rootCmd.AddCommand(monitorCmd)
}
