// SPDX-License-Identifier: MIT
// Copyright (c) 2026 the scip authors

package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/scip/pkg/scip"
)

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Measure round-trip latency to the vehicle",
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, desc, err := OpenConnection()
		if err != nil {
			return err
		}
		defer conn.Close()
		fmt.Printf("Connected: %s\n", desc)

		lr := NewLineReader(conn)

		sent := time.Now()
		request, err := scip.EncodeRequest(scip.CommandPing, scip.PingArguments{
			Time: float64(sent.UnixMilli()),
		})
		if err != nil {
			return err
		}

		response, err := roundTrip(conn, lr, request, scip.CommandPing, responseTimeout())
		if err != nil {
			return err
		}

		pong := response.(*scip.Event[scip.PingResponse])
		fmt.Printf("PONG sent_time=%.0f rtt=%v\n", pong.Value.SentTime, time.Since(sent).Round(time.Microsecond))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pingCmd)
}
