// SPDX-License-Identifier: MIT
// Copyright (c) 2026 the scip authors

package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/scip/pkg/scip"
)

var sendCmd = &cobra.Command{
	Use:   "send <command> [json-args]",
	Short: "Send an arbitrary vehicle request and print its typed response",
	Long: `Send encodes any vehicle command with optional JSON arguments and waits
for the matching response. Useful for exercising START and STOP, which
have no dedicated subcommand:

  scip send --port /dev/ttyUSB0 start '{"distance": 5.0, "reverse_brake": true}'
  scip send --port /dev/ttyUSB0 stop`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		command, err := scip.ParseCommand(args[0])
		if err != nil {
			return err
		}
		if command.IsBridgeLocal() {
			return fmt.Errorf("%s is a bridge command, use 'scip bt'", command)
		}

		payload := scip.EmptyPayload
		if len(args) == 2 {
			if !json.Valid([]byte(args[1])) {
				return fmt.Errorf("arguments are not valid JSON: %s", args[1])
			}
			payload = args[1]
		}

		frame := &scip.Frame{
			Mode:     command.RequestMode(),
			Command:  command,
			Payload:  payload,
			Metadata: scip.NowMetadata(),
		}
		request := frame.Encode()

		conn, desc, err := OpenConnection()
		if err != nil {
			return err
		}
		defer conn.Close()
		fmt.Printf("Connected: %s\n", desc)

		lr := NewLineReader(conn)
		response, err := roundTrip(conn, lr, request, command, responseTimeout())
		if err != nil {
			return err
		}

		fmt.Println(formatResponse(response))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sendCmd)
}
