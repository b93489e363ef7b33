// SPDX-License-Identifier: MIT
// Copyright (c) 2026 the scip authors

package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/example/scip/pkg/scip"
)

var btCmd = &cobra.Command{
	Use:   "bt",
	Short: "Control the wireless link of an attached bridge",
	Long: `The bt subcommands talk to the bridge itself rather than the vehicle.
They require a serial connection to a device running 'scip bridge'.`,
}

var btConnectCmd = &cobra.Command{
	Use:   "connect",
	Short: "Ask the bridge to connect to the wireless UART device",
	RunE: func(cmd *cobra.Command, args []string) error {
		return sendBridgeCommand(scip.CommandConnect)
	},
}

var btDisconnectCmd = &cobra.Command{
	Use:   "disconnect",
	Short: "Ask the bridge to drop its wireless connection",
	RunE: func(cmd *cobra.Command, args []string) error {
		return sendBridgeCommand(scip.CommandDisconnect)
	},
}

var btStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Query the bridge's wireless connection state",
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, desc, err := OpenConnection()
		if err != nil {
			return err
		}
		defer conn.Close()
		fmt.Printf("Connected: %s\n", desc)

		request, err := scip.EncodeRequest(scip.CommandBluetoothStatus, nil)
		if err != nil {
			return err
		}

		lr := NewLineReader(conn)
		response, err := roundTrip(conn, lr, request, scip.CommandBluetoothStatus, responseTimeout())
		if err != nil {
			return err
		}

		status := response.(*scip.Event[scip.BluetoothStatusResponse])
		if status.Value.Connected {
			fmt.Println("Bridge wireless link: connected")
		} else {
			fmt.Println("Bridge wireless link: disconnected")
		}
		return nil
	},
}

// sendBridgeCommand fires a bridge-local request. CONNECT and DISCONNECT
// produce no response frame, so the write is fire-and-forget.
func sendBridgeCommand(command scip.Command) error {
	conn, desc, err := OpenConnection()
	if err != nil {
		return err
	}
	defer conn.Close()
	fmt.Printf("Connected: %s\n", desc)

	request, err := scip.EncodeRequest(command, nil)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(conn, request); err != nil {
		return fmt.Errorf("write request: %v", err)
	}

	fmt.Printf("Sent %s to the bridge\n", command)
	return nil
}

func init() {
	btCmd.AddCommand(btConnectCmd, btDisconnectCmd, btStatusCmd)
	rootCmd.AddCommand(btCmd)
}
