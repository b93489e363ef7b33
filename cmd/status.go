// SPDX-License-Identifier: MIT
// Copyright (c) 2026 the scip authors

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/scip/pkg/scip"
)

var statusStatic bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Query the vehicle's run state or static configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, desc, err := OpenConnection()
		if err != nil {
			return err
		}
		defer conn.Close()
		fmt.Printf("Connected: %s\n", desc)

		lr := NewLineReader(conn)

		if statusStatic {
			request, err := scip.EncodeRequest(scip.CommandStaticStatus, scip.StaticStatusArguments{})
			if err != nil {
				return err
			}
			response, err := roundTrip(conn, lr, request, scip.CommandStaticStatus, responseTimeout())
			if err != nil {
				return err
			}
			static := response.(*scip.Event[scip.StaticStatusResponse])
			fmt.Printf("Magnets: %d\nWheel diameter: %.3f m\n",
				static.Value.NumberOfMagnets, static.Value.WheelDiameter)
			return nil
		}

		request, err := scip.EncodeRequest(scip.CommandStatus, scip.StatusArguments{})
		if err != nil {
			return err
		}
		response, err := roundTrip(conn, lr, request, scip.CommandStatus, responseTimeout())
		if err != nil {
			return err
		}
		status := response.(*scip.Event[scip.StatusResponse])
		fmt.Printf("Running: %t\nStage: %s\nUptime: %d ms\nRuntime: %d ms\n",
			status.Value.Running, status.Value.Stage, status.Value.Uptime, status.Value.Runtime)
		fmt.Printf("Distance: %.3f m at %.3f m/s (%d magnet hits)\n",
			status.Value.Distance.Distance, status.Value.Distance.Velocity,
			status.Value.Distance.MagnetHitCounter)
		return nil
	},
}

func init() {
	statusCmd.Flags().BoolVar(&statusStatic, "static", false, "Query static configuration instead of run state")
	rootCmd.AddCommand(statusCmd)
}
