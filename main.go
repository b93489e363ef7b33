// SPDX-License-Identifier: MIT
// Copyright (c) 2026 the scip authors
//
// scip - Speed Control Interface Protocol tooling
//
// A CLI for driving a speed-controlled vehicle over its serial control
// link and for bridging that link to a wireless UART peripheral.

package main

import (
	"os"

	"github.com/example/scip/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
