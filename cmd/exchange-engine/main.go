// Package main is the entry point for the exchange engine server.
package main

import (
	"os"

	"github.com/tabadul/exchange-engine/cmd/exchange-engine/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
