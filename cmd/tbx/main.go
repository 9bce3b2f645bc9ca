// Package main is the entry point for the tbx CLI client.
package main

import (
	"github.com/tabadul/exchange-engine/cmd/tbx/cmd"
)

func main() {
	cmd.Execute()
}
