// Package cmd implements the CLI commands for the exchange engine server.
package cmd

import (
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "exchange-engine",
	Short: "Barter marketplace matching engine",
	Long:  "An API-first service that finds exchange partners for barter listings: it parses what each seller wants in return, scores candidate listings for compatibility, and detects three-party trade chains when no direct swap exists.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file path")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
