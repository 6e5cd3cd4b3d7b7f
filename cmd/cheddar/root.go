package main

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "cheddar",
	Short: "Cheddar - lifecycle-aware REST adapter",
	Long: `Cheddar is a REST adapter that counts requests in progress and decides
whether new requests are admitted from the service's lifecycle status.

It provides:
  - An admission gate driven by the lifecycle status
  - An in-progress request counter for graceful draining
  - Health, readiness and status endpoints
  - Prometheus metrics and periodic status reports`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (defaults are used when empty)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
}
