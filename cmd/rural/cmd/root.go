// Package cmd implements the rural CLI commands.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/dvloznov/rural-insights/internal/config"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "rural",
	Short: "Rural finance analytics toolkit",
	Long: `Rural analyzes semicolon-delimited ledger exports from farm management
software and produces spending aggregates, anomaly alerts and AI-enriched
insights, plus financial health scoring and decision simulations.

Examples:
  rural analyze extrato.csv
  rural analyze extrato.csv --json
  rural score --input aggregates.json
  rural simulate --type equipment_purchase --equipment tractor_used
  rural templates`,
}

// Execute runs the root command. Called once from main.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (optional)")
}

// loadSettings resolves the effective configuration for a command run.
func loadSettings() (*config.Settings, error) {
	return config.Load(cfgFile)
}
