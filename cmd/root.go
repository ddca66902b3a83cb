package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ecotrace/wastewatch/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "wastewatch",
	Short: "Waste-management MCP server with AI-assisted insight tools",
	Long: `Wastewatch tracks waste facilities, shipments, inspections and
contaminants in SQLite and exposes them to AI agents over the Model
Context Protocol. Insight tools ask the connected client for analysis
via MCP sampling and fall back to deterministic metrics when no client
can answer.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultConfigFile, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
