package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	mcpserver "github.com/ecotrace/wastewatch/internal/mcp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server on stdio",
	Long: `Starts a Model Context Protocol (MCP) server on stdio, exposing the
waste-management tools to AI agents. With responder mode "session",
insight tools send sampling requests back to the connected client.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		database, st, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		mode, err := cfg.ResponderMode()
		if err != nil {
			return err
		}

		// Set version from the cmd package variable.
		mcpserver.Version = Version

		srv := mcpserver.NewServer(st, newBroker(cfg, nil))
		srv.BindResponder(mode)

		// Stdout carries MCP protocol messages; status goes to stderr.
		fmt.Fprintf(os.Stderr, "wastewatch MCP server started on stdio (db=%s, responder=%s)\n",
			cfg.DatabasePath(), mode)

		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
