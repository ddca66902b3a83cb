package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ecotrace/wastewatch/internal/events"
	mcpserver "github.com/ecotrace/wastewatch/internal/mcp"
	"github.com/ecotrace/wastewatch/internal/server"
)

var (
	serverPort     int
	serverAllowAll bool
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the HTTP server",
	Long: `Starts the wastewatch HTTP server: the MCP streamable-HTTP transport
under /mcp and a websocket feed of sampling lifecycle events under
/ws/events.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.HTTP.Port = serverPort
		}
		if serverAllowAll {
			cfg.HTTP.AllowAll = true
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

		mcpserver.Version = Version

		hub := events.NewHub()
		mcpSrv := mcpserver.NewServer(st, newBroker(cfg, hub))
		mcpSrv.BindResponder(mode)

		srv := server.New(server.Config{
			Port:     cfg.HTTP.Port,
			AllowAll: cfg.HTTP.AllowAll,
		}, mcpSrv.HTTPHandler(), hub)

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			srv.Shutdown(context.Background())
		}()

		fmt.Fprintf(os.Stderr, "wastewatch server v%s starting on port %d\n", Version, cfg.HTTP.Port)
		fmt.Fprintf(os.Stderr, "  Database: %s\n", cfg.DatabasePath())
		fmt.Fprintf(os.Stderr, "  Responder: %s\n", mode)

		return srv.Start()
	},
}

func init() {
	serverCmd.Flags().IntVar(&serverPort, "port", 8421, "Port to listen on")
	serverCmd.Flags().BoolVar(&serverAllowAll, "allow-all", false, "Allow all CORS origins (dev mode)")
	rootCmd.AddCommand(serverCmd)
}
