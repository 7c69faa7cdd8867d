package cmd

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nareshroyalc/Docify/pkg/events"
	"github.com/nareshroyalc/Docify/pkg/server"
	"github.com/nareshroyalc/Docify/pkg/utils"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the documentation HTTP API",
	Long: `Starts the HTTP API with a generation endpoint, a health check and a
WebSocket progress stream. The server shuts down gracefully on SIGINT or
SIGTERM.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		bus := events.NewBus()
		assistant, cleanup, err := buildAssistant(ctx, cfg, bus)
		if err != nil {
			return err
		}
		defer cleanup()

		port := servePort
		if port == 0 {
			port = cfg.ServerPort
		}

		fmt.Printf("🚀 Starting API on port %d\n", port)
		fmt.Printf("📧 Service Account: %s\n", assistant.ServiceAccountEmail())

		srv := server.New(assistant, bus, cfg.ResolveDocID(""), port, utils.GetLogger())
		return srv.Start(ctx)
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config)")
}
