package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/hmans/tasks/internal/config"
	"github.com/hmans/tasks/internal/graph"
	"github.com/hmans/tasks/internal/server"
)

var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"s"},
	Short:   "Start the GraphQL server",
	Long: `Start an HTTP server that serves the GraphQL API.

The server exposes:
  - GraphQL endpoint at /graphql (POST)
  - GraphQL Playground at /graphql (GET) for interactive queries
  - Health check at /healthz
  - Prometheus metrics at /metrics

Examples:
  # Start server on default port 4000
  tasks serve

  # Start server on a custom port against MySQL
  tasks serve --port 3000 --db-driver mysql --db 'user:pass@tcp(localhost:3306)/tasks'`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer(cmdContext(cmd))
	},
}

func runServer(ctx context.Context) error {
	schema, err := graph.NewSchema(resolver, graph.Options{MaxDepth: cfg.GraphQL.MaxDepth})
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	srv := server.New(cfg.Server, schema, store, logger, reg)

	// Set up signal handling with context
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.Run(ctx)
}

func init() {
	serveCmd.Flags().IntP("port", "p", config.DefaultPort, "Port to listen on")
	serveCmd.Flags().String("host", "localhost", "Host to bind to")
	rootCmd.AddCommand(serveCmd)
}
