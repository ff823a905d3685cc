package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonathan/skillmatrix/internal/db"
	"github.com/jonathan/skillmatrix/internal/server"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the REST API server",
		Long:  "Start an HTTP server exposing skill extraction, question generation, grading, model answers and resume analysis. Persistence is enabled when DATABASE_URL is set.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := root.load()
			if err != nil {
				return err
			}
			defer e.log.Sync()
			if port > 0 {
				e.cfg.Port = port
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			svc, release, err := e.service(ctx)
			if err != nil {
				return err
			}
			defer release()

			var store server.Store
			if e.cfg.DatabaseURL != "" {
				database, err := openStore(ctx, e.cfg.DatabaseURL)
				if err != nil {
					return err
				}
				defer database.Close()
				store = database
			} else {
				e.log.Warn("DATABASE_URL not set; persistence disabled")
			}

			return server.New(server.ConfigFrom(e.cfg), svc, store, e.log).Start(ctx)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "Port to listen on (overrides PORT)")
	return cmd
}

func openStore(ctx context.Context, databaseURL string) (*db.DB, error) {
	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.EnsureSchema(ctx); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	return database, nil
}
