package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sevigo/botgate/internal/wire"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Runs the webhook gateway until interrupted",
	RunE: func(_ *cobra.Command, _ []string) error {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		app, cleanup, err := wire.InitializeApp()
		if err != nil {
			return fmt.Errorf("failed to initialize application: %w", err)
		}
		defer cleanup()

		go func() {
			if err := app.Start(); err != nil {
				slog.Error("server error", "error", err)
				cancel()
			}
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-quit:
			slog.Info("received shutdown signal")
		case <-ctx.Done():
		}

		return app.Stop()
	},
}

func init() { //nolint:gochecknoinits // Cobra's init function for command registration
	rootCmd.AddCommand(serveCmd)
}
