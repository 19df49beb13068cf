package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sevigo/botgate/internal/config"
	"github.com/sevigo/botgate/internal/db"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Applies pending database migrations and exits",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		dbConn, cleanup, err := db.NewDatabase(cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer cleanup()

		if err := dbConn.RunMigrations(); err != nil {
			return err
		}

		cmd.Println("migrations applied")
		return nil
	},
}

func init() { //nolint:gochecknoinits // Cobra's init function for command registration
	rootCmd.AddCommand(migrateCmd)
}
