// Code generated manually. DO NOT EDIT.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

package wire

import (
	"fmt"

	"github.com/sevigo/botgate/internal/app"
	"github.com/sevigo/botgate/internal/config"
	"github.com/sevigo/botgate/internal/db"
	"github.com/sevigo/botgate/internal/health"
	"github.com/sevigo/botgate/internal/logger"
	"github.com/sevigo/botgate/internal/responder"
	"github.com/sevigo/botgate/internal/server"
	"github.com/sevigo/botgate/internal/storage"
)

// InitializeApp creates and wires all application dependencies.
func InitializeApp() (*app.App, func(), error) {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	slogLogger := logger.NewLogger(provideLoggerConfig(cfg), provideLogWriter(cfg))

	// Database
	dbConn, dbCleanup, err := db.NewDatabase(provideDBConfig(cfg))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Run migrations
	if err := dbConn.RunMigrations(); err != nil {
		dbCleanup()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Storage
	store := storage.NewJobStore(dbConn.DB)

	// Responder pool over the Telegram client
	botAPI := provideBotAPI(cfg, slogLogger)
	pool := responder.NewPool(botAPI, provideResponderConfig(cfg), slogLogger)

	// Readiness gate
	checker := health.NewChecker(store, provideRoutes(cfg))

	// HTTP server
	httpServer := server.NewServer(cfg, store, provideResponder(pool), checker, slogLogger)

	application := app.NewApp(cfg, slogLogger, httpServer, pool, dbConn)
	cleanup := func() {
		dbCleanup()
	}
	return application, cleanup, nil
}
