// Package app initializes and orchestrates the main components of the
// gateway: the HTTP server, the responder pool, and the database lifecycle.
package app

import (
	"log/slog"

	"github.com/sevigo/botgate/internal/config"
	"github.com/sevigo/botgate/internal/db"
	"github.com/sevigo/botgate/internal/responder"
	"github.com/sevigo/botgate/internal/server"
)

// App holds the main application components.
type App struct {
	cfg    *config.Config
	server *server.Server
	pool   *responder.Pool
	dbConn *db.DB
	logger *slog.Logger
}

// NewApp assembles the application from its wired components.
func NewApp(cfg *config.Config, logger *slog.Logger, srv *server.Server, pool *responder.Pool, dbConn *db.DB) *App {
	return &App{
		cfg:    cfg,
		server: srv,
		pool:   pool,
		dbConn: dbConn,
		logger: logger,
	}
}

// Start runs the HTTP server and blocks until shutdown or error.
func (a *App) Start() error {
	a.logger.Info("starting botgate",
		"server_port", a.cfg.ServerPort,
		"routes", len(a.cfg.Routes),
	)

	if err := a.server.Start(); err != nil {
		a.logger.Error("failed to start HTTP server", "error", err)
		return err
	}
	return nil
}

// Stop shuts the application down cleanly: server first so no new updates
// arrive, then the responder pool, then the database.
func (a *App) Stop() error {
	a.logger.Info("shutting down botgate")

	serverErr := a.server.Stop()
	if serverErr != nil {
		a.logger.Error("error during HTTP server shutdown", "error", serverErr)
	}

	a.pool.Stop()

	a.logger.Info("closing database connection")
	if err := a.dbConn.Close(); err != nil {
		a.logger.Error("error closing database", "error", err)
	}

	if serverErr != nil {
		return serverErr
	}

	a.logger.Info("botgate stopped successfully")
	return nil
}
