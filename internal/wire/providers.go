package wire

import (
	"io"
	"log/slog"
	"os"

	"github.com/google/wire"

	"github.com/sevigo/botgate/internal/app"
	"github.com/sevigo/botgate/internal/config"
	"github.com/sevigo/botgate/internal/core"
	"github.com/sevigo/botgate/internal/db"
	"github.com/sevigo/botgate/internal/health"
	"github.com/sevigo/botgate/internal/logger"
	"github.com/sevigo/botgate/internal/responder"
	"github.com/sevigo/botgate/internal/server"
	"github.com/sevigo/botgate/internal/storage"
	"github.com/sevigo/botgate/internal/telegram"
)

var AppSet = wire.NewSet(
	app.NewApp,
	server.NewServer,
	logger.NewLogger,
	config.LoadConfig,
	db.NewDatabase,
	storage.NewJobStore,
	responder.NewPool,
	health.NewChecker,
	provideBotAPI,
	provideResponder,
	provideLoggerConfig,
	provideLogWriter,
	provideDBConfig,
	provideResponderConfig,
	provideRoutes,
)

func provideBotAPI(cfg *config.Config, logger *slog.Logger) responder.BotAPI {
	return telegram.NewClient(logger,
		telegram.WithBaseURL(cfg.TelegramAPIURL),
		telegram.WithTimeout(cfg.Responder.CallTimeout),
	)
}

func provideResponder(pool *responder.Pool) core.Responder {
	return pool
}

func provideLoggerConfig(cfg *config.Config) logger.Config {
	return cfg.Logging
}

func provideLogWriter(cfg *config.Config) io.Writer {
	switch cfg.Logging.Output {
	case "stderr":
		return os.Stderr
	default:
		return os.Stdout
	}
}

func provideDBConfig(cfg *config.Config) *config.DBConfig {
	return cfg.Database
}

func provideResponderConfig(cfg *config.Config) config.ResponderConfig {
	return cfg.Responder
}

func provideRoutes(cfg *config.Config) []config.Route {
	return cfg.Routes
}
