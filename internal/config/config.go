// Package config loads the gateway's process-wide configuration: server
// settings, database coordinates, bot credentials, and the webhook routing
// table. Credentials are read once at start-up and are read-only afterwards.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/viper"

	"github.com/sevigo/botgate/internal/logger"
)

// maxTypingDuration bounds how long a detached typing sequence may run.
const maxTypingDuration = 20 * time.Second

// Config holds the application's configuration values.
type Config struct {
	ServerPort     string
	TelegramAPIURL string

	// Credentials. A missing token is not a start-up error: its absence is
	// surfaced per request as a configuration fault.
	BotToken     string
	TGMSBotToken string
	AdminKey     string

	Routes    []Route
	Database  *DBConfig
	Logging   logger.Config
	Responder ResponderConfig
}

// DBConfig describes the Postgres connection. URL, when set, wins over the
// individual fields.
type DBConfig struct {
	URL             string
	Host            string
	Port            int
	Username        string
	Password        string
	Database        string
	SSLMode         string
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// ResponderConfig tunes the immediate-response side channel.
type ResponderConfig struct {
	MaxWorkers     int
	TypingInterval time.Duration
	TypingDuration time.Duration
	CallTimeout    time.Duration
}

// LoadConfig reads configuration from environment variables and a .env file,
// sets defaults, and assembles the routing table. It uses Viper to handle
// loading and precedence.
func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("TELEGRAM_API_URL", "https://api.telegram.org")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "text")
	viper.SetDefault("LOG_OUTPUT", "stdout")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", 5432)
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_NAME", "botgate")
	viper.SetDefault("DB_SSLMODE", "require")
	viper.SetDefault("DB_CONN_MAX_LIFETIME", "30m")
	viper.SetDefault("DB_CONN_MAX_IDLE_TIME", "5m")
	viper.SetDefault("RESPONDER_MAX_WORKERS", 32)
	viper.SetDefault("TYPING_INTERVAL", "4s")
	viper.SetDefault("TYPING_DURATION", "5s")
	viper.SetDefault("TELEGRAM_CALL_TIMEOUT", "2s")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(err) {
			slog.Error("failed to read .env file", "error", err)
		}
	}

	cfg := &Config{
		ServerPort:     viper.GetString("SERVER_PORT"),
		TelegramAPIURL: viper.GetString("TELEGRAM_API_URL"),
		BotToken:       viper.GetString("BOT_TOKEN"),
		TGMSBotToken:   viper.GetString("TGMS_BOT_TOKEN"),
		AdminKey:       viper.GetString("ADMIN_KEY"),
		Database: &DBConfig{
			URL:             viper.GetString("DATABASE_URL"),
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			Username:        viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			Database:        viper.GetString("DB_NAME"),
			SSLMode:         viper.GetString("DB_SSLMODE"),
			ConnMaxLifetime: viper.GetDuration("DB_CONN_MAX_LIFETIME"),
			ConnMaxIdleTime: viper.GetDuration("DB_CONN_MAX_IDLE_TIME"),
		},
		Logging: logger.Config{
			Level:  viper.GetString("LOG_LEVEL"),
			Format: viper.GetString("LOG_FORMAT"),
			Output: viper.GetString("LOG_OUTPUT"),
		},
		Responder: ResponderConfig{
			MaxWorkers:     viper.GetInt("RESPONDER_MAX_WORKERS"),
			TypingInterval: viper.GetDuration("TYPING_INTERVAL"),
			TypingDuration: viper.GetDuration("TYPING_DURATION"),
			CallTimeout:    viper.GetDuration("TELEGRAM_CALL_TIMEOUT"),
		},
	}

	if err := cfg.Responder.validate(); err != nil {
		return nil, err
	}

	cfg.Routes = defaultRoutes(cfg.BotToken, cfg.TGMSBotToken)
	if routesFile := viper.GetString("ROUTES_FILE"); routesFile != "" {
		extra, err := LoadRoutesFile(routesFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load routes file: %w", err)
		}
		cfg.Routes = append(cfg.Routes, extra...)
	}

	return cfg, nil
}

func (c ResponderConfig) validate() error {
	if c.TypingInterval <= 0 {
		return fmt.Errorf("TYPING_INTERVAL must be positive, got %s", c.TypingInterval)
	}
	if c.TypingDuration <= 0 || c.TypingDuration > maxTypingDuration {
		return fmt.Errorf("TYPING_DURATION must be within (0, %s], got %s", maxTypingDuration, c.TypingDuration)
	}
	if c.CallTimeout <= 0 {
		return fmt.Errorf("TELEGRAM_CALL_TIMEOUT must be positive, got %s", c.CallTimeout)
	}
	return nil
}

// RouteByName looks a route up in the table. Used by the admin broadcast
// endpoint to pick a credential.
func (c *Config) RouteByName(name string) (Route, bool) {
	for _, r := range c.Routes {
		if r.Name == name {
			return r, true
		}
	}
	return Route{}, false
}
