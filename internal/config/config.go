package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	customerrors "github.com/axellelanca/surl/internal/errors"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// DefaultBaseURL is used when no shortening service base URL is configured.
const DefaultBaseURL = "http://localhost"

// DefaultFaviconTemplate is the icon service used to decorate long URLs. %s receives the hostname.
const DefaultFaviconTemplate = "https://www.google.com/s2/favicons?domain=%s&sz=64"

// Config represents the main structure mapping the entire application configuration.
// This struct uses mapstructure tags to map YAML/JSON keys to Go struct fields.
type Config struct {
	// Server configuration section for the web front-end
	Server struct {
		Port int `mapstructure:"port"` // HTTP server port (default: 8080)
	} `mapstructure:"server"`

	// API configuration section describing the external shortening service
	API struct {
		BaseURL string        `mapstructure:"base_url"` // Base URL of the shortening service
		Timeout time.Duration `mapstructure:"timeout"`  // Upstream request timeout, 0 disables it
	} `mapstructure:"api"`

	// Database configuration section for the local history (SQLite)
	Database struct {
		Name string `mapstructure:"name"` // SQLite database file name
	} `mapstructure:"database"`

	// History configuration for asynchronous recording of shortened links
	History struct {
		Enabled     bool `mapstructure:"enabled"`
		BufferSize  int  `mapstructure:"buffer_size"`  // Size of the shorten event channel buffer
		WorkerCount int  `mapstructure:"worker_count"` // Number of worker goroutines persisting events
	} `mapstructure:"history"`

	// Monitor configuration for checking the long URLs kept in history
	Monitor struct {
		Enabled         bool `mapstructure:"enabled"`
		IntervalMinutes int  `mapstructure:"interval_minutes"`
	} `mapstructure:"monitor"`

	Favicon struct {
		Template string `mapstructure:"template"`
	} `mapstructure:"favicon"`

	Log struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"` // "text" or "json"
	} `mapstructure:"log"`
}

// LoadConfig loads the application configuration using Viper.
// An optional .env file is loaded first so its variables take part in the environment overrides,
// then ./configs/config.yaml is read if present. Missing files are not an error.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	v := viper.New()

	// e.g., "api.base_url" becomes "API_BASE_URL"
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.AddConfigPath("./configs")
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			logrus.Debug("Config file not found, using defaults and environment")
		} else {
			return nil, customerrors.ErrConfigLoad{Path: v.ConfigFileUsed(), Reason: err.Error()}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	cfg.normalize()

	logrus.WithFields(logrus.Fields{
		"port":     cfg.Server.Port,
		"base_url": cfg.API.BaseURL,
		"history":  cfg.History.Enabled,
		"monitor":  cfg.Monitor.Enabled,
	}).Debug("Configuration loaded")

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("api.base_url", DefaultBaseURL)
	v.SetDefault("api.timeout", time.Duration(0))
	v.SetDefault("database.name", "surl_history.db")
	v.SetDefault("history.enabled", true)
	v.SetDefault("history.buffer_size", 100)
	v.SetDefault("history.worker_count", 2)
	v.SetDefault("monitor.enabled", false)
	v.SetDefault("monitor.interval_minutes", 5)
	v.SetDefault("favicon.template", DefaultFaviconTemplate)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// normalize applies the fallbacks that defaults alone cannot express, such as an
// API_BASE_URL set to an empty string.
func (c *Config) normalize() {
	c.API.BaseURL = strings.TrimRight(strings.TrimSpace(c.API.BaseURL), "/")
	if c.API.BaseURL == "" {
		c.API.BaseURL = DefaultBaseURL
	}
	if c.Favicon.Template == "" {
		c.Favicon.Template = DefaultFaviconTemplate
	}
	if c.History.BufferSize < 1 {
		c.History.BufferSize = 1
	}
	if c.History.WorkerCount < 1 {
		c.History.WorkerCount = 1
	}
	if c.Monitor.IntervalMinutes < 1 {
		c.Monitor.IntervalMinutes = 1
	}
}

// ConfigureLogging applies the log section to the global logrus logger.
func (c *Config) ConfigureLogging() {
	if c.Log.Format == "json" {
		logrus.SetFormatter(new(logrus.JSONFormatter))
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(c.Log.Level)
	if err != nil {
		logrus.Warnf("Unknown log level %q, falling back to info", c.Log.Level)
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}
