package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config holds application configuration, loaded from CHATTERBOX_* env vars.
type Config struct {
	// ServiceURL is the chatbot backend base URL.
	ServiceURL string `envconfig:"SERVICE_URL" default:"http://localhost:3003"`
	// AssetURL serves character images. Empty means same host as ServiceURL.
	AssetURL string `envconfig:"ASSET_URL"`
	// SessionFile is where the durable session projection lives.
	SessionFile string `envconfig:"SESSION_FILE"`
	// RedirectDelay is how long the no-character notice shows before
	// returning home.
	RedirectDelay time.Duration `envconfig:"REDIRECT_DELAY" default:"2s"`
	LogLevel      string        `envconfig:"LOG_LEVEL" default:"info"`
}

// Load reads configuration from the environment. SessionFile defaults to
// ~/.chatterbox/session.json when unset.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("chatterbox", &cfg); err != nil {
		return nil, err
	}
	if cfg.SessionFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		cfg.SessionFile = filepath.Join(home, ".chatterbox", "session.json")
	}
	return &cfg, nil
}

// Init initializes all application dependencies.
func (c *Config) Init() {
	InitLogger()
	SetLogLevel(c.Level())

	log.Debug().
		Str("service_url", c.ServiceURL).
		Str("session_file", c.SessionFile).
		Str("log_level", c.Level().String()).
		Msg("Application configuration loaded")
}

// Level parses the configured log level, defaulting to info.
func (c *Config) Level() zerolog.Level {
	switch c.LogLevel {
	case "debug", "DEBUG":
		return zerolog.DebugLevel
	case "info", "INFO":
		return zerolog.InfoLevel
	case "warn", "WARN":
		return zerolog.WarnLevel
	case "error", "ERROR":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
