// Package config loads application configuration.
//
// PRECEDENCE (lowest to highest):
//  1. Built-in defaults
//  2. config.yaml (or the file named by CONFIG_PATH), if present
//  3. Environment variables (a .env file is loaded first if present)
//
// Env always wins so deployments can override a checked-in config.yaml
// without editing it.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the full application configuration.
type Config struct {
	Server struct {
		Port         int           `yaml:"port"`
		ReadTimeout  time.Duration `yaml:"read_timeout"`
		WriteTimeout time.Duration `yaml:"write_timeout"`
		IdleTimeout  time.Duration `yaml:"idle_timeout"`
	} `yaml:"server"`

	Store struct {
		Path string `yaml:"path"` // SQLite file; ":memory:" for ephemeral
	} `yaml:"store"`

	Auth struct {
		JWTSecret string `yaml:"jwt_secret"`
	} `yaml:"auth"`

	Feed struct {
		URL  string `yaml:"url"`  // external job feed; empty = fallback only
		Seed bool   `yaml:"seed"` // seed an empty catalog at startup
	} `yaml:"feed"`

	Logging struct {
		Level string `yaml:"level"` // debug, info, warn, error
	} `yaml:"logging"`
}

// Load builds the configuration from defaults, the optional YAML file,
// and the environment, in that order.
func Load() (*Config, error) {
	// .env is developer convenience — absent in production, and that's fine.
	_ = godotenv.Load()

	cfg := defaults()

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config.yaml"
	}
	if raw, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("config: parsing %s: %w", path, err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaults() *Config {
	cfg := &Config{}
	cfg.Server.Port = 8080
	cfg.Server.ReadTimeout = 15 * time.Second
	cfg.Server.WriteTimeout = 15 * time.Second
	cfg.Server.IdleTimeout = 60 * time.Second
	cfg.Store.Path = "data/hirepro.db"
	cfg.Feed.Seed = true
	cfg.Logging.Level = "info"
	return cfg
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: invalid PORT %q: %w", v, err)
		}
		cfg.Server.Port = port
	}
	if v := os.Getenv("DB_PATH"); v != "" {
		cfg.Store.Path = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.Auth.JWTSecret = v
	}
	if v := os.Getenv("FEED_URL"); v != "" {
		cfg.Feed.URL = v
	}
	if v := os.Getenv("FEED_SEED"); v != "" {
		seed, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: invalid FEED_SEED %q: %w", v, err)
		}
		cfg.Feed.Seed = seed
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	return nil
}

// SlogLevel maps the configured level name to a slog level. Unknown
// names fall back to info rather than erroring — a typo in LOG_LEVEL
// shouldn't keep the server down.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.Logging.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
