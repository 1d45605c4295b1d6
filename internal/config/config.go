// Package config loads portfolio settings from defaults, an optional YAML
// file and the environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Content   ContentConfig   `mapstructure:"content"`
	Feed      FeedConfig      `mapstructure:"feed"`
	Session   SessionConfig   `mapstructure:"session"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Stats     StatsConfig     `mapstructure:"stats"`
	Log       LogConfig       `mapstructure:"log"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port      string `mapstructure:"port"`
	Mode      string `mapstructure:"mode"`
	Templates string `mapstructure:"templates"`
	Static    string `mapstructure:"static"`
	// Watch reloads templates when files under Templates change.
	Watch bool `mapstructure:"watch"`
}

// ContentConfig points at the static documents the pages are built from.
// Source and Manifest accept a file path or an http(s) URL.
type ContentConfig struct {
	Source      string `mapstructure:"source"`
	Manifest    string `mapstructure:"manifest"`
	DiagramsDir string `mapstructure:"diagrams_dir"`
	Resume      string `mapstructure:"resume"`
}

// FeedConfig selects where blog posts come from.
type FeedConfig struct {
	// Source is "bridge" (RSS-to-JSON service) or "rss" (parse the feed directly).
	Source    string        `mapstructure:"source"`
	BridgeURL string        `mapstructure:"bridge_url"`
	RSSURL    string        `mapstructure:"rss_url"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// SessionConfig controls how long per-visitor UI state is kept.
type SessionConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig bounds how fast one visitor may post UI actions.
type RateLimitConfig struct {
	RPS   float64 `mapstructure:"rps"`
	Burst int     `mapstructure:"burst"`
}

// StatsConfig configures privacy-conscious page view tracking.
type StatsConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Database string `mapstructure:"database"`
	// Salt for visitor IP hashes. Empty means a random salt per process,
	// so unique visitors are only counted within one run.
	Salt string `mapstructure:"salt"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Feed sources
const (
	FeedSourceBridge = "bridge"
	FeedSourceRSS    = "rss"
)

// SetDefaults registers a default for every key so that environment
// overrides are picked up by Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.templates", "templates")
	v.SetDefault("server.static", "static")
	v.SetDefault("server.watch", false)

	v.SetDefault("content.source", "static/content.json")
	v.SetDefault("content.manifest", "static/diagrams/diagrams.json")
	v.SetDefault("content.diagrams_dir", "static/diagrams")
	v.SetDefault("content.resume", "static/resume/resume.pdf")

	v.SetDefault("feed.source", FeedSourceBridge)
	v.SetDefault("feed.bridge_url", "https://api.rss2json.com/v1/api.json")
	v.SetDefault("feed.rss_url", "https://medium.com/feed/@azizr5050")
	v.SetDefault("feed.timeout", "10s")

	v.SetDefault("session.ttl", "30m")

	v.SetDefault("ratelimit.rps", 40.0)
	v.SetDefault("ratelimit.burst", 80)

	v.SetDefault("stats.enabled", true)
	v.SetDefault("stats.database", "portfolio.db")
	v.SetDefault("stats.salt", "")

	v.SetDefault("log.level", "info")
}

// Load reads configuration. cfgFile may be empty, in which case
// ./portfolio.yaml is used when present.
func Load(v *viper.Viper, cfgFile string) (*Config, error) {
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("portfolio")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("PORTFOLIO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// PORT is what most hosts inject.
	if err := v.BindEnv("server.port", "PORTFOLIO_SERVER_PORT", "PORT"); err != nil {
		return nil, fmt.Errorf("bind port env: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || cfgFile != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("port cannot be empty")
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("server mode must be debug, release or test, got %q", c.Server.Mode)
	}
	if c.Content.Source == "" {
		return errors.New("content source cannot be empty")
	}
	if c.Content.Manifest == "" {
		return errors.New("diagram manifest cannot be empty")
	}

	switch c.Feed.Source {
	case FeedSourceBridge:
		if c.Feed.BridgeURL == "" {
			return errors.New("feed bridge url cannot be empty when using the bridge source")
		}
	case FeedSourceRSS:
	default:
		return fmt.Errorf("feed source must be %q or %q", FeedSourceBridge, FeedSourceRSS)
	}
	if c.Feed.RSSURL == "" {
		return errors.New("feed rss url cannot be empty")
	}
	if c.Feed.Timeout <= 0 {
		return errors.New("feed timeout must be positive")
	}

	if c.Session.TTL <= 0 {
		return errors.New("session ttl must be positive")
	}
	if c.RateLimit.RPS <= 0 || c.RateLimit.Burst < 1 {
		return errors.New("rate limit needs a positive rps and a burst of at least 1")
	}
	if c.Stats.Enabled && c.Stats.Database == "" {
		return errors.New("stats database cannot be empty when stats are enabled")
	}

	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	return nil
}
