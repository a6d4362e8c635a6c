// Package config loads server settings from the environment.
//
// Precedence, highest first: real environment variables, a .env file in the
// working directory (optional), built-in defaults.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// minSecretLen matches auth.NewTokenService.
const minSecretLen = 16

// Config holds every setting the server reads at startup.
type Config struct {
	Port     int    `mapstructure:"PORT"`
	DBPath   string `mapstructure:"DB_PATH"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	// JWTSecret enables login tokens when set. Empty keeps the API fully
	// anonymous.
	JWTSecret string `mapstructure:"JWT_SECRET"`

	GroqAPIKey  string        `mapstructure:"GROQ_API_KEY"`
	GroqBaseURL string        `mapstructure:"GROQ_BASE_URL"`
	GroqModel   string        `mapstructure:"GROQ_MODEL"`
	ChatTimeout time.Duration `mapstructure:"CHAT_TIMEOUT"`

	// StatsTimezone is an IANA name ("Asia/Dhaka") for the weekly summary.
	// Empty means the server's local zone.
	StatsTimezone string `mapstructure:"STATS_TIMEZONE"`

	// CORSAllowedOrigins is a comma-separated origin list for browser
	// clients. "*" allows any origin.
	CORSAllowedOrigins string `mapstructure:"CORS_ALLOWED_ORIGINS"`
}

// defaults are registered with viper before reading. AutomaticEnv only
// binds keys viper already knows, so every key needs an entry here.
var defaults = map[string]any{
	"PORT":           5000,
	"DB_PATH":        "data/wellness.db",
	"LOG_LEVEL":      "info",
	"JWT_SECRET":     "",
	"GROQ_API_KEY":   "",
	"GROQ_BASE_URL":  "https://api.groq.com/openai/v1",
	"GROQ_MODEL":     "llama-3.3-70b-versatile",
	"CHAT_TIMEOUT":   "45s",
	"STATS_TIMEZONE": "",

	"CORS_ALLOWED_ORIGINS": "*",
}

// Load reads .env (if present) and the environment, applies defaults and
// validates the result.
func Load() (*Config, error) {
	// A missing .env is normal in production.
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks ranges and formats. It does not require GROQ_API_KEY:
// without one the chat endpoint answers with its fallback reply.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port)
	}
	if strings.TrimSpace(c.DBPath) == "" {
		return errors.New("DB_PATH is required")
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	if c.JWTSecret != "" && len(c.JWTSecret) < minSecretLen {
		return fmt.Errorf("JWT_SECRET must be at least %d characters", minSecretLen)
	}
	if c.ChatTimeout <= 0 {
		return errors.New("CHAT_TIMEOUT must be positive")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// SlogLevel parses LOG_LEVEL (debug, info, warn, error).
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("LOG_LEVEL %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// Location resolves STATS_TIMEZONE. Empty means time.Local.
func (c *Config) Location() (*time.Location, error) {
	if c.StatsTimezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.StatsTimezone)
	if err != nil {
		return nil, fmt.Errorf("STATS_TIMEZONE %q: %w", c.StatsTimezone, err)
	}
	return loc, nil
}

// AllowedOrigins splits CORS_ALLOWED_ORIGINS. Empty means any origin.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
