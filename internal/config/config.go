// Package config loads application configuration from defaults, an optional
// YAML file, and environment variables (in that order of precedence).
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "HRPORTAL_"

// defaults hold the built-in configuration values. File and env settings
// override them key by key.
var defaults = map[string]interface{}{
	"app.base_url":                "http://localhost:8080",
	"server.host":                 "0.0.0.0",
	"server.port":                 "8080",
	"server.metrics_port":         "9090",
	"server.read_timeout":         "10s",
	"server.read_header_timeout":  "5s",
	"server.write_timeout":        "30s",
	"server.idle_timeout":         "120s",
	"database.max_open_conns":     25,
	"database.max_idle_conns":     5,
	"database.conn_max_lifetime":  "30m",
	"database.connect_timeout":    "30s",
	"database.connect_attempts":   5,
	"database.migrate":            true,
	"activation.token_duration":   "24h",
	"mail.enabled":                false,
	"mail.smtp_port":              587,
	"ratelimit.enabled":           true,
	"ratelimit.rps":               1.0,
	"ratelimit.burst":             5,
	"cors.allowed_origins":        []string{"*"},
	"log.level":                   "info",
	"log.format":                  "json",
}

// Config is the root application configuration.
type Config struct {
	App        AppConfig        `koanf:"app"`
	Server     ServerConfig     `koanf:"server"`
	Database   DatabaseConfig   `koanf:"database"`
	Activation ActivationConfig `koanf:"activation"`
	Mail       MailConfig       `koanf:"mail"`
	RateLimit  RateLimitConfig  `koanf:"ratelimit"`
	CORS       CORSConfig       `koanf:"cors"`
	Log        LogConfig        `koanf:"log"`
}

// AppConfig holds application-level settings.
type AppConfig struct {
	// BaseURL is the externally reachable URL used to build activation links.
	BaseURL string `koanf:"base_url" validate:"required,url"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host              string        `koanf:"host"`
	Port              string        `koanf:"port" validate:"required"`
	MetricsPort       string        `koanf:"metrics_port" validate:"required"`
	ReadTimeout       time.Duration `koanf:"read_timeout"`
	ReadHeaderTimeout time.Duration `koanf:"read_header_timeout"`
	WriteTimeout      time.Duration `koanf:"write_timeout"`
	IdleTimeout       time.Duration `koanf:"idle_timeout"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	URL             string        `koanf:"url" validate:"required"`
	MaxOpenConns    int           `koanf:"max_open_conns" validate:"min=1"`
	MaxIdleConns    int           `koanf:"max_idle_conns" validate:"min=0"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
	ConnectTimeout  time.Duration `koanf:"connect_timeout"`
	ConnectAttempts int           `koanf:"connect_attempts" validate:"min=1"`
	Migrate         bool          `koanf:"migrate"`
}

// ActivationConfig holds activation token settings.
type ActivationConfig struct {
	Secret        string        `koanf:"secret" validate:"required,min=16"`
	TokenDuration time.Duration `koanf:"token_duration" validate:"required"`
}

// MailConfig holds SMTP settings for outbound mail.
type MailConfig struct {
	Enabled      bool   `koanf:"enabled"`
	SMTPHost     string `koanf:"smtp_host" validate:"required_if=Enabled true"`
	SMTPPort     int    `koanf:"smtp_port"`
	SMTPUser     string `koanf:"smtp_user"`
	SMTPPassword string `koanf:"smtp_password"`
	FromAddress  string `koanf:"from_address" validate:"required_if=Enabled true"`
}

// RateLimitConfig holds per-client rate limiting settings for auth routes.
type RateLimitConfig struct {
	Enabled bool    `koanf:"enabled"`
	RPS     float64 `koanf:"rps" validate:"required_if=Enabled true"`
	Burst   int     `koanf:"burst" validate:"required_if=Enabled true"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `koanf:"allowed_origins"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `koanf:"level" validate:"oneof=debug info warn error"`
	Format string `koanf:"format" validate:"oneof=json text"`
}

// Load reads configuration from the optional YAML file at path and from
// HRPORTAL_* environment variables. Env keys map to config paths with "_"
// as the separator for one level and "__" preserved inside a key, e.g.
// HRPORTAL_DATABASE_URL -> database.url.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	for key, value := range defaults {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("set default %s: %w", key, err)
		}
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("load config file %s: %w", path, err)
			}
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKeyMapper), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// envKeyMapper converts HRPORTAL_SECTION_SOME_KEY to section.some_key.
// The first underscore separates the section; the rest stay in the key.
func envKeyMapper(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, envPrefix))
	parts := strings.SplitN(s, "_", 2)
	if len(parts) == 1 {
		return parts[0]
	}
	return parts[0] + "." + parts[1]
}
