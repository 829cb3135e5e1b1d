package common

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Environment string        `toml:"environment"` // "development" or "production"
	Server      ServerConfig  `toml:"server"`
	Storage     StorageConfig `toml:"storage"`
	Logging     LoggingConfig `toml:"logging"`
	API         APIConfig     `toml:"api"`
	Wizard      WizardConfig  `toml:"wizard"`
}

type ServerConfig struct {
	Port int    `toml:"port"`
	Host string `toml:"host"`
}

type StorageConfig struct {
	Badger BadgerConfig `toml:"badger"`
}

// BadgerConfig represents BadgerDB-specific configuration
type BadgerConfig struct {
	Path           string `toml:"path"`             // Database directory path
	ResetOnStartup bool   `toml:"reset_on_startup"` // Delete database on startup for clean test runs
}

type LoggingConfig struct {
	Level      string   `toml:"level"`       // "debug", "info", "warn", "error"
	Output     []string `toml:"output"`      // "stdout", "file"
	TimeFormat string   `toml:"time_format"` // Time format for logs
}

// APIConfig describes the remote campaign-generation collaborator. The two
// generation URLs exist because the remote API exposes divergent basic and
// comprehensive modes; endpoint choice is goal-driven, not data-driven.
type APIConfig struct {
	TicketURL        string `toml:"ticket_url"`        // POST {fileName, fileType} -> upload ticket
	BasicURL         string `toml:"basic_url"`         // Basic campaign generation endpoint
	ComprehensiveURL string `toml:"comprehensive_url"` // Comprehensive campaign generation endpoint
	Timeout          string `toml:"timeout"`           // HTTP timeout, e.g. "60s"
	RateLimit        int    `toml:"rate_limit"`        // Requests per second against the remote API
}

// WizardConfig controls wizard session lifecycle
type WizardConfig struct {
	SessionTTL      string `toml:"session_ttl"`      // e.g. "24h" - sessions idle longer than this are expired
	CleanupSchedule string `toml:"cleanup_schedule"` // Cron schedule for the session janitor
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Port: 8090,
			Host: "localhost",
		},
		Storage: StorageConfig{
			Badger: BadgerConfig{
				Path:           "./data/studio",
				ResetOnStartup: false,
			},
		},
		Logging: LoggingConfig{
			Level:      "info",
			Output:     []string{"stdout"},
			TimeFormat: "15:04:05",
		},
		API: APIConfig{
			TicketURL:        "https://api.campaignforge.example/get-presigned-url",
			BasicURL:         "https://api.campaignforge.example/generate-campaign",
			ComprehensiveURL: "https://api.campaignforge.example/generate-comprehensive-campaign",
			Timeout:          "90s",
			RateLimit:        5,
		},
		Wizard: WizardConfig{
			SessionTTL:      "24h",
			CleanupSchedule: "@hourly",
		},
	}
}

// LoadFromFile loads configuration from a TOML file layered over defaults,
// then applies environment variable overrides. A missing path is not an
// error; defaults plus env apply.
func LoadFromFile(path string) (*Config, error) {
	config := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		} else if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to the config
func applyEnvOverrides(config *Config) {
	if v := os.Getenv("STUDIO_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			config.Server.Port = port
		}
	}
	if v := os.Getenv("STUDIO_HOST"); v != "" {
		config.Server.Host = v
	}
	if v := os.Getenv("STUDIO_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}
	if v := os.Getenv("STUDIO_BADGER_PATH"); v != "" {
		config.Storage.Badger.Path = v
	}
	if v := os.Getenv("STUDIO_API_TICKET_URL"); v != "" {
		config.API.TicketURL = v
	}
	if v := os.Getenv("STUDIO_API_BASIC_URL"); v != "" {
		config.API.BasicURL = v
	}
	if v := os.Getenv("STUDIO_API_COMPREHENSIVE_URL"); v != "" {
		config.API.ComprehensiveURL = v
	}
	if v := os.Getenv("STUDIO_ENVIRONMENT"); v != "" {
		config.Environment = v
	}
}

// ApplyFlagOverrides applies command-line flag overrides (highest priority)
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port > 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}

// validateConfig checks required fields and parseable durations
func validateConfig(config *Config) error {
	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", config.Server.Port)
	}
	if config.API.TicketURL == "" || config.API.BasicURL == "" || config.API.ComprehensiveURL == "" {
		return fmt.Errorf("api endpoints must be configured (ticket_url, basic_url, comprehensive_url)")
	}
	if _, err := time.ParseDuration(config.API.Timeout); err != nil {
		return fmt.Errorf("invalid api timeout %q: %w", config.API.Timeout, err)
	}
	if _, err := time.ParseDuration(config.Wizard.SessionTTL); err != nil {
		return fmt.Errorf("invalid wizard session_ttl %q: %w", config.Wizard.SessionTTL, err)
	}
	return nil
}

// APITimeout returns the parsed remote API timeout
func (c *Config) APITimeout() time.Duration {
	d, err := time.ParseDuration(c.API.Timeout)
	if err != nil {
		return 90 * time.Second
	}
	return d
}

// SessionTTL returns the parsed wizard session TTL
func (c *Config) SessionTTL() time.Duration {
	d, err := time.ParseDuration(c.Wizard.SessionTTL)
	if err != nil {
		return 24 * time.Hour
	}
	return d
}
