package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/teamsync/sessioncore/telemetry"
	"github.com/teamsync/sessioncore/transport"
)

// Environment variables recognized by FromEnv.
const (
	EnvAPIBaseURL   = "TEAMSYNC_API_BASE_URL"
	EnvAPITimeoutMS = "TEAMSYNC_API_TIMEOUT_MS"
	EnvTokenFile    = "TEAMSYNC_TOKEN_FILE"
	EnvLogLevel     = "TEAMSYNC_LOG_LEVEL"
)

// ErrMissingAPIBaseURL indicates no API base URL was configured by any
// source.
var ErrMissingAPIBaseURL = errors.New("config: api base_url is required")

// Config is the full client configuration.
type Config struct {
	API struct {
		BaseURL   string `yaml:"base_url"`
		TimeoutMS int    `yaml:"timeout_ms"`
	} `yaml:"api"`

	Token struct {
		// File persists the token across restarts. Empty keeps the
		// token in memory only.
		File string `yaml:"file"`
	} `yaml:"token"`

	Telemetry struct {
		ServiceName string `yaml:"service_name"`
		Tracing     struct {
			Enabled   bool    `yaml:"enabled"`
			Exporter  string  `yaml:"exporter"`
			SamplePct float64 `yaml:"sample_pct"`
		} `yaml:"tracing"`
		Metrics struct {
			Enabled  bool   `yaml:"enabled"`
			Exporter string `yaml:"exporter"`
		} `yaml:"metrics"`
		Logging struct {
			Enabled bool   `yaml:"enabled"`
			Level   string `yaml:"level"`
		} `yaml:"logging"`
	} `yaml:"telemetry"`
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{}
	cfg.API.TimeoutMS = int(transport.DefaultTimeout / time.Millisecond)
	cfg.Telemetry.ServiceName = "sessioncore"
	cfg.Telemetry.Logging.Enabled = true
	cfg.Telemetry.Logging.Level = "info"
	return cfg
}

// Load reads configuration from the YAML file at path, layered over
// the defaults and under the environment.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: error reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: error parsing config file: %w", err)
	}

	cfg.applyEnv()
	return cfg, cfg.validate()
}

// FromEnv builds configuration from defaults and the environment
// alone, for hosts without a config file.
func FromEnv() (*Config, error) {
	cfg := Default()
	cfg.applyEnv()
	return cfg, cfg.validate()
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvAPIBaseURL); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv(EnvAPITimeoutMS); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			c.API.TimeoutMS = ms
		}
	}
	if v := os.Getenv(EnvTokenFile); v != "" {
		c.Token.File = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Telemetry.Logging.Level = v
	}
}

func (c *Config) validate() error {
	if c.API.BaseURL == "" {
		return ErrMissingAPIBaseURL
	}
	return nil
}

// Transport maps the API section onto the request pipeline config.
func (c *Config) Transport() transport.Config {
	return transport.Config{
		BaseURL: c.API.BaseURL,
		Timeout: time.Duration(c.API.TimeoutMS) * time.Millisecond,
	}
}

// Telemetry maps the telemetry section onto the telemetry config.
func (c *Config) TelemetryConfig() telemetry.Config {
	return telemetry.Config{
		ServiceName: c.Telemetry.ServiceName,
		Tracing: telemetry.TracingConfig{
			Enabled:   c.Telemetry.Tracing.Enabled,
			Exporter:  c.Telemetry.Tracing.Exporter,
			SamplePct: c.Telemetry.Tracing.SamplePct,
		},
		Metrics: telemetry.MetricsConfig{
			Enabled:  c.Telemetry.Metrics.Enabled,
			Exporter: c.Telemetry.Metrics.Exporter,
		},
		Logging: telemetry.LoggingConfig{
			Enabled: c.Telemetry.Logging.Enabled,
			Level:   c.Telemetry.Logging.Level,
		},
	}
}
