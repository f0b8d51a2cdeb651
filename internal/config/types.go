package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource
}

// Default values.
const (
	DefaultBaseURL           = "http://localhost:8080/todos"
	DefaultRefreshIntervalMS = 1000
	DefaultLogLevel          = "info"
	DefaultLogFormat         = "text"
	DefaultLogFile           = "~/.todoboard/todoboard.log"
	DefaultValidateResponses = true
)

// Config holds the full configuration for todoboard.
type Config struct {
	// Remote collection
	BaseURL               string `toml:"base_url"`
	APIToken              string `toml:"api_token"`
	RequestTimeoutSeconds int    `toml:"request_timeout_seconds"` // 0 disables the timeout
	ValidateResponses     bool   `toml:"validate_responses"`

	// Progress recompute interval
	RefreshIntervalMS int `toml:"refresh_interval_ms"`

	// Logging configuration
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogFile       string `toml:"log_file"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	// Files that were applied, in order (computed)
	ConfigFiles []string `toml:"-"`
}

// RefreshInterval returns the progress recompute interval.
func (c *Config) RefreshInterval() time.Duration {
	return time.Duration(c.RefreshIntervalMS) * time.Millisecond
}

// RequestTimeout returns the per-request timeout, or 0 for none.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// Validate checks values that would otherwise fail later at runtime.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("base_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base_url: scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("base_url: missing host")
	}
	if c.RefreshIntervalMS <= 0 {
		return fmt.Errorf("refresh_interval_ms must be positive, got %d", c.RefreshIntervalMS)
	}
	if c.RequestTimeoutSeconds < 0 {
		return fmt.Errorf("request_timeout_seconds must not be negative, got %d", c.RequestTimeoutSeconds)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error", "fatal":
	default:
		return fmt.Errorf("log_level: unknown level %q", c.LogLevel)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json", "logfmt":
	default:
		return fmt.Errorf("log_format: unknown format %q", c.LogFormat)
	}
	return nil
}
