package config

import (
	"fmt"
	"os"
	"strings"
)

// loadFromEnv overrides config from environment variables.
// If sources is non-nil, it tracks the source of each value.
func loadFromEnv(cfg *Config, sources map[string]ConfigSource) {
	mark := func(field string) {
		if sources != nil {
			sources[field] = SourceEnv
		}
	}

	if v := os.Getenv("TODOBOARD_URL"); v != "" {
		cfg.BaseURL = v
		mark("base_url")
	}
	if v := os.Getenv("TODOBOARD_TOKEN"); v != "" {
		cfg.APIToken = v
		mark("api_token")
	}
	if v := os.Getenv("TODOBOARD_TIMEOUT"); v != "" {
		var i int
		if _, err := fmt.Sscanf(v, "%d", &i); err == nil {
			cfg.RequestTimeoutSeconds = i
			mark("request_timeout_seconds")
		}
	}
	if v := os.Getenv("TODOBOARD_VALIDATE_RESPONSES"); v != "" {
		cfg.ValidateResponses = boolFromString(v)
		mark("validate_responses")
	}
	if v := os.Getenv("TODOBOARD_REFRESH_MS"); v != "" {
		var i int
		if _, err := fmt.Sscanf(v, "%d", &i); err == nil {
			cfg.RefreshIntervalMS = i
			mark("refresh_interval_ms")
		}
	}

	// Logging configuration
	if v := os.Getenv("TODOBOARD_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
		mark("log_level")
	}
	if v := os.Getenv("TODOBOARD_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
		mark("log_format")
	}
	if v := os.Getenv("TODOBOARD_LOG_FILE"); v != "" {
		cfg.LogFile = v
		mark("log_file")
	}
	if v := os.Getenv("TODOBOARD_LOG_TIMESTAMPS"); v != "" {
		cfg.LogTimestamps = boolFromString(v)
		mark("log_timestamps")
	}
	if v := os.Getenv("TODOBOARD_LOG_CALLER"); v != "" {
		cfg.LogCaller = boolFromString(v)
		mark("log_caller")
	}
}

func boolFromString(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
