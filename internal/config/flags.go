package config

import (
	"flag"
)

// flagFields maps flag names to config field names for source tracking.
var flagFields = map[string]string{
	"url":                "base_url",
	"token":              "api_token",
	"timeout":            "request_timeout_seconds",
	"validate-responses": "validate_responses",
	"refresh-ms":         "refresh_interval_ms",
	"log-level":          "log_level",
	"log-format":         "log_format",
	"log-file":           "log_file",
	"log-timestamps":     "log_timestamps",
	"log-caller":         "log_caller",
}

// parseFlags defines and parses CLI flags.
// If sources is non-nil, explicitly set flags are recorded.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource) error {
	if fs == nil {
		fs = flag.NewFlagSet(appName, flag.ContinueOnError)
	}

	// Remote collection
	fs.StringVar(&cfg.BaseURL, "url", cfg.BaseURL, "Collection base URL (e.g. http://localhost:8080/todos)")
	fs.StringVar(&cfg.APIToken, "token", cfg.APIToken, "Bearer token sent with every request")
	fs.IntVar(&cfg.RequestTimeoutSeconds, "timeout", cfg.RequestTimeoutSeconds, "Request timeout in seconds (0 for none)")
	fs.BoolVar(&cfg.ValidateResponses, "validate-responses", cfg.ValidateResponses, "Check response bodies against the collection schema")

	// Display
	fs.IntVar(&cfg.RefreshIntervalMS, "refresh-ms", cfg.RefreshIntervalMS, "Progress recompute interval in milliseconds")

	// Logging
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug|info|warn|error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text|json|logfmt)")
	fs.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "Log file used by the terminal UI")
	fs.BoolVar(&cfg.LogTimestamps, "log-timestamps", cfg.LogTimestamps, "Include timestamps in log output")
	fs.BoolVar(&cfg.LogCaller, "log-caller", cfg.LogCaller, "Include caller location in log output")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if sources != nil {
		fs.Visit(func(f *flag.Flag) {
			if field, ok := flagFields[f.Name]; ok {
				sources[field] = SourceFlag
			}
		})
	}
	return nil
}
