package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strconv"
)

const appName = "todoboard"

// findProjectConfigFile looks for a config file in the current directory.
func findProjectConfigFile() string {
	names := []string{appName + ".toml", "." + appName + ".toml"}
	for _, name := range names {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// findUserConfigFile looks for a user-level config file.
// Checks ~/.todoboard/todoboard.toml first, then falls back to OS-specific
// config directories.
func findUserConfigFile() string {
	home, err := os.UserHomeDir()
	if err == nil {
		userConfigPath := filepath.Join(home, "."+appName, appName+".toml")
		if _, err := os.Stat(userConfigPath); err == nil {
			return userConfigPath
		}
	}

	if cfgDir := osUserConfigDir(); cfgDir != "" {
		userConfigPath := filepath.Join(cfgDir, appName, appName+".toml")
		if _, err := os.Stat(userConfigPath); err == nil {
			return userConfigPath
		}
	}

	return ""
}

// osUserConfigDir returns the OS-specific user config directory.
// Returns empty string if the directory cannot be determined.
func osUserConfigDir() string {
	switch runtime.GOOS {
	case "windows":
		if appdata := os.Getenv("APPDATA"); appdata != "" {
			return appdata
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, "Library", "Application Support")
		}
	case "linux", "openbsd", "freebsd", "netbsd":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return xdg
		}
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, ".config")
		}
	}
	return ""
}

// setDefaults sets default values for all config fields.
func setDefaults(cfg *Config) {
	cfg.BaseURL = DefaultBaseURL
	cfg.RefreshIntervalMS = DefaultRefreshIntervalMS
	cfg.ValidateResponses = DefaultValidateResponses
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
	cfg.LogFile = DefaultLogFile
}

// GetConfigFile returns the last config file that was applied, if any.
func (cws *ConfigWithSources) GetConfigFile() string {
	if cws == nil || cws.Config == nil || len(cws.Config.ConfigFiles) == 0 {
		return ""
	}
	return cws.Config.ConfigFiles[len(cws.Config.ConfigFiles)-1]
}

// configFields returns the list of configurable field names for source tracking.
func configFields() []string {
	return []string{
		"base_url",
		"api_token",
		"request_timeout_seconds",
		"validate_responses",
		"refresh_interval_ms",
		"log_level",
		"log_format",
		"log_file",
		"log_timestamps",
		"log_caller",
	}
}

// Entry is one effective setting and where it came from.
type Entry struct {
	Key    string
	Value  string
	Source ConfigSource
}

// Entries lists the effective settings in declaration order. The API token
// is masked.
func (cws *ConfigWithSources) Entries() []Entry {
	cfg := cws.Config
	entries := make([]Entry, 0, len(configFields()))
	for _, key := range configFields() {
		var value string
		switch key {
		case "base_url":
			value = cfg.BaseURL
		case "api_token":
			if cfg.APIToken != "" {
				value = "********"
			}
		case "request_timeout_seconds":
			value = strconv.Itoa(cfg.RequestTimeoutSeconds)
		case "validate_responses":
			value = strconv.FormatBool(cfg.ValidateResponses)
		case "refresh_interval_ms":
			value = strconv.Itoa(cfg.RefreshIntervalMS)
		case "log_level":
			value = cfg.LogLevel
		case "log_format":
			value = cfg.LogFormat
		case "log_file":
			value = cfg.LogFile
		case "log_timestamps":
			value = strconv.FormatBool(cfg.LogTimestamps)
		case "log_caller":
			value = strconv.FormatBool(cfg.LogCaller)
		}
		source := cws.Sources[key]
		if source == "" {
			source = SourceDefault
		}
		entries = append(entries, Entry{Key: key, Value: value, Source: source})
	}
	return entries
}
