package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# todoboard configuration file
# Values can be overridden by environment variables (TODOBOARD_*) or CLI flags

# Collection endpoint
base_url = "http://localhost:8080/todos"

# Bearer token sent as "Authorization: Bearer <token>" (optional)
# api_token = ""

# Per-request timeout in seconds (0 waits indefinitely)
request_timeout_seconds = 0

# Check list/get responses against the built-in collection schema
validate_responses = true

# How often displayed progress is recomputed (milliseconds)
refresh_interval_ms = 1000

# Logging
log_level = "info"      # debug, info, warn, error
log_format = "text"     # text, json, logfmt
log_file = "~/.todoboard/todoboard.log"
log_timestamps = false
log_caller = false
`
}
