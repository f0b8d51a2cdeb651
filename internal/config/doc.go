// Package config handles configuration loading and defaults.
//
// Configuration is loaded from multiple sources in priority order:
// 1. Built-in defaults
// 2. User config file (~/.todoboard/todoboard.toml or OS-specific config directory)
// 3. Project config file (todoboard.toml or .todoboard.toml in the working directory)
// 4. Environment variables (TODOBOARD_*)
// 5. CLI flags
//
// Each level overrides the previous one, so CLI flags take precedence.
//
// User-level config locations:
// - ~/.todoboard/todoboard.toml (preferred)
// - Windows: %APPDATA%\todoboard\todoboard.toml
// - macOS: ~/Library/Application Support/todoboard/todoboard.toml
// - Linux/BSD: $XDG_CONFIG_HOME/todoboard/todoboard.toml or ~/.config/todoboard/todoboard.toml
//
// Project-level config locations (overrides user config):
// - ./todoboard.toml (preferred)
// - ./.todoboard.toml
package config
