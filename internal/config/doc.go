// Package config handles configuration loading and defaults.
//
// Configuration is loaded from multiple sources in priority order:
// 1. Built-in defaults
// 2. User config file (~/.todoapp/todoapp.toml or OS-specific config directory)
// 3. Project config file (todoapp.toml or .todoapp.toml in the current directory)
// 4. Environment variables (TODOAPP_*)
// 5. CLI flags
//
// Each level overrides the previous one, so CLI flags take precedence.
// The [keys] table is merged per action rather than replaced.
//
// User-level config locations:
// - ~/.todoapp/todoapp.toml (preferred)
// - Windows: %APPDATA%\todoapp\todoapp.toml
// - macOS: ~/Library/Application Support/todoapp/todoapp.toml
// - Linux/BSD: $XDG_CONFIG_HOME/todoapp/todoapp.toml or ~/.config/todoapp/todoapp.toml
package config
