// Package config handles configuration loading and defaults.
//
// Configuration is loaded from multiple sources in priority order:
// 1. Built-in defaults
// 2. User config file (~/.next-action.cfg or OS-specific config directory)
// 3. Project config file (next-action.toml or .next-action.toml in the working directory)
// 4. Environment variables (NEXT_ACTION_*)
// 5. CLI flags and filter arguments
//
// Each level overrides the previous one, so CLI flags take precedence.
// Passing --config-file replaces levels 2 and 3 with the named file; an
// empty name skips config files altogether.
//
// User-level config locations:
// - ~/.next-action.cfg (YAML, preferred)
// - Windows: %APPDATA%\next-action\next-action.toml
// - macOS: ~/Library/Application Support/next-action/next-action.toml
// - Linux/BSD: $XDG_CONFIG_HOME/next-action/next-action.toml or ~/.config/next-action/next-action.toml
//
// Files ending in .yaml, .yml or .cfg are read as YAML, anything else as
// TOML. Every file is checked against an embedded JSON Schema before use.
package config
