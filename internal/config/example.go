package config

import (
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
)

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# next-action configuration file
# Settings can be overridden by NEXT_ACTION_* environment variables or CLI flags

# todo.txt file or list of files ("-" reads standard input)
file = "~/todo.txt"

# Number of next actions to show; set all = true to show every one
number = 1
# all = true

# Minimum priority of next actions to show
# priority = "B"

# Context and project filters; a leading - excludes
# filters = ["@home", "-+Garden"]

# Reference the source file: always, never or multiple
reference = "multiple"

# Also show line numbers in references
line_number = false

# Show the tasks each next action blocks
blocked = false

# Include tasks tagged h:1
hidden = false

# Color style, see next-action --help for the list
# style = "dark"

# Logging: debug, info, warn or error; text, json or logfmt
log_level = "info"
log_format = "text"
log_timestamps = false
`
}

// writtenConfig is the subset of Config that WriteConfig saves.
type writtenConfig struct {
	File       any      `toml:"file"`
	Number     int      `toml:"number,omitempty"`
	All        bool     `toml:"all,omitempty"`
	Priority   string   `toml:"priority,omitempty"`
	Filters    []string `toml:"filters,omitempty"`
	Reference  string   `toml:"reference"`
	Style      string   `toml:"style,omitempty"`
	Blocked    bool     `toml:"blocked,omitempty"`
	LineNumber bool     `toml:"line_number,omitempty"`
	Hidden     bool     `toml:"hidden,omitempty"`

	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps,omitempty"`
}

// WriteConfig writes the settings of cfg as a TOML config file that Load
// reads back to the same settings.
func WriteConfig(w io.Writer, cfg *Config) error {
	out := writtenConfig{
		Priority:   cfg.Priority,
		Filters:    cfg.Filters,
		Reference:  cfg.Reference,
		Style:      cfg.Style,
		Blocked:    cfg.Blocked,
		LineNumber: cfg.LineNumber,
		Hidden:     cfg.Hidden,

		LogLevel:      cfg.LogLevel,
		LogFormat:     cfg.LogFormat,
		LogTimestamps: cfg.LogTimestamps,
	}
	if len(cfg.Files) == 1 {
		out.File = cfg.Files[0]
	} else {
		out.File = []string(cfg.Files)
	}
	if cfg.All {
		out.All = true
	} else {
		out.Number = cfg.Number
	}

	if _, err := fmt.Fprintln(w, "# Configuration file for next-action"); err != nil {
		return err
	}
	if err := toml.NewEncoder(w).Encode(out); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}
