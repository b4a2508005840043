package config

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Default values.
const (
	DefaultTodoFile  = "~/todo.txt"
	DefaultNumber    = 1
	DefaultReference = ReferenceMultiple
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// AnyDueDate is the --due value meaning "has any due date at all".
const AnyDueDate = "9999-12-31"

// Reference modes control when the source file is printed after a task.
const (
	ReferenceAlways   = "always"
	ReferenceNever    = "never"
	ReferenceMultiple = "multiple"
)

// Config holds the runtime configuration.
type Config struct {
	// Files are the todo.txt files to read. "-" means standard input.
	Files StringList `toml:"file" yaml:"file"`

	// Number of next actions to show, ignored when All is set.
	Number int  `toml:"number" yaml:"number"`
	All    bool `toml:"all" yaml:"all"`

	// Priority is the minimum priority letter; empty shows every priority.
	Priority string `toml:"priority" yaml:"priority"`

	// Filters are context and project filters such as "@home" or "-+Work".
	Filters StringList `toml:"filters" yaml:"filters"`

	Reference  string `toml:"reference" yaml:"reference"`
	Style      string `toml:"style" yaml:"style"`
	Blocked    bool   `toml:"blocked" yaml:"blocked"`
	LineNumber bool   `toml:"line_number" yaml:"line_number"`
	// Hidden includes tasks tagged h:1.
	Hidden bool `toml:"hidden" yaml:"hidden"`

	LogLevel      string `toml:"log_level" yaml:"log_level"`
	LogFormat     string `toml:"log_format" yaml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps" yaml:"log_timestamps"`

	// Command line only.
	Overdue         bool   `toml:"-" yaml:"-"`
	Due             string `toml:"-" yaml:"-"`
	TimeTravel      string `toml:"-" yaml:"-"`
	OpenURLs        bool   `toml:"-" yaml:"-"`
	WriteConfigFile bool   `toml:"-" yaml:"-"`

	// ReferenceDate is today, or the --time-travel date. DueDate is the
	// parsed --due value; the zero time means no due filter.
	ReferenceDate time.Time `toml:"-" yaml:"-"`
	DueDate       time.Time `toml:"-" yaml:"-"`

	// ConfigFiles lists the config files that were read, in order.
	ConfigFiles []string `toml:"-" yaml:"-"`

	// Sources records where each setting came from, keyed by config key.
	Sources map[string]Source `toml:"-" yaml:"-"`
}

// Source represents where a configuration value came from.
type Source string

const (
	SourceDefault    Source = "default"
	SourceUserFile   Source = "user file"
	SourceProjFile   Source = "project file"
	SourceConfigFile Source = "config file"
	SourceEnv        Source = "environment"
	SourceFlag       Source = "flag"
)

// Limit returns the number of next actions to show, 0 meaning all of them.
func (c *Config) Limit() int {
	if c.All {
		return 0
	}
	return c.Number
}

// FilterSet splits the configured filters into their four kinds.
func (c *Config) FilterSet() (Filters, error) {
	return ParseFilters(c.Filters)
}

func setDefaults(cfg *Config) {
	cfg.Files = StringList{DefaultTodoFile}
	cfg.Number = DefaultNumber
	cfg.Reference = DefaultReference
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
	if cfg.Sources == nil {
		cfg.Sources = make(map[string]Source)
	}
	for _, key := range []string{"file", "number", "all", "priority", "filters", "reference", "style", "blocked", "line_number", "hidden", "log_level", "log_format", "log_timestamps"} {
		cfg.Sources[key] = SourceDefault
	}
}

// StringList is a list of strings that config files may also give as a
// single string.
type StringList []string

// UnmarshalTOML implements toml.Unmarshaler.
func (l *StringList) UnmarshalTOML(data any) error {
	switch v := data.(type) {
	case string:
		*l = StringList{v}
	case []any:
		list := make(StringList, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return fmt.Errorf("expected string, got %T", item)
			}
			list = append(list, s)
		}
		*l = list
	default:
		return fmt.Errorf("expected string or list of strings, got %T", data)
	}
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (l *StringList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var s string
		if err := node.Decode(&s); err != nil {
			return err
		}
		*l = StringList{s}
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return err
		}
		*l = list
		return nil
	}
	return fmt.Errorf("line %d: expected string or list of strings", node.Line)
}

func (l StringList) String() string {
	return strings.Join(l, ", ")
}
