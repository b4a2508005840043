package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/nibzard/next-action-go/internal/dateparse"
	"github.com/nibzard/next-action-go/internal/todotxt"
)

var priorityPattern = regexp.MustCompile(`^[A-Z]$`)

// Load loads configuration from multiple sources in priority order:
// 1. Defaults
// 2. User config file (~/.next-action.cfg or OS-specific config dir)
// 3. Project config file (next-action.toml or .next-action.toml in current directory)
// 4. Environment variables
// 5. CLI flags and filter arguments
//
// An explicit --config-file replaces steps 2 and 3. Arguments left after
// flag parsing are available from fs.Args().
func Load(fs *pflag.FlagSet, args []string) (*Config, error) {
	cfg := &Config{}

	// 1. Set defaults
	setDefaults(cfg)

	// Flags are parsed first so --config-file is known, but applied last.
	flagArgs, filterArgs := splitArgs(args)
	var values flagValues
	defineFlags(fs, &values)
	if err := fs.Parse(flagArgs); err != nil {
		return nil, err
	}

	// 2-3. Config files
	if fs.Changed("config-file") {
		if path := expandPath(values.configFile); path != "" {
			if err := loadConfigFile(cfg, path, SourceConfigFile); err != nil {
				return nil, fmt.Errorf("loading config file: %w", err)
			}
		}
	} else {
		if userConfigFile := findUserConfigFile(); userConfigFile != "" {
			if err := loadConfigFile(cfg, userConfigFile, SourceUserFile); err != nil {
				return nil, fmt.Errorf("loading user config file: %w", err)
			}
		}
		if projectConfigFile := findProjectConfigFile(); projectConfigFile != "" {
			if err := loadConfigFile(cfg, projectConfigFile, SourceProjFile); err != nil {
				return nil, fmt.Errorf("loading project config file: %w", err)
			}
		}
	}

	// 4. Override from environment
	if err := loadFromEnv(cfg); err != nil {
		return nil, err
	}

	// 5. CLI flags override everything
	if err := applyFlags(cfg, fs, &values, filterArgs); err != nil {
		return nil, err
	}

	// 6. Compute derived values
	if err := finalizeConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// fileConfig mirrors Config for decoding; nil fields were not set.
type fileConfig struct {
	Files         *StringList `toml:"file" yaml:"file"`
	Number        *int        `toml:"number" yaml:"number"`
	All           *bool       `toml:"all" yaml:"all"`
	Priority      *string     `toml:"priority" yaml:"priority"`
	Filters       *StringList `toml:"filters" yaml:"filters"`
	Reference     *string     `toml:"reference" yaml:"reference"`
	Style         *string     `toml:"style" yaml:"style"`
	Blocked       *bool       `toml:"blocked" yaml:"blocked"`
	LineNumber    *bool       `toml:"line_number" yaml:"line_number"`
	Hidden        *bool       `toml:"hidden" yaml:"hidden"`
	LogLevel      *string     `toml:"log_level" yaml:"log_level"`
	LogFormat     *string     `toml:"log_format" yaml:"log_format"`
	LogTimestamps *bool       `toml:"log_timestamps" yaml:"log_timestamps"`
}

// isYAML reports whether a config file is read as YAML.
func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".cfg":
		return true
	}
	return false
}

// loadConfigFile validates a config file and merges it into cfg.
func loadConfigFile(cfg *Config, path string, source Source) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var raw map[string]any
	var fc fileConfig
	if isYAML(path) {
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("%s: parse yaml: %w", path, err)
		}
		if err := validateRaw(raw); err != nil {
			return fmt.Errorf("%s is invalid: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return fmt.Errorf("%s: decode yaml: %w", path, err)
		}
	} else {
		if _, err := toml.Decode(string(data), &raw); err != nil {
			return fmt.Errorf("%s: parse toml: %w", path, err)
		}
		if err := validateRaw(raw); err != nil {
			return fmt.Errorf("%s is invalid: %w", path, err)
		}
		if _, err := toml.Decode(string(data), &fc); err != nil {
			return fmt.Errorf("%s: decode toml: %w", path, err)
		}
	}

	mergeFileConfig(cfg, &fc, source)
	cfg.ConfigFiles = append(cfg.ConfigFiles, path)
	return nil
}

func mergeFileConfig(cfg *Config, fc *fileConfig, source Source) {
	setSource(cfg, "file", &cfg.Files, fc.Files, source)
	if fc.Number != nil {
		cfg.All = false
	}
	setSource(cfg, "number", &cfg.Number, fc.Number, source)
	setSource(cfg, "all", &cfg.All, fc.All, source)
	setSource(cfg, "priority", &cfg.Priority, fc.Priority, source)
	setSource(cfg, "filters", &cfg.Filters, fc.Filters, source)
	setSource(cfg, "reference", &cfg.Reference, fc.Reference, source)
	setSource(cfg, "style", &cfg.Style, fc.Style, source)
	setSource(cfg, "blocked", &cfg.Blocked, fc.Blocked, source)
	setSource(cfg, "line_number", &cfg.LineNumber, fc.LineNumber, source)
	setSource(cfg, "hidden", &cfg.Hidden, fc.Hidden, source)
	setSource(cfg, "log_level", &cfg.LogLevel, fc.LogLevel, source)
	setSource(cfg, "log_format", &cfg.LogFormat, fc.LogFormat, source)
	setSource(cfg, "log_timestamps", &cfg.LogTimestamps, fc.LogTimestamps, source)
}

// setSource copies a set value into target and records its source.
func setSource[T any](cfg *Config, key string, target *T, value *T, source Source) {
	if value == nil {
		return
	}
	*target = *value
	cfg.Sources[key] = source
}

// splitArgs separates filter arguments from flags. Filters such as "-@phone"
// would otherwise be taken for shorthand flags. An optional --due value given
// as a separate argument is joined to its flag.
func splitArgs(args []string) (flagArgs, filters []string) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--":
			return append(flagArgs, args[i:]...), filters
		case IsFilter(arg):
			filters = append(filters, arg)
		case (arg == "-d" || arg == "--due") && i+1 < len(args) && isDate(args[i+1]):
			flagArgs = append(flagArgs, "--due="+args[i+1])
			i++
		default:
			flagArgs = append(flagArgs, arg)
		}
	}
	return flagArgs, filters
}

func isDate(arg string) bool {
	if strings.HasPrefix(arg, "-") {
		return false
	}
	_, err := dateparse.Parse(arg, time.Now())
	return err == nil
}

// finalizeConfig validates the merged values and computes derived ones.
func finalizeConfig(cfg *Config) error {
	files := make(StringList, 0, len(cfg.Files))
	for _, f := range cfg.Files {
		if f != todotxt.StdinFilename {
			f = expandPath(f)
		}
		if !slices.Contains(files, f) {
			files = append(files, f)
		}
	}
	cfg.Files = files

	if !cfg.All && cfg.Number < 1 {
		return &ValidationError{Path: "number", Err: fmt.Errorf("must be at least 1, got %d", cfg.Number)}
	}
	if cfg.Priority != "" && !priorityPattern.MatchString(cfg.Priority) {
		return &ValidationError{Path: "priority", Err: fmt.Errorf("must be a letter from A to Z, got %q", cfg.Priority)}
	}
	switch cfg.Reference {
	case ReferenceAlways, ReferenceNever, ReferenceMultiple:
	default:
		return &ValidationError{Path: "reference", Err: fmt.Errorf("must be always, never or multiple, got %q", cfg.Reference)}
	}
	switch cfg.LogFormat {
	case "text", "json", "logfmt":
	default:
		return &ValidationError{Path: "log_format", Err: fmt.Errorf("unknown format %q", cfg.LogFormat)}
	}
	if _, err := cfg.FilterSet(); err != nil {
		return &ValidationError{Path: "filters", Err: err}
	}

	cfg.ReferenceDate = todotxt.Today()
	if cfg.TimeTravel != "" {
		date, err := dateparse.Parse(cfg.TimeTravel, cfg.ReferenceDate)
		if err != nil {
			return &ValidationError{Path: "time-travel", Err: err}
		}
		cfg.ReferenceDate = date
	}
	if cfg.Due != "" {
		date, err := dateparse.Parse(cfg.Due, cfg.ReferenceDate)
		if err != nil {
			return &ValidationError{Path: "due", Err: err}
		}
		cfg.DueDate = date
	}
	return nil
}
