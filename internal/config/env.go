package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/nibzard/next-action-go/internal/utils"
)

// EnvPrefix prefixes every environment variable read by loadFromEnv.
const EnvPrefix = "NEXT_ACTION_"

// loadFromEnv overrides config from NEXT_ACTION_* environment variables.
func loadFromEnv(cfg *Config) error {
	setString := func(key string, target *string) {
		if v, ok := lookupEnv(key); ok {
			*target = v
			cfg.Sources[key] = SourceEnv
		}
	}
	setBool := func(key string, target *bool) {
		if v, ok := lookupEnv(key); ok {
			*target = boolFromString(v)
			cfg.Sources[key] = SourceEnv
		}
	}

	if v, ok := lookupEnv("file"); ok {
		cfg.Files = utils.SplitAndTrim(v, ",")
		cfg.Sources["file"] = SourceEnv
	}
	if v, ok := lookupEnv("number"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%sNUMBER: %w", EnvPrefix, err)
		}
		cfg.Number = n
		cfg.All = false
		cfg.Sources["number"] = SourceEnv
	}
	setBool("all", &cfg.All)
	setString("priority", &cfg.Priority)
	if v, ok := lookupEnv("filters"); ok {
		cfg.Filters = strings.Fields(v)
		cfg.Sources["filters"] = SourceEnv
	}
	setString("reference", &cfg.Reference)
	setString("style", &cfg.Style)
	setBool("blocked", &cfg.Blocked)
	setBool("line_number", &cfg.LineNumber)
	setBool("hidden", &cfg.Hidden)
	setString("log_level", &cfg.LogLevel)
	setString("log_format", &cfg.LogFormat)
	setBool("log_timestamps", &cfg.LogTimestamps)
	return nil
}

// lookupEnv reads the variable for a config key, e.g. NEXT_ACTION_LINE_NUMBER
// for line_number. Empty values count as unset.
func lookupEnv(key string) (string, bool) {
	v := os.Getenv(EnvPrefix + strings.ToUpper(key))
	return v, v != ""
}

// boolFromString parses a string as a boolean.
func boolFromString(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "1" || s == "true" || s == "yes" || s == "on"
}
