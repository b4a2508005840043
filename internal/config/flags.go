package config

import (
	"errors"

	"github.com/spf13/pflag"
)

// flagValues holds the values bound to command line flags. They are copied
// into the Config only when the flag was given.
type flagValues struct {
	files           []string
	number          int
	all             bool
	overdue         bool
	due             string
	priority        string
	blocked         bool
	reference       string
	lineNumber      bool
	style           string
	configFile      string
	writeConfigFile bool
	timeTravel      string
	openURLs        bool
	hidden          bool
	logLevel        string
}

func defineFlags(fs *pflag.FlagSet, v *flagValues) {
	fs.StringArrayVarP(&v.files, "file", "f", nil, "todo.txt file to read; repeat for several files, - reads standard input (default "+DefaultTodoFile+")")
	fs.IntVarP(&v.number, "number", "n", DefaultNumber, "number of next actions to show")
	fs.BoolVarP(&v.all, "all", "a", false, "show all next actions")
	fs.BoolVarP(&v.overdue, "overdue", "o", false, "show only overdue next actions")
	fs.StringVarP(&v.due, "due", "d", "", "show only next actions due on or before `date`; without a date, any due date")
	fs.Lookup("due").NoOptDefVal = AnyDueDate
	fs.StringVarP(&v.priority, "priority", "p", "", "minimum `priority` (A-Z) of next actions to show")
	fs.BoolVarP(&v.blocked, "blocked", "b", false, "show the tasks blocked by each next action")
	fs.StringVarP(&v.reference, "reference", "r", DefaultReference, "reference the source file: always, never or multiple (when reading several files)")
	fs.BoolVarP(&v.lineNumber, "line-number", "l", false, "reference the line number of each next action")
	fs.StringVarP(&v.style, "style", "s", "", "colorize the output with `style`")
	fs.StringVarP(&v.configFile, "config-file", "c", "", "read configuration from `file`; an empty name skips config files")
	fs.BoolVarP(&v.writeConfigFile, "write-config-file", "w", false, "print a configuration file with the current settings and exit")
	fs.StringVarP(&v.timeTravel, "time-travel", "t", "", "pretend today is `date`")
	fs.BoolVarP(&v.openURLs, "open-urls", "u", false, "open the URLs of the next actions in a browser")
	fs.BoolVar(&v.hidden, "hidden", false, "include tasks tagged h:1")
	fs.StringVar(&v.logLevel, "log-level", "", "log `level`: debug, info, warn or error")
}

// applyFlags copies explicitly set flags and filter arguments into cfg.
func applyFlags(cfg *Config, fs *pflag.FlagSet, v *flagValues, filterArgs []string) error {
	if fs.Changed("number") && fs.Changed("all") {
		return errors.New("--all and --number cannot be used together")
	}

	set := func(name, key string, apply func()) {
		if fs.Changed(name) {
			apply()
			cfg.Sources[key] = SourceFlag
		}
	}
	set("file", "file", func() { cfg.Files = v.files })
	set("number", "number", func() { cfg.Number, cfg.All = v.number, false })
	set("all", "all", func() { cfg.All = v.all })
	set("priority", "priority", func() { cfg.Priority = v.priority })
	set("blocked", "blocked", func() { cfg.Blocked = v.blocked })
	set("reference", "reference", func() { cfg.Reference = v.reference })
	set("line-number", "line_number", func() { cfg.LineNumber = v.lineNumber })
	set("style", "style", func() { cfg.Style = v.style })
	set("hidden", "hidden", func() { cfg.Hidden = v.hidden })
	set("log-level", "log_level", func() { cfg.LogLevel = v.logLevel })

	cfg.Overdue = v.overdue
	cfg.Due = v.due
	cfg.TimeTravel = v.timeTravel
	cfg.OpenURLs = v.openURLs
	cfg.WriteConfigFile = v.writeConfigFile

	if len(filterArgs) > 0 {
		if _, err := ParseFilters(filterArgs); err != nil {
			return err
		}
		cfg.Filters = MergeFilters(cfg.Filters, filterArgs)
		cfg.Sources["filters"] = SourceFlag
	}
	return nil
}
