// Package cmd implements the CLI command structure for next-action.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/nibzard/next-action-go/internal/config"
	"github.com/nibzard/next-action-go/internal/logging"
	"github.com/nibzard/next-action-go/internal/output"
	"github.com/nibzard/next-action-go/internal/pick"
	"github.com/nibzard/next-action-go/internal/todotxt"
	"github.com/nibzard/next-action-go/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

var commands = []string{"next", "tui", "init", "list-arguments", "version", "help"}

// Run executes the next-action CLI.
func Run(ctx context.Context, args []string) error {
	// Create a flag set for global options
	fs := pflag.NewFlagSet("next-action", pflag.ContinueOnError)
	fs.SortFlags = false
	fs.SetOutput(io.Discard)
	help := fs.BoolP("help", "h", false, "show this help message and exit")
	showVersion := fs.BoolP("version", "V", false, "show the version and exit")

	cfg, err := config.Load(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, os.Stdout)
		return nil
	}
	if *showVersion {
		return versionCommand()
	}

	logger := logging.NewFromConfig(os.Stderr, cfg.LogLevel, cfg.LogFormat, cfg.LogTimestamps)
	for _, path := range cfg.ConfigFiles {
		logger.Debug("loaded config file", "path", path)
	}
	sourceKeys := make([]string, 0, len(cfg.Sources))
	for key := range cfg.Sources {
		sourceKeys = append(sourceKeys, key)
	}
	slices.Sort(sourceKeys)
	for _, key := range sourceKeys {
		logger.Debug("setting", "key", key, "source", cfg.Sources[key])
	}

	if cfg.WriteConfigFile {
		return config.WriteConfig(os.Stdout, cfg)
	}

	// Determine the subcommand; "next" is the default
	subcommand := "next"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}
	if len(remainingArgs) > 0 && slices.Contains(commands, subcommand) {
		return fmt.Errorf("unexpected arguments: %v", remainingArgs)
	}

	switch subcommand {
	case "next":
		return nextCommand(ctx, cfg, logger)
	case "tui":
		return tuiCommand(ctx, cfg, logger)
	case "init":
		return initCommand(".", logger)
	case "list-arguments":
		return listArgumentsCommand(fs, cfg, logger)
	case "version":
		return versionCommand()
	case "help":
		printUsage(fs, os.Stdout)
		return nil
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, os.Stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// nextCommand prints the next actions.
func nextCommand(ctx context.Context, cfg *config.Config, logger *log.Logger) error {
	opts, filters, err := pickOptions(cfg)
	if err != nil {
		return err
	}
	renderOpts, err := renderOptions(cfg, os.Stdout)
	if err != nil {
		return err
	}

	tasks, err := todotxt.ReadFiles(cfg.Files, os.Stdin)
	if err != nil {
		var pathErr *fs.PathError
		if errors.Is(err, fs.ErrNotExist) && errors.As(err, &pathErr) {
			return fmt.Errorf("can't find %s", pathErr.Path)
		}
		return fmt.Errorf("reading todo.txt files: %w", err)
	}
	logger.Debug("read tasks", "files", len(cfg.Files), "tasks", len(tasks), "blocked", countBlocked(tasks))

	actions := pick.NextActions(tasks, opts)
	logger.Debug("selected next actions", "count", len(actions), "limit", opts.Limit, "today", opts.Today().Format("2006-01-02"))

	warning := output.Warning(tasks,
		append(slices.Clip(filters.Contexts), filters.ExcludedContexts...),
		append(slices.Clip(filters.Projects), filters.ExcludedProjects...))
	if warning != "" {
		logger.Warn("filters name unknown contexts or projects", "warning", strings.TrimSpace(warning))
	}
	fmt.Fprintln(os.Stdout, output.Render(actions, renderOpts)+warning)

	if cfg.OpenURLs {
		return output.OpenURLs(ctx, actions, nil)
	}
	return nil
}

// tuiCommand launches the interactive viewer.
func tuiCommand(ctx context.Context, cfg *config.Config, logger *log.Logger) error {
	if slices.Contains(cfg.Files, todotxt.StdinFilename) {
		return errors.New("tui cannot read standard input")
	}
	opts, _, err := pickOptions(cfg)
	if err != nil {
		return err
	}
	renderOpts, err := renderOptions(cfg, os.Stdout)
	if err != nil {
		return err
	}

	load := func() (todotxt.Tasks, error) {
		tasks, err := todotxt.ReadFiles(cfg.Files, nil)
		if err != nil {
			logger.Debug("reload failed", "err", err)
		}
		return tasks, err
	}
	return ui.RunTUI(ctx, load, ui.Options{
		Pick:   opts,
		Render: renderOpts,
		Files:  cfg.Files,
	})
}

// initCommand writes an example next-action.toml into dir unless one exists.
func initCommand(dir string, logger *log.Logger) error {
	path := filepath.Join(dir, config.ProjectConfigFile)
	if _, err := os.Stat(path); err == nil {
		logger.Info("config file already exists, skipping", "path", path)
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(config.ExampleConfig()), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	fmt.Fprintf(os.Stdout, "Created %s\n", path)
	return nil
}

// listArgumentsCommand prints every flag, subcommand, filter and priority
// on one line for shell completion.
func listArgumentsCommand(fs *pflag.FlagSet, cfg *config.Config, logger *log.Logger) error {
	var arguments []string
	fs.VisitAll(func(f *pflag.Flag) {
		if f.Shorthand != "" {
			arguments = append(arguments, "-"+f.Shorthand)
		}
		arguments = append(arguments, "--"+f.Name)
	})
	arguments = append(arguments, commands...)

	tasks, err := todotxt.ReadFiles(cfg.Files, nil)
	if err != nil {
		// Completion still offers the static arguments.
		logger.Debug("no tasks for completion", "err", err)
	}
	for _, c := range tasks.Contexts() {
		arguments = append(arguments, "@"+c, "-@"+c)
	}
	for _, p := range tasks.Projects() {
		arguments = append(arguments, "+"+p, "-+"+p)
	}
	arguments = append(arguments, tasks.Priorities()...)

	fmt.Fprintln(os.Stdout, strings.Join(arguments, " "))
	return nil
}

// versionCommand prints version information.
func versionCommand() error {
	fmt.Printf("next-action version %s\n", Version)
	return nil
}

func pickOptions(cfg *config.Config) (pick.Options, config.Filters, error) {
	filters, err := cfg.FilterSet()
	if err != nil {
		return pick.Options{}, config.Filters{}, err
	}
	return pick.Options{
		Contexts:         filters.Contexts,
		Projects:         filters.Projects,
		ExcludedContexts: filters.ExcludedContexts,
		ExcludedProjects: filters.ExcludedProjects,
		Overdue:          cfg.Overdue,
		Due:              cfg.DueDate,
		Priority:         cfg.Priority,
		ReferenceDate:    cfg.ReferenceDate,
		Limit:            cfg.Limit(),
		ExcludeHidden:    !cfg.Hidden,
	}, filters, nil
}

func renderOptions(cfg *config.Config, w io.Writer) (output.Options, error) {
	colorizer, err := output.NewColorizer(lipgloss.NewRenderer(w), cfg.Style)
	if err != nil {
		return output.Options{}, err
	}
	return output.Options{
		Reference:  cfg.Reference,
		FileCount:  len(cfg.Files),
		LineNumber: cfg.LineNumber,
		Blocked:    cfg.Blocked,
		Colorizer:  colorizer,
	}, nil
}

func countBlocked(tasks todotxt.Tasks) int {
	n := 0
	for _, task := range tasks {
		if task.IsBlocked() {
			n++
		}
	}
	return n
}

// printUsage prints the usage message.
func printUsage(fs *pflag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "next-action - show the next action to work on from a todo.txt file")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  next-action [command] [options] [contexts|projects ...]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  next            Show the next action(s) (default command)")
	fmt.Fprintln(w, "  tui             Browse the next actions in a terminal UI")
	fmt.Fprintln(w, "  init            Write an example next-action.toml to the current directory")
	fmt.Fprintln(w, "  list-arguments  List all arguments for shell completion")
	fmt.Fprintln(w, "  version         Show version information")
	fmt.Fprintln(w, "  help            Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fmt.Fprint(w, fs.FlagUsages())
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Filters:")
	fmt.Fprintln(w, "  @<context>      next action must have all given contexts")
	fmt.Fprintln(w, "  +<project>      next action must be part of at least one given project")
	fmt.Fprintln(w, "  -@<context>     next action must not have the context")
	fmt.Fprintln(w, "  -+<project>     next action must not be part of the project")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Styles: %s\n", strings.Join(output.Styles(), ", "))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Configuration is read from ~/.next-action.cfg, next-action.toml and")
	fmt.Fprintf(w, "%s* environment variables; see --write-config-file.\n", config.EnvPrefix)
}
