// Package cmd provides tests for CLI command handlers.
package cmd

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nibzard/next-action-go/internal/config"
	"github.com/nibzard/next-action-go/internal/logging"
)

func captureStdout(t *testing.T, fn func() error) (string, error) {
	t.Helper()
	return captureFile(t, &os.Stdout, fn)
}

func captureStderr(t *testing.T, fn func() error) (string, error) {
	t.Helper()
	return captureFile(t, &os.Stderr, fn)
}

func captureFile(t *testing.T, target **os.File, fn func() error) (string, error) {
	t.Helper()

	old := *target
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe() error = %v", err)
	}
	*target = w
	defer func() {
		*target = old
	}()

	runErr := fn()
	_ = w.Close()

	output, readErr := io.ReadAll(r)
	_ = r.Close()
	if readErr != nil {
		t.Fatalf("ReadAll() error = %v", readErr)
	}

	return string(output), runErr
}

// isolate keeps user config files and NEXT_ACTION_* variables out of a test.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	for _, key := range []string{"FILE", "NUMBER", "ALL", "PRIORITY", "FILTERS", "REFERENCE", "STYLE", "BLOCKED", "LINE_NUMBER", "HIDDEN", "LOG_LEVEL", "LOG_FORMAT", "LOG_TIMESTAMPS"} {
		t.Setenv("NEXT_ACTION_"+key, "")
	}
	return home
}

func writeTodo(t *testing.T, dir, name string, lines ...string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return captureStdout(t, func() error {
		return Run(context.Background(), args)
	})
}

// TestRun tests the main Run function.
func TestRun(t *testing.T) {
	t.Run("shows help with --help flag", func(t *testing.T) {
		isolate(t)
		out, err := run(t, "--help")
		if err != nil {
			t.Errorf("expected no error with --help, got %v", err)
		}
		if !strings.Contains(out, "Usage:") || !strings.Contains(out, "--time-travel") {
			t.Errorf("help output incomplete:\n%s", out)
		}
	})

	t.Run("shows help with -h flag", func(t *testing.T) {
		isolate(t)
		if _, err := run(t, "-h"); err != nil {
			t.Errorf("expected no error with -h, got %v", err)
		}
	})

	t.Run("shows version with --version flag", func(t *testing.T) {
		isolate(t)
		out, err := run(t, "--version")
		if err != nil {
			t.Errorf("expected no error with --version, got %v", err)
		}
		if !strings.Contains(out, "next-action version "+Version) {
			t.Errorf("version output: got %q", out)
		}
	})

	t.Run("shows version with -V flag", func(t *testing.T) {
		isolate(t)
		if _, err := run(t, "-V"); err != nil {
			t.Errorf("expected no error with -V, got %v", err)
		}
	})

	t.Run("shows help with help command", func(t *testing.T) {
		isolate(t)
		if _, err := run(t, "help"); err != nil {
			t.Errorf("expected no error with help command, got %v", err)
		}
	})

	t.Run("unknown command returns error", func(t *testing.T) {
		isolate(t)
		_, err := run(t, "frobnicate")
		if err == nil || !strings.Contains(err.Error(), "unknown command") {
			t.Errorf("expected unknown command error, got %v", err)
		}
	})

	t.Run("extra arguments return error", func(t *testing.T) {
		isolate(t)
		if _, err := run(t, "version", "now"); err == nil {
			t.Error("expected error for extra arguments")
		}
	})

	t.Run("unknown flag returns error", func(t *testing.T) {
		isolate(t)
		if _, err := run(t, "--colour"); err == nil {
			t.Error("expected error for unknown flag")
		}
	})
}

func TestNextCommand(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	todo := writeTodo(t, dir, "todo.txt",
		"(B) Buy paint @store +House",
		"",
		"(A) Call mom @phone",
		"x 2020-01-01 (A) Old task",
		"Write report @work +Job due:2020-02-01",
		"(C) Secret plan h:1",
		"Future task t:2099-01-01",
	)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"default", nil, "(A) Call mom @phone"},
		{"next command", []string{"next"}, "(A) Call mom @phone"},
		{"number", []string{"-n", "2"}, "(A) Call mom @phone\n(B) Buy paint @store +House"},
		{"all", []string{"-a"}, "(A) Call mom @phone\n(B) Buy paint @store +House\nWrite report @work +Job due:2020-02-01"},
		{"hidden", []string{"-a", "--hidden"}, "(A) Call mom @phone\n(B) Buy paint @store +House\n(C) Secret plan h:1\nWrite report @work +Job due:2020-02-01"},
		{"context", []string{"@store"}, "(B) Buy paint @store +House"},
		{"excluded context", []string{"-@phone"}, "(B) Buy paint @store +House"},
		{"project", []string{"+Job"}, "Write report @work +Job due:2020-02-01"},
		{"excluded project", []string{"-a", "-+House", "-+Job"}, "(A) Call mom @phone"},
		{"priority", []string{"-a", "-p", "B"}, "(A) Call mom @phone\n(B) Buy paint @store +House"},
		{"overdue", []string{"-o", "-t", "2020-03-01"}, "Write report @work +Job due:2020-02-01"},
		{"due any", []string{"-d"}, "Write report @work +Job due:2020-02-01"},
		{"due by date", []string{"-d", "2020-01-15"}, "Nothing to do!"},
		{"line number", []string{"-l"}, "(A) Call mom @phone [" + todo + ":3]"},
		{"reference always", []string{"-r", "always"}, "(A) Call mom @phone [" + todo + "]"},
		{"unknown context", []string{"@home"}, "Nothing to do! (warning: unknown context: home)"},
		{"unknown and known", []string{"+House", "+Garden", "+Attic"}, "(B) Buy paint @store +House (warning: unknown projects: Attic, Garden)"},
		{"style", []string{"-s", "dark"}, "(A) Call mom @phone"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"-f", todo}, tt.args...)
			out, err := run(t, args...)
			if err != nil {
				t.Fatalf("Run(%v): %v", args, err)
			}
			if got := strings.TrimSuffix(out, "\n"); got != tt.want {
				t.Errorf("Run(%v):\ngot  %q\nwant %q", args, got, tt.want)
			}
		})
	}
}

func TestNextCommandMultipleFiles(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	home := writeTodo(t, dir, "home.txt", "(B) Mow lawn")
	work := writeTodo(t, dir, "work.txt", "(A) Ship release id:ship", "(C) Announce release after:ship")

	out, err := run(t, "-f", home, "-f", work, "-a", "-b")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := "(A) Ship release id:ship [" + work + "]\nblocks:\n- (C) Announce release after:ship [" + work + "]\n(B) Mow lawn [" + home + "]\n"
	if out != want {
		t.Errorf("Run:\ngot  %q\nwant %q", out, want)
	}
}

func TestNextCommandStdin(t *testing.T) {
	isolate(t)
	stdinFile := writeTodo(t, t.TempDir(), "stdin.txt", "Task from stdin")

	f, err := os.Open(stdinFile)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	oldStdin := os.Stdin
	os.Stdin = f
	defer func() { os.Stdin = oldStdin }()

	out, err := run(t, "-f", "-")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out != "Task from stdin\n" {
		t.Errorf("Run: got %q", out)
	}
}

func TestNextCommandErrors(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	todo := writeTodo(t, dir, "todo.txt", "Task @home")

	tests := []struct {
		name string
		args []string
	}{
		{"missing file", []string{"-f", filepath.Join(dir, "missing.txt")}},
		{"include and exclude", []string{"-f", todo, "@home", "-@home"}},
		{"empty context", []string{"-f", todo, "@"}},
		{"unknown style", []string{"-f", todo, "-s", "neon"}},
		{"number and all", []string{"-f", todo, "-n", "3", "-a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := run(t, tt.args...); err == nil {
				t.Errorf("Run(%v): expected error", tt.args)
			}
		})
	}
}

func TestNextCommandMissingFile(t *testing.T) {
	isolate(t)
	missing := filepath.Join(t.TempDir(), "missing.txt")

	_, err := run(t, "-f", missing)
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if want := "can't find " + missing; err.Error() != want {
		t.Errorf("error: got %q, want %q", err.Error(), want)
	}
}

func TestNextCommandCreationDateBeforeThreshold(t *testing.T) {
	isolate(t)
	todo := writeTodo(t, t.TempDir(), "todo.txt", "2018-01-01 Todo t:9999-01-01")

	out, err := run(t, "-c", "", "-f", todo)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out != "2018-01-01 Todo t:9999-01-01\n" {
		t.Errorf("Run: got %q", out)
	}
}

func TestDebugLogsSettingSources(t *testing.T) {
	isolate(t)
	todo := writeTodo(t, t.TempDir(), "todo.txt", "Todo")

	logs, err := captureStderr(t, func() error {
		_, err := run(t, "-c", "", "-f", todo, "-n", "2", "--log-level", "debug")
		return err
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	for _, want := range []string{"setting", "number", "flag", "default"} {
		if !strings.Contains(logs, want) {
			t.Errorf("debug log missing %q:\n%s", want, logs)
		}
	}
}

func TestInitCommandCreatesFile(t *testing.T) {
	dir := t.TempDir()

	out, err := captureStdout(t, func() error {
		return initCommand(dir, logging.Discard())
	})
	if err != nil {
		t.Fatalf("initCommand() error = %v", err)
	}
	path := filepath.Join(dir, config.ProjectConfigFile)
	if !strings.Contains(out, "Created "+path) {
		t.Errorf("output: got %q", out)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != config.ExampleConfig() {
		t.Error("config file does not match example config")
	}
}

func TestInitCommandSkipsExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, config.ProjectConfigFile)
	if err := os.WriteFile(path, []byte("number = 2\n"), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := captureStdout(t, func() error {
		return initCommand(dir, logging.Discard())
	})
	if err != nil {
		t.Fatalf("initCommand() error = %v", err)
	}
	if out != "" {
		t.Errorf("output: got %q, want nothing", out)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "number = 2\n" {
		t.Errorf("existing file was overwritten: %q", data)
	}
}

func TestConfigFileOptions(t *testing.T) {
	home := isolate(t)
	dir := t.TempDir()
	todo := writeTodo(t, dir, "todo.txt", "(A) Call mom @phone", "(B) Buy paint @store")
	if err := os.WriteFile(filepath.Join(home, ".next-action.cfg"), []byte("file: "+todo+"\nnumber: 2\n"), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := run(t)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out != "(A) Call mom @phone\n(B) Buy paint @store\n" {
		t.Errorf("Run with user config: got %q", out)
	}

	out, err = run(t, "-f", todo, "-c", "")
	if err != nil {
		t.Fatalf("Run -c '': %v", err)
	}
	if out != "(A) Call mom @phone\n" {
		t.Errorf("Run without config file: got %q", out)
	}
}

func TestWriteConfigFile(t *testing.T) {
	isolate(t)
	out, err := run(t, "-f", "todo.txt", "-n", "3", "-w", "@home")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	for _, want := range []string{`file = "todo.txt"`, "number = 3", `filters = ["@home"]`, `reference = "multiple"`} {
		if !strings.Contains(out, want) {
			t.Errorf("config output missing %q:\n%s", want, out)
		}
	}
}

func TestListArgumentsCommand(t *testing.T) {
	isolate(t)
	todo := writeTodo(t, t.TempDir(), "todo.txt", "(A) Call mom @phone +Family")

	out, err := run(t, "-f", todo, "list-arguments")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	fields := strings.Fields(out)
	for _, want := range []string{"--all", "-a", "--file", "--time-travel", "tui", "@phone", "-@phone", "+Family", "-+Family", "A"} {
		found := false
		for _, f := range fields {
			if f == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("list-arguments missing %q: %s", want, out)
		}
	}

	out, err = run(t, "-f", filepath.Join(t.TempDir(), "missing.txt"), "list-arguments")
	if err != nil {
		t.Fatalf("Run with missing file: %v", err)
	}
	if !strings.Contains(out, "--all") {
		t.Errorf("list-arguments without tasks: got %q", out)
	}
}

func TestTUICommandRejectsStdin(t *testing.T) {
	isolate(t)
	if _, err := run(t, "-f", "-", "tui"); err == nil {
		t.Error("expected error for tui reading standard input")
	}
}
