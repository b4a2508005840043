package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  log.Level
	}{
		{"debug", log.DebugLevel},
		{"info", log.InfoLevel},
		{"warn", log.WarnLevel},
		{"WARNING", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"fatal", log.FatalLevel},
		{"", log.InfoLevel},
		{"verbose", log.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.want {
				t.Errorf("ParseLevel(%q): got %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseFormatter(t *testing.T) {
	tests := []struct {
		input string
		want  log.Formatter
	}{
		{"json", log.JSONFormatter},
		{"logfmt", log.LogfmtFormatter},
		{"text", log.TextFormatter},
		{"", log.TextFormatter},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseFormatter(tt.input); got != tt.want {
				t.Errorf("ParseFormatter(%q): got %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewFromConfigLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewFromConfig(&buf, "warn", "text", false)

	logger.Info("hidden message")
	logger.Warn("shown message", "file", "todo.txt")

	out := buf.String()
	if strings.Contains(out, "hidden message") {
		t.Errorf("info message logged at warn level: %q", out)
	}
	if !strings.Contains(out, "shown message") || !strings.Contains(out, "file=todo.txt") {
		t.Errorf("warn message missing: %q", out)
	}
	if !strings.Contains(out, Prefix) {
		t.Errorf("prefix %q missing: %q", Prefix, out)
	}
}

func TestNewFromConfigJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewFromConfig(&buf, "debug", "json", false)

	logger.Debug("read tasks", "count", 3)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v: %q", err, buf.String())
	}
	if entry["msg"] != "read tasks" {
		t.Errorf("msg: got %v, want read tasks", entry["msg"])
	}
	if entry["count"] != float64(3) {
		t.Errorf("count: got %v, want 3", entry["count"])
	}
}

func TestDiscard(t *testing.T) {
	Discard().Error("nothing to see")
}
