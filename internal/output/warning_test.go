package output

import (
	"testing"

	"github.com/nibzard/next-action-go/internal/todotxt"
)

func TestWarning(t *testing.T) {
	tasks := todotxt.FromLines("Todo @work +Proj", "Other @phone")

	tests := []struct {
		name     string
		contexts []string
		projects []string
		want     string
	}{
		{"all known", []string{"work", "phone"}, []string{"Proj"}, ""},
		{"no filters", nil, nil, ""},
		{"unknown context", []string{"home"}, nil, " (warning: unknown context: home)"},
		{"unknown project", nil, []string{"Garden", "Proj"}, " (warning: unknown project: Garden)"},
		{
			"both plural and sorted",
			[]string{"work", "home", "away", "home"},
			[]string{"B", "A", "Proj"},
			" (warning: unknown contexts: away, home; unknown projects: A, B)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Warning(tasks, tt.contexts, tt.projects); got != tt.want {
				t.Errorf("Warning: got %q, want %q", got, tt.want)
			}
		})
	}
}
