package output

import (
	"fmt"
	"slices"
	"strings"

	"github.com/nibzard/next-action-go/internal/todotxt"
)

// Warning returns a suffix such as
// " (warning: unknown context: home; unknown projects: A, B)" naming the
// filter contexts and projects that no task uses, or "" when all exist.
func Warning(tasks todotxt.Tasks, contexts, projects []string) string {
	var messages []string
	if unknown := missing(contexts, tasks.Contexts()); len(unknown) > 0 {
		messages = append(messages, describe("context", unknown))
	}
	if unknown := missing(projects, tasks.Projects()); len(unknown) > 0 {
		messages = append(messages, describe("project", unknown))
	}
	if len(messages) == 0 {
		return ""
	}
	return fmt.Sprintf(" (warning: %s)", strings.Join(messages, "; "))
}

func missing(names, known []string) []string {
	var unknown []string
	for _, name := range names {
		if !slices.Contains(known, name) && !slices.Contains(unknown, name) {
			unknown = append(unknown, name)
		}
	}
	slices.Sort(unknown)
	return unknown
}

func describe(kind string, names []string) string {
	if len(names) > 1 {
		kind += "s"
	}
	return fmt.Sprintf("unknown %s: %s", kind, strings.Join(names, ", "))
}
