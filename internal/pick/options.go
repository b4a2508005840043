// Package pick selects and ranks the next actions from a resolved collection
// of todo.txt tasks.
package pick

import (
	"time"

	"github.com/nibzard/next-action-go/internal/todotxt"
)

// All is the Limit that returns every eligible task.
const All = 0

// Options holds the criteria for one selection.
type Options struct {
	// Contexts must all be present on a next action.
	Contexts []string
	// Projects must have at least one member present on a next action.
	Projects []string
	// ExcludedContexts and ExcludedProjects reject any task that has one of them.
	ExcludedContexts []string
	ExcludedProjects []string

	// Overdue keeps only tasks whose due date lies before ReferenceDate.
	Overdue bool
	// Due keeps only tasks due on or before this date. The zero time disables it.
	Due time.Time
	// Priority is the minimum priority letter. Empty disables it.
	Priority string

	// ReferenceDate is the effective today. The zero time means the current date.
	ReferenceDate time.Time

	// Limit caps the number of results. All (or any value below 1) returns everything.
	Limit int

	// ExcludeHidden drops tasks tagged h:1.
	ExcludeHidden bool
}

// Today returns the reference date, defaulting to the current date.
func (o Options) Today() time.Time {
	if o.ReferenceDate.IsZero() {
		return todotxt.Today()
	}
	return todotxt.DateOf(o.ReferenceDate)
}
