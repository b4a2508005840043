// Package output formats next actions for the terminal.
package output

import (
	"fmt"
	"slices"
	"strings"

	"github.com/nibzard/next-action-go/internal/config"
	"github.com/nibzard/next-action-go/internal/todotxt"
)

// NothingToDo is printed when no task qualifies.
const NothingToDo = "Nothing to do!"

// Options controls how next actions are rendered.
type Options struct {
	// Reference is one of the config.Reference* modes.
	Reference string
	// FileCount is the number of todo.txt files read.
	FileCount int
	// LineNumber adds the line number to references, and shows references
	// unless Reference is never.
	LineNumber bool
	// Blocked lists the tasks each next action blocks, recursively.
	Blocked bool
	// Colorizer styles the output; nil prints plain text.
	Colorizer *Colorizer
}

// Render returns the next actions one per line, or NothingToDo.
func Render(actions []*todotxt.Task, opts Options) string {
	if len(actions) == 0 {
		return NothingToDo
	}
	var b strings.Builder
	for i, task := range actions {
		if i > 0 {
			b.WriteByte('\n')
		}
		opts.writeTask(&b, task, "", "", nil)
	}
	return b.String()
}

func (o Options) showReference() bool {
	switch o.Reference {
	case config.ReferenceAlways:
		return true
	case config.ReferenceNever:
		return false
	}
	return o.FileCount > 1 || o.LineNumber
}

// reference returns the "[file]" or "[file:line]" suffix for task.
func (o Options) reference(task *todotxt.Task) string {
	if o.LineNumber && task.LineNumber > 0 {
		return fmt.Sprintf("[%s:%d]", task.Filename, task.LineNumber)
	}
	return fmt.Sprintf("[%s]", task.Filename)
}

// writeTask writes task and, with Blocked set, the tree of tasks it blocks.
// path holds the tasks above this one so a cycle stops where it closes.
func (o Options) writeTask(b *strings.Builder, task *todotxt.Task, prefix, indent string, path []*todotxt.Task) {
	b.WriteString(prefix)
	b.WriteString(o.Colorizer.Task(task.Text))
	if o.showReference() {
		b.WriteByte(' ')
		b.WriteString(o.Colorizer.Reference(o.reference(task)))
	}
	if !o.Blocked {
		return
	}

	path = append(path, task)
	var children []*todotxt.Task
	for _, child := range task.BlockedTasks() {
		if !slices.Contains(path, child) {
			children = append(children, child)
		}
	}
	if len(children) == 0 {
		return
	}
	b.WriteString("\n" + indent + o.Colorizer.Label("blocks:"))
	for _, child := range children {
		b.WriteByte('\n')
		o.writeTask(b, child, indent+"- ", indent+"  ", path)
	}
}
