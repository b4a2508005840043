// Package todotxt parses todo.txt task lines and resolves the blocking
// relations declared between them with id:, p:, before: and after: tags.
package todotxt

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"
)

var (
	priorityPattern     = regexp.MustCompile(`^\(([A-Z])\) `)
	creationDatePattern = regexp.MustCompile(`^(?:\([A-Z]\) )?(\d{4})-(\d{1,2})-(\d{1,2})\b`)
	thresholdPattern    = regexp.MustCompile(`(?:^|\s)t:(\d{4})-(\d{1,2})-(\d{1,2})\b`)
	duePattern          = regexp.MustCompile(`(?:^|\s)due:(\d{4})-(\d{1,2})-(\d{1,2})\b`)
	hiddenPattern       = regexp.MustCompile(`(?:^|\s)h:1(?:\s|$)`)
	urlPattern          = regexp.MustCompile(`\b[a-zA-Z][a-zA-Z0-9+.\-]*://\S+`)

	contextPattern = prefixedPattern("@")
	projectPattern = prefixedPattern(`\+`)

	idPattern     = tagPattern("id")
	parentPattern = tagPattern("p", "before")
	childPattern  = tagPattern("after")
)

// prefixedPattern matches @context and +project tokens. A token only counts
// when it starts the line or follows whitespace or an opening bracket or
// quote, which is captured so its closing partner can be trimmed.
func prefixedPattern(prefix string) *regexp.Regexp {
	return regexp.MustCompile(`(?:^|\s|([(\[{<'"]))` + prefix + `(\S+)`)
}

var closers = map[string]string{"(": ")", "[": "]", "{": "}", "<": ">", "'": "'", `"`: `"`}

func tagPattern(keys ...string) *regexp.Regexp {
	return regexp.MustCompile(`(?:^|\s)(?:` + strings.Join(keys, "|") + `):(\S+)`)
}

// Task is one line of a todo.txt file.
type Task struct {
	Text       string
	Filename   string
	LineNumber int

	blocked bool
	blocks  []*Task
}

// NewTask creates a task from the raw line text.
func NewTask(text string) *Task {
	return &Task{Text: text}
}

// NewTaskAt creates a task that remembers where it was read from.
func NewTaskAt(text, filename string, lineNumber int) *Task {
	return &Task{Text: text, Filename: filename, LineNumber: lineNumber}
}

func (t *Task) String() string {
	return fmt.Sprintf("Task<%s>", t.Text)
}

// Contexts returns the sorted, distinct contexts of the task.
func (t *Task) Contexts() []string {
	return t.prefixedItems(contextPattern)
}

// Projects returns the sorted, distinct projects of the task.
func (t *Task) Projects() []string {
	return t.prefixedItems(projectPattern)
}

// HasContext reports whether the task carries @context.
func (t *Task) HasContext(context string) bool {
	return contains(t.Contexts(), context)
}

// HasProject reports whether the task carries +project.
func (t *Task) HasProject(project string) bool {
	return contains(t.Projects(), project)
}

// OwnPriority returns the priority letter written on the task itself, or "".
func (t *Task) OwnPriority() string {
	if match := priorityPattern.FindStringSubmatch(t.Text); match != nil {
		return match[1]
	}
	return ""
}

// Priority returns the task's own priority or, when it has none, the highest
// priority among the uncompleted tasks it blocks, directly or transitively.
func (t *Task) Priority() string {
	priority, _ := inherit(t, func(task *Task) (string, bool) {
		p := task.OwnPriority()
		return p, p != ""
	}, func(a, b string) bool { return a < b })
	return priority
}

// PriorityAtLeast reports whether the task's (possibly inherited) priority is
// at least minimum. An empty minimum accepts every task.
func (t *Task) PriorityAtLeast(minimum string) bool {
	if minimum == "" {
		return true
	}
	priority := t.Priority()
	return priority != "" && priority <= minimum
}

// CreationDate returns the date that directly follows the optional priority.
func (t *Task) CreationDate() (time.Time, bool) {
	return matchDate(creationDatePattern, t.Text)
}

// ThresholdDate returns the t: date.
func (t *Task) ThresholdDate() (time.Time, bool) {
	return matchDate(thresholdPattern, t.Text)
}

// OwnDueDate returns the due: date written on the task itself.
func (t *Task) OwnDueDate() (time.Time, bool) {
	return matchDate(duePattern, t.Text)
}

// DueDate returns the task's own due date or, when it has none, the earliest
// due date among the uncompleted tasks it blocks, directly or transitively.
func (t *Task) DueDate() (time.Time, bool) {
	return inherit(t, (*Task).OwnDueDate, time.Time.Before)
}

// IsCompleted reports whether the line starts with "x ".
func (t *Task) IsCompleted() bool {
	return strings.HasPrefix(t.Text, "x ")
}

// IsHidden reports whether the task carries h:1.
func (t *Task) IsHidden() bool {
	return hiddenPattern.MatchString(t.Text)
}

// IsFuture reports whether the creation date, or without one the threshold
// date, lies after the reference date.
func (t *Task) IsFuture(reference time.Time) bool {
	reference = DateOf(reference)
	if created, ok := t.CreationDate(); ok {
		return created.After(reference)
	}
	threshold, ok := t.ThresholdDate()
	return ok && threshold.After(reference)
}

// IsOverdue reports whether the due date lies before the reference date.
func (t *Task) IsOverdue(reference time.Time) bool {
	due, ok := t.DueDate()
	return ok && due.Before(DateOf(reference))
}

// IsDue reports whether the task is due on or before target.
func (t *Task) IsDue(target time.Time) bool {
	due, ok := t.DueDate()
	return ok && !due.After(DateOf(target))
}

// IsActionable reports whether the task can be worked on at the reference date.
func (t *Task) IsActionable(reference time.Time) bool {
	return !t.IsCompleted() && !t.IsFuture(reference)
}

// TaskID returns the value of the id: tag, or "".
func (t *Task) TaskID() string {
	if match := idPattern.FindStringSubmatch(t.Text); match != nil {
		return match[1]
	}
	return ""
}

// ParentIDs returns the ids named by p: and before: tags: the tasks this
// task has to be done before.
func (t *Task) ParentIDs() []string {
	return tagValues(parentPattern, t.Text)
}

// ChildIDs returns the ids named by after: tags: the tasks that have to be
// done before this one.
func (t *Task) ChildIDs() []string {
	return tagValues(childPattern, t.Text)
}

// URLs returns the absolute URLs in the task, in order of appearance.
func (t *Task) URLs() []string {
	return urlPattern.FindAllString(t.Text, -1)
}

// IsBlocked reports whether an uncompleted task blocks this one. Only
// Tasks.Resolve sets it.
func (t *Task) IsBlocked() bool {
	return t.blocked
}

// BlockedTasks returns the tasks this task blocks.
func (t *Task) BlockedTasks() []*Task {
	return t.blocks
}

func (t *Task) prefixedItems(pattern *regexp.Regexp) []string {
	matches := pattern.FindAllStringSubmatch(t.Text, -1)
	if len(matches) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(matches))
	items := make([]string, 0, len(matches))
	for _, match := range matches {
		item := match[2]
		if match[1] != "" {
			item = strings.TrimSuffix(item, closers[match[1]])
		}
		if item != "" && !seen[item] {
			seen[item] = true
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return nil
	}
	sort.Strings(items)
	return items
}

func matchDate(pattern *regexp.Regexp, text string) (time.Time, bool) {
	match := pattern.FindStringSubmatch(text)
	if match == nil {
		return time.Time{}, false
	}
	return parseDate(match[1], match[2], match[3])
}

func tagValues(pattern *regexp.Regexp, text string) []string {
	var values []string
	for _, match := range pattern.FindAllStringSubmatch(text, -1) {
		if !contains(values, match[1]) {
			values = append(values, match[1])
		}
	}
	return values
}

func contains(items []string, item string) bool {
	for _, candidate := range items {
		if candidate == item {
			return true
		}
	}
	return false
}

// inherit returns own(task) when present. Otherwise it walks the uncompleted
// tasks that task blocks and returns the best own value found, not looking
// past tasks that have a value of their own. Every task is visited at most
// once, so self-blocks and cycles terminate.
func inherit[V any](task *Task, own func(*Task) (V, bool), better func(a, b V) bool) (V, bool) {
	if value, ok := own(task); ok {
		return value, true
	}

	var best V
	found := false
	visited := map[*Task]bool{task: true}
	pending := append([]*Task(nil), task.blocks...)
	for len(pending) > 0 {
		next := pending[len(pending)-1]
		pending = pending[:len(pending)-1]
		if visited[next] || next.IsCompleted() {
			continue
		}
		visited[next] = true
		if value, ok := own(next); ok {
			if !found || better(value, best) {
				best, found = value, true
			}
			continue
		}
		pending = append(pending, next.blocks...)
	}
	return best, found
}
