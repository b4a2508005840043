package pick

import (
	"cmp"
	"slices"
	"time"

	"github.com/nibzard/next-action-go/internal/todotxt"
)

// noPriority sorts after every priority letter.
const noPriority = "ZZZ"

// Compare orders tasks by priority, then due date, then creation date, then
// by number of projects, most first. Missing priorities and dates sort last.
// Priority and due date include what a task inherits from the tasks it blocks.
func Compare(a, b *todotxt.Task) int {
	if c := cmp.Compare(priorityKey(a), priorityKey(b)); c != 0 {
		return c
	}
	if c := dateKey(a.DueDate).Compare(dateKey(b.DueDate)); c != 0 {
		return c
	}
	if c := dateKey(a.CreationDate).Compare(dateKey(b.CreationDate)); c != 0 {
		return c
	}
	return cmp.Compare(len(b.Projects()), len(a.Projects()))
}

// Sort orders tasks in place with Compare. Equal tasks keep their order.
func Sort(tasks []*todotxt.Task) {
	slices.SortStableFunc(tasks, Compare)
}

func priorityKey(task *todotxt.Task) string {
	if priority := task.Priority(); priority != "" {
		return priority
	}
	return noPriority
}

func dateKey(date func() (time.Time, bool)) time.Time {
	if d, ok := date(); ok {
		return d
	}
	return todotxt.MaxDate
}
