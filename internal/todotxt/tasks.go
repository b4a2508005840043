package todotxt

import "sort"

// Tasks is an ordered collection of tasks, in the order they were read.
type Tasks []*Task

// FromLines creates a resolved collection from raw lines. Blank lines are
// not skipped; callers that read files should use Read.
func FromLines(lines ...string) Tasks {
	tasks := make(Tasks, 0, len(lines))
	for _, line := range lines {
		tasks = append(tasks, NewTask(line))
	}
	tasks.Resolve()
	return tasks
}

// Contexts returns the sorted contexts used in the collection.
func (tasks Tasks) Contexts() []string {
	return tasks.union((*Task).Contexts)
}

// Projects returns the sorted projects used in the collection.
func (tasks Tasks) Projects() []string {
	return tasks.union((*Task).Projects)
}

// Priorities returns the sorted priorities written on tasks in the collection.
func (tasks Tasks) Priorities() []string {
	return tasks.union(func(task *Task) []string {
		if priority := task.OwnPriority(); priority != "" {
			return []string{priority}
		}
		return nil
	})
}

func (tasks Tasks) union(items func(*Task) []string) []string {
	seen := make(map[string]bool)
	var result []string
	for _, task := range tasks {
		for _, item := range items(task) {
			if !seen[item] {
				seen[item] = true
				result = append(result, item)
			}
		}
	}
	sort.Strings(result)
	return result
}

// Resolve links every task to the tasks it blocks.
//
// A task with before:X or p:X blocks the task with id:X. A task with
// after:X is blocked by the task with id:X. A task becomes blocked only
// when its blocker is not completed. Ids that match no task are ignored and
// when several tasks share an id the first one wins. Resolve may be called
// again; it discards earlier annotations first.
func (tasks Tasks) Resolve() int {
	byID := make(map[string]*Task, len(tasks))
	for _, task := range tasks {
		task.blocked = false
		task.blocks = nil
		if id := task.TaskID(); id != "" {
			if _, exists := byID[id]; !exists {
				byID[id] = task
			}
		}
	}

	edges := 0
	for _, task := range tasks {
		for _, id := range task.ParentIDs() {
			if blocked, ok := byID[id]; ok && link(task, blocked) {
				edges++
			}
		}
		for _, id := range task.ChildIDs() {
			if blocker, ok := byID[id]; ok && link(blocker, task) {
				edges++
			}
		}
	}
	return edges
}

// link records that blocker blocks blocked and reports whether the edge is new.
func link(blocker, blocked *Task) bool {
	if !blocker.IsCompleted() {
		blocked.blocked = true
	}
	for _, existing := range blocker.blocks {
		if existing == blocked {
			return false
		}
	}
	blocker.blocks = append(blocker.blocks, blocked)
	return true
}
