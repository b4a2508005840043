package pick

import (
	"github.com/nibzard/next-action-go/internal/todotxt"
)

// Predicate decides whether a task stays eligible under the options.
type Predicate func(task *todotxt.Task, opts Options) bool

// Predicates returns the filter pipeline in evaluation order. The predicates
// only read the tasks and the options, so their order does not change the
// outcome.
func Predicates() []Predicate {
	return []Predicate{
		Actionable,
		Unblocked,
		NotInExcludedContexts,
		NotInExcludedProjects,
		InAllContexts,
		InAnyProject,
		OverdueOnly,
		DueBy,
		MinimumPriority,
		NotHidden,
	}
}

// Actionable rejects completed and future tasks.
func Actionable(task *todotxt.Task, opts Options) bool {
	return task.IsActionable(opts.Today())
}

// Unblocked rejects tasks that wait for another task.
func Unblocked(task *todotxt.Task, _ Options) bool {
	return !task.IsBlocked()
}

// NotInExcludedContexts rejects tasks that have any excluded context.
func NotInExcludedContexts(task *todotxt.Task, opts Options) bool {
	return !intersects(opts.ExcludedContexts, task.Contexts())
}

// NotInExcludedProjects rejects tasks that have any excluded project.
func NotInExcludedProjects(task *todotxt.Task, opts Options) bool {
	return !intersects(opts.ExcludedProjects, task.Projects())
}

// InAllContexts requires every requested context.
func InAllContexts(task *todotxt.Task, opts Options) bool {
	return subset(opts.Contexts, task.Contexts())
}

// InAnyProject requires at least one requested project, if any are requested.
func InAnyProject(task *todotxt.Task, opts Options) bool {
	return len(opts.Projects) == 0 || intersects(opts.Projects, task.Projects())
}

// OverdueOnly requires an overdue task when opts.Overdue is set.
func OverdueOnly(task *todotxt.Task, opts Options) bool {
	return !opts.Overdue || task.IsOverdue(opts.Today())
}

// DueBy requires a task due on or before opts.Due when it is set.
func DueBy(task *todotxt.Task, opts Options) bool {
	return opts.Due.IsZero() || task.IsDue(opts.Due)
}

// MinimumPriority requires at least opts.Priority.
func MinimumPriority(task *todotxt.Task, opts Options) bool {
	return task.PriorityAtLeast(opts.Priority)
}

// NotHidden rejects h:1 tasks when opts.ExcludeHidden is set.
func NotHidden(task *todotxt.Task, opts Options) bool {
	return !opts.ExcludeHidden || !task.IsHidden()
}

// Filter returns the tasks that pass every predicate, in their original order.
func Filter(tasks []*todotxt.Task, opts Options) []*todotxt.Task {
	predicates := Predicates()
	eligible := make([]*todotxt.Task, 0, len(tasks))
	for _, task := range tasks {
		if passes(task, opts, predicates) {
			eligible = append(eligible, task)
		}
	}
	return eligible
}

func passes(task *todotxt.Task, opts Options, predicates []Predicate) bool {
	for _, predicate := range predicates {
		if !predicate(task, opts) {
			return false
		}
	}
	return true
}

func intersects(wanted, have []string) bool {
	for _, item := range wanted {
		for _, candidate := range have {
			if item == candidate {
				return true
			}
		}
	}
	return false
}

func subset(wanted, have []string) bool {
	for _, item := range wanted {
		if !intersects([]string{item}, have) {
			return false
		}
	}
	return true
}
