package pick

import (
	"github.com/nibzard/next-action-go/internal/todotxt"
)

// NextActions filters the resolved tasks, ranks the survivors and returns at
// most opts.Limit of them. The selection is deterministic: tasks that compare
// equal keep the order in which they were read.
func NextActions(tasks todotxt.Tasks, opts Options) []*todotxt.Task {
	actions := Filter(tasks, opts)
	Sort(actions)
	if opts.Limit > 0 && len(actions) > opts.Limit {
		actions = actions[:opts.Limit]
	}
	return actions
}
