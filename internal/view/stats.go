// Package view derives read-only aggregates from the task collection.
// Nothing here mutates state; callers pass in slices and get values back.
package view

import (
	"math"

	"teamflow/api/internal/store"
)

type Stats struct {
	Total       int `json:"total"`
	Completed   int `json:"completed"`
	Issues      int `json:"issues"`
	AvgProgress int `json:"avgProgress"`
}

// ComputeStats summarizes the task list. Completed counts tasks whose status
// is done regardless of their progress value; a task at 100% that was never
// marked done is not completed. AvgProgress is the rounded mean over all
// tasks, 0 when there are none.
func ComputeStats(tasks []store.Task) Stats {
	s := Stats{Total: len(tasks)}
	if len(tasks) == 0 {
		return s
	}
	sum := 0
	for _, t := range tasks {
		if t.Status == store.StatusDone {
			s.Completed++
		}
		if t.Issue != "" {
			s.Issues++
		}
		sum += t.Progress
	}
	s.AvgProgress = int(math.Round(float64(sum) / float64(len(tasks))))
	return s
}
