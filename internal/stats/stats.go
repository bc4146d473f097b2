// Package stats derives display counts from a task list.
package stats

import (
	"math"
	"time"

	"github.com/tbui/taskbox/internal/model"
	"github.com/tbui/taskbox/internal/query"
)

// Summary holds the derived statistics for a task list.
type Summary struct {
	Total              int
	Completed          int
	Pending            int
	HighPriority       int
	Overdue            int
	ProgressPercentage int
}

// Summarize computes counts and the completion percentage for tasks.
// Overdue uses the same predicate as the overdue view filter.
func Summarize(tasks []model.Task, now time.Time) Summary {
	s := Summary{Total: len(tasks)}

	for _, t := range tasks {
		if t.Completed {
			s.Completed++
		}
		if t.Priority == model.PriorityHigh {
			s.HighPriority++
		}
		if query.Overdue(t, now) {
			s.Overdue++
		}
	}

	s.Pending = s.Total - s.Completed
	if s.Total > 0 {
		s.ProgressPercentage = int(math.Round(float64(s.Completed) / float64(s.Total) * 100))
	}
	return s
}
