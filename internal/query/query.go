// Package query holds the pure filter/sort pipeline that turns the
// canonical task list into the view list. Nothing here mutates its
// input or touches the store.
package query

import (
	"sort"
	"strings"
	"time"

	"github.com/tbui/taskbox/internal/model"
)

// StatusFilter selects tasks by completion/overdue state.
type StatusFilter string

const (
	StatusAll       StatusFilter = "all"
	StatusPending   StatusFilter = "pending"
	StatusCompleted StatusFilter = "completed"
	StatusOverdue   StatusFilter = "overdue"
)

// StatusFilters lists the filters in UI cycling order.
var StatusFilters = []StatusFilter{StatusAll, StatusPending, StatusCompleted, StatusOverdue}

// SortKey selects the view list ordering.
type SortKey string

const (
	SortNewest        SortKey = "newest"
	SortOldest        SortKey = "oldest"
	SortAlphabetical  SortKey = "alphabetical"
	SortPriority      SortKey = "priority"
	SortDueDate       SortKey = "dueDate"
	SortEstimatedTime SortKey = "estimatedTime"
)

// SortKeys lists the sort modes in UI cycling order.
var SortKeys = []SortKey{
	SortNewest,
	SortOldest,
	SortAlphabetical,
	SortPriority,
	SortDueDate,
	SortEstimatedTime,
}

// CategoryAll disables category filtering.
const CategoryAll = "all"

// Options bundles the current filter and sort selections.
type Options struct {
	Status   StatusFilter
	Category string // CategoryAll or an entry from model.Categories
	Sort     SortKey
}

// DefaultOptions returns the initial view selection: everything,
// newest first.
func DefaultOptions() Options {
	return Options{Status: StatusAll, Category: CategoryAll, Sort: SortNewest}
}

// Overdue reports whether a task is past due: not completed, dated, and
// due before the start of now's day. Day granularity — a task due today
// is not overdue until tomorrow. This is the single overdue definition;
// the statistics aggregator uses it too so counts and filtered lists
// cannot drift apart.
func Overdue(t model.Task, now time.Time) bool {
	if t.Completed || t.DueDate == nil {
		return false
	}
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return t.DueDate.Before(startOfDay)
}

// View applies the status filter, then the category filter, then the
// sort, and returns a new slice. The input is never modified.
func View(tasks []model.Task, opts Options, now time.Time) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if !matchStatus(t, opts.Status, now) {
			continue
		}
		if opts.Category != "" && opts.Category != CategoryAll && t.Category != opts.Category {
			continue
		}
		out = append(out, t)
	}

	sortTasks(out, opts.Sort)
	return out
}

// matchStatus applies the status filter predicate.
func matchStatus(t model.Task, f StatusFilter, now time.Time) bool {
	switch f {
	case StatusPending:
		return !t.Completed
	case StatusCompleted:
		return t.Completed
	case StatusOverdue:
		return Overdue(t, now)
	default:
		return true
	}
}

// sortTasks orders the slice in place. All comparisons go through
// sort.SliceStable so equal elements keep their original relative order.
func sortTasks(tasks []model.Task, key SortKey) {
	switch key {
	case SortOldest:
		sort.SliceStable(tasks, func(i, j int) bool {
			return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
		})
	case SortAlphabetical:
		sort.SliceStable(tasks, func(i, j int) bool {
			return strings.ToLower(tasks[i].Title) < strings.ToLower(tasks[j].Title)
		})
	case SortPriority:
		sort.SliceStable(tasks, func(i, j int) bool {
			return model.PriorityRank(tasks[i].Priority) < model.PriorityRank(tasks[j].Priority)
		})
	case SortDueDate:
		// Dated tasks ascending; undated tasks after all dated ones.
		sort.SliceStable(tasks, func(i, j int) bool {
			di, dj := tasks[i].DueDate, tasks[j].DueDate
			if di == nil {
				return false
			}
			if dj == nil {
				return true
			}
			return di.Before(*dj)
		})
	case SortEstimatedTime:
		// Estimated tasks ascending; unestimated tasks last.
		sort.SliceStable(tasks, func(i, j int) bool {
			ei, ej := tasks[i].EstimatedMinutes, tasks[j].EstimatedMinutes
			if ei == nil {
				return false
			}
			if ej == nil {
				return true
			}
			return *ei < *ej
		})
	default: // SortNewest
		sort.SliceStable(tasks, func(i, j int) bool {
			return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
		})
	}
}
