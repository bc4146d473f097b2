package stats

import (
	"testing"
	"time"

	"github.com/tbui/taskbox/internal/model"
	"github.com/tbui/taskbox/internal/query"
)

func datePtr(t time.Time) *time.Time { return &t }

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil, time.Now())
	want := Summary{}
	if s != want {
		t.Fatalf("empty summary = %+v, want all zeros", s)
	}
}

func TestSummarizeCounts(t *testing.T) {
	now := time.Now()
	tasks := []model.Task{
		{ID: "a", Completed: true, Priority: model.PriorityHigh},
		{ID: "b", Completed: false, Priority: model.PriorityHigh, DueDate: datePtr(now.AddDate(0, 0, -1))},
		{ID: "c", Completed: false, Priority: model.PriorityLow},
	}

	s := Summarize(tasks, now)

	if s.Total != 3 || s.Completed != 1 || s.Pending != 2 {
		t.Errorf("counts wrong: %+v", s)
	}
	if s.HighPriority != 2 {
		t.Errorf("highPriority = %d, want 2", s.HighPriority)
	}
	if s.Overdue != 1 {
		t.Errorf("overdue = %d, want 1", s.Overdue)
	}
	if s.ProgressPercentage != 33 {
		t.Errorf("progressPercentage = %d, want 33", s.ProgressPercentage)
	}
}

func TestPendingInvariant(t *testing.T) {
	now := time.Now()
	lists := [][]model.Task{
		nil,
		{{ID: "a", Completed: true}},
		{{ID: "a"}, {ID: "b", Completed: true}, {ID: "c"}},
	}

	for _, tasks := range lists {
		s := Summarize(tasks, now)
		if s.Pending != s.Total-s.Completed {
			t.Errorf("pending invariant broken: %+v", s)
		}
	}
}

// The overdue count must agree with the overdue view filter for any list.
func TestOverdueMatchesQueryFilter(t *testing.T) {
	now := time.Now()
	tasks := []model.Task{
		{ID: "a", DueDate: datePtr(now.AddDate(0, 0, -3))},
		{ID: "b", Completed: true, DueDate: datePtr(now.AddDate(0, 0, -3))},
		{ID: "c", DueDate: datePtr(now)},
		{ID: "d"},
	}

	s := Summarize(tasks, now)
	view := query.View(tasks, query.Options{
		Status:   query.StatusOverdue,
		Category: query.CategoryAll,
		Sort:     query.SortNewest,
	}, now)

	if s.Overdue != len(view) {
		t.Fatalf("stats overdue (%d) != filtered list length (%d)", s.Overdue, len(view))
	}
}

func TestProgressPercentageRounds(t *testing.T) {
	now := time.Now()
	tasks := []model.Task{
		{ID: "a", Completed: true},
		{ID: "b", Completed: true},
		{ID: "c"},
	}

	s := Summarize(tasks, now)
	if s.ProgressPercentage != 67 {
		t.Fatalf("progressPercentage = %d, want 67", s.ProgressPercentage)
	}
}
