package query

import (
	"testing"
	"time"

	"github.com/tbui/taskbox/internal/model"
)

func datePtr(t time.Time) *time.Time { return &t }
func intPtr(n int) *int              { return &n }

func sampleTasks(now time.Time) []model.Task {
	return []model.Task{
		{ID: "a", Title: "buy milk", Completed: false, Priority: model.PriorityLow, Category: "Shopping", CreatedAt: now.Add(-4 * time.Hour)},
		{ID: "b", Title: "Annual report", Completed: true, Priority: model.PriorityHigh, Category: "Work", CreatedAt: now.Add(-3 * time.Hour)},
		{ID: "c", Title: "dentist", Completed: false, Priority: model.PriorityHigh, Category: "Health", DueDate: datePtr(now.AddDate(0, 0, -2)), CreatedAt: now.Add(-2 * time.Hour)},
		{ID: "d", Title: "Zoo trip", Completed: false, Priority: model.PriorityMedium, Category: "Travel", DueDate: datePtr(now.AddDate(0, 0, 3)), CreatedAt: now.Add(-1 * time.Hour), EstimatedMinutes: intPtr(90)},
	}
}

func ids(tasks []model.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func TestViewStatusFiltersPartition(t *testing.T) {
	now := time.Now()
	tasks := sampleTasks(now)

	completed := View(tasks, Options{Status: StatusCompleted, Category: CategoryAll, Sort: SortOldest}, now)
	pending := View(tasks, Options{Status: StatusPending, Category: CategoryAll, Sort: SortOldest}, now)

	for _, task := range completed {
		if !task.Completed {
			t.Errorf("completed view contains pending task %s", task.ID)
		}
	}
	for _, task := range pending {
		if task.Completed {
			t.Errorf("pending view contains completed task %s", task.ID)
		}
	}
	if len(completed)+len(pending) != len(tasks) {
		t.Errorf("completed (%d) + pending (%d) != total (%d)",
			len(completed), len(pending), len(tasks))
	}
}

func TestViewOverdueFilter(t *testing.T) {
	now := time.Now()
	tasks := sampleTasks(now)

	overdue := View(tasks, Options{Status: StatusOverdue, Category: CategoryAll, Sort: SortOldest}, now)
	if len(overdue) != 1 || overdue[0].ID != "c" {
		t.Fatalf("expected overdue view [c], got %v", ids(overdue))
	}
}

func TestOverdueDayGranularity(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

	dueEarlierToday := model.Task{DueDate: datePtr(time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC))}
	if Overdue(dueEarlierToday, now) {
		t.Error("task due today must not be overdue yet")
	}

	dueYesterday := model.Task{DueDate: datePtr(now.AddDate(0, 0, -1))}
	if !Overdue(dueYesterday, now) {
		t.Error("task due yesterday must be overdue")
	}

	completedYesterday := model.Task{Completed: true, DueDate: datePtr(now.AddDate(0, 0, -1))}
	if Overdue(completedYesterday, now) {
		t.Error("completed task must never be overdue")
	}

	undated := model.Task{}
	if Overdue(undated, now) {
		t.Error("undated task must never be overdue")
	}
}

func TestViewCategoryFilterComposesWithStatus(t *testing.T) {
	now := time.Now()
	tasks := sampleTasks(now)

	view := View(tasks, Options{Status: StatusPending, Category: "Health", Sort: SortNewest}, now)
	if len(view) != 1 || view[0].ID != "c" {
		t.Fatalf("expected [c], got %v", ids(view))
	}

	all := View(tasks, Options{Status: StatusAll, Category: CategoryAll, Sort: SortOldest}, now)
	if len(all) != len(tasks) {
		t.Fatalf("category 'all' must be identity, got %d of %d", len(all), len(tasks))
	}
}

func TestViewSortNewestOldest(t *testing.T) {
	now := time.Now()
	tasks := sampleTasks(now)

	newest := View(tasks, Options{Status: StatusAll, Category: CategoryAll, Sort: SortNewest}, now)
	if got := ids(newest); got[0] != "d" || got[3] != "a" {
		t.Errorf("newest order wrong: %v", got)
	}

	oldest := View(tasks, Options{Status: StatusAll, Category: CategoryAll, Sort: SortOldest}, now)
	if got := ids(oldest); got[0] != "a" || got[3] != "d" {
		t.Errorf("oldest order wrong: %v", got)
	}
}

func TestViewSortAlphabeticalCaseInsensitive(t *testing.T) {
	now := time.Now()
	tasks := sampleTasks(now)

	view := View(tasks, Options{Status: StatusAll, Category: CategoryAll, Sort: SortAlphabetical}, now)
	want := []string{"b", "a", "c", "d"} // Annual, buy milk, dentist, Zoo
	got := ids(view)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("alphabetical order wrong: got %v, want %v", got, want)
		}
	}
}

func TestViewSortPriorityStable(t *testing.T) {
	now := time.Now()
	tasks := []model.Task{
		{ID: "m1", Priority: model.PriorityMedium, CreatedAt: now},
		{ID: "h1", Priority: model.PriorityHigh, CreatedAt: now},
		{ID: "m2", Priority: model.PriorityMedium, CreatedAt: now},
		{ID: "l1", Priority: model.PriorityLow, CreatedAt: now},
		{ID: "h2", Priority: model.PriorityHigh, CreatedAt: now},
	}

	view := View(tasks, Options{Status: StatusAll, Category: CategoryAll, Sort: SortPriority}, now)
	want := []string{"h1", "h2", "m1", "m2", "l1"}
	got := ids(view)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("priority sort not stable: got %v, want %v", got, want)
		}
	}
}

func TestViewSortDueDateUndatedLast(t *testing.T) {
	now := time.Now()
	tasks := []model.Task{
		{ID: "n1"},
		{ID: "far", DueDate: datePtr(now.AddDate(0, 0, 9))},
		{ID: "n2"},
		{ID: "soon", DueDate: datePtr(now.AddDate(0, 0, 1))},
	}

	view := View(tasks, Options{Status: StatusAll, Category: CategoryAll, Sort: SortDueDate}, now)
	want := []string{"soon", "far", "n1", "n2"}
	got := ids(view)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("dueDate order wrong: got %v, want %v", got, want)
		}
	}
}

func TestViewSortEstimatedTime(t *testing.T) {
	now := time.Now()
	tasks := []model.Task{
		{ID: "none"},
		{ID: "big", EstimatedMinutes: intPtr(120)},
		{ID: "small", EstimatedMinutes: intPtr(15)},
	}

	view := View(tasks, Options{Status: StatusAll, Category: CategoryAll, Sort: SortEstimatedTime}, now)
	want := []string{"small", "big", "none"}
	got := ids(view)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("estimatedTime order wrong: got %v, want %v", got, want)
		}
	}
}

func TestViewDoesNotMutateInput(t *testing.T) {
	now := time.Now()
	tasks := sampleTasks(now)
	before := ids(tasks)

	View(tasks, Options{Status: StatusAll, Category: CategoryAll, Sort: SortAlphabetical}, now)

	after := ids(tasks)
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("View mutated its input: %v -> %v", before, after)
		}
	}
}
