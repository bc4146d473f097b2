package store

import (
	"context"
	"testing"
	"time"

	"github.com/tbui/taskbox/internal/model"
)

func newTestAdapter(t *testing.T) *Adapter {
	t.Helper()

	kv, err := NewSQLiteKV(":memory:")
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}
	t.Cleanup(func() { kv.Close() })

	return NewAdapter(kv)
}

func TestLoadTasksMissingKey(t *testing.T) {
	a := newTestAdapter(t)

	tasks, err := a.LoadTasks(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("LoadTasks: %v", err)
	}
	if len(tasks) != 0 {
		t.Fatalf("expected empty list for missing key, got %d tasks", len(tasks))
	}
}

func TestTaskRoundTrip(t *testing.T) {
	a := newTestAdapter(t)
	ctx := context.Background()

	due := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	in := []model.Task{{
		ID:        "t1",
		UserID:    "u1",
		Title:     "Write report",
		Priority:  model.PriorityHigh,
		Category:  "Work",
		DueDate:   &due,
		Progress:  40,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
		UpdatedAt: time.Now().UTC().Truncate(time.Second),
	}}

	if err := a.SaveTasks(ctx, "u1", in); err != nil {
		t.Fatalf("SaveTasks: %v", err)
	}

	out, err := a.LoadTasks(ctx, "u1")
	if err != nil {
		t.Fatalf("LoadTasks: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 task, got %d", len(out))
	}
	got := out[0]
	if got.ID != "t1" || got.Title != "Write report" || got.Priority != model.PriorityHigh {
		t.Errorf("round-trip mismatch: %+v", got)
	}
	if got.DueDate == nil || !got.DueDate.Equal(due) {
		t.Errorf("due date lost in round-trip: %v", got.DueDate)
	}
}

func TestScopesAreIsolated(t *testing.T) {
	a := newTestAdapter(t)
	ctx := context.Background()

	if err := a.SaveTasks(ctx, "u1", []model.Task{{ID: "t1", Title: "mine"}}); err != nil {
		t.Fatalf("SaveTasks u1: %v", err)
	}
	if err := a.SaveTasks(ctx, "u2", []model.Task{{ID: "t2", Title: "theirs"}}); err != nil {
		t.Fatalf("SaveTasks u2: %v", err)
	}

	u1, _ := a.LoadTasks(ctx, "u1")
	u2, _ := a.LoadTasks(ctx, "u2")
	if len(u1) != 1 || u1[0].ID != "t1" {
		t.Errorf("u1 partition wrong: %+v", u1)
	}
	if len(u2) != 1 || u2[0].ID != "t2" {
		t.Errorf("u2 partition wrong: %+v", u2)
	}
}

func TestLoadTasksMalformedRecord(t *testing.T) {
	a := newTestAdapter(t)
	ctx := context.Background()

	if err := a.kv.Set(ctx, tasksKey("u1"), []byte("{not json")); err != nil {
		t.Fatalf("Set: %v", err)
	}

	tasks, err := a.LoadTasks(ctx, "u1")
	if err != nil {
		t.Fatalf("malformed record must not surface an error, got %v", err)
	}
	if len(tasks) != 0 {
		t.Fatalf("malformed record must read as empty, got %d tasks", len(tasks))
	}
}

func TestLoadTasksVersionMismatch(t *testing.T) {
	a := newTestAdapter(t)
	ctx := context.Background()

	payload := []byte(`{"version":"1.0","tasks":[{"id":"t1","title":"old"}]}`)
	if err := a.kv.Set(ctx, tasksKey("u1"), payload); err != nil {
		t.Fatalf("Set: %v", err)
	}

	tasks, err := a.LoadTasks(ctx, "u1")
	if err != nil {
		t.Fatalf("LoadTasks: %v", err)
	}
	if len(tasks) != 0 {
		t.Fatalf("mismatched version must read as empty, got %d tasks", len(tasks))
	}
}

func TestLoadTasksAppliesDefaults(t *testing.T) {
	a := newTestAdapter(t)
	ctx := context.Background()

	payload := []byte(`{"version":"2.0","tasks":[{"id":"t1","title":" padded ","priority":"urgent","category":"Nope","progress":250}]}`)
	if err := a.kv.Set(ctx, tasksKey("u1"), payload); err != nil {
		t.Fatalf("Set: %v", err)
	}

	tasks, err := a.LoadTasks(ctx, "u1")
	if err != nil {
		t.Fatalf("LoadTasks: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(tasks))
	}
	got := tasks[0]
	if got.Title != "padded" {
		t.Errorf("title not trimmed: %q", got.Title)
	}
	if got.Priority != model.PriorityMedium {
		t.Errorf("unknown priority not defaulted: %q", got.Priority)
	}
	if got.Category != model.CategoryDefault {
		t.Errorf("unknown category not defaulted: %q", got.Category)
	}
	if got.Progress != 100 {
		t.Errorf("progress not clamped: %d", got.Progress)
	}
	if got.CreatedAt.IsZero() || got.UpdatedAt.IsZero() {
		t.Error("zero timestamps not defaulted")
	}
}

func TestUsersRoundTrip(t *testing.T) {
	a := newTestAdapter(t)
	ctx := context.Background()

	in := []model.User{{ID: "u1", Name: "Ada", Email: "ada@example.com", Avatar: "🦉"}}
	if err := a.SaveUsers(ctx, in); err != nil {
		t.Fatalf("SaveUsers: %v", err)
	}

	out, err := a.LoadUsers(ctx)
	if err != nil {
		t.Fatalf("LoadUsers: %v", err)
	}
	if len(out) != 1 || out[0].Name != "Ada" || out[0].Avatar != "🦉" {
		t.Fatalf("round-trip mismatch: %+v", out)
	}
}

func TestCurrentUserPointer(t *testing.T) {
	a := newTestAdapter(t)
	ctx := context.Background()

	id, err := a.CurrentUserID(ctx)
	if err != nil || id != "" {
		t.Fatalf("fresh store current user = %q, %v; want empty", id, err)
	}

	if err := a.SetCurrentUserID(ctx, "u1"); err != nil {
		t.Fatalf("SetCurrentUserID: %v", err)
	}
	id, _ = a.CurrentUserID(ctx)
	if id != "u1" {
		t.Fatalf("current user = %q, want u1", id)
	}

	if err := a.SetCurrentUserID(ctx, ""); err != nil {
		t.Fatalf("clearing current user: %v", err)
	}
	id, _ = a.CurrentUserID(ctx)
	if id != "" {
		t.Fatalf("cleared current user = %q, want empty", id)
	}
}

func TestThemeRoundTrip(t *testing.T) {
	a := newTestAdapter(t)
	ctx := context.Background()

	name, err := a.Theme(ctx)
	if err != nil || name != "" {
		t.Fatalf("fresh store theme = %q, %v; want empty", name, err)
	}

	if err := a.SetTheme(ctx, "ocean"); err != nil {
		t.Fatalf("SetTheme: %v", err)
	}
	name, _ = a.Theme(ctx)
	if name != "ocean" {
		t.Fatalf("theme = %q, want ocean", name)
	}
}
