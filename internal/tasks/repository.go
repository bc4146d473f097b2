// Package tasks owns the canonical in-memory task list for one owner
// scope and applies all mutations through the persistence adapter.
package tasks

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tbui/taskbox/internal/model"
	"github.com/tbui/taskbox/internal/store"
)

// ErrNotFound is returned when an update targets an unknown task id.
var ErrNotFound = errors.New("task not found")

// ErrEmptyTitle is returned when a create or patch would leave a task
// with an empty title.
var ErrEmptyTitle = errors.New("task title must not be empty")

// CreateInput carries the caller-supplied fields for a new task.
// Omitted fields receive defaults.
type CreateInput struct {
	Title            string
	Description      string
	Priority         string
	Category         string
	DueDate          *time.Time
	EstimatedMinutes *int
	Progress         int
}

// Patch is a partial update. Nil pointer fields are left untouched;
// the Clear flags remove the corresponding optional field.
type Patch struct {
	Title            *string
	Description      *string
	Completed        *bool
	Priority         *string
	Category         *string
	DueDate          *time.Time
	ClearDueDate     bool
	EstimatedMinutes *int
	ClearEstimate    bool
	Progress         *int
}

// Repository holds the canonical task list for a single owner scope.
// Every mutation is a full read-modify-write cycle against the adapter
// followed by a change notification to subscribers. Mutations arrive
// from UI command goroutines, so a mutex guards the list and the
// observer set.
type Repository struct {
	adapter *store.Adapter
	scope   string

	mu        sync.Mutex
	tasks     []model.Task
	observers []func()
}

// NewRepository creates a repository for the given owner scope and
// loads its current task list.
func NewRepository(ctx context.Context, adapter *store.Adapter, scope string) (*Repository, error) {
	r := &Repository{adapter: adapter, scope: scope}
	if err := r.Reload(ctx); err != nil {
		return nil, err
	}
	return r, nil
}

// Scope returns the owner scope this repository persists under.
func (r *Repository) Scope() string {
	return r.scope
}

// Tasks returns a copy of the canonical task list.
func (r *Repository) Tasks() []model.Task {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshot()
}

// snapshot copies the task list. Caller must hold mu.
func (r *Repository) snapshot() []model.Task {
	out := make([]model.Task, len(r.tasks))
	copy(out, r.tasks)
	return out
}

// Get returns the task with the given id, or nil.
func (r *Repository) Get(id string) *model.Task {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.get(id)
}

// get looks up a task by id. Caller must hold mu.
func (r *Repository) get(id string) *model.Task {
	for i := range r.tasks {
		if r.tasks[i].ID == id {
			t := r.tasks[i]
			return &t
		}
	}
	return nil
}

// Reload refreshes the in-memory list from the adapter.
func (r *Repository) Reload(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.reload(ctx)
}

// reload replaces the in-memory list with the persisted one. Caller
// must hold mu.
func (r *Repository) reload(ctx context.Context) error {
	tasks, err := r.adapter.LoadTasks(ctx, r.scope)
	if err != nil {
		return err
	}
	r.tasks = tasks
	return nil
}

// Subscribe registers a callback invoked after every successful mutation.
func (r *Repository) Subscribe(fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.observers = append(r.observers, fn)
}

// notify runs the observer callbacks. Called without mu held so an
// observer may call back into the repository.
func (r *Repository) notify() {
	r.mu.Lock()
	observers := make([]func(), len(r.observers))
	copy(observers, r.observers)
	r.mu.Unlock()

	for _, fn := range observers {
		fn()
	}
}

// Add validates input, constructs a task with a generated id and
// timestamps, appends it, and persists. Nothing is persisted when
// validation fails.
func (r *Repository) Add(ctx context.Context, in CreateInput) (*model.Task, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, ErrEmptyTitle
	}

	now := time.Now().UTC()
	t := model.Task{
		ID:               uuid.New().String(),
		UserID:           r.scope,
		Title:            in.Title,
		Description:      in.Description,
		Priority:         in.Priority,
		Category:         in.Category,
		DueDate:          in.DueDate,
		EstimatedMinutes: in.EstimatedMinutes,
		Progress:         in.Progress,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	t.Normalize()

	r.mu.Lock()
	updated := append(r.snapshot(), t)
	err := r.persist(ctx, updated)
	r.mu.Unlock()
	if err != nil {
		return nil, err
	}
	r.notify()
	return &t, nil
}

// Update shallow-merges the patch over the task with the given id,
// stamps UpdatedAt, and persists. Returns ErrNotFound for unknown ids
// and ErrEmptyTitle when the patch would blank the title.
func (r *Repository) Update(ctx context.Context, id string, p Patch) (*model.Task, error) {
	r.mu.Lock()
	result, err := r.applyPatch(ctx, id, p)
	r.mu.Unlock()
	if err != nil {
		return nil, err
	}
	r.notify()
	return result, nil
}

// applyPatch merges and persists a patch. Caller must hold mu.
func (r *Repository) applyPatch(ctx context.Context, id string, p Patch) (*model.Task, error) {
	updated := r.snapshot()
	idx := -1
	for i := range updated {
		if updated[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrNotFound
	}

	t := &updated[idx]
	if p.Title != nil {
		if strings.TrimSpace(*p.Title) == "" {
			return nil, ErrEmptyTitle
		}
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.ClearDueDate {
		t.DueDate = nil
	} else if p.DueDate != nil {
		t.DueDate = p.DueDate
	}
	if p.ClearEstimate {
		t.EstimatedMinutes = nil
	} else if p.EstimatedMinutes != nil {
		t.EstimatedMinutes = p.EstimatedMinutes
	}
	if p.Progress != nil {
		t.Progress = *p.Progress
	}
	t.Normalize()
	t.UpdatedAt = time.Now().UTC()

	if err := r.persist(ctx, updated); err != nil {
		return nil, err
	}
	result := updated[idx]
	return &result, nil
}

// Remove deletes the task with the given id. Removing an absent id is
// a successful no-op.
func (r *Repository) Remove(ctx context.Context, id string) error {
	r.mu.Lock()
	updated := make([]model.Task, 0, len(r.tasks))
	found := false
	for _, t := range r.tasks {
		if t.ID == id {
			found = true
			continue
		}
		updated = append(updated, t)
	}
	if !found {
		r.mu.Unlock()
		return nil
	}

	err := r.persist(ctx, updated)
	r.mu.Unlock()
	if err != nil {
		return err
	}
	r.notify()
	return nil
}

// ClearAll replaces the task list with an empty one. The caller is
// expected to have confirmed the action already.
func (r *Repository) ClearAll(ctx context.Context) error {
	r.mu.Lock()
	err := r.persist(ctx, []model.Task{})
	r.mu.Unlock()
	if err != nil {
		return err
	}
	r.notify()
	return nil
}

// ToggleComplete flips the completed flag. Completing a task forces
// progress to 100; un-completing leaves progress as it was. Direct
// progress edits via Update are intentionally not coupled to the
// completed flag. The read and the write happen under one lock so two
// concurrent toggles cannot both observe the same starting state.
func (r *Repository) ToggleComplete(ctx context.Context, id string) (*model.Task, error) {
	r.mu.Lock()
	current := r.get(id)
	if current == nil {
		r.mu.Unlock()
		return nil, ErrNotFound
	}

	completed := !current.Completed
	p := Patch{Completed: &completed}
	if completed {
		progress := 100
		p.Progress = &progress
	}
	result, err := r.applyPatch(ctx, id, p)
	r.mu.Unlock()
	if err != nil {
		return nil, err
	}
	r.notify()
	return result, nil
}

// persist writes the new list and, on success, adopts it as the
// canonical in-memory state. On write failure the in-memory list is
// reloaded from the store so memory and disk cannot drift apart.
// Caller must hold mu.
func (r *Repository) persist(ctx context.Context, tasks []model.Task) error {
	if err := r.adapter.SaveTasks(ctx, r.scope, tasks); err != nil {
		if reloadErr := r.reload(ctx); reloadErr != nil {
			return errors.Join(err, reloadErr)
		}
		return err
	}
	r.tasks = tasks
	return nil
}
