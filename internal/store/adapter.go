package store

import (
	"context"
	"fmt"
	"log"

	"github.com/tbui/taskbox/internal/model"
)

// Adapter persists task lists, the user registry, the current-user
// pointer, and the theme selection as versioned JSON records in a KV
// store. A malformed or version-mismatched record reads as empty with a
// logged diagnostic; only write failures propagate to callers.
type Adapter struct {
	kv KV
}

// NewAdapter wraps a KV store.
func NewAdapter(kv KV) *Adapter {
	return &Adapter{kv: kv}
}

// LoadTasks returns the task list persisted under the given owner scope.
// A missing key or an undecodable record yields an empty list, never an
// error: the store is self-healing on read.
func (a *Adapter) LoadTasks(ctx context.Context, scope string) ([]model.Task, error) {
	raw, ok, err := a.kv.Get(ctx, tasksKey(scope))
	if err != nil {
		return nil, fmt.Errorf("loading tasks for %s: %w", scope, err)
	}
	if !ok {
		return []model.Task{}, nil
	}

	tasks, err := decodeTasks(raw)
	if err != nil {
		log.Printf("discarding unreadable task record for %s: %v", scope, err)
		return []model.Task{}, nil
	}
	return tasks, nil
}

// SaveTasks replaces the task list persisted under scope.
func (a *Adapter) SaveTasks(ctx context.Context, scope string, tasks []model.Task) error {
	raw, err := encodeTasks(tasks)
	if err != nil {
		return err
	}
	if err := a.kv.Set(ctx, tasksKey(scope), raw); err != nil {
		return fmt.Errorf("saving tasks for %s: %w", scope, err)
	}
	return nil
}

// DeleteTasks removes the task partition for scope entirely.
func (a *Adapter) DeleteTasks(ctx context.Context, scope string) error {
	if err := a.kv.Delete(ctx, tasksKey(scope)); err != nil {
		return fmt.Errorf("deleting tasks for %s: %w", scope, err)
	}
	return nil
}

// LoadUsers returns the persisted user registry, empty when missing or
// unreadable.
func (a *Adapter) LoadUsers(ctx context.Context) ([]model.User, error) {
	raw, ok, err := a.kv.Get(ctx, usersKey)
	if err != nil {
		return nil, fmt.Errorf("loading users: %w", err)
	}
	if !ok {
		return []model.User{}, nil
	}

	users, err := decodeUsers(raw)
	if err != nil {
		log.Printf("discarding unreadable user record: %v", err)
		return []model.User{}, nil
	}
	return users, nil
}

// SaveUsers replaces the persisted user registry.
func (a *Adapter) SaveUsers(ctx context.Context, users []model.User) error {
	raw, err := encodeUsers(users)
	if err != nil {
		return err
	}
	if err := a.kv.Set(ctx, usersKey, raw); err != nil {
		return fmt.Errorf("saving users: %w", err)
	}
	return nil
}

// CurrentUserID returns the persisted current-user pointer, or "" when
// no user is selected.
func (a *Adapter) CurrentUserID(ctx context.Context) (string, error) {
	raw, ok, err := a.kv.Get(ctx, currentUserKey)
	if err != nil {
		return "", fmt.Errorf("loading current user: %w", err)
	}
	if !ok {
		return "", nil
	}
	return string(raw), nil
}

// SetCurrentUserID persists the current-user pointer. An empty id
// clears the pointer.
func (a *Adapter) SetCurrentUserID(ctx context.Context, id string) error {
	if id == "" {
		if err := a.kv.Delete(ctx, currentUserKey); err != nil {
			return fmt.Errorf("clearing current user: %w", err)
		}
		return nil
	}
	if err := a.kv.Set(ctx, currentUserKey, []byte(id)); err != nil {
		return fmt.Errorf("saving current user: %w", err)
	}
	return nil
}

// Theme returns the persisted theme name, or "" when none was saved.
func (a *Adapter) Theme(ctx context.Context) (string, error) {
	raw, ok, err := a.kv.Get(ctx, themeKey)
	if err != nil {
		return "", fmt.Errorf("loading theme: %w", err)
	}
	if !ok {
		return "", nil
	}
	return string(raw), nil
}

// SetTheme persists the theme name.
func (a *Adapter) SetTheme(ctx context.Context, name string) error {
	if err := a.kv.Set(ctx, themeKey, []byte(name)); err != nil {
		return fmt.Errorf("saving theme: %w", err)
	}
	return nil
}
