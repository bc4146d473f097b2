// Package users manages the user registry and the current-user pointer.
package users

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

// ErrNotFound is returned when an operation targets an unknown user id.
var ErrNotFound = errors.New("user not found")

// ErrEmptyName is returned when a user is created without a name.
var ErrEmptyName = errors.New("user name must not be empty")

// ErrDuplicateEmail is returned when a new user's email collides with an
// existing one. Comparison is case-insensitive.
var ErrDuplicateEmail = errors.New("email already registered")

// Registry holds the in-memory user list and the current-user pointer,
// persisting both through the adapter. Mutations arrive from UI command
// goroutines, so a mutex guards the list and the pointer.
type Registry struct {
	adapter *store.Adapter

	mu        sync.Mutex
	users     []model.User
	currentID string
}

// NewRegistry loads the persisted registry.
func NewRegistry(ctx context.Context, adapter *store.Adapter) (*Registry, error) {
	r := &Registry{adapter: adapter}
	if err := r.Reload(ctx); err != nil {
		return nil, err
	}
	return r, nil
}

// Reload refreshes the registry from the adapter. A current-user
// pointer that no longer matches a registered user is dropped.
func (r *Registry) Reload(ctx context.Context) error {
	users, err := r.adapter.LoadUsers(ctx)
	if err != nil {
		return err
	}
	currentID, err := r.adapter.CurrentUserID(ctx)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.users = users
	r.currentID = ""
	for _, u := range users {
		if u.ID == currentID {
			r.currentID = currentID
			break
		}
	}
	return nil
}

// All returns a copy of the registered users.
func (r *Registry) All() []model.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshot()
}

// snapshot copies the user list. Caller must hold mu.
func (r *Registry) snapshot() []model.User {
	out := make([]model.User, len(r.users))
	copy(out, r.users)
	return out
}

// Get returns the user with the given id, or nil.
func (r *Registry) Get(id string) *model.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.get(id)
}

// get looks up a user by id. Caller must hold mu.
func (r *Registry) get(id string) *model.User {
	for i := range r.users {
		if r.users[i].ID == id {
			u := r.users[i]
			return &u
		}
	}
	return nil
}

// Current returns the selected user, or nil when none is selected.
func (r *Registry) Current() *model.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current()
}

// current resolves the current-user pointer. Caller must hold mu.
func (r *Registry) current() *model.User {
	if r.currentID == "" {
		return nil
	}
	return r.get(r.currentID)
}

// Add registers a new user. Email uniqueness is enforced
// case-insensitively; an unknown avatar falls back to the default.
func (r *Registry) Add(ctx context.Context, name, email, avatar string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.add(ctx, name, email, avatar)
}

// add validates and persists a new user. Caller must hold mu.
func (r *Registry) add(ctx context.Context, name, email, avatar string) (*model.User, error) {
	u := model.User{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     email,
		Avatar:    avatar,
		CreatedAt: time.Now().UTC(),
	}
	u.Normalize()

	if u.Name == "" {
		return nil, ErrEmptyName
	}
	for _, existing := range r.users {
		if existing.EmailKey() == u.EmailKey() && u.EmailKey() != "" {
			return nil, ErrDuplicateEmail
		}
	}

	updated := append(r.snapshot(), u)
	if err := r.adapter.SaveUsers(ctx, updated); err != nil {
		return nil, err
	}
	r.users = updated
	return &u, nil
}

// Remove deletes a user together with their task partition. Removing
// the current user clears the current-user pointer.
func (r *Registry) Remove(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	updated := make([]model.User, 0, len(r.users))
	found := false
	for _, u := range r.users {
		if u.ID == id {
			found = true
			continue
		}
		updated = append(updated, u)
	}
	if !found {
		return ErrNotFound
	}

	if err := r.adapter.SaveUsers(ctx, updated); err != nil {
		return err
	}
	r.users = updated

	if err := r.adapter.DeleteTasks(ctx, id); err != nil {
		return err
	}
	if r.currentID == id {
		r.currentID = ""
		return r.adapter.SetCurrentUserID(ctx, "")
	}
	return nil
}

// SetCurrent selects the current user and persists the pointer.
func (r *Registry) SetCurrent(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.setCurrent(ctx, id)
}

// setCurrent validates and persists the pointer. Caller must hold mu.
func (r *Registry) setCurrent(ctx context.Context, id string) error {
	if r.get(id) == nil {
		return ErrNotFound
	}
	if err := r.adapter.SetCurrentUserID(ctx, id); err != nil {
		return err
	}
	r.currentID = id
	return nil
}

// EnsureDefault creates and selects a default user when the registry is
// empty, so a fresh install lands in a usable state. Returns the
// current user in every case.
func (r *Registry) EnsureDefault(ctx context.Context) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if u := r.current(); u != nil {
		return u, nil
	}
	if len(r.users) > 0 {
		if err := r.setCurrent(ctx, r.users[0].ID); err != nil {
			return nil, err
		}
		return r.current(), nil
	}

	hostname := defaultUserName()
	u, err := r.add(ctx, hostname, "", model.AvatarDefault)
	if err != nil {
		return nil, err
	}
	if err := r.setCurrent(ctx, u.ID); err != nil {
		return nil, err
	}
	return u, nil
}

// defaultUserName derives a first-run user name from the OS user, with
// a fixed fallback.
func defaultUserName() string {
	if name := strings.TrimSpace(osUserName()); name != "" {
		return name
	}
	return "Me"
}
