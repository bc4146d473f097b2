// Package export implements the round-trippable JSON export/import of
// the full store: users, per-user task lists, the current-user pointer,
// and the theme selection.
package export

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tbui/taskbox/internal/model"
	"github.com/tbui/taskbox/internal/store"
)

// Version is the export format version. Import rejects any other tag.
const Version = "2.0"

// ErrVersionMismatch is returned when an imported envelope carries a
// version tag other than Version. Storage is left untouched.
var ErrVersionMismatch = errors.New("export version mismatch")

// Envelope is the on-disk export format.
type Envelope struct {
	Version     string                  `json:"version"`
	ExportedAt  time.Time               `json:"exported_at"`
	Users       []model.User            `json:"users"`
	CurrentUser string                  `json:"current_user"`
	Theme       string                  `json:"theme"`
	Tasks       map[string][]model.Task `json:"tasks"`
}

// Export collects the full persisted state into an envelope.
func Export(ctx context.Context, adapter *store.Adapter) (*Envelope, error) {
	users, err := adapter.LoadUsers(ctx)
	if err != nil {
		return nil, err
	}
	currentID, err := adapter.CurrentUserID(ctx)
	if err != nil {
		return nil, err
	}
	theme, err := adapter.Theme(ctx)
	if err != nil {
		return nil, err
	}

	taskLists := make(map[string][]model.Task, len(users))
	for _, u := range users {
		tasks, err := adapter.LoadTasks(ctx, u.ID)
		if err != nil {
			return nil, err
		}
		taskLists[u.ID] = tasks
	}

	return &Envelope{
		Version:     Version,
		ExportedAt:  time.Now().UTC(),
		Users:       users,
		CurrentUser: currentID,
		Theme:       theme,
		Tasks:       taskLists,
	}, nil
}

// Import replaces the persisted state with the envelope's contents.
// The version tag is checked before anything is written, so a mismatch
// never mutates existing storage.
func Import(ctx context.Context, adapter *store.Adapter, env *Envelope) error {
	if env.Version != Version {
		return fmt.Errorf("%w: got %q, want %q", ErrVersionMismatch, env.Version, Version)
	}

	if err := adapter.SaveUsers(ctx, env.Users); err != nil {
		return err
	}
	for _, u := range env.Users {
		if err := adapter.SaveTasks(ctx, u.ID, env.Tasks[u.ID]); err != nil {
			return err
		}
	}
	if err := adapter.SetCurrentUserID(ctx, env.CurrentUser); err != nil {
		return err
	}
	if env.Theme != "" {
		if err := adapter.SetTheme(ctx, env.Theme); err != nil {
			return err
		}
	}
	return nil
}

// WriteFile writes the envelope as indented JSON.
func WriteFile(path string, env *Envelope) error {
	raw, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding export: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("writing export to %s: %w", path, err)
	}
	return nil
}

// ReadFile parses an export file. The version check happens at import
// time, not here, so callers can inspect mismatched envelopes.
func ReadFile(path string) (*Envelope, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading export from %s: %w", path, err)
	}
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decoding export from %s: %w", path, err)
	}
	return &env, nil
}

// WriteSnapshot writes a rendered text panel (e.g. the statistics view)
// to a timestamped file and returns the path. This is the one-way
// visual snapshot; it is not re-importable.
func WriteSnapshot(dir, rendered string, now time.Time) (string, error) {
	path := filepath.Join(dir, "taskbox-snapshot-"+now.Format("20060102-150405")+".txt")
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("writing snapshot to %s: %w", path, err)
	}
	return path, nil
}
