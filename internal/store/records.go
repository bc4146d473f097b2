package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/tbui/taskbox/internal/model"
)

// SchemaVersion is the literal version tag carried by every persisted
// record envelope. Envelopes with a different tag are rejected outright;
// there is no migration of persisted payloads.
const SchemaVersion = "2.0"

// keyPrefix namespaces all store keys.
const keyPrefix = "taskbox:v2:"

// Store key layout. Task lists are partitioned per owning user.
func tasksKey(scope string) string { return keyPrefix + "tasks:" + scope }

const (
	usersKey       = keyPrefix + "users"
	currentUserKey = keyPrefix + "current_user"
	themeKey       = keyPrefix + "theme"
)

// taskEnvelope is the persisted form of a task list.
type taskEnvelope struct {
	Version string       `json:"version"`
	Tasks   []model.Task `json:"tasks"`
}

// userEnvelope is the persisted form of the user registry.
type userEnvelope struct {
	Version string       `json:"version"`
	Users   []model.User `json:"users"`
}

// decodeTasks validates an envelope payload and returns normalized tasks.
// Any defect (bad JSON, wrong version tag) is an error; the caller
// decides whether to surface or swallow it.
func decodeTasks(raw []byte) ([]model.Task, error) {
	var env taskEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decoding task envelope: %w", err)
	}
	if env.Version != SchemaVersion {
		return nil, fmt.Errorf("task envelope version %q, want %q", env.Version, SchemaVersion)
	}

	now := time.Now().UTC()
	for i := range env.Tasks {
		env.Tasks[i].Normalize()
		if env.Tasks[i].CreatedAt.IsZero() {
			env.Tasks[i].CreatedAt = now
		}
		if env.Tasks[i].UpdatedAt.IsZero() {
			env.Tasks[i].UpdatedAt = env.Tasks[i].CreatedAt
		}
	}
	return env.Tasks, nil
}

// encodeTasks wraps tasks in a versioned envelope.
func encodeTasks(tasks []model.Task) ([]byte, error) {
	if tasks == nil {
		tasks = []model.Task{}
	}
	raw, err := json.Marshal(taskEnvelope{Version: SchemaVersion, Tasks: tasks})
	if err != nil {
		return nil, fmt.Errorf("encoding task envelope: %w", err)
	}
	return raw, nil
}

// decodeUsers validates a user envelope payload.
func decodeUsers(raw []byte) ([]model.User, error) {
	var env userEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decoding user envelope: %w", err)
	}
	if env.Version != SchemaVersion {
		return nil, fmt.Errorf("user envelope version %q, want %q", env.Version, SchemaVersion)
	}

	now := time.Now().UTC()
	for i := range env.Users {
		env.Users[i].Normalize()
		if env.Users[i].CreatedAt.IsZero() {
			env.Users[i].CreatedAt = now
		}
	}
	return env.Users, nil
}

// encodeUsers wraps users in a versioned envelope.
func encodeUsers(users []model.User) ([]byte, error) {
	if users == nil {
		users = []model.User{}
	}
	raw, err := json.Marshal(userEnvelope{Version: SchemaVersion, Users: users})
	if err != nil {
		return nil, fmt.Errorf("encoding user envelope: %w", err)
	}
	return raw, nil
}
