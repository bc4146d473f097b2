package model

import (
	"strings"
	"time"
)

// Priority levels for a task.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Categories is the fixed set of task categories.
var Categories = []string{
	"Work",
	"Personal",
	"Health",
	"Finance",
	"Learning",
	"Shopping",
	"Travel",
}

// CategoryDefault is assigned when a task is created without a category.
const CategoryDefault = "Personal"

// priorityRank orders priorities for sorting (lower rank sorts first).
var priorityRank = map[string]int{
	PriorityHigh:   0,
	PriorityMedium: 1,
	PriorityLow:    2,
}

// PriorityRank returns the sort rank for a priority string.
// Unknown priorities rank after all known ones.
func PriorityRank(p string) int {
	if r, ok := priorityRank[p]; ok {
		return r
	}
	return len(priorityRank)
}

// ValidPriority reports whether p is one of the known priority levels.
func ValidPriority(p string) bool {
	_, ok := priorityRank[p]
	return ok
}

// ValidCategory reports whether c is one of the known categories.
func ValidCategory(c string) bool {
	for _, known := range Categories {
		if known == c {
			return true
		}
	}
	return false
}

// Task is a user-created to-do item.
type Task struct {
	// ID is the unique identifier, generated at creation, immutable.
	ID string `json:"id"`

	// UserID identifies the owning user.
	UserID string `json:"user_id"`

	// Title is the short summary. Always non-empty and trimmed.
	Title string `json:"title"`

	// Description is optional free text.
	Description string `json:"description"`

	// Completed marks the task as done.
	Completed bool `json:"completed"`

	// Priority is one of the Priority* constants.
	Priority string `json:"priority"`

	// Category is one of the entries in Categories.
	Category string `json:"category"`

	// DueDate is the optional due day. Only the calendar day is
	// significant; the time-of-day component is ignored.
	DueDate *time.Time `json:"due_date,omitempty"`

	// EstimatedMinutes is the optional effort estimate.
	EstimatedMinutes *int `json:"estimated_minutes,omitempty"`

	// Progress is the completion percentage, 0-100.
	Progress int `json:"progress"`

	// CreatedAt is set once at creation.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is refreshed on every mutation.
	UpdatedAt time.Time `json:"updated_at"`
}

// Normalize trims text fields and applies defaults for missing or
// out-of-range values. Runs both when decoding persisted records and
// when accepting new tasks, so malformed data never escapes the store.
func (t *Task) Normalize() {
	t.Title = strings.TrimSpace(t.Title)
	t.Description = strings.TrimSpace(t.Description)

	if !ValidPriority(t.Priority) {
		t.Priority = PriorityMedium
	}
	if !ValidCategory(t.Category) {
		t.Category = CategoryDefault
	}
	if t.Progress < 0 {
		t.Progress = 0
	}
	if t.Progress > 100 {
		t.Progress = 100
	}
	if t.EstimatedMinutes != nil && *t.EstimatedMinutes <= 0 {
		t.EstimatedMinutes = nil
	}
}
