package tasklist

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tbui/taskbox/internal/model"
	"github.com/tbui/taskbox/internal/query"
	"github.com/tbui/taskbox/internal/theme"
)

// TaskItem wraps a model.Task so it can be used in a bubbles/list.
type TaskItem struct {
	Task model.Task
}

// FilterValue returns the string used for fuzzy filtering.
func (i TaskItem) FilterValue() string { return i.Task.Title }

// ItemDelegate implements list.ItemDelegate for rendering task lines.
type ItemDelegate struct {
	// styles is shared by reference with the tasklist Model so theme
	// changes take effect without rebuilding the list.
	styles *theme.Styles
}

// Height returns the number of lines each item takes.
func (d ItemDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d ItemDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused).
func (d ItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single task line: completion marker, priority badge,
// category badge, title, due date, and an overdue marker.
func (d ItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ti, ok := item.(TaskItem)
	if !ok {
		return
	}

	t := ti.Task
	styles := *d.styles

	prefix := "○"
	if t.Completed {
		prefix = "✓"
	}
	prefix = styles.CompletionStyle(t.Completed).Render(prefix)

	priBadge := styles.PriorityStyle(t.Priority).Render(priorityLabel(t.Priority))
	catBadge := styles.CategoryStyle(t.Category).Render(t.Category)

	dueStr := ""
	if t.DueDate != nil {
		dueStr = styles.Help.Render(" due " + t.DueDate.Format("Jan 02"))
	}

	overdueStr := ""
	if query.Overdue(t, time.Now()) {
		overdueStr = styles.PriorityStyle(model.PriorityHigh).Render(" OVERDUE")
	}

	progressStr := ""
	if !t.Completed && t.Progress > 0 {
		progressStr = styles.Help.Render(fmt.Sprintf(" %d%%", t.Progress))
	}

	line := fmt.Sprintf("%s %s %s %s%s%s%s",
		prefix, priBadge, catBadge, t.Title, progressStr, dueStr, overdueStr)

	if index == m.Index() {
		line = styles.SelectedItem.Render(line)
	} else {
		line = styles.ListItem.Render(line)
	}

	fmt.Fprint(w, line)
}

// priorityLabel returns a short label for the given priority.
func priorityLabel(p string) string {
	switch p {
	case model.PriorityHigh:
		return "HI"
	case model.PriorityMedium:
		return "MD"
	case model.PriorityLow:
		return "LO"
	default:
		return "??"
	}
}
