package tasklist

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tbui/taskbox/internal/model"
	"github.com/tbui/taskbox/internal/query"
	"github.com/tbui/taskbox/internal/theme"
)

// Model is the main task list view. It holds the full canonical list
// and the current filter/sort selection, and renders the derived view
// list through a bubbles list widget.
type Model struct {
	list   list.Model
	styles *theme.Styles
	tasks  []model.Task
	opts   query.Options
	width  int
	height int
}

// New creates a task list model.
func New(styles *theme.Styles, width, height int) Model {
	delegate := ItemDelegate{styles: styles}
	l := list.New([]list.Item{}, delegate, width, height-2)
	l.Title = "Tasks"
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)

	return Model{
		list:   l,
		styles: styles,
		opts:   query.DefaultOptions(),
		width:  width,
		height: height,
	}
}

// SetSize updates the widget dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-2)
}

// SetTasks replaces the canonical task list and recomputes the view.
func (m *Model) SetTasks(tasks []model.Task) tea.Cmd {
	m.tasks = tasks
	return m.refresh()
}

// SelectedTask returns the task under the cursor, if any.
func (m *Model) SelectedTask() (model.Task, bool) {
	item, ok := m.list.SelectedItem().(TaskItem)
	if !ok {
		return model.Task{}, false
	}
	return item.Task, true
}

// CycleStatusFilter advances to the next status filter.
func (m *Model) CycleStatusFilter() tea.Cmd {
	for i, f := range query.StatusFilters {
		if f == m.opts.Status {
			m.opts.Status = query.StatusFilters[(i+1)%len(query.StatusFilters)]
			return m.refresh()
		}
	}
	m.opts.Status = query.StatusAll
	return m.refresh()
}

// CycleCategoryFilter advances to the next category filter
// (all, then each category in order).
func (m *Model) CycleCategoryFilter() tea.Cmd {
	if m.opts.Category == "" || m.opts.Category == query.CategoryAll {
		m.opts.Category = model.Categories[0]
		return m.refresh()
	}
	for i, c := range model.Categories {
		if c == m.opts.Category {
			if i == len(model.Categories)-1 {
				m.opts.Category = query.CategoryAll
			} else {
				m.opts.Category = model.Categories[i+1]
			}
			return m.refresh()
		}
	}
	m.opts.Category = query.CategoryAll
	return m.refresh()
}

// CycleSort advances to the next sort mode.
func (m *Model) CycleSort() tea.Cmd {
	for i, k := range query.SortKeys {
		if k == m.opts.Sort {
			m.opts.Sort = query.SortKeys[(i+1)%len(query.SortKeys)]
			return m.refresh()
		}
	}
	m.opts.Sort = query.SortNewest
	return m.refresh()
}

// ClearFilters resets the view to the default selection.
func (m *Model) ClearFilters() tea.Cmd {
	m.opts = query.DefaultOptions()
	return m.refresh()
}

// FilterSummary describes the active selection for the status bar,
// or "" when everything is at its default.
func (m *Model) FilterSummary() string {
	if m.opts == query.DefaultOptions() {
		return ""
	}
	return fmt.Sprintf("status:%s category:%s sort:%s",
		m.opts.Status, m.opts.Category, m.opts.Sort)
}

// refresh recomputes the view list and pushes it into the list widget.
func (m *Model) refresh() tea.Cmd {
	view := query.View(m.tasks, m.opts, time.Now())
	items := make([]list.Item, len(view))
	for i, t := range view {
		items[i] = TaskItem{Task: t}
	}
	return m.list.SetItems(items)
}

// Update delegates navigation messages to the list widget.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the task list.
func (m Model) View() string {
	return m.list.View()
}
