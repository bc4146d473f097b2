package app

import (
	"context"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tbui/taskbox/internal/export"
	"github.com/tbui/taskbox/internal/tasks"
	"github.com/tbui/taskbox/internal/theme"
)

// stateChangedMsg signals that the repository mutated and views must
// re-render.
type stateChangedMsg struct{}

// mutationDoneMsg carries the outcome of a repository mutation.
type mutationDoneMsg struct {
	status string
	err    error
}

// exportDoneMsg carries the outcome of a JSON export or snapshot write.
type exportDoneMsg struct {
	path string
	err  error
}

// Seams for tests: fixed timestamps and a redirected output directory.
var (
	timeNow   = func() time.Time { return time.Now() }
	outputDir = os.TempDir
)

// addTask persists a new task from form input.
func (m *Model) addTask(in tasks.CreateInput) tea.Cmd {
	repo := m.repo
	return func() tea.Msg {
		if _, err := repo.Add(context.Background(), in); err != nil {
			return mutationDoneMsg{err: err}
		}
		return mutationDoneMsg{status: "Task added"}
	}
}

// editTask applies a form patch to an existing task.
func (m *Model) editTask(id string, p tasks.Patch) tea.Cmd {
	repo := m.repo
	return func() tea.Msg {
		if _, err := repo.Update(context.Background(), id, p); err != nil {
			return mutationDoneMsg{err: err}
		}
		return mutationDoneMsg{status: "Task updated"}
	}
}

// toggleTask flips a task's completion state.
func (m *Model) toggleTask(id string) tea.Cmd {
	repo := m.repo
	return func() tea.Msg {
		if _, err := repo.ToggleComplete(context.Background(), id); err != nil {
			return mutationDoneMsg{err: err}
		}
		return mutationDoneMsg{}
	}
}

// deleteTask removes a task. Consent was already obtained by the
// confirm dialog.
func (m *Model) deleteTask(id string) tea.Cmd {
	repo := m.repo
	return func() tea.Msg {
		if err := repo.Remove(context.Background(), id); err != nil {
			return mutationDoneMsg{err: err}
		}
		return mutationDoneMsg{status: "Task deleted"}
	}
}

// clearAll wipes the current user's task list. Consent was already
// obtained by the confirm dialog.
func (m *Model) clearAll() tea.Cmd {
	repo := m.repo
	return func() tea.Msg {
		if err := repo.ClearAll(context.Background()); err != nil {
			return mutationDoneMsg{err: err}
		}
		return mutationDoneMsg{status: "All tasks cleared"}
	}
}

// changeTheme applies and persists a theme selection. The shared style
// pointer is swapped in place so every view picks up the new palette.
func (m *Model) changeTheme(name string) tea.Cmd {
	m.themeName = name
	*m.styles = theme.NewStyles(name)

	adapter := m.adapter
	return func() tea.Msg {
		if err := adapter.SetTheme(context.Background(), name); err != nil {
			return mutationDoneMsg{err: err}
		}
		return mutationDoneMsg{status: "Theme: " + name}
	}
}

// exportJSON writes the full store to a timestamped JSON file in the
// temp directory.
func (m *Model) exportJSON() tea.Cmd {
	adapter := m.adapter
	return func() tea.Msg {
		env, err := export.Export(context.Background(), adapter)
		if err != nil {
			return exportDoneMsg{err: err}
		}
		path := filepath.Join(outputDir(), "taskbox-export-"+timeNow().Format("20060102-150405")+".json")
		if err := export.WriteFile(path, env); err != nil {
			return exportDoneMsg{err: err}
		}
		return exportDoneMsg{path: path}
	}
}

// writeSnapshot saves the rendered statistics panel as a text file.
func (m *Model) writeSnapshot() tea.Cmd {
	m.refreshViews()
	rendered := m.statsView.Render()
	return func() tea.Msg {
		path, err := export.WriteSnapshot(outputDir(), rendered, timeNow())
		if err != nil {
			return exportDoneMsg{err: err}
		}
		return exportDoneMsg{path: path}
	}
}
