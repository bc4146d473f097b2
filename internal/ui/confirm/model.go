// Package confirm implements the consent gate shown before destructive
// operations. The repository itself never asks; every delete or clear
// passes through here first.
package confirm

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// ResultMsg carries the user's decision back to the parent along with
// the action token the dialog was opened with.
type ResultMsg struct {
	Action  string
	TaskID  string
	Granted bool
}

// Model is the Bubble Tea model for a confirmation dialog.
type Model struct {
	form    *huh.Form
	granted *bool
	action  string
	taskID  string
	width   int
	height  int
}

// New creates an idle confirmation dialog.
func New(width, height int) Model {
	return Model{width: width, height: height}
}

// SetSize updates the dialog dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Start opens the dialog for the given action. The action and taskID
// are echoed back in the ResultMsg so the parent can route the outcome.
func (m *Model) Start(action, taskID, title, description string) tea.Cmd {
	m.action = action
	m.taskID = taskID
	granted := false
	m.granted = &granted

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Yes").
				Negative("Cancel").
				Value(m.granted),
		),
	).WithWidth(m.width - 4)

	return m.form.Init()
}

// Update handles messages for the dialog.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		result := ResultMsg{Action: m.action, TaskID: m.taskID, Granted: *m.granted}
		return m, func() tea.Msg { return result }
	}
	if m.form.State == huh.StateAborted {
		result := ResultMsg{Action: m.action, TaskID: m.taskID, Granted: false}
		return m, func() tea.Msg { return result }
	}

	return m, cmd
}

// View renders the dialog.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(m.form.View())
}
