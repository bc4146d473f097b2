// Package userpicker implements the user registry view: switching the
// active user, creating users, and removing them.
package userpicker

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/tbui/taskbox/internal/keys"
	"github.com/tbui/taskbox/internal/model"
	"github.com/tbui/taskbox/internal/theme"
	"github.com/tbui/taskbox/internal/users"
)

// CloseMsg signals the parent to close the user view.
type CloseMsg struct{}

// UserSwitchedMsg signals that the current user changed.
type UserSwitchedMsg struct {
	UserID string
}

// UsersChangedMsg signals that the registry was modified.
type UsersChangedMsg struct{}

type userMode int

const (
	modeList userMode = iota
	modeForm
	modeConfirmDelete
)

type formBindings struct {
	name    string
	email   string
	avatar  string
	confirm bool
}

type userSavedMsg struct{ err error }
type userDeletedMsg struct{ err error }

// Model is the Bubble Tea model for user management.
type Model struct {
	mode        userMode
	registry    *users.Registry
	keys        *keys.KeyMap
	styles      *theme.Styles
	selectedIdx int
	form        *huh.Form
	confirmForm *huh.Form
	fb          *formBindings
	statusMsg   string
	width       int
	height      int
}

// New creates a user picker model.
func New(r *users.Registry, k *keys.KeyMap, styles *theme.Styles, width, height int) Model {
	return Model{
		mode:     modeList,
		registry: r,
		keys:     k,
		styles:   styles,
		fb:       &formBindings{},
		width:    width, height: height,
	}
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case userSavedMsg:
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.statusMsg = "User created"
		}
		m.mode = modeList
		return m, func() tea.Msg { return UsersChangedMsg{} }

	case userDeletedMsg:
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.statusMsg = "User removed"
		}
		m.mode = modeList
		if m.selectedIdx > 0 {
			m.selectedIdx--
		}
		return m, func() tea.Msg { return UsersChangedMsg{} }

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateActiveForm(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch m.mode {
	case modeForm:
		return m.updateForm(msg)
	case modeConfirmDelete:
		return m.updateConfirm(msg)
	}

	list := m.registry.All()
	switch {
	case key.Matches(msg, m.keys.Back):
		return m, func() tea.Msg { return CloseMsg{} }

	case key.Matches(msg, m.keys.Down):
		if len(list) > 0 {
			m.selectedIdx = (m.selectedIdx + 1) % len(list)
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if len(list) > 0 {
			m.selectedIdx--
			if m.selectedIdx < 0 {
				m.selectedIdx = len(list) - 1
			}
		}
		return m, nil

	case msg.String() == "enter":
		if m.selectedIdx < len(list) {
			return m, m.switchUser(list[m.selectedIdx].ID)
		}
		return m, nil

	case msg.String() == "n":
		m.fb.name = ""
		m.fb.email = ""
		m.fb.avatar = model.AvatarDefault
		m.form = m.buildForm()
		m.mode = modeForm
		return m, m.form.Init()

	case msg.String() == "d":
		if len(list) == 0 {
			return m, nil
		}
		m.fb.confirm = false
		m.confirmForm = m.buildConfirmForm()
		m.mode = modeConfirmDelete
		return m, m.confirmForm.Init()
	}
	return m, nil
}

func (m Model) buildForm() *huh.Form {
	avatarOpts := make([]huh.Option[string], len(model.Avatars))
	for i, a := range model.Avatars {
		avatarOpts[i] = huh.NewOption(a, a)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Placeholder("Display name").
				Value(&m.fb.name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Email").
				Placeholder("optional, must be unique").
				Value(&m.fb.email),
			huh.NewSelect[string]().
				Title("Avatar").
				Options(avatarOpts...).
				Value(&m.fb.avatar),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) buildConfirmForm() *huh.Form {
	name := ""
	list := m.registry.All()
	if m.selectedIdx < len(list) {
		name = list[m.selectedIdx].Name
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Remove user %q?", name)).
				Description("Their task list will be deleted too. This cannot be undone.").
				Affirmative("Yes, remove").
				Negative("Cancel").
				Value(&m.fb.confirm),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) updateForm(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}
	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}
	if m.form.State == huh.StateCompleted {
		return m, m.saveUser()
	}
	if m.form.State == huh.StateAborted {
		m.mode = modeList
		return m, nil
	}
	return m, cmd
}

func (m Model) updateConfirm(msg tea.Msg) (Model, tea.Cmd) {
	if m.confirmForm == nil {
		return m, nil
	}
	mdl, cmd := m.confirmForm.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.confirmForm = f
	}
	if m.confirmForm.State == huh.StateCompleted {
		if m.fb.confirm {
			list := m.registry.All()
			if m.selectedIdx < len(list) {
				return m, m.deleteUser(list[m.selectedIdx].ID)
			}
		}
		m.mode = modeList
		return m, nil
	}
	if m.confirmForm.State == huh.StateAborted {
		m.mode = modeList
		return m, nil
	}
	return m, cmd
}

func (m Model) updateActiveForm(msg tea.Msg) (Model, tea.Cmd) {
	switch m.mode {
	case modeForm:
		return m.updateForm(msg)
	case modeConfirmDelete:
		return m.updateConfirm(msg)
	}
	return m, nil
}

func (m Model) saveUser() tea.Cmd {
	r := m.registry
	name, email, avatar := m.fb.name, m.fb.email, m.fb.avatar
	return func() tea.Msg {
		_, err := r.Add(context.Background(), name, email, avatar)
		return userSavedMsg{err: err}
	}
}

func (m Model) deleteUser(id string) tea.Cmd {
	r := m.registry
	return func() tea.Msg {
		return userDeletedMsg{err: r.Remove(context.Background(), id)}
	}
}

func (m Model) switchUser(id string) tea.Cmd {
	r := m.registry
	return func() tea.Msg {
		if err := r.SetCurrent(context.Background(), id); err != nil {
			return userSavedMsg{err: err}
		}
		return UserSwitchedMsg{UserID: id}
	}
}

// View renders the user manager.
func (m Model) View() string {
	switch m.mode {
	case modeForm:
		return m.viewForm(m.form)
	case modeConfirmDelete:
		return m.viewForm(m.confirmForm)
	default:
		return m.viewList()
	}
}

func (m Model) viewList() string {
	var b strings.Builder
	styles := *m.styles

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(styles.Palette.Text).MarginBottom(1)
	b.WriteString(titleStyle.Render("Users"))
	b.WriteString("\n\n")

	list := m.registry.All()
	current := m.registry.Current()

	if len(list) == 0 {
		b.WriteString(styles.Help.Render("No users yet. Press 'n' to create one."))
	} else {
		for i, u := range list {
			marker := "  "
			if current != nil && u.ID == current.ID {
				marker = "* "
			}
			line := fmt.Sprintf("%s%s %s", marker, u.Avatar, u.Name)
			if u.Email != "" {
				line += styles.Help.Render("  <" + u.Email + ">")
			}
			if i == m.selectedIdx {
				line = styles.SelectedItem.Render(line)
			} else {
				line = styles.ListItem.Render(line)
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	if m.statusMsg != "" {
		b.WriteString("\n")
		b.WriteString(styles.Help.Render(m.statusMsg))
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func (m Model) viewForm(f *huh.Form) string {
	if f == nil {
		return ""
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(f.View())
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func (m Model) formHeight() int {
	h := m.height - 4
	if h < 10 {
		h = 10
	}
	return h
}
