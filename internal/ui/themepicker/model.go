// Package themepicker implements the theme selection view.
package themepicker

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tbui/taskbox/internal/keys"
	"github.com/tbui/taskbox/internal/theme"
)

// CloseMsg signals the parent to close the theme view.
type CloseMsg struct{}

// ThemeChosenMsg signals that a theme was selected.
type ThemeChosenMsg struct {
	Name string
}

// Model is the Bubble Tea model for theme selection.
type Model struct {
	keys        *keys.KeyMap
	styles      *theme.Styles
	names       []string
	selectedIdx int
	width       int
	height      int
}

// New creates a theme picker, with the cursor on the active theme.
func New(k *keys.KeyMap, styles *theme.Styles, active string, width, height int) Model {
	names := theme.Names()
	idx := 0
	for i, n := range names {
		if n == active {
			idx = i
			break
		}
	}
	return Model{
		keys:        k,
		styles:      styles,
		names:       names,
		selectedIdx: idx,
		width:       width,
		height:      height,
	}
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Back):
		return m, func() tea.Msg { return CloseMsg{} }

	case key.Matches(keyMsg, m.keys.Down):
		m.selectedIdx = (m.selectedIdx + 1) % len(m.names)
		return m, nil

	case key.Matches(keyMsg, m.keys.Up):
		m.selectedIdx--
		if m.selectedIdx < 0 {
			m.selectedIdx = len(m.names) - 1
		}
		return m, nil

	case keyMsg.String() == "enter":
		name := m.names[m.selectedIdx]
		return m, func() tea.Msg { return ThemeChosenMsg{Name: name} }
	}
	return m, nil
}

// View renders the theme list with a live swatch per entry.
func (m Model) View() string {
	var b strings.Builder
	styles := *m.styles

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(styles.Palette.Text).MarginBottom(1)
	b.WriteString(titleStyle.Render("Themes"))
	b.WriteString("\n\n")

	for i, name := range m.names {
		preview := theme.NewStyles(name)
		swatch := lipgloss.NewStyle().Foreground(preview.Palette.Accent).Render("██") +
			lipgloss.NewStyle().Foreground(preview.Palette.Success).Render("██") +
			lipgloss.NewStyle().Foreground(preview.Palette.Danger).Render("██")

		line := swatch + " " + name
		if i == m.selectedIdx {
			line = styles.SelectedItem.Render(line)
		} else {
			line = styles.ListItem.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}
