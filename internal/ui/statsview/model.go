// Package statsview renders the statistics panel.
package statsview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tbui/taskbox/internal/stats"
	"github.com/tbui/taskbox/internal/theme"
)

// Model renders a stats.Summary as a bordered panel with a completion bar.
type Model struct {
	styles  *theme.Styles
	summary stats.Summary
	width   int
	height  int
}

// New creates a stats view model.
func New(styles *theme.Styles, width, height int) Model {
	return Model{styles: styles, width: width, height: height}
}

// SetSize updates the panel dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetSummary replaces the displayed summary.
func (m *Model) SetSummary(s stats.Summary) {
	m.summary = s
}

// View renders the statistics panel.
func (m Model) View() string {
	return m.styles.Panel.Render(m.Render())
}

// Render returns the panel body without the border, suitable for
// writing to a snapshot file.
func (m Model) Render() string {
	s := m.summary
	styles := *m.styles

	labelStyle := lipgloss.NewStyle().Foreground(styles.Palette.Muted).Width(14)
	valueStyle := lipgloss.NewStyle().Bold(true).Foreground(styles.Palette.Text)

	rows := []string{
		lipgloss.NewStyle().Bold(true).Foreground(styles.Palette.Accent).Render("Statistics"),
		"",
		labelStyle.Render("Total") + valueStyle.Render(fmt.Sprintf("%d", s.Total)),
		labelStyle.Render("Completed") + lipgloss.NewStyle().Foreground(styles.Palette.Success).Render(fmt.Sprintf("%d", s.Completed)),
		labelStyle.Render("Pending") + lipgloss.NewStyle().Foreground(styles.Palette.Warning).Render(fmt.Sprintf("%d", s.Pending)),
		labelStyle.Render("High priority") + styles.PriorityStyle("high").Render(fmt.Sprintf("%d", s.HighPriority)),
		labelStyle.Render("Overdue") + lipgloss.NewStyle().Foreground(styles.Palette.Danger).Render(fmt.Sprintf("%d", s.Overdue)),
		"",
		labelStyle.Render("Progress") + valueStyle.Render(fmt.Sprintf("%d%%", s.ProgressPercentage)),
		m.progressBar(),
	}

	return strings.Join(rows, "\n")
}

// progressBar draws a fixed-width completion bar.
func (m Model) progressBar() string {
	const barWidth = 30
	filled := barWidth * m.summary.ProgressPercentage / 100
	if filled > barWidth {
		filled = barWidth
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
	return lipgloss.NewStyle().Foreground(m.styles.Palette.Success).Render(bar)
}
