// Package theme defines the selectable color themes and the lipgloss
// styles derived from them.
package theme

import "github.com/charmbracelet/lipgloss"

// DefaultName is used when no theme has been persisted yet.
const DefaultName = "default"

// Palette is the color set a theme is built from. Colors are adaptive
// pairs (dark terminal value, light terminal value).
type Palette struct {
	Accent  lipgloss.AdaptiveColor
	Success lipgloss.AdaptiveColor
	Warning lipgloss.AdaptiveColor
	Danger  lipgloss.AdaptiveColor
	Muted   lipgloss.AdaptiveColor
	Text    lipgloss.AdaptiveColor
	Subtle  lipgloss.AdaptiveColor
	Border  lipgloss.AdaptiveColor
}

var palettes = map[string]Palette{
	"default": {
		Accent:  lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"},
		Success: lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"},
		Warning: lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"},
		Danger:  lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"},
		Muted:   lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"},
		Text:    lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"},
		Subtle:  lipgloss.AdaptiveColor{Dark: "#495057", Light: "#CBD5E0"},
		Border:  lipgloss.AdaptiveColor{Dark: "#495057", Light: "#E2E8F0"},
	},
	"dark": {
		Accent:  lipgloss.AdaptiveColor{Dark: "#7C7CFF", Light: "#4C51BF"},
		Success: lipgloss.AdaptiveColor{Dark: "#50FA7B", Light: "#276749"},
		Warning: lipgloss.AdaptiveColor{Dark: "#F1FA8C", Light: "#975A16"},
		Danger:  lipgloss.AdaptiveColor{Dark: "#FF5555", Light: "#9B2C2C"},
		Muted:   lipgloss.AdaptiveColor{Dark: "#6272A4", Light: "#4A5568"},
		Text:    lipgloss.AdaptiveColor{Dark: "#F8F8F2", Light: "#171923"},
		Subtle:  lipgloss.AdaptiveColor{Dark: "#44475A", Light: "#A0AEC0"},
		Border:  lipgloss.AdaptiveColor{Dark: "#44475A", Light: "#CBD5E0"},
	},
	"ocean": {
		Accent:  lipgloss.AdaptiveColor{Dark: "#4FC3F7", Light: "#0277BD"},
		Success: lipgloss.AdaptiveColor{Dark: "#4DB6AC", Light: "#00695C"},
		Warning: lipgloss.AdaptiveColor{Dark: "#FFE082", Light: "#B7791F"},
		Danger:  lipgloss.AdaptiveColor{Dark: "#EF9A9A", Light: "#C62828"},
		Muted:   lipgloss.AdaptiveColor{Dark: "#78909C", Light: "#546E7A"},
		Text:    lipgloss.AdaptiveColor{Dark: "#ECEFF1", Light: "#102A43"},
		Subtle:  lipgloss.AdaptiveColor{Dark: "#37474F", Light: "#B0BEC5"},
		Border:  lipgloss.AdaptiveColor{Dark: "#37474F", Light: "#CFD8DC"},
	},
	"forest": {
		Accent:  lipgloss.AdaptiveColor{Dark: "#81C784", Light: "#2E7D32"},
		Success: lipgloss.AdaptiveColor{Dark: "#AED581", Light: "#558B2F"},
		Warning: lipgloss.AdaptiveColor{Dark: "#FFF176", Light: "#9E9D24"},
		Danger:  lipgloss.AdaptiveColor{Dark: "#E57373", Light: "#C62828"},
		Muted:   lipgloss.AdaptiveColor{Dark: "#8D9E78", Light: "#689F38"},
		Text:    lipgloss.AdaptiveColor{Dark: "#F1F8E9", Light: "#1B2B1B"},
		Subtle:  lipgloss.AdaptiveColor{Dark: "#33691E", Light: "#C5E1A5"},
		Border:  lipgloss.AdaptiveColor{Dark: "#33691E", Light: "#DCEDC8"},
	},
	"sunset": {
		Accent:  lipgloss.AdaptiveColor{Dark: "#FFB74D", Light: "#E65100"},
		Success: lipgloss.AdaptiveColor{Dark: "#A5D6A7", Light: "#2E7D32"},
		Warning: lipgloss.AdaptiveColor{Dark: "#FFCC80", Light: "#B7791F"},
		Danger:  lipgloss.AdaptiveColor{Dark: "#FF8A65", Light: "#BF360C"},
		Muted:   lipgloss.AdaptiveColor{Dark: "#A1887F", Light: "#6D4C41"},
		Text:    lipgloss.AdaptiveColor{Dark: "#FFF3E0", Light: "#3E2723"},
		Subtle:  lipgloss.AdaptiveColor{Dark: "#5D4037", Light: "#D7CCC8"},
		Border:  lipgloss.AdaptiveColor{Dark: "#5D4037", Light: "#FFE0B2"},
	},
}

// Names returns the theme names in UI cycling order.
func Names() []string {
	return []string{"default", "dark", "ocean", "forest", "sunset"}
}

// Valid reports whether name is a known theme.
func Valid(name string) bool {
	_, ok := palettes[name]
	return ok
}

// Styles holds the rendered lipgloss styles for one theme.
type Styles struct {
	Palette Palette

	Header       lipgloss.Style
	StatusBar    lipgloss.Style
	Panel        lipgloss.Style
	ListItem     lipgloss.Style
	SelectedItem lipgloss.Style
	Help         lipgloss.Style
}

// NewStyles builds the style set for the named theme, falling back to
// the default palette for unknown names.
func NewStyles(name string) Styles {
	p, ok := palettes[name]
	if !ok {
		p = palettes[DefaultName]
	}

	return Styles{
		Palette: p,

		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Text).
			Background(p.Accent).
			Padding(0, 1),

		StatusBar: lipgloss.NewStyle().
			Foreground(p.Text).
			Background(p.Subtle).
			Padding(0, 1),

		Panel: lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Border),

		ListItem: lipgloss.NewStyle().
			PaddingLeft(2),

		SelectedItem: lipgloss.NewStyle().
			PaddingLeft(1).
			Bold(true).
			Foreground(p.Accent).
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(p.Accent),

		Help: lipgloss.NewStyle().
			Foreground(p.Muted).
			Italic(true),
	}
}

// PriorityStyle returns a color-coded style for the given priority.
func (s Styles) PriorityStyle(priority string) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)

	switch priority {
	case "high":
		return base.Foreground(s.Palette.Danger)
	case "medium":
		return base.Foreground(s.Palette.Warning)
	case "low":
		return base.Foreground(s.Palette.Accent)
	default:
		return base.Foreground(s.Palette.Muted)
	}
}

// CompletionStyle returns the style for a completion state.
func (s Styles) CompletionStyle(completed bool) lipgloss.Style {
	if completed {
		return lipgloss.NewStyle().Foreground(s.Palette.Success)
	}
	return lipgloss.NewStyle().Foreground(s.Palette.Text)
}

// CategoryStyle returns a color-coded style for a task category.
func (s Styles) CategoryStyle(category string) lipgloss.Style {
	base := lipgloss.NewStyle().Padding(0, 1)

	switch category {
	case "Work":
		return base.Foreground(s.Palette.Accent)
	case "Health":
		return base.Foreground(s.Palette.Success)
	case "Finance":
		return base.Foreground(s.Palette.Warning)
	case "Travel":
		return base.Foreground(s.Palette.Danger)
	default:
		return base.Foreground(s.Palette.Muted)
	}
}
