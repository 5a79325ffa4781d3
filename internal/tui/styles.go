package tui

import (
	"github.com/charmbracelet/lipgloss"

	"gnotes/internal/config"
)

// palette is one color theme.
type palette struct {
	Primary   lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Error     lipgloss.Color
	Success   lipgloss.Color
	Selection lipgloss.Color
	Border    lipgloss.Color
}

var (
	lightPalette = palette{
		Primary:   lipgloss.Color("#6D28D9"),
		Text:      lipgloss.Color("#111827"),
		Muted:     lipgloss.Color("#6B7280"),
		Error:     lipgloss.Color("#B91C1C"),
		Success:   lipgloss.Color("#047857"),
		Selection: lipgloss.Color("#E5E7EB"),
		Border:    lipgloss.Color("#D1D5DB"),
	}
	darkPalette = palette{
		Primary:   lipgloss.Color("#7C3AED"),
		Text:      lipgloss.Color("#F9FAFB"),
		Muted:     lipgloss.Color("#9CA3AF"),
		Error:     lipgloss.Color("#EF4444"),
		Success:   lipgloss.Color("#10B981"),
		Selection: lipgloss.Color("#374151"),
		Border:    lipgloss.Color("#374151"),
	}
)

// styles are the rendered styles for a theme.
type styles struct {
	Header   lipgloss.Style
	Title    lipgloss.Style
	Selected lipgloss.Style
	Muted    lipgloss.Style
	Error    lipgloss.Style
	Toast    lipgloss.Style
	Label    lipgloss.Style
	Panel    lipgloss.Style
	Help     lipgloss.Style
}

func newStyles(theme string) styles {
	p := lightPalette
	if theme == config.ThemeDark {
		p = darkPalette
	}
	return styles{
		Header:   lipgloss.NewStyle().Bold(true).Foreground(p.Primary),
		Title:    lipgloss.NewStyle().Foreground(p.Text),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(p.Text).Background(p.Selection),
		Muted:    lipgloss.NewStyle().Foreground(p.Muted),
		Error:    lipgloss.NewStyle().Foreground(p.Error),
		Toast:    lipgloss.NewStyle().Foreground(p.Success),
		Label:    lipgloss.NewStyle().Bold(true).Foreground(p.Muted),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Border).
			Padding(0, 1),
		Help: lipgloss.NewStyle().Foreground(p.Muted),
	}
}
