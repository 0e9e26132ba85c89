package tui

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Theme holds the semantic color palette.
type Theme struct {
	Primary lipgloss.Color
	Accent  lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Info    lipgloss.Color
}

// Default is a palette that reads on dark and light terminals.
var Default = Theme{
	Primary: lipgloss.Color("#6B50FF"),
	Accent:  lipgloss.Color("#00CED1"),
	Text:    lipgloss.Color("#DFDBDD"),
	Muted:   lipgloss.Color("#858392"),
	Success: lipgloss.Color("#00C48C"),
	Warning: lipgloss.Color("#FFB000"),
	Error:   lipgloss.Color("#E94090"),
	Info:    lipgloss.Color("#4F8DF7"),
}

// Styles are the theme bound to one output's color profile.
type Styles struct {
	Title    lipgloss.Style
	Cursor   lipgloss.Style
	Selected lipgloss.Style
	Muted    lipgloss.Style
	Bold     lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style
	Error    lipgloss.Style
	Info     lipgloss.Style
	Date     lipgloss.Style
	Amount   lipgloss.Style
}

// NewStyles builds styles for out. Writers that are not terminals get plain text.
func NewStyles(out io.Writer, t Theme) Styles {
	r := lipgloss.NewRenderer(out)
	return Styles{
		Title:    r.NewStyle().Foreground(t.Accent).Bold(true),
		Cursor:   r.NewStyle().Foreground(t.Primary).Bold(true),
		Selected: r.NewStyle().Foreground(t.Success),
		Muted:    r.NewStyle().Foreground(t.Muted),
		Bold:     r.NewStyle().Foreground(t.Text).Bold(true),
		Success:  r.NewStyle().Foreground(t.Success).Bold(true),
		Warning:  r.NewStyle().Foreground(t.Warning),
		Error:    r.NewStyle().Foreground(t.Error).Bold(true),
		Info:     r.NewStyle().Foreground(t.Info).Bold(true),
		Date:     r.NewStyle().Foreground(t.Accent),
		Amount:   r.NewStyle().Foreground(t.Success),
	}
}
