package styles

import "github.com/charmbracelet/lipgloss"

// Theme holds the colors and styles shared by the shell and every screen.
type Theme struct {
	Primary lipgloss.Color
	Accent  lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Muted   lipgloss.Color
	Border  lipgloss.Color

	Title         lipgloss.Style
	TitleMuted    lipgloss.Style
	Selected      lipgloss.Style
	StatusRunning lipgloss.Style
	StatusDead    lipgloss.Style
	StatusWarning lipgloss.Style
	KeybindKey    lipgloss.Style
	KeybindHelp   lipgloss.Style
	BoxBorder     lipgloss.Style
}

func DefaultTheme() Theme {
	t := Theme{
		Primary: lipgloss.Color("39"),
		Accent:  lipgloss.Color("170"),
		Success: lipgloss.Color("42"),
		Warning: lipgloss.Color("214"),
		Error:   lipgloss.Color("196"),
		Muted:   lipgloss.Color("245"),
		Border:  lipgloss.Color("238"),
	}
	t.Title = lipgloss.NewStyle().Bold(true).Foreground(t.Primary)
	t.TitleMuted = lipgloss.NewStyle().Foreground(t.Muted)
	t.Selected = lipgloss.NewStyle().Bold(true).Foreground(t.Accent)
	t.StatusRunning = lipgloss.NewStyle().Foreground(t.Success)
	t.StatusDead = lipgloss.NewStyle().Foreground(t.Error)
	t.StatusWarning = lipgloss.NewStyle().Foreground(t.Warning)
	t.KeybindKey = lipgloss.NewStyle().Bold(true).Foreground(t.Accent)
	t.KeybindHelp = lipgloss.NewStyle().Foreground(t.Muted)
	t.BoxBorder = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(t.Border)
	return t
}

// Percent picks a style for a utilisation value: green below warn, yellow
// below crit, red above.
func (t Theme) Percent(v, warn, crit float64) lipgloss.Style {
	switch {
	case v >= crit:
		return t.StatusDead
	case v >= warn:
		return t.StatusWarning
	default:
		return t.StatusRunning
	}
}
