package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/go-go-golems/screenctl/pkg/tui/styles"
)

// Footer renders a styled keybindings bar.
type Footer struct {
	Keybinds []Keybind
	Status   string
	Width    int
	theme    styles.Theme
}

// NewFooter creates a new footer.
func NewFooter(keybinds []Keybind) Footer {
	return Footer{
		Keybinds: keybinds,
		theme:    styles.DefaultTheme(),
	}
}

// WithWidth sets the footer width.
func (f Footer) WithWidth(w int) Footer {
	f.Width = w
	return f
}

// WithStatus sets a short text rendered right of the keybinds.
func (f Footer) WithStatus(s string) Footer {
	f.Status = s
	return f
}

// Render returns the styled footer as a string.
func (f Footer) Render() string {
	theme := f.theme

	width := f.Width
	if width <= 0 {
		width = 80
	}
	separator := lipgloss.NewStyle().
		Foreground(theme.Muted).
		Render(strings.Repeat("━", width))

	line := RenderKeybinds(f.Keybinds, theme)
	if f.Status != "" {
		line += "  " + theme.TitleMuted.Render(f.Status)
	}

	padding := (width - lipgloss.Width(line)) / 2
	if padding < 0 {
		padding = 0
	}
	padded := lipgloss.NewStyle().PaddingLeft(padding).Render(line)

	return lipgloss.JoinVertical(lipgloss.Left, separator, padded)
}
