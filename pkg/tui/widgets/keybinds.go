package widgets

import (
	"strings"

	"github.com/go-go-golems/screenctl/pkg/tui/styles"
)

type Keybind struct {
	Key  string
	Help string
}

// RenderKeybinds renders "[key] help" pairs on one line.
func RenderKeybinds(binds []Keybind, theme styles.Theme) string {
	parts := make([]string, 0, len(binds))
	for _, b := range binds {
		parts = append(parts, theme.KeybindKey.Render("["+b.Key+"]")+" "+theme.KeybindHelp.Render(b.Help))
	}
	return strings.Join(parts, "  ")
}
