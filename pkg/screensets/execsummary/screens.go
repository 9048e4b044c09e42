package execsummary

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-go-golems/screenctl/pkg/action"
	"github.com/go-go-golems/screenctl/pkg/screenset"
	"github.com/go-go-golems/screenctl/pkg/store"
)

var namespace = screenset.Descriptor{ID: ScreensetID}.Namespace()

func runThunk(th action.Thunk, d store.Dispatcher) tea.Cmd {
	return func() tea.Msg {
		th(d)
		return nil
	}
}

// emitCmd runs a synchronous action off the update loop and logs its error.
func emitCmd(acts *Actions, name string, fn func() error) tea.Cmd {
	return func() tea.Msg {
		if err := fn(); err != nil {
			acts.logger.Error().Err(err).Str("action", name).Msg("dashboard action failed")
		}
		return nil
	}
}

func navigate(screenID string) tea.Cmd {
	return func() tea.Msg {
		return screenset.NavigateMsg{Screenset: ScreensetID, Screen: screenID}
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
