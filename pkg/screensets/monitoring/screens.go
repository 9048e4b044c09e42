package monitoring

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-go-golems/screenctl/pkg/action"
	"github.com/go-go-golems/screenctl/pkg/screenset"
	"github.com/go-go-golems/screenctl/pkg/store"
)

var namespace = screenset.Descriptor{ID: ScreensetID}.Namespace()

// runThunk runs th off the update loop. Its results arrive later as
// StateChangedMsg.
func runThunk(th action.Thunk, d store.Dispatcher) tea.Cmd {
	return func() tea.Msg {
		th(d)
		return nil
	}
}

func selectMachineCmd(acts *Actions, machineID string, tr TimeRange) tea.Cmd {
	return func() tea.Msg {
		if err := acts.SelectMachine(machineID, tr); err != nil {
			acts.logger.Error().Err(err).Str("machine", machineID).Msg("select machine")
		}
		return nil
	}
}

func navigate(screenID string) tea.Cmd {
	return func() tea.Msg {
		return screenset.NavigateMsg{Screenset: ScreensetID, Screen: screenID}
	}
}
