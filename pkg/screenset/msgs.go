package screenset

import "github.com/go-go-golems/screenctl/pkg/store"

// NavigateMsg asks the shell to show a screen. An empty Screenset means the
// active one.
type NavigateMsg struct {
	Screenset string
	Screen    string
}

// StateChangedMsg carries the store snapshot after a dispatch. Screens render
// from selectors over it.
type StateChangedMsg struct {
	State store.RootState
}
