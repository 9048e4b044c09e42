package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-go-golems/screenctl/pkg/screenset"
	"github.com/go-go-golems/screenctl/pkg/store"
	"github.com/pkg/errors"
)

// StateWatcher forwards store snapshots to the program so screens re-render
// from selectors. Deliveries are serialized and each one carries the store's
// state at send time, so the last message delivered is always the latest
// state even when dispatches race.
type StateWatcher struct {
	Store *store.Store
	Send  func(tea.Msg)

	mu     sync.Mutex
	sendMu sync.Mutex
	off    func()
}

func (w *StateWatcher) Start() error {
	if w.Store == nil {
		return errors.New("missing Store")
	}
	if w.Send == nil {
		return errors.New("missing Send")
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.off != nil {
		return errors.New("state watcher already started")
	}
	w.off = w.Store.Subscribe(func(store.RootState) {
		w.deliver()
	})
	return nil
}

func (w *StateWatcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.off != nil {
		w.off()
		w.off = nil
	}
}

func (w *StateWatcher) deliver() {
	w.sendMu.Lock()
	defer w.sendMu.Unlock()
	w.Send(screenset.StateChangedMsg{State: w.Store.GetState()})
}
