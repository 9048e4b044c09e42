package state

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
)

const StateFilename = "state.json"

// Session is what the shell restores on the next start.
type Session struct {
	Screenset         string    `json:"screenset,omitempty"`
	Screen            string    `json:"screen,omitempty"`
	SelectedMachineID string    `json:"selected_machine_id,omitempty"`
	TimeRange         string    `json:"time_range,omitempty"`
	SavedAt           time.Time `json:"saved_at"`
}

func (s Session) IsZero() bool {
	return s.Screenset == "" && s.Screen == "" && s.SelectedMachineID == "" && s.TimeRange == ""
}

func StatePath(stateDir string) string {
	return filepath.Join(stateDir, StateFilename)
}

// Load reads the session under stateDir. A missing file is an empty session.
func Load(stateDir string) (Session, error) {
	b, err := os.ReadFile(StatePath(stateDir))
	if err != nil {
		if os.IsNotExist(err) {
			return Session{}, nil
		}
		return Session{}, errors.Wrap(err, "read state")
	}
	var s Session
	if err := json.Unmarshal(b, &s); err != nil {
		return Session{}, errors.Wrap(err, "parse state json")
	}
	return s, nil
}

// Save writes the session through a temp file so a crash never leaves a
// truncated state.json behind.
func Save(stateDir string, s Session) error {
	if stateDir == "" {
		return errors.New("empty state dir")
	}
	if err := os.MkdirAll(stateDir, 0o755); err != nil {
		return errors.Wrap(err, "mkdir state dir")
	}
	if s.SavedAt.IsZero() {
		s.SavedAt = time.Now().UTC()
	}
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshal state")
	}

	tmp, err := os.CreateTemp(stateDir, StateFilename+".*")
	if err != nil {
		return errors.Wrap(err, "create temp state")
	}
	defer func() { _ = os.Remove(tmp.Name()) }()
	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		return errors.Wrap(err, "write state")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "close temp state")
	}
	if err := os.Rename(tmp.Name(), StatePath(stateDir)); err != nil {
		return errors.Wrap(err, "rename state")
	}
	return nil
}

func Remove(stateDir string) error {
	if err := os.Remove(StatePath(stateDir)); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrap(err, "remove state")
	}
	return nil
}
