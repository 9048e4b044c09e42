package state

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingIsEmpty(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "nowhere"))
	require.NoError(t, err)
	require.True(t, s.IsZero())
}

func TestSaveLoadRemove(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "state")
	want := Session{
		Screenset:         "machine-monitoring",
		Screen:            "dashboard",
		SelectedMachineID: "machine-3",
		TimeRange:         "6hours",
		SavedAt:           time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC),
	}
	require.NoError(t, Save(dir, want))

	got, err := Load(dir)
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected session (-want +got):\n%s", diff)
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files must not be left behind")

	require.NoError(t, Remove(dir))
	require.NoError(t, Remove(dir))
	got, err = Load(dir)
	require.NoError(t, err)
	require.True(t, got.IsZero())
}

func TestSave_StampsTime(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Save(dir, Session{Screenset: "executive-summary"}))
	got, err := Load(dir)
	require.NoError(t, err)
	require.False(t, got.SavedAt.IsZero())
	require.Error(t, Save("", Session{}))
}

func TestLoad_Corrupt(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(StatePath(dir), []byte("{"), 0o644))
	_, err := Load(dir)
	require.Error(t, err)
}
