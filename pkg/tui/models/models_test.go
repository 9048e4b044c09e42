package models

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-go-golems/screenctl/pkg/app"
	"github.com/go-go-golems/screenctl/pkg/screenset"
	"github.com/go-go-golems/screenctl/pkg/screensets/execsummary"
	"github.com/go-go-golems/screenctl/pkg/screensets/monitoring"
	"github.com/go-go-golems/screenctl/pkg/tui"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *app.App {
	t.Helper()
	cfg := app.DefaultConfig()
	cfg.StateDir = t.TempDir()
	cfg.API.UseMocks = true

	a, err := app.New(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, a.Install(monitoring.Module(), execsummary.Module()))
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMenuModel_EntriesAndNavigation(t *testing.T) {
	a := newTestApp(t)
	m := NewMenuModel(a.Screensets.List(), a.Translator(), a.Icons).WithSize(40, 20)

	var got []string
	for _, e := range m.Entries() {
		got = append(got, e.Screenset+"/"+e.Screen+"="+e.Label)
	}
	require.Equal(t, []string{
		"machine-monitoring/dashboard=Machine Dashboard",
		"machine-monitoring/machines-list=Machines",
		"executive-summary/dashboard=Executive Summary",
		"executive-summary/alerts=Active Alerts",
	}, got)

	view := m.View()
	require.Contains(t, view, "Machine Monitoring")
	require.Contains(t, view, "(mockups)")

	m, _ = m.Update(key("k"))
	cur, ok := m.Cursor()
	require.True(t, ok)
	require.Equal(t, "alerts", cur.Screen)

	m, _ = m.Update(key("g"))
	m, _ = m.Update(key("j"))
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	require.Equal(t, screenset.NavigateMsg{Screenset: monitoring.ScreensetID, Screen: monitoring.MachinesListScreenID}, cmd())

	m = m.SetActive(execsummary.ScreensetID, execsummary.DashboardScreenID)
	cur, _ = m.Cursor()
	require.Equal(t, execsummary.ScreensetID, cur.Screenset)
}

func entry(text, level string) tui.EventLogEntry {
	return tui.EventLogEntry{
		At:    time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC),
		Type:  text,
		Level: level,
		Text:  text,
	}
}

func TestEventLogModel_AppendCapsAndFilters(t *testing.T) {
	m := NewEventLogModel(3).WithSize(80, 10)
	require.Contains(t, m.View(), "(no events yet)")

	for _, e := range []tui.EventLogEntry{
		entry("machines/fetchStarted", tui.LevelInfo),
		entry("machines/fetched", tui.LevelInfo),
		entry("machines/fetchFailed", tui.LevelError),
		entry("dashboard/widgetRemoved", tui.LevelWarn),
	} {
		m, _ = m.Update(tui.EventLogAppendMsg{Entry: e})
	}
	require.Len(t, m.Entries(), 3)
	require.Equal(t, "machines/fetched", m.Entries()[0].Text)
	require.Contains(t, m.View(), "Events (3)")
	require.Contains(t, m.View(), "09:26:53")

	m, _ = m.Update(key("e"))
	view := m.View()
	require.Contains(t, view, "fetchFailed")
	require.NotContains(t, view, "widgetRemoved")
	m, _ = m.Update(key("e"))

	m, _ = m.Update(key("/"))
	require.True(t, m.Searching())
	for _, r := range "WIDGET" {
		m, _ = m.Update(key(string(r)))
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.False(t, m.Searching())
	view = m.View()
	require.Contains(t, view, `filter="WIDGET"`)
	require.Contains(t, view, "widgetRemoved")
	require.NotContains(t, view, "machines/fetched")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	require.Contains(t, m.View(), "machines/fetched")

	m, _ = m.Update(key("c"))
	require.Empty(t, m.Entries())
}

func quits(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestRootModel_NavigatesToStart(t *testing.T) {
	a := newTestApp(t)
	m := NewRootModel(a.ScreenContext(), a.Screensets, screenset.NavigateMsg{})

	start := m.Init()()
	require.Equal(t, screenset.NavigateMsg{Screenset: monitoring.ScreensetID, Screen: monitoring.DashboardScreenID}, start)

	next, _ := m.Update(screenset.NavigateMsg{Screenset: execsummary.ScreensetID})
	m = next.(RootModel)
	set, screen := m.Location()
	require.Equal(t, execsummary.ScreensetID, set)
	require.Equal(t, execsummary.DashboardScreenID, screen)

	next, _ = m.Update(screenset.NavigateMsg{Screen: execsummary.AlertsScreenID})
	m = next.(RootModel)
	_, screen = m.Location()
	require.Equal(t, execsummary.AlertsScreenID, screen)

	next, _ = m.Update(screenset.NavigateMsg{Screenset: "nope"})
	m = next.(RootModel)
	set, _ = m.Location()
	require.Equal(t, execsummary.ScreensetID, set)
	require.Contains(t, m.View(), `unknown screenset "nope"`)
}

func TestRootModel_FocusAndQuit(t *testing.T) {
	a := newTestApp(t)
	m := NewRootModel(a.ScreenContext(), a.Screensets, screenset.NavigateMsg{
		Screenset: execsummary.ScreensetID,
		Screen:    execsummary.AlertsScreenID,
	})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 140, Height: 40})
	m = next.(RootModel)
	next, _ = m.Update(m.Init()())
	m = next.(RootModel)

	// q belongs to the screen while it has focus
	_, cmd := m.Update(key("q"))
	require.False(t, quits(cmd))

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(RootModel)
	require.True(t, strings.Contains(m.View(), "menu"))
	_, cmd = m.Update(key("q"))
	require.True(t, quits(cmd))

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.True(t, quits(cmd))
}

func TestRootModel_EventsPane(t *testing.T) {
	a := newTestApp(t)
	m := NewRootModel(a.ScreenContext(), a.Screensets, screenset.NavigateMsg{})
	next, _ := m.Update(m.Init()())
	m = next.(RootModel)

	next, _ = m.Update(tui.EventLogAppendMsg{Entry: entry("machines/fetched", tui.LevelInfo)})
	m = next.(RootModel)
	require.NotContains(t, m.View(), "Events (1)")

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlE})
	m = next.(RootModel)
	require.Contains(t, m.View(), "Events (1)")

	// tab cycles screen -> events -> menu
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(RootModel)
	require.Contains(t, m.View(), "events")
	next, _ = m.Update(key("c"))
	m = next.(RootModel)
	require.Contains(t, m.View(), "Events (0)")

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlE})
	m = next.(RootModel)
	require.NotContains(t, m.View(), "Events (")
}

func TestRootModel_HistoryPane(t *testing.T) {
	a := newTestApp(t)
	m := NewRootModel(a.ScreenContext(), a.Screensets, screenset.NavigateMsg{})
	require.NotContains(t, m.View(), "Actions (")

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	m = next.(RootModel)
	require.Contains(t, m.View(), "(no actions yet)")

	require.NoError(t, a.Store.Dispatch(monitoring.SetTimeRange.With(monitoring.Range1Day)))
	view := m.View()
	require.Contains(t, view, "Actions (1)")
	require.Contains(t, view, "machine-monitoring/metrics/setTimeRange")
}
