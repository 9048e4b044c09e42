package models

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-go-golems/screenctl/pkg/tui"
	"github.com/go-go-golems/screenctl/pkg/tui/styles"
)

// EventLogModel shows the mirrored bus events, newest at the bottom.
type EventLogModel struct {
	max     int
	entries []tui.EventLogEntry
	theme   styles.Theme

	width  int
	height int

	searching  bool
	search     textinput.Model
	filter     string
	errorsOnly bool

	vp viewport.Model
}

func NewEventLogModel(max int) EventLogModel {
	search := textinput.New()
	search.Placeholder = "filter…"
	search.Prompt = "/ "
	search.CharLimit = 200

	if max <= 0 {
		max = 200
	}
	m := EventLogModel{max: max, search: search, theme: styles.DefaultTheme()}
	m.vp = viewport.New(0, 0)
	return m
}

func (m EventLogModel) WithSize(width, height int) EventLogModel {
	m.width, m.height = width, height
	return m.resizeViewport()
}

func (m EventLogModel) Searching() bool {
	return m.searching
}

func (m EventLogModel) Entries() []tui.EventLogEntry {
	return append([]tui.EventLogEntry{}, m.entries...)
}

func (m EventLogModel) Update(msg tea.Msg) (EventLogModel, tea.Cmd) {
	switch v := msg.(type) {
	case tui.EventLogAppendMsg:
		return m.Append(v.Entry), nil
	case tea.KeyMsg:
		if m.searching {
			switch v.String() {
			case "esc":
				m.searching = false
				m.search.Blur()
				return m, nil
			case "enter":
				m.filter = strings.TrimSpace(m.search.Value())
				m.searching = false
				m.search.Blur()
				return m.refreshViewportContent(true), nil
			}

			var cmd tea.Cmd
			m.search, cmd = m.search.Update(v)
			return m, cmd
		}

		switch v.String() {
		case "/":
			m.searching = true
			m.search.SetValue(m.filter)
			m.search.CursorEnd()
			m.search.Focus()
			return m, nil
		case "ctrl+l":
			m.filter = ""
			m.search.SetValue("")
			return m.refreshViewportContent(true), nil
		case "e":
			m.errorsOnly = !m.errorsOnly
			return m.refreshViewportContent(true), nil
		case "c":
			m.entries = nil
			return m.refreshViewportContent(true), nil
		}

		var cmd tea.Cmd
		m.vp, cmd = m.vp.Update(v)
		return m, cmd
	}
	return m, nil
}

func (m EventLogModel) Append(e tui.EventLogEntry) EventLogModel {
	m.entries = append(m.entries, e)
	if len(m.entries) > m.max {
		m.entries = append([]tui.EventLogEntry{}, m.entries[len(m.entries)-m.max:]...)
	}
	return m.refreshViewportContent(true)
}

func (m EventLogModel) View() string {
	var b strings.Builder
	title := fmt.Sprintf("Events (%d)", len(m.entries))
	if m.filter != "" {
		title += fmt.Sprintf(" filter=%q", m.filter)
	}
	if m.errorsOnly {
		title += " errors"
	}
	b.WriteString(m.theme.Title.Render(title))
	b.WriteString("\n")

	if m.searching {
		b.WriteString(m.search.View())
		b.WriteString("\n")
	}

	if len(m.entries) == 0 {
		b.WriteString(m.theme.TitleMuted.Render("(no events yet)"))
		b.WriteString("\n")
		return b.String()
	}
	b.WriteString(m.vp.View())
	return b.String()
}

func (m EventLogModel) resizeViewport() EventLogModel {
	m.vp.Width = maxInt(0, m.width)
	m.vp.Height = maxInt(1, m.height-2)
	return m.refreshViewportContent(false)
}

func (m EventLogModel) matches(e tui.EventLogEntry) bool {
	if m.errorsOnly && e.Level != tui.LevelError {
		return false
	}
	if m.filter == "" {
		return true
	}
	return strings.Contains(strings.ToLower(e.Text), strings.ToLower(m.filter))
}

func (m EventLogModel) refreshViewportContent(gotoBottom bool) EventLogModel {
	lines := make([]string, 0, len(m.entries))
	for _, e := range m.entries {
		if !m.matches(e) {
			continue
		}
		line := fmt.Sprintf("%s %s %s", e.At.Format("15:04:05"), styles.LogLevelIcon(e.Level), e.Text)
		switch e.Level {
		case tui.LevelError:
			line = m.theme.StatusDead.Render(line)
		case tui.LevelWarn:
			line = m.theme.StatusWarning.Render(line)
		}
		lines = append(lines, line)
	}
	m.vp.SetContent(strings.Join(lines, "\n"))
	if gotoBottom {
		m.vp.GotoBottom()
	}
	return m
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
