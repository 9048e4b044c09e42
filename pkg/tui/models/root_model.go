package models

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-go-golems/screenctl/pkg/screenset"
	"github.com/go-go-golems/screenctl/pkg/tui"
	"github.com/go-go-golems/screenctl/pkg/tui/styles"
	"github.com/go-go-golems/screenctl/pkg/tui/widgets"
)

type focusArea int

const (
	focusMenu focusArea = iota
	focusScreen
	focusEvents
)

const (
	menuWidth    = 30
	historyLines = 8
)

// RootModel is the shell: menu on the left, the active screen on the right,
// an optional event log below, and a footer.
type RootModel struct {
	ctx   screenset.Context
	sets  *screenset.Registry
	theme styles.Theme

	menu   MenuModel
	events EventLogModel
	screen screenset.Screen

	activeSet    string
	activeScreen string
	start        screenset.NavigateMsg

	focus       focusArea
	showEvents  bool
	showHistory bool
	status      string

	width  int
	height int
}

// NewRootModel builds the shell over every registered screenset. start is
// the first screen to open; an empty start opens the first screenset's
// default screen.
func NewRootModel(ctx screenset.Context, sets *screenset.Registry, start screenset.NavigateMsg) RootModel {
	list := sets.List()
	if start.Screenset == "" && len(list) > 0 {
		start = screenset.NavigateMsg{Screenset: list[0].ID, Screen: list[0].DefaultScreen}
	}
	return RootModel{
		ctx:    ctx,
		sets:   sets,
		theme:  styles.DefaultTheme(),
		menu:   NewMenuModel(list, ctx.T, ctx.Icons),
		events: NewEventLogModel(500),
		start:  start,
		focus:  focusScreen,
		width:  120,
		height: 40,
	}
}

// Location is the screenset and screen currently shown.
func (m RootModel) Location() (string, string) {
	return m.activeSet, m.activeScreen
}

func (m RootModel) Init() tea.Cmd {
	start := m.start
	return func() tea.Msg { return start }
}

func (m RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch v := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = v.Width, v.Height
		return m.layout(), nil
	case screenset.NavigateMsg:
		return m.navigate(v)
	case tui.EventLogAppendMsg:
		m.events = m.events.Append(v.Entry)
		return m, nil
	case tui.ForwarderStoppedMsg:
		if v.Err != nil {
			m.status = "event log stopped: " + v.Err.Error()
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(v)
	}
	return m.forward(msg)
}

func (m RootModel) handleKey(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch k.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "tab":
		m.focus = m.nextFocus()
		return m, nil
	case "ctrl+e":
		m.showEvents = !m.showEvents
		if !m.showEvents && m.focus == focusEvents {
			m.focus = focusScreen
		}
		return m.layout(), nil
	case "ctrl+d":
		m.showHistory = !m.showHistory
		return m.layout(), nil
	}

	switch m.focus {
	case focusMenu:
		if k.String() == "q" {
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.menu, cmd = m.menu.Update(k)
		return m, cmd
	case focusEvents:
		var cmd tea.Cmd
		m.events, cmd = m.events.Update(k)
		return m, cmd
	}
	return m.forward(k)
}

func (m RootModel) nextFocus() focusArea {
	switch m.focus {
	case focusMenu:
		return focusScreen
	case focusScreen:
		if m.showEvents {
			return focusEvents
		}
		return focusMenu
	default:
		return focusMenu
	}
}

func (m RootModel) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.screen == nil {
		return m, nil
	}
	var cmd tea.Cmd
	m.screen, cmd = m.screen.Update(msg)
	return m, cmd
}

func (m RootModel) navigate(nav screenset.NavigateMsg) (tea.Model, tea.Cmd) {
	setID := nav.Screenset
	if setID == "" {
		setID = m.activeSet
	}
	d, ok := m.sets.Get(setID)
	if !ok {
		m.status = fmt.Sprintf("unknown screenset %q", setID)
		return m, nil
	}
	screenID := nav.Screen
	if screenID == "" {
		screenID = d.DefaultScreen
	}
	e, ok := d.Entry(screenID)
	if !ok {
		m.status = fmt.Sprintf("unknown screen %q in %s", screenID, setID)
		return m, nil
	}

	m.activeSet, m.activeScreen = setID, screenID
	m.status = ""
	m.menu = m.menu.SetActive(setID, screenID)
	m.focus = focusScreen
	m.screen = e.Screen(m.ctx)
	m = m.layout()
	return m, m.screen.Init()
}

func (m RootModel) eventsHeight() int {
	if !m.showEvents {
		return 0
	}
	return maxInt(6, m.height/4)
}

func (m RootModel) historyHeight() int {
	if !m.showHistory {
		return 0
	}
	return historyLines + 3
}

func (m RootModel) layout() RootModel {
	bodyH := maxInt(5, m.height-1-2-m.eventsHeight()-m.historyHeight())
	m.menu = m.menu.WithSize(menuWidth, bodyH)
	m.events = m.events.WithSize(m.width, m.eventsHeight())
	if m.screen != nil {
		m.screen = m.screen.WithSize(maxInt(20, m.width-menuWidth-1), bodyH)
	}
	return m
}

func (m RootModel) View() string {
	t := m.theme
	header := t.Title.Render("screenctl")
	if m.activeSet != "" {
		header += t.TitleMuted.Render("  " + m.activeSet + " › " + m.activeScreen)
	}

	menuStyle := lipgloss.NewStyle().Width(menuWidth).PaddingRight(1)
	if m.focus == focusMenu {
		menuStyle = menuStyle.BorderStyle(lipgloss.NormalBorder()).BorderRight(true).BorderForeground(t.Accent)
	} else {
		menuStyle = menuStyle.BorderStyle(lipgloss.NormalBorder()).BorderRight(true).BorderForeground(t.Border)
	}
	screen := ""
	if m.screen != nil {
		screen = m.screen.View()
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, menuStyle.Render(m.menu.View()), " ", screen)

	sections := []string{header, body}
	if m.showEvents {
		sections = append(sections, m.events.View())
	}
	if m.showHistory {
		sections = append(sections, m.historyView())
	}

	status := m.status
	if status == "" {
		status = map[focusArea]string{focusMenu: "menu", focusScreen: "screen", focusEvents: "events"}[m.focus]
	}
	footer := widgets.NewFooter([]widgets.Keybind{
		{Key: "tab", Help: "focus"},
		{Key: "ctrl+e", Help: "events"},
		{Key: "ctrl+d", Help: "actions"},
		{Key: "ctrl+c", Help: "quit"},
	}).WithWidth(m.width).WithStatus(status)
	sections = append(sections, footer.Render())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// historyView lists the most recently applied store actions, newest last.
func (m RootModel) historyView() string {
	var hist []string
	if m.ctx.Store != nil {
		hist = m.ctx.Store.History()
	}
	if len(hist) > historyLines {
		hist = hist[len(hist)-historyLines:]
	}
	content := m.theme.TitleMuted.Render("(no actions yet)")
	if len(hist) > 0 {
		content = strings.Join(hist, "\n")
	}
	return widgets.NewBox(fmt.Sprintf("Actions (%d)", len(hist))).
		WithContent(content).
		WithSize(m.width, historyLines+3).
		Render()
}
