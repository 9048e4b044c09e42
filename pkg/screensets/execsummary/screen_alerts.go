package execsummary

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-go-golems/screenctl/pkg/screenset"
	"github.com/go-go-golems/screenctl/pkg/store"
	"github.com/go-go-golems/screenctl/pkg/tui/styles"
	"github.com/go-go-golems/screenctl/pkg/tui/widgets"
)

// alertsScreen lists active alerts newest first with a severity filter and a
// detail pane for the row under the cursor.
type alertsScreen struct {
	ctx   screenset.Context
	acts  *Actions
	tk    func(string) string
	theme styles.Theme

	width  int
	height int

	state   AlertsState
	visible []ActiveAlert
	table   table.Model
}

func newAlertsScreen(ctx screenset.Context, acts *Actions) screenset.Screen {
	s := alertsScreen{
		ctx:    ctx,
		acts:   acts,
		tk:     ctx.T.Scoped(namespace, "screens."+AlertsScreenID),
		theme:  styles.DefaultTheme(),
		width:  80,
		height: 24,
		table:  table.New(table.WithFocused(true)),
	}
	return s.withState(ctx.Store.GetState())
}

func (s alertsScreen) Init() tea.Cmd {
	return runThunk(s.acts.FetchAlerts(), s.ctx.Store)
}

func (s alertsScreen) WithSize(width, height int) screenset.Screen {
	s.width, s.height = width, height
	return s.layout()
}

func (s alertsScreen) Update(msg tea.Msg) (screenset.Screen, tea.Cmd) {
	switch v := msg.(type) {
	case screenset.StateChangedMsg:
		return s.withState(v.State), nil
	case tea.WindowSizeMsg:
		return s.WithSize(v.Width, v.Height), nil
	case tea.KeyMsg:
		switch v.String() {
		case "f":
			next := NextSeverityFilter(s.state.Severity)
			return s, emitCmd(s.acts, "filter alerts", func() error { return s.acts.FilterAlerts(next) })
		case "r":
			return s, runThunk(s.acts.FetchAlerts(), s.ctx.Store)
		case "esc":
			return s, navigate(DashboardScreenID)
		}
		var cmd tea.Cmd
		s.table, cmd = s.table.Update(v)
		return s, cmd
	}
	return s, nil
}

func (s alertsScreen) View() string {
	t := s.theme
	sections := []string{
		t.Title.Render(s.tk("title")),
		t.TitleMuted.Render(s.tk("subtitle")),
	}

	filter := s.tk("filter.all")
	if s.state.Severity != "" {
		filter = s.tk("severity." + string(s.state.Severity))
	}
	sections = append(sections, t.TitleMuted.Render(fmt.Sprintf("%s: %s  (%d/%d)",
		s.tk("filter.severity"), filter, len(s.visible), len(s.state.Alerts))))

	switch {
	case s.state.Error != "":
		sections = append(sections, t.StatusDead.Render(styles.IconError+" "+s.state.Error))
	case s.state.Loading && len(s.state.Alerts) == 0:
		sections = append(sections, t.TitleMuted.Render(s.tk("loading")))
	case len(s.visible) == 0:
		sections = append(sections, t.TitleMuted.Render(s.tk("empty")))
	default:
		sections = append(sections, s.table.View())
		if a, ok := s.selected(); ok {
			sections = append(sections, s.renderDetail(a))
		}
	}

	sections = append(sections, widgets.RenderKeybinds([]widgets.Keybind{
		{Key: "↑/↓", Help: s.tk("keys.select")},
		{Key: "f", Help: s.tk("keys.filter")},
		{Key: "r", Help: s.tk("keys.refresh")},
		{Key: "esc", Help: s.tk("keys.back")},
	}, t))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (s alertsScreen) renderDetail(a ActiveAlert) string {
	t := s.theme
	plan := a.PlanName
	if plan == "" {
		plan = "-"
	}
	lines := []string{
		t.TitleMuted.Render(fmt.Sprintf("%-8s", s.tk("columns.device"))) + " " + a.DeviceName,
		t.TitleMuted.Render(fmt.Sprintf("%-8s", s.tk("columns.plan"))) + " " + plan,
		lipgloss.NewStyle().Width(maxInt(20, s.width-4)).Render(a.Message),
	}
	return widgets.NewBox(a.Type).
		WithTitleRight(styles.SeverityIcon(string(a.Severity))+" "+s.tk("severity."+string(a.Severity))).
		WithContent(lipgloss.JoinVertical(lipgloss.Left, lines...)).
		WithSize(s.width, 0).
		Render()
}

func (s alertsScreen) withState(root store.RootState) alertsScreen {
	s.state = SelectAlertsState(root)
	s.visible = s.state.Visible()

	rows := make([]table.Row, 0, len(s.visible))
	for _, a := range s.visible {
		when := a.Time
		if ts, ok := ParseAlertTime(a.Time); ok {
			when = ts.Format("2006-01-02 15:04")
		}
		rows = append(rows, table.Row{
			when,
			styles.SeverityIcon(string(a.Severity)) + " " + s.tk("severity."+string(a.Severity)),
			a.Type,
			a.DeviceName,
		})
	}
	s.table.SetRows(rows)
	if c := s.table.Cursor(); c >= len(rows) {
		s.table.SetCursor(maxInt(0, len(rows)-1))
	}
	return s.layout()
}

func (s alertsScreen) selected() (ActiveAlert, bool) {
	i := s.table.Cursor()
	if i < 0 || i >= len(s.visible) {
		return ActiveAlert{}, false
	}
	return s.visible[i], true
}

func (s alertsScreen) layout() alertsScreen {
	w := maxInt(60, s.width)
	s.table.SetColumns([]table.Column{
		{Title: s.tk("columns.time"), Width: 16},
		{Title: s.tk("columns.severity"), Width: 14},
		{Title: s.tk("columns.type"), Width: maxInt(16, w-16-14-20-8)},
		{Title: s.tk("columns.device"), Width: 20},
	})
	s.table.SetWidth(w)
	s.table.SetHeight(maxInt(3, s.height-14))
	return s
}
