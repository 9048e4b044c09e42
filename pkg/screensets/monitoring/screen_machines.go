package monitoring

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-go-golems/screenctl/pkg/screenset"
	"github.com/go-go-golems/screenctl/pkg/store"
	"github.com/go-go-golems/screenctl/pkg/tui/styles"
	"github.com/go-go-golems/screenctl/pkg/tui/widgets"
)

var statusCycle = []MachineStatus{"", StatusOnline, StatusOffline, StatusMaintenance}

// machinesListScreen shows the fleet with its statistics.
type machinesListScreen struct {
	ctx   screenset.Context
	acts  *Actions
	tk    func(string) string
	theme styles.Theme

	width  int
	height int

	fleet     FleetState
	timeRange TimeRange

	status    MachineStatus
	searching bool
	search    textinput.Model
	filter    string

	visible []MachineFleetInfo
	table   table.Model
}

func newMachinesListScreen(ctx screenset.Context, acts *Actions) screenset.Screen {
	search := textinput.New()
	search.Placeholder = "filter…"
	search.Prompt = "/ "
	search.CharLimit = 100

	s := machinesListScreen{
		ctx:    ctx,
		acts:   acts,
		tk:     ctx.T.Scoped(namespace, "screens."+MachinesListScreenID),
		theme:  styles.DefaultTheme(),
		search: search,
		width:  80,
		height: 24,
	}
	s.table = table.New(table.WithFocused(true))
	s = s.withState(ctx.Store.GetState())
	return s
}

func (s machinesListScreen) Init() tea.Cmd {
	return runThunk(s.acts.FetchFleetData(), s.ctx.Store)
}

func (s machinesListScreen) WithSize(width, height int) screenset.Screen {
	s.width, s.height = width, height
	return s.layout()
}

func (s machinesListScreen) Update(msg tea.Msg) (screenset.Screen, tea.Cmd) {
	switch v := msg.(type) {
	case screenset.StateChangedMsg:
		return s.withState(v.State), nil
	case tea.WindowSizeMsg:
		return s.WithSize(v.Width, v.Height), nil
	case tea.KeyMsg:
		if s.searching {
			switch v.String() {
			case "esc":
				s.searching = false
				s.search.Blur()
				return s, nil
			case "enter":
				s.filter = strings.TrimSpace(s.search.Value())
				s.searching = false
				s.search.Blur()
				return s.refreshRows(), nil
			}
			var cmd tea.Cmd
			s.search, cmd = s.search.Update(v)
			return s, cmd
		}

		switch v.String() {
		case "/":
			s.searching = true
			s.search.SetValue(s.filter)
			s.search.CursorEnd()
			s.search.Focus()
			return s, nil
		case "ctrl+l":
			s.filter = ""
			s.search.SetValue("")
			return s.refreshRows(), nil
		case "s":
			s.status = nextStatus(s.status)
			return s.refreshRows(), nil
		case "r":
			return s, runThunk(s.acts.FetchFleetData(), s.ctx.Store)
		case "enter":
			m, ok := s.selected()
			if !ok {
				return s, nil
			}
			return s, tea.Sequence(
				selectMachineCmd(s.acts, m.ID, s.timeRange),
				navigate(DashboardScreenID),
			)
		}

		var cmd tea.Cmd
		s.table, cmd = s.table.Update(v)
		return s, cmd
	}
	return s, nil
}

func (s machinesListScreen) View() string {
	t := s.theme
	var sections []string

	sections = append(sections, t.Title.Render(s.tk("title")))

	if st := s.fleet.Statistics; st != nil {
		stats := lipgloss.JoinHorizontal(lipgloss.Top,
			s.stat(s.tk("stats.total"), st.TotalMachines, t.Title),
			s.stat(s.tk("stats.online"), st.OnlineMachines, t.StatusRunning),
			s.stat(s.tk("stats.offline"), st.OfflineMachines, t.StatusDead),
			s.stat(s.tk("stats.maintenance"), st.MaintenanceMachines, t.StatusWarning),
			s.stat(s.tk("stats.issues"), st.TotalIssues, t.StatusWarning),
			s.stat(s.tk("stats.critical"), st.CriticalIssues, t.StatusDead),
		)
		sections = append(sections, stats)
	}

	statusLabel := s.tk("filter.all")
	if s.status != "" {
		statusLabel = s.tk("status." + string(s.status))
	}
	filterLine := t.TitleMuted.Render(fmt.Sprintf("%s: %s", s.tk("filter.status"), statusLabel))
	if s.filter != "" {
		filterLine += t.TitleMuted.Render(fmt.Sprintf("  %s: %q", s.tk("filter.search"), s.filter))
	}
	sections = append(sections, filterLine)

	if s.searching {
		sections = append(sections, s.search.View())
	}

	switch {
	case s.fleet.Loading && len(s.fleet.Machines) == 0:
		sections = append(sections, t.TitleMuted.Render(s.tk("loading")))
	case len(s.visible) == 0:
		sections = append(sections, t.TitleMuted.Render(s.tk("empty")))
	default:
		sections = append(sections, s.table.View())
	}

	sections = append(sections, widgets.RenderKeybinds([]widgets.Keybind{
		{Key: "enter", Help: s.tk("keys.open")},
		{Key: "/", Help: s.tk("keys.search")},
		{Key: "s", Help: s.tk("keys.status")},
		{Key: "r", Help: s.tk("keys.refresh")},
	}, t))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (s machinesListScreen) stat(label string, n int, style lipgloss.Style) string {
	return lipgloss.NewStyle().PaddingRight(3).Render(
		style.Render(fmt.Sprintf("%d", n)) + " " + s.theme.TitleMuted.Render(label),
	)
}

func (s machinesListScreen) withState(root store.RootState) machinesListScreen {
	s.fleet = SelectFleetState(root)
	s.timeRange = SelectMetricsState(root).TimeRange
	return s.refreshRows()
}

func (s machinesListScreen) selected() (MachineFleetInfo, bool) {
	i := s.table.Cursor()
	if i < 0 || i >= len(s.visible) {
		return MachineFleetInfo{}, false
	}
	return s.visible[i], true
}

func (s machinesListScreen) refreshRows() machinesListScreen {
	s.visible = FilterFleet(s.fleet.Machines, FleetFilters{Status: s.status, Search: s.filter})

	rows := make([]table.Row, 0, len(s.visible))
	for _, m := range s.visible {
		issues := "-"
		if n := len(m.Issues); n > 0 {
			issues = fmt.Sprintf("%s %d", styles.SeverityIcon(string(worstSeverity(m.Issues))), n)
		}
		rows = append(rows, table.Row{
			m.Name,
			styles.MachineStatusIcon(string(m.Status)) + " " + s.tk("status."+string(m.Status)),
			string(m.Type),
			m.Location,
			issues,
			m.LastSeen.Format(time.DateTime),
		})
	}
	s.table.SetRows(rows)
	if c := s.table.Cursor(); c >= len(rows) {
		s.table.SetCursor(maxInt(0, len(rows)-1))
	}
	return s.layout()
}

func (s machinesListScreen) layout() machinesListScreen {
	w := maxInt(60, s.width)
	name := maxInt(12, w/4)
	s.table.SetColumns([]table.Column{
		{Title: s.tk("columns.name"), Width: name},
		{Title: s.tk("columns.status"), Width: 14},
		{Title: s.tk("columns.type"), Width: 9},
		{Title: s.tk("columns.location"), Width: maxInt(10, w-name-14-9-8-19-14)},
		{Title: s.tk("columns.issues"), Width: 8},
		{Title: s.tk("columns.last_seen"), Width: 19},
	})
	s.table.SetWidth(w)
	s.table.SetHeight(maxInt(3, s.height-8))
	return s
}

func nextStatus(cur MachineStatus) MachineStatus {
	for i, st := range statusCycle {
		if st == cur {
			return statusCycle[(i+1)%len(statusCycle)]
		}
	}
	return ""
}

func worstSeverity(issues []Issue) IssueSeverity {
	worst := SeverityInfo
	for _, is := range issues {
		switch is.Severity {
		case SeverityCritical:
			return SeverityCritical
		case SeverityWarning:
			worst = SeverityWarning
		}
	}
	return worst
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
