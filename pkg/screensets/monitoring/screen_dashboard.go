package monitoring

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-go-golems/screenctl/pkg/screenset"
	"github.com/go-go-golems/screenctl/pkg/store"
	"github.com/go-go-golems/screenctl/pkg/tui/styles"
	"github.com/go-go-golems/screenctl/pkg/tui/widgets"
)

// dashboardScreen shows one machine: info, metric cards with history, and
// its processes.
type dashboardScreen struct {
	ctx   screenset.Context
	acts  *Actions
	tk    func(string) string
	theme styles.Theme

	width  int
	height int

	machines  MachinesState
	metrics   MetricsState
	processes ProcessesState

	sortBy ProcessSort
	// requested is the machine whose data was last asked for, so a changed
	// selection triggers exactly one fetch.
	requested string
}

func newDashboardScreen(ctx screenset.Context, acts *Actions) screenset.Screen {
	s := dashboardScreen{
		ctx:    ctx,
		acts:   acts,
		tk:     ctx.T.Scoped(namespace, "screens."+DashboardScreenID),
		theme:  styles.DefaultTheme(),
		width:  80,
		height: 24,
		sortBy: SortByCPU,
	}
	s.sync(ctx.Store.GetState())
	s.requested = s.machines.SelectedMachineID
	return s
}

func (s dashboardScreen) Init() tea.Cmd {
	cmds := []tea.Cmd{runThunk(s.acts.FetchMachines(), s.ctx.Store)}
	if id := s.machines.SelectedMachineID; id != "" {
		cmds = append(cmds, selectMachineCmd(s.acts, id, s.metrics.TimeRange))
	}
	return tea.Batch(cmds...)
}

func (s dashboardScreen) WithSize(width, height int) screenset.Screen {
	s.width, s.height = width, height
	return s
}

func (s *dashboardScreen) sync(root store.RootState) {
	s.machines = SelectMachinesState(root)
	s.metrics = SelectMetricsState(root)
	s.processes = SelectProcessesState(root)
}

func (s dashboardScreen) Update(msg tea.Msg) (screenset.Screen, tea.Cmd) {
	switch v := msg.(type) {
	case screenset.StateChangedMsg:
		s.sync(v.State)
		if id := s.machines.SelectedMachineID; id != "" && id != s.requested {
			s.requested = id
			return s, selectMachineCmd(s.acts, id, s.metrics.TimeRange)
		}
		return s, nil
	case tea.WindowSizeMsg:
		return s.WithSize(v.Width, v.Height), nil
	case tea.KeyMsg:
		switch k := v.String(); k {
		case "1", "2", "3", "4", "5":
			tr := TimeRanges[int(k[0]-'1')]
			id := s.machines.SelectedMachineID
			if id == "" || tr == s.metrics.TimeRange {
				return s, nil
			}
			return s, runThunk(s.acts.ChangeTimeRange(tr, id), s.ctx.Store)
		case "c":
			s.sortBy = SortByCPU
		case "m":
			s.sortBy = SortByMemory
		case "n":
			s.sortBy = SortByName
		case "right", "]":
			return s.cycle(1)
		case "left", "[":
			return s.cycle(-1)
		case "r":
			if id := s.machines.SelectedMachineID; id != "" {
				s.requested = id
				return s, selectMachineCmd(s.acts, id, s.metrics.TimeRange)
			}
		case "esc":
			return s, navigate(MachinesListScreenID)
		}
	}
	return s, nil
}

func (s dashboardScreen) cycle(step int) (screenset.Screen, tea.Cmd) {
	ms := s.machines.Machines
	if len(ms) == 0 {
		return s, nil
	}
	cur := 0
	for i, m := range ms {
		if m.ID == s.machines.SelectedMachineID {
			cur = i
			break
		}
	}
	next := ms[(cur+step+len(ms))%len(ms)].ID
	s.requested = next
	return s, selectMachineCmd(s.acts, next, s.metrics.TimeRange)
}

func (s dashboardScreen) View() string {
	t := s.theme
	if (s.machines.Loading || s.metrics.Loading) && len(s.machines.Machines) == 0 {
		return t.TitleMuted.Render(s.tk("loading"))
	}

	sections := []string{
		t.Title.Render(s.tk("title")),
		t.TitleMuted.Render(s.tk("subtitle")),
		s.renderSelectors(),
	}

	m, ok := s.machines.SelectedMachine()
	if !ok || s.metrics.CurrentMetrics == nil {
		sections = append(sections, t.TitleMuted.Render(s.tk("machine_selector.placeholder")))
		return lipgloss.JoinVertical(lipgloss.Left, sections...)
	}

	sections = append(sections,
		s.renderCards(*s.metrics.CurrentMetrics),
		s.renderInfo(m),
		s.renderProcesses(),
		widgets.RenderKeybinds([]widgets.Keybind{
			{Key: "←/→", Help: s.tk("keys.machine")},
			{Key: "1-5", Help: s.tk("keys.range")},
			{Key: "c/m/n", Help: s.tk("keys.sort")},
			{Key: "r", Help: s.tk("keys.refresh")},
			{Key: "esc", Help: s.tk("keys.back")},
		}, t),
	)
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (s dashboardScreen) renderSelectors() string {
	t := s.theme
	name := s.tk("machine_selector.placeholder")
	if m, ok := s.machines.SelectedMachine(); ok {
		name = m.Name
	}
	machine := t.TitleMuted.Render(s.tk("machine_selector.label")+": ") + t.Selected.Render("◀ "+name+" ▶")

	ranges := make([]string, 0, len(TimeRanges))
	for i, tr := range TimeRanges {
		label := fmt.Sprintf("%d:%s", i+1, s.tk("time_range."+string(tr)))
		if tr == s.metrics.TimeRange {
			ranges = append(ranges, t.KeybindKey.Render("["+label+"]"))
		} else {
			ranges = append(ranges, t.TitleMuted.Render(label))
		}
	}
	rangeLine := t.TitleMuted.Render(s.tk("time_range.label")+": ") + strings.Join(ranges, " ")
	if s.metrics.Loading {
		rangeLine += "  " + t.StatusWarning.Render(styles.IconRunning)
	}
	return lipgloss.JoinVertical(lipgloss.Left, machine, rangeLine)
}

type metricCard struct {
	title   string
	value   float64
	unit    string
	percent bool
	history []float64
}

func (s dashboardScreen) renderCards(cur MetricsSnapshot) string {
	hist := func(f func(MetricsSnapshot) float64) []float64 {
		out := make([]float64, len(s.metrics.RangeMetrics))
		for i, m := range s.metrics.RangeMetrics {
			out[i] = f(m)
		}
		return out
	}
	cards := []metricCard{
		{s.tk("metrics.cpu"), cur.CPU, "%", true, hist(func(m MetricsSnapshot) float64 { return m.CPU })},
		{s.tk("metrics.ram"), cur.Memory, "%", true, hist(func(m MetricsSnapshot) float64 { return m.Memory })},
		{s.tk("metrics.disk"), cur.Disk, "%", true, hist(func(m MetricsSnapshot) float64 { return m.Disk })},
		{s.tk("metrics.network") + " " + s.tk("metrics.in"), cur.NetworkInKBps, "KB/s", false, hist(func(m MetricsSnapshot) float64 { return m.NetworkInKBps })},
		{s.tk("metrics.network") + " " + s.tk("metrics.out"), cur.NetworkOutKBps, "KB/s", false, hist(func(m MetricsSnapshot) float64 { return m.NetworkOutKBps })},
		{s.tk("metrics.load"), cur.LoadAverage, "", false, hist(func(m MetricsSnapshot) float64 { return m.LoadAverage })},
	}

	perRow := 3
	cardW := maxInt(24, s.width/perRow)
	var rows []string
	for i := 0; i < len(cards); i += perRow {
		var row []string
		for _, c := range cards[i:minInt(i+perRow, len(cards))] {
			row = append(row, s.renderCard(c, cardW))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (s dashboardScreen) renderCard(c metricCard, width int) string {
	t := s.theme
	inner := width - 4
	value := fmt.Sprintf("%.1f%s", c.value, c.unit)

	var lines []string
	if c.percent {
		style := t.Percent(c.value, 70, 90)
		lines = append(lines, style.Render(value)+" "+style.Render(widgets.Bar(c.value, maxInt(4, inner-lipgloss.Width(value)-1))))
		lines = append(lines, t.TitleMuted.Render(widgets.Sparkline(c.history, inner, 0, 100)))
	} else {
		lo, hi := bounds(c.history)
		lines = append(lines, t.Title.Render(value))
		lines = append(lines, t.TitleMuted.Render(widgets.Sparkline(c.history, inner, lo, hi)))
	}
	return widgets.NewBox(c.title).
		WithContent(lipgloss.JoinVertical(lipgloss.Left, lines...)).
		WithSize(width, len(lines)+3).
		Render()
}

func (s dashboardScreen) renderInfo(m MachineInfo) string {
	t := s.theme
	row := func(key, val string) string {
		return t.TitleMuted.Render(fmt.Sprintf("%-12s", s.tk("info."+key))) + " " + val
	}
	uptime := (time.Duration(m.UptimeSeconds) * time.Second).Round(time.Minute).String()
	lines := []string{
		row("hostname", m.Hostname),
		row("os", m.OS),
		row("ip", m.IPAddress),
		row("cpu", fmt.Sprintf("%s (%d)", m.CPUModel, m.CPUCores)),
		row("memory", fmt.Sprintf("%d GB", m.MemoryGB)),
		row("disk", fmt.Sprintf("%d GB", m.DiskGB)),
		row("location", m.Location),
		row("uptime", uptime),
	}
	status := styles.MachineStatusIcon(string(m.Status)) + " " + s.tk("status."+string(m.Status))
	return widgets.NewBox(m.Name).
		WithTitleRight(status).
		WithContent(lipgloss.JoinVertical(lipgloss.Left, lines...)).
		WithSize(s.width, len(lines)+3).
		Render()
}

func (s dashboardScreen) renderProcesses() string {
	t := s.theme
	procs := SortProcesses(s.processes.Processes, s.sortBy)
	limit := maxInt(3, s.height-30)
	if len(procs) > limit {
		procs = procs[:limit]
	}

	header := fmt.Sprintf("%-7s %-16s %-10s %7s %7s %-9s",
		s.tk("processes.pid"), s.tk("processes.name"), s.tk("processes.user"),
		s.tk("processes.cpu"), s.tk("processes.memory"), s.tk("processes.status"))
	lines := []string{t.TitleMuted.Render(header)}
	for _, p := range procs {
		lines = append(lines, fmt.Sprintf("%-7d %-16s %-10s %6.1f%% %6.1f%% %-9s",
			p.PID, widgets.Truncate(p.Name, 16), widgets.Truncate(p.User, 10), p.CPU, p.Memory, p.Status))
	}
	if len(s.processes.Processes) == 0 {
		lines = append(lines, t.TitleMuted.Render(s.tk("processes.empty")))
	}

	title := s.tk("processes.title")
	if s.processes.Loading {
		title += " " + styles.IconRunning
	}
	return widgets.NewBox(title).
		WithTitleRight(s.tk("processes.sort")+": "+s.tk("processes."+string(s.sortBy))).
		WithContent(lipgloss.JoinVertical(lipgloss.Left, lines...)).
		WithSize(s.width, len(lines)+3).
		Render()
}

func bounds(v []float64) (float64, float64) {
	if len(v) == 0 {
		return 0, 1
	}
	lo, hi := v[0], v[0]
	for _, x := range v[1:] {
		if x < lo {
			lo = x
		}
		if x > hi {
			hi = x
		}
	}
	return lo, hi
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
