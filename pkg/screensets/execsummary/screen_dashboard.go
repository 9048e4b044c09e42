package execsummary

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-go-golems/screenctl/pkg/screenset"
	"github.com/go-go-golems/screenctl/pkg/tui/styles"
	"github.com/go-go-golems/screenctl/pkg/tui/widgets"
)

// dashboardScreen renders the shown widgets in slice order. The focused
// widget can be moved, removed, or opened; hidden widgets can be added back.
type dashboardScreen struct {
	ctx   screenset.Context
	acts  *Actions
	tk    func(string) string
	theme styles.Theme

	width  int
	height int

	state DashboardState
	focus int

	adding    bool
	addCursor int
}

func newDashboardScreen(ctx screenset.Context, acts *Actions) screenset.Screen {
	return dashboardScreen{
		ctx:    ctx,
		acts:   acts,
		tk:     ctx.T.Scoped(namespace, "screens."+DashboardScreenID),
		theme:  styles.DefaultTheme(),
		width:  80,
		height: 24,
		state:  SelectDashboardState(ctx.Store.GetState()),
	}
}

func (s dashboardScreen) Init() tea.Cmd {
	return runThunk(s.acts.FetchSummary(), s.ctx.Store)
}

func (s dashboardScreen) WithSize(width, height int) screenset.Screen {
	s.width, s.height = width, height
	return s
}

func (s dashboardScreen) focused() (string, bool) {
	if s.focus < 0 || s.focus >= len(s.state.Widgets) {
		return "", false
	}
	return s.state.Widgets[s.focus], true
}

func (s dashboardScreen) Update(msg tea.Msg) (screenset.Screen, tea.Cmd) {
	switch v := msg.(type) {
	case screenset.StateChangedMsg:
		id, had := s.focused()
		s.state = SelectDashboardState(v.State)
		// keep focus on the same widget after a reorder
		if had {
			if i := indexOf(s.state.Widgets, id); i >= 0 {
				s.focus = i
			}
		}
		if s.focus >= len(s.state.Widgets) {
			s.focus = maxInt(0, len(s.state.Widgets)-1)
		}
		return s, nil
	case tea.WindowSizeMsg:
		return s.WithSize(v.Width, v.Height), nil
	case tea.KeyMsg:
		if s.adding {
			return s.updateAddMenu(v)
		}
		return s.updateGrid(v)
	}
	return s, nil
}

func (s dashboardScreen) updateGrid(k tea.KeyMsg) (screenset.Screen, tea.Cmd) {
	n := len(s.state.Widgets)
	switch k.String() {
	case "up", "k":
		if s.focus > 0 {
			s.focus--
		}
	case "down", "j":
		if s.focus < n-1 {
			s.focus++
		}
	case "K", "shift+up":
		return s.move(-1)
	case "J", "shift+down":
		return s.move(1)
	case "x", "delete":
		if id, ok := s.focused(); ok {
			return s, emitCmd(s.acts, "remove widget", func() error { return s.acts.RemoveWidget(id) })
		}
	case "a":
		if len(HiddenWidgets(s.state.Widgets)) > 0 {
			s.adding = true
			s.addCursor = 0
		}
	case "enter":
		if id, ok := s.focused(); ok && id == WidgetActiveAlerts {
			return s, navigate(AlertsScreenID)
		}
	case "r":
		return s, runThunk(s.acts.FetchSummary(), s.ctx.Store)
	}
	return s, nil
}

func (s dashboardScreen) move(step int) (screenset.Screen, tea.Cmd) {
	id, ok := s.focused()
	to := s.focus + step
	if !ok || to < 0 || to >= len(s.state.Widgets) {
		return s, nil
	}
	over := s.state.Widgets[to]
	return s, emitCmd(s.acts, "move widget", func() error { return s.acts.MoveWidget(id, over) })
}

func (s dashboardScreen) updateAddMenu(k tea.KeyMsg) (screenset.Screen, tea.Cmd) {
	hidden := HiddenWidgets(s.state.Widgets)
	switch k.String() {
	case "esc", "a":
		s.adding = false
	case "up", "k":
		if s.addCursor > 0 {
			s.addCursor--
		}
	case "down", "j":
		if s.addCursor < len(hidden)-1 {
			s.addCursor++
		}
	case "enter":
		s.adding = false
		if s.addCursor < len(hidden) {
			id := hidden[s.addCursor]
			return s, emitCmd(s.acts, "add widget", func() error { return s.acts.AddWidget(id) })
		}
	}
	return s, nil
}

func (s dashboardScreen) View() string {
	t := s.theme
	sections := []string{t.Title.Render(s.tk("title"))}

	data := s.state.Data
	switch {
	case data == nil && s.state.Error != "":
		sections = append(sections, t.StatusDead.Render(styles.IconError+" "+s.state.Error))
		return lipgloss.JoinVertical(lipgloss.Left, sections...)
	case data == nil:
		sections = append(sections, t.TitleMuted.Render(s.tk("loading")))
		return lipgloss.JoinVertical(lipgloss.Left, sections...)
	}

	sub := fmt.Sprintf("%s · %s – %s", data.CustomerName, data.DateRange.Start, data.DateRange.End)
	if s.state.Loading {
		sub += " " + styles.IconRunning
	}
	sections = append(sections, t.TitleMuted.Render(sub))

	if s.adding {
		sections = append(sections, s.renderAddMenu())
	}

	if len(s.state.Widgets) == 0 {
		sections = append(sections, t.TitleMuted.Render(s.tk("no_widgets")))
	}
	sections = append(sections, s.visibleWidgets(*data)...)

	sections = append(sections, widgets.RenderKeybinds([]widgets.Keybind{
		{Key: "↑/↓", Help: s.tk("keys.focus")},
		{Key: "K/J", Help: s.tk("keys.move")},
		{Key: "x", Help: s.tk("keys.remove")},
		{Key: "a", Help: s.tk("keys.add")},
		{Key: "r", Help: s.tk("keys.refresh")},
	}, t))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// visibleWidgets renders widgets from the focused one onward until the
// screen height is used up. The focused widget is always included.
func (s dashboardScreen) visibleWidgets(data Summary) []string {
	budget := maxInt(8, s.height-6)
	var out []string
	used := 0
	for i := s.focus; i < len(s.state.Widgets); i++ {
		box := s.renderWidget(s.state.Widgets[i], data, i == s.focus)
		h := lipgloss.Height(box)
		if len(out) > 0 && used+h > budget {
			break
		}
		out = append(out, box)
		used += h
	}
	return out
}

func (s dashboardScreen) renderAddMenu() string {
	t := s.theme
	var lines []string
	for i, id := range HiddenWidgets(s.state.Widgets) {
		label := s.tk("widgets." + id)
		if i == s.addCursor {
			lines = append(lines, t.Selected.Render("▶ "+label))
		} else {
			lines = append(lines, "  "+label)
		}
	}
	return widgets.NewBox(s.tk("add_widget")).
		WithContent(lipgloss.JoinVertical(lipgloss.Left, lines...)).
		WithSize(s.width, len(lines)+3).
		Render()
}

func (s dashboardScreen) renderWidget(id string, data Summary, focused bool) string {
	lines := s.widgetLines(id, data)
	title := s.tk("widgets." + id)
	if focused {
		title = "▶ " + title
	}
	box := widgets.NewBox(title).
		WithContent(lipgloss.JoinVertical(lipgloss.Left, lines...)).
		WithSize(s.width, len(lines)+3)
	if focused {
		box = box.WithTitleRight(styles.IconSystem)
	}
	return box.Render()
}

func (s dashboardScreen) widgetLines(id string, data Summary) []string {
	t := s.theme
	inner := maxInt(20, s.width-4)
	switch id {
	case WidgetCyberProtection:
		c := data.CyberProtectionSummary
		pairs := []struct {
			key string
			val any
		}{
			{"data_backed_up", c.DataBackedUp},
			{"mitigated_threats", c.MitigatedThreats},
			{"malicious_urls_blocked", c.MaliciousURLsBlocked},
			{"patched_vulnerabilities", c.PatchedVulnerabilities},
			{"installed_patches", c.InstalledPatches},
			{"servers_protected_dr", c.ServersProtectedWithDR},
			{"file_sync_share_users", c.FileSyncShareUsers},
			{"notarized_files", c.NotarizedFiles},
			{"esigned_documents", c.ESignedDocuments},
			{"blocked_peripheral_devices", c.BlockedPeripheralDevices},
		}
		lines := make([]string, 0, len(pairs))
		for _, p := range pairs {
			lines = append(lines, fmt.Sprintf("%-30s %v", s.tk("stats."+p.key), p.val))
		}
		return lines
	case WidgetWorkloadsBackedUp:
		return s.breakdown(data.WorkloadsBackedUp.Total, s.tk("units.workloads"), data.WorkloadsBackedUp.Items, inner)
	case WidgetMissingUpdates:
		return s.breakdown(data.MissingUpdates.Total, s.tk("units.updates"), data.MissingUpdates.Items, inner)
	case WidgetAntimalwareScan:
		a := data.AntimalwareScanOfFiles
		lines := s.breakdown(a.TotalFiles, s.tk("units.files"), a.Items, inner)
		return append(lines, s.progress(s.tk("devices_protected"), a.DevicesProtected, inner))
	case WidgetPatchedVulnerabilities:
		p := data.PatchedVulnerabilities
		lines := s.breakdown(p.Total, s.tk("units.vulnerabilities"), p.Items, inner)
		return append(lines, s.progress(s.tk("workloads_scanned"), p.WorkloadsScanned, inner))
	case WidgetPatchesInstalled:
		p := data.PatchesInstalled
		lines := s.breakdown(p.Total, s.tk("units.patches"), p.Items, inner)
		return append(lines, s.progress(s.tk("workloads_patched"), p.WorkloadsPatched, inner))
	case WidgetStorageUsage:
		u := data.FileSyncShareStorageUsage
		return s.breakdown(u.TotalEndUsers, s.tk("units.users"), u.Items, inner)
	case WidgetWorkloadsProtection:
		return s.protection(data.WorkloadsProtectionStatus, inner)
	case WidgetActiveAlerts:
		return s.alerts(data.ActiveAlerts)
	case WidgetSoftwareInventory:
		return s.inventory(data.SoftwareInventory)
	}
	return []string{t.TitleMuted.Render(s.tk("empty"))}
}

func (s dashboardScreen) breakdown(total int, unit string, items []ChartItem, width int) []string {
	t := s.theme
	lines := []string{t.Title.Render(fmt.Sprintf("%d %s", total, unit))}
	sum := 0
	for _, it := range items {
		sum += it.Value
	}
	barW := maxInt(4, width-40)
	for _, it := range items {
		pct := 0.0
		if sum > 0 {
			pct = float64(it.Value) * 100 / float64(sum)
		}
		bar := lipgloss.NewStyle().Foreground(lipgloss.Color(it.Color)).Render(widgets.Bar(pct, barW))
		lines = append(lines, fmt.Sprintf("%-28s %8d ", widgets.Truncate(it.Label, 28), it.Value)+bar)
	}
	return lines
}

func (s dashboardScreen) progress(label string, p Progress, width int) string {
	pct := 0.0
	if p.Total > 0 {
		pct = float64(p.Current) * 100 / float64(p.Total)
	}
	return fmt.Sprintf("%-28s %4d/%-3d ", widgets.Truncate(label, 28), p.Current, p.Total) +
		s.theme.StatusRunning.Render(widgets.Bar(pct, maxInt(4, width-40)))
}

func (s dashboardScreen) protection(w WorkloadsProtectionStatus, width int) []string {
	t := s.theme
	lines := []string{
		t.StatusRunning.Render(fmt.Sprintf("%d %s", w.TotalProtected, s.tk("protected"))) + "  " +
			t.StatusWarning.Render(fmt.Sprintf("%d %s", w.TotalUnprotected, s.tk("unprotected"))) + "  " +
			t.TitleMuted.Render(fmt.Sprintf("| %d %s", w.Total, s.tk("total"))),
	}
	for _, it := range w.Items {
		pct := 0.0
		if it.Total > 0 {
			pct = float64(it.Protected) * 100 / float64(it.Total)
		}
		lines = append(lines, fmt.Sprintf("%-22s %3d/%-3d ", widgets.Truncate(it.Label, 22), it.Protected, it.Total)+
			t.StatusRunning.Render(widgets.Bar(pct, maxInt(4, width-34))))
	}
	return lines
}

func (s dashboardScreen) alerts(all []ActiveAlert) []string {
	t := s.theme
	counts := CountBySeverity(all)
	var parts []string
	for i := len(Severities) - 1; i >= 0; i-- {
		sev := Severities[i]
		if n := counts[sev]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s %d %s", styles.SeverityIcon(string(sev)), n, s.tk("severity."+string(sev))))
		}
	}
	lines := []string{strings.Join(parts, "  ")}
	sorted := SortAlerts(all)
	if len(sorted) > 3 {
		sorted = sorted[:3]
	}
	for _, a := range sorted {
		lines = append(lines, fmt.Sprintf("%s %-16s %s", styles.SeverityIcon(string(a.Severity)), widgets.Truncate(a.DeviceName, 16), widgets.Truncate(a.Type, maxInt(10, s.width-26))))
	}
	if len(all) == 0 {
		lines = append(lines, t.TitleMuted.Render(s.tk("empty")))
	} else {
		lines = append(lines, t.TitleMuted.Render(s.tk("open_alerts")))
	}
	return lines
}

func (s dashboardScreen) inventory(devs []DeviceSoftwareInventory) []string {
	t := s.theme
	if len(devs) == 0 {
		return []string{t.TitleMuted.Render(s.tk("empty"))}
	}
	lines := make([]string, 0, len(devs))
	for _, d := range devs {
		changed := 0
		for _, it := range d.Items {
			if it.Status != SoftwareNoChange {
				changed++
			}
		}
		lines = append(lines, fmt.Sprintf("%-20s %3d %s, %d %s",
			widgets.Truncate(d.DeviceName, 20), len(d.Items), s.tk("units.applications"), changed, s.tk("changed")))
	}
	return lines
}
