package execsummary

import "github.com/go-go-golems/screenctl/pkg/store"

type DashboardState struct {
	Data    *Summary
	Loading bool
	Error   string
	Widgets []string
}

type AlertsState struct {
	Alerts []ActiveAlert
	// Severity filters the list; empty shows every alert.
	Severity AlertSeverity
	Loading  bool
	Error    string
}

var (
	DashboardSlice = store.NewSlice(ScreensetID+"/dashboard", DashboardState{
		Widgets: DefaultWidgets(),
	})

	SetDashboardLoading = store.Reduce(DashboardSlice, "setLoading", func(s DashboardState, v bool) DashboardState {
		s.Loading = v
		if v {
			s.Error = ""
		}
		return s
	})
	ReceiveSummary = store.Reduce(DashboardSlice, "receiveSummary", func(s DashboardState, p Summary) DashboardState {
		s.Data = &p
		s.Loading = false
		s.Error = ""
		return s
	})
	SetDashboardError = store.Reduce(DashboardSlice, "setError", func(s DashboardState, msg string) DashboardState {
		s.Error = msg
		s.Loading = false
		return s
	})
	MoveWidgetAction = store.Reduce(DashboardSlice, "moveWidget", func(s DashboardState, p WidgetMoved) DashboardState {
		s.Widgets = MoveWidget(s.Widgets, p.WidgetID, p.OverID)
		return s
	})
	RemoveWidgetAction = store.Reduce(DashboardSlice, "removeWidget", func(s DashboardState, id string) DashboardState {
		s.Widgets = RemoveWidget(s.Widgets, id)
		return s
	})
	AddWidgetAction = store.Reduce(DashboardSlice, "addWidget", func(s DashboardState, id string) DashboardState {
		s.Widgets = AddWidget(s.Widgets, id)
		return s
	})
)

var (
	AlertsSlice = store.NewSlice(ScreensetID+"/alerts", AlertsState{
		Alerts: []ActiveAlert{},
	})

	SetAlertsLoading = store.Reduce(AlertsSlice, "setLoading", func(s AlertsState, v bool) AlertsState {
		s.Loading = v
		if v {
			s.Error = ""
		}
		return s
	})
	ReceiveAlerts = store.Reduce(AlertsSlice, "receiveAlerts", func(s AlertsState, a []ActiveAlert) AlertsState {
		s.Alerts = a
		s.Loading = false
		s.Error = ""
		return s
	})
	SetAlertsError = store.Reduce(AlertsSlice, "setError", func(s AlertsState, msg string) AlertsState {
		s.Error = msg
		s.Loading = false
		return s
	})
	SetSeverityFilter = store.Reduce(AlertsSlice, "setSeverityFilter", func(s AlertsState, sev AlertSeverity) AlertsState {
		s.Severity = sev
		return s
	})
)

func SelectDashboardState(root store.RootState) DashboardState {
	return DashboardSlice.Select(root)
}

func SelectAlertsState(root store.RootState) AlertsState {
	return AlertsSlice.Select(root)
}

// Visible returns the filtered alerts, newest first.
func (s AlertsState) Visible() []ActiveAlert {
	return SortAlerts(FilterBySeverity(s.Alerts, s.Severity))
}
