package execsummary

import (
	"context"

	"github.com/go-go-golems/screenctl/pkg/action"
	"github.com/go-go-golems/screenctl/pkg/api"
	"github.com/go-go-golems/screenctl/pkg/events"
	"github.com/go-go-golems/screenctl/pkg/store"
	"github.com/rs/zerolog"
)

// Actions emit executive-summary events. Fetches run on the runner and report
// back as events.
type Actions struct {
	bus    *events.Bus
	apis   *api.Registry
	runner *action.Runner
	logger zerolog.Logger
}

func NewActions(b *events.Bus, apis *api.Registry, r *action.Runner, l zerolog.Logger) *Actions {
	return &Actions{bus: b, apis: apis, runner: r, logger: l}
}

func (a *Actions) service() (SummaryAPI, error) {
	return api.Service[SummaryAPI](a.apis, APIDomain)
}

func emit[P any](a *Actions, t events.Topic[P], p P) {
	if err := events.Emit(a.bus, t, p); err != nil {
		a.logger.Error().Err(err).Str("event", t.Name()).Msg("event handler failed")
	}
}

func failed(err error) FetchFailed {
	return FetchFailed{Error: action.ErrorMessage(err)}
}

func (a *Actions) FetchSummary() action.Thunk {
	return func(store.Dispatcher) {
		emit(a, DashboardEvents.FetchStarted, events.Empty{})

		svc, err := a.service()
		if err != nil {
			emit(a, DashboardEvents.FetchFailed, failed(err))
			return
		}
		a.runner.Go("executive-summary", func(ctx context.Context) {
			s, err := svc.GetSummary(ctx)
			if err != nil {
				emit(a, DashboardEvents.FetchFailed, failed(err))
				return
			}
			emit(a, DashboardEvents.Fetched, SummaryFetched{Summary: *s})
		}, func(err error) {
			emit(a, DashboardEvents.FetchFailed, failed(err))
		})
	}
}

func (a *Actions) FetchAlerts() action.Thunk {
	return func(store.Dispatcher) {
		emit(a, AlertsEvents.FetchStarted, events.Empty{})

		svc, err := a.service()
		if err != nil {
			emit(a, AlertsEvents.FetchFailed, failed(err))
			return
		}
		a.runner.Go("alerts", func(ctx context.Context) {
			alerts, err := svc.GetAlerts(ctx)
			if err != nil {
				emit(a, AlertsEvents.FetchFailed, failed(err))
				return
			}
			emit(a, AlertsEvents.Fetched, AlertsFetched{Alerts: alerts})
		}, func(err error) {
			emit(a, AlertsEvents.FetchFailed, failed(err))
		})
	}
}

// MoveWidget drops widgetID onto overID's slot.
func (a *Actions) MoveWidget(widgetID, overID string) error {
	return events.Emit(a.bus, DashboardEvents.WidgetMoved, WidgetMoved{WidgetID: widgetID, OverID: overID})
}

func (a *Actions) RemoveWidget(widgetID string) error {
	return events.Emit(a.bus, DashboardEvents.WidgetRemoved, WidgetChanged{WidgetID: widgetID})
}

func (a *Actions) AddWidget(widgetID string) error {
	return events.Emit(a.bus, DashboardEvents.WidgetAdded, WidgetChanged{WidgetID: widgetID})
}

func (a *Actions) FilterAlerts(sev AlertSeverity) error {
	return events.Emit(a.bus, AlertsEvents.SeverityFilterChanged, SeverityFilterChanged{Severity: sev})
}
