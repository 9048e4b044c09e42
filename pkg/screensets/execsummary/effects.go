package execsummary

import (
	"github.com/go-go-golems/screenctl/pkg/events"
	"github.com/go-go-golems/screenctl/pkg/store"
	"github.com/rs/zerolog"
)

func InitDashboardEffects(b *events.Bus, d store.Dispatcher, l zerolog.Logger) error {
	if _, err := events.On(b, DashboardEvents.FetchStarted, func(events.Empty) error {
		return d.Dispatch(SetDashboardLoading.With(true))
	}); err != nil {
		return err
	}
	if _, err := events.On(b, DashboardEvents.Fetched, func(p SummaryFetched) error {
		return d.Dispatch(ReceiveSummary.With(p.Summary))
	}); err != nil {
		return err
	}
	if _, err := events.On(b, DashboardEvents.FetchFailed, func(p FetchFailed) error {
		l.Error().Str("error", p.Error).Msg("failed to fetch executive summary")
		return d.Dispatch(SetDashboardError.With(p.Error))
	}); err != nil {
		return err
	}
	if _, err := events.On(b, DashboardEvents.WidgetMoved, func(p WidgetMoved) error {
		return d.Dispatch(MoveWidgetAction.With(p))
	}); err != nil {
		return err
	}
	if _, err := events.On(b, DashboardEvents.WidgetRemoved, func(p WidgetChanged) error {
		return d.Dispatch(RemoveWidgetAction.With(p.WidgetID))
	}); err != nil {
		return err
	}
	_, err := events.On(b, DashboardEvents.WidgetAdded, func(p WidgetChanged) error {
		return d.Dispatch(AddWidgetAction.With(p.WidgetID))
	})
	return err
}

func InitAlertsEffects(b *events.Bus, d store.Dispatcher, l zerolog.Logger) error {
	if _, err := events.On(b, AlertsEvents.FetchStarted, func(events.Empty) error {
		return d.Dispatch(SetAlertsLoading.With(true))
	}); err != nil {
		return err
	}
	if _, err := events.On(b, AlertsEvents.Fetched, func(p AlertsFetched) error {
		return d.Dispatch(ReceiveAlerts.With(p.Alerts))
	}); err != nil {
		return err
	}
	if _, err := events.On(b, AlertsEvents.FetchFailed, func(p FetchFailed) error {
		l.Error().Str("error", p.Error).Msg("failed to fetch alerts")
		return d.Dispatch(SetAlertsError.With(p.Error))
	}); err != nil {
		return err
	}
	_, err := events.On(b, AlertsEvents.SeverityFilterChanged, func(p SeverityFilterChanged) error {
		return d.Dispatch(SetSeverityFilter.With(p.Severity))
	})
	return err
}
