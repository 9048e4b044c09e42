package monitoring

import (
	"github.com/go-go-golems/screenctl/pkg/events"
	"github.com/go-go-golems/screenctl/pkg/store"
	"github.com/rs/zerolog"
)

// dispatchAll applies actions in order and stops at the first error.
func dispatchAll(d store.Dispatcher, actions ...store.Action) error {
	for _, a := range actions {
		if err := d.Dispatch(a); err != nil {
			return err
		}
	}
	return nil
}

func InitMachinesEffects(b *events.Bus, d store.Dispatcher, l zerolog.Logger) error {
	if _, err := events.On(b, MachinesEvents.Selected, func(p MachineSelected) error {
		return d.Dispatch(SetSelectedMachineID.With(p.MachineID))
	}); err != nil {
		return err
	}

	if _, err := events.On(b, MachinesEvents.Fetched, func(p MachinesFetched) error {
		return d.Dispatch(ReceiveMachines.With(p.Machines))
	}); err != nil {
		return err
	}

	if _, err := events.On(b, MachinesEvents.FetchFailed, func(p FetchFailed) error {
		l.Error().Str("error", p.Error).Msg("failed to fetch machines")
		return d.Dispatch(SetMachinesLoading.With(false))
	}); err != nil {
		return err
	}

	_, err := events.On(b, DataEvents.DashboardFetchStarted, func(events.Empty) error {
		return d.Dispatch(SetMachinesLoading.With(true))
	})
	return err
}

func InitMetricsEffects(b *events.Bus, d store.Dispatcher, l zerolog.Logger) error {
	if _, err := events.On(b, MetricsEvents.Fetched, func(p MetricsFetched) error {
		return dispatchAll(d, SetMetrics.With(p), SetMetricsLoading.With(false))
	}); err != nil {
		return err
	}

	if _, err := events.On(b, MetricsEvents.TimeRangeChanged, func(p TimeRangeChanged) error {
		return d.Dispatch(SetTimeRange.With(p.TimeRange))
	}); err != nil {
		return err
	}

	if _, err := events.On(b, MetricsEvents.FetchFailed, func(p FetchFailed) error {
		l.Error().Str("error", p.Error).Msg("failed to fetch metrics")
		return d.Dispatch(SetMetricsLoading.With(false))
	}); err != nil {
		return err
	}

	// The fetch itself is issued by the action that emitted the selection.
	_, err := events.On(b, MachinesEvents.Selected, func(MachineSelected) error {
		return d.Dispatch(SetMetricsLoading.With(true))
	})
	return err
}

func InitProcessesEffects(b *events.Bus, d store.Dispatcher, l zerolog.Logger) error {
	if _, err := events.On(b, ProcessesEvents.Fetched, func(p ProcessesFetched) error {
		return dispatchAll(d, SetProcesses.With(p.Processes), SetProcessesLoading.With(false))
	}); err != nil {
		return err
	}

	if _, err := events.On(b, ProcessesEvents.FetchFailed, func(p FetchFailed) error {
		l.Error().Str("error", p.Error).Msg("failed to fetch processes")
		return d.Dispatch(SetProcessesLoading.With(false))
	}); err != nil {
		return err
	}

	_, err := events.On(b, MachinesEvents.Selected, func(MachineSelected) error {
		return d.Dispatch(SetProcessesLoading.With(true))
	})
	return err
}

func InitFleetEffects(b *events.Bus, d store.Dispatcher, l zerolog.Logger) error {
	if _, err := events.On(b, FleetEvents.Fetched, func(p FleetFetched) error {
		return dispatchAll(d, SetFleetData.With(p), SetFleetLoading.With(false))
	}); err != nil {
		return err
	}

	if _, err := events.On(b, FleetEvents.FetchFailed, func(p FetchFailed) error {
		l.Error().Str("error", p.Error).Msg("failed to fetch fleet data")
		return d.Dispatch(SetFleetLoading.With(false))
	}); err != nil {
		return err
	}

	_, err := events.On(b, DataEvents.FleetFetchStarted, func(events.Empty) error {
		return d.Dispatch(SetFleetLoading.With(true))
	})
	return err
}
