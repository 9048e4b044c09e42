package monitoring

import (
	"context"

	"github.com/go-go-golems/screenctl/pkg/action"
	"github.com/go-go-golems/screenctl/pkg/api"
	"github.com/go-go-golems/screenctl/pkg/events"
	"github.com/go-go-golems/screenctl/pkg/store"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Actions emit monitoring events and fetch from the monitoring API. Fetch
// results are reported as events; nothing is returned to the caller.
type Actions struct {
	bus    *events.Bus
	apis   *api.Registry
	runner *action.Runner
	logger zerolog.Logger
}

func NewActions(b *events.Bus, apis *api.Registry, r *action.Runner, l zerolog.Logger) *Actions {
	return &Actions{bus: b, apis: apis, runner: r, logger: l}
}

func (a *Actions) service() (MonitoringAPI, error) {
	return api.Service[MonitoringAPI](a.apis, MonitoringDomain)
}

// emit publishes from a fetch goroutine, where there is nobody to return to.
func emit[P any](a *Actions, t events.Topic[P], p P) {
	if err := events.Emit(a.bus, t, p); err != nil {
		a.logger.Error().Err(err).Str("event", t.Name()).Msg("event handler failed")
	}
}

func failed(err error) FetchFailed {
	return FetchFailed{Error: action.ErrorMessage(err)}
}

// SelectMachine marks machineID as selected, then fetches its metrics and its
// processes as two independent groups. Either group may finish first.
func (a *Actions) SelectMachine(machineID string, tr TimeRange) error {
	if err := events.Emit(a.bus, MachinesEvents.Selected, MachineSelected{MachineID: machineID}); err != nil {
		return err
	}

	svc, err := a.service()
	if err != nil {
		emit(a, MetricsEvents.FetchFailed, failed(err))
		emit(a, ProcessesEvents.FetchFailed, failed(err))
		return nil
	}

	a.fetchMetrics(svc, machineID, tr)

	a.runner.Go("processes", func(ctx context.Context) {
		procs, err := svc.GetProcesses(ctx, machineID)
		if err != nil {
			emit(a, ProcessesEvents.FetchFailed, failed(err))
			return
		}
		emit(a, ProcessesEvents.Fetched, ProcessesFetched{Processes: procs})
	}, func(err error) {
		emit(a, ProcessesEvents.FetchFailed, failed(err))
	})
	return nil
}

// fetchMetrics loads the current sample and the range history together and
// reports them as one event.
func (a *Actions) fetchMetrics(svc MonitoringAPI, machineID string, tr TimeRange) {
	a.runner.Go("metrics", func(ctx context.Context) {
		var res MetricsFetched
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			m, err := svc.GetCurrentMetrics(gctx, machineID)
			res.CurrentMetrics = m
			return err
		})
		g.Go(func() error {
			m, err := svc.GetMetrics(gctx, machineID, tr)
			res.RangeMetrics = m
			return err
		})
		if err := g.Wait(); err != nil {
			emit(a, MetricsEvents.FetchFailed, failed(err))
			return
		}
		emit(a, MetricsEvents.Fetched, res)
	}, func(err error) {
		emit(a, MetricsEvents.FetchFailed, failed(err))
	})
}

// FetchMachines loads the machine list.
func (a *Actions) FetchMachines() action.Thunk {
	return func(store.Dispatcher) {
		emit(a, DataEvents.DashboardFetchStarted, events.Empty{})

		svc, err := a.service()
		if err != nil {
			emit(a, MachinesEvents.FetchFailed, failed(err))
			return
		}
		a.runner.Go("machines", func(ctx context.Context) {
			machines, err := svc.GetMachines(ctx)
			if err != nil {
				emit(a, MachinesEvents.FetchFailed, failed(err))
				return
			}
			emit(a, MachinesEvents.Fetched, MachinesFetched{Machines: machines})
		}, func(err error) {
			emit(a, MachinesEvents.FetchFailed, failed(err))
		})
	}
}

// ChangeTimeRange switches the metrics range and refetches machineID's metrics.
func (a *Actions) ChangeTimeRange(tr TimeRange, machineID string) action.Thunk {
	return func(store.Dispatcher) {
		emit(a, MetricsEvents.TimeRangeChanged, TimeRangeChanged{TimeRange: tr})

		svc, err := a.service()
		if err != nil {
			emit(a, MetricsEvents.FetchFailed, failed(err))
			return
		}
		a.fetchMetrics(svc, machineID, tr)
	}
}

// FetchFleetData loads the fleet listing and its statistics.
func (a *Actions) FetchFleetData() action.Thunk {
	return func(store.Dispatcher) {
		emit(a, DataEvents.FleetFetchStarted, events.Empty{})

		svc, err := a.service()
		if err != nil {
			emit(a, FleetEvents.FetchFailed, failed(err))
			return
		}
		a.runner.Go("fleet", func(ctx context.Context) {
			var res FleetFetched
			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				m, err := svc.GetFleetMachines(gctx, nil)
				res.Machines = m
				return err
			})
			g.Go(func() error {
				s, err := svc.GetFleetStatistics(gctx)
				res.Statistics = s
				return err
			})
			if err := g.Wait(); err != nil {
				emit(a, FleetEvents.FetchFailed, failed(err))
				return
			}
			emit(a, FleetEvents.Fetched, res)
		}, func(err error) {
			emit(a, FleetEvents.FetchFailed, failed(err))
		})
	}
}
