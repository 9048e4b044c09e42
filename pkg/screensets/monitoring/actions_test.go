package monitoring

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/go-go-golems/screenctl/pkg/action"
	"github.com/go-go-golems/screenctl/pkg/api"
	"github.com/go-go-golems/screenctl/pkg/store"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestSelectMachine_Scenario(t *testing.T) {
	a, acts := newTestApp(t)
	fx := NewFixtures(fixedClock)

	selected := record(t, a.Bus, MachinesEvents.Selected)
	metrics := record(t, a.Bus, MetricsEvents.Fetched)
	processes := record(t, a.Bus, ProcessesEvents.Fetched)
	metricsFailed := record(t, a.Bus, MetricsEvents.FetchFailed)
	processesFailed := record(t, a.Bus, ProcessesEvents.FetchFailed)

	require.NoError(t, acts.SelectMachine("m1", Range1Day))

	// selection is synchronous
	require.Equal(t, []MachineSelected{{MachineID: "m1"}}, selected.all())
	require.Equal(t, "m1", SelectMachinesState(a.Store.GetState()).SelectedMachineID)

	a.Runner.Wait()

	require.Empty(t, metricsFailed.all())
	require.Empty(t, processesFailed.all())

	gotMetrics := metrics.all()
	require.Len(t, gotMetrics, 1)
	wantMetrics := MetricsFetched{
		CurrentMetrics: fx.CurrentMetrics(DefaultMachineID),
		RangeMetrics:   fx.MetricsForRange(DefaultMachineID, Range1Day),
	}
	if diff := cmp.Diff(wantMetrics, gotMetrics[0]); diff != "" {
		t.Fatalf("metrics payload (-want +got):\n%s", diff)
	}

	gotProcesses := processes.all()
	require.Len(t, gotProcesses, 1)
	if diff := cmp.Diff(ProcessesFetched{Processes: fx.Processes(DefaultMachineID)}, gotProcesses[0]); diff != "" {
		t.Fatalf("processes payload (-want +got):\n%s", diff)
	}

	root := a.Store.GetState()
	require.False(t, SelectMetricsState(root).Loading)
	require.False(t, SelectProcessesState(root).Loading)
	require.Len(t, SelectMetricsState(root).RangeMetrics, 24)
}

func TestFetchMachines_AutoSelects(t *testing.T) {
	a, acts := newTestApp(t)

	a.Run(acts.FetchMachines())
	a.Runner.Wait()

	ms := SelectMachinesState(a.Store.GetState())
	require.False(t, ms.Loading)
	require.Len(t, ms.Machines, 8)
	require.Equal(t, "machine-1", ms.SelectedMachineID)
}

func TestChangeTimeRange(t *testing.T) {
	a, acts := newTestApp(t)
	changed := record(t, a.Bus, MetricsEvents.TimeRangeChanged)
	fetched := record(t, a.Bus, MetricsEvents.Fetched)

	a.Run(acts.ChangeTimeRange(Range7Days, "machine-4"))
	require.Equal(t, Range7Days, SelectMetricsState(a.Store.GetState()).TimeRange)
	a.Runner.Wait()

	require.Equal(t, []TimeRangeChanged{{TimeRange: Range7Days}}, changed.all())
	require.Len(t, fetched.all(), 1)
}

func TestFetchFleetData(t *testing.T) {
	a, acts := newTestApp(t)
	fx := NewFixtures(fixedClock)

	a.Run(acts.FetchFleetData())
	a.Runner.Wait()

	fs := SelectFleetState(a.Store.GetState())
	require.False(t, fs.Loading)
	require.Len(t, fs.Machines, 8)
	require.NotNil(t, fs.Statistics)
	if diff := cmp.Diff(fx.FleetStatistics(), *fs.Statistics); diff != "" {
		t.Fatalf("statistics (-want +got):\n%s", diff)
	}
}

// gatedService blocks each fetch group until its gate is closed.
type gatedService struct {
	MonitoringAPI
	fx        *Fixtures
	metrics   chan struct{}
	processes chan struct{}
	fleet     chan struct{}
	err       error
}

func newGatedService() *gatedService {
	return &gatedService{
		fx:        NewFixtures(fixedClock),
		metrics:   make(chan struct{}),
		processes: make(chan struct{}),
		fleet:     make(chan struct{}),
	}
}

func wait(ctx context.Context, gate chan struct{}) error {
	select {
	case <-gate:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (g *gatedService) GetCurrentMetrics(ctx context.Context, id string) (MetricsSnapshot, error) {
	if err := wait(ctx, g.metrics); err != nil {
		return MetricsSnapshot{}, err
	}
	return g.fx.CurrentMetrics(id), g.err
}

func (g *gatedService) GetMetrics(ctx context.Context, id string, tr TimeRange) ([]MetricsSnapshot, error) {
	if err := wait(ctx, g.metrics); err != nil {
		return nil, err
	}
	return g.fx.MetricsForRange(id, tr), nil
}

func (g *gatedService) GetProcesses(ctx context.Context, id string) ([]Process, error) {
	if err := wait(ctx, g.processes); err != nil {
		return nil, err
	}
	return g.fx.Processes(id), g.err
}

func (g *gatedService) GetFleetMachines(ctx context.Context, _ *FleetFilters) ([]MachineFleetInfo, error) {
	if err := wait(ctx, g.fleet); err != nil {
		return nil, err
	}
	return g.fx.FleetMachines(), g.err
}

func (g *gatedService) GetFleetStatistics(ctx context.Context) (FleetStats, error) {
	if err := wait(ctx, g.fleet); err != nil {
		return FleetStats{}, err
	}
	return g.fx.FleetStatistics(), nil
}

func withGated(g *gatedService) Option {
	return WithService(func(api.Env) (any, error) { return g, nil })
}

func TestSelectMachine_ResolutionOrderDoesNotMatter(t *testing.T) {
	run := func(metricsFirst bool) store.RootState {
		g := newGatedService()
		a, acts := newTestApp(t, withGated(g))
		require.NoError(t, acts.SelectMachine("machine-2", Range1Hour))

		first, second := g.processes, g.metrics
		if metricsFirst {
			first, second = g.metrics, g.processes
		}
		close(first)
		require.Eventually(t, func() bool {
			root := a.Store.GetState()
			if metricsFirst {
				return SelectMetricsState(root).CurrentMetrics != nil
			}
			return len(SelectProcessesState(root).Processes) > 0
		}, time.Second, time.Millisecond)
		close(second)
		a.Runner.Wait()
		return a.Store.GetState()
	}

	a := run(true)
	b := run(false)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatalf("final state depends on resolution order (-metrics first +processes first):\n%s", diff)
	}
	require.Len(t, SelectMetricsState(a).RangeMetrics, 30)
}

func TestFetchFleetData_LoadingUntilResolved(t *testing.T) {
	g := newGatedService()
	a, acts := newTestApp(t, withGated(g))

	a.Run(acts.FetchFleetData())
	require.True(t, SelectFleetState(a.Store.GetState()).Loading)

	close(g.fleet)
	a.Runner.Wait()
	require.False(t, SelectFleetState(a.Store.GetState()).Loading)
}

func TestActions_FailuresBecomeEvents(t *testing.T) {
	g := newGatedService()
	g.err = stderrors.New("")
	close(g.metrics)
	close(g.processes)
	a, acts := newTestApp(t, withGated(g))

	metricsFailed := record(t, a.Bus, MetricsEvents.FetchFailed)
	processesFailed := record(t, a.Bus, ProcessesEvents.FetchFailed)
	metricsFetched := record(t, a.Bus, MetricsEvents.Fetched)

	require.NoError(t, acts.SelectMachine("machine-1", Range1Day))
	a.Runner.Wait()

	require.Empty(t, metricsFetched.all())
	require.Equal(t, []FetchFailed{{Error: action.UnknownError}}, metricsFailed.all())
	require.Equal(t, []FetchFailed{{Error: action.UnknownError}}, processesFailed.all())

	root := a.Store.GetState()
	require.False(t, SelectMetricsState(root).Loading)
	require.False(t, SelectProcessesState(root).Loading)
}

func TestActions_MissingServiceFailsBothGroups(t *testing.T) {
	a, acts := newTestApp(t, WithService(func(api.Env) (any, error) {
		return nil, stderrors.New("no backend")
	}))
	metricsFailed := record(t, a.Bus, MetricsEvents.FetchFailed)
	processesFailed := record(t, a.Bus, ProcessesEvents.FetchFailed)

	require.NoError(t, acts.SelectMachine("machine-1", Range1Day))
	a.Runner.Wait()

	require.Len(t, metricsFailed.all(), 1)
	require.Contains(t, metricsFailed.all()[0].Error, "no backend")
	require.Len(t, processesFailed.all(), 1)
	require.False(t, SelectMetricsState(a.Store.GetState()).Loading)
}
