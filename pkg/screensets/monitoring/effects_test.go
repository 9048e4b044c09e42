package monitoring

import (
	"testing"

	"github.com/go-go-golems/screenctl/pkg/events"
	"github.com/go-go-golems/screenctl/pkg/store"
	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func newEffectsHarness(t *testing.T) (*events.Bus, *store.Store) {
	t.Helper()
	b := events.NewBus()
	require.NoError(t, DeclareEvents(b))
	st := newMonitoringStore(t)
	l := zerolog.Nop()
	require.NoError(t, InitMachinesEffects(b, st, l))
	require.NoError(t, InitMetricsEffects(b, st, l))
	require.NoError(t, InitProcessesEffects(b, st, l))
	require.NoError(t, InitFleetEffects(b, st, l))
	return b, st
}

func TestEffects_StartedSetsLoadingImmediately(t *testing.T) {
	b, st := newEffectsHarness(t)

	require.NoError(t, events.Emit(b, DataEvents.FleetFetchStarted, events.Empty{}))
	require.True(t, SelectFleetState(st.GetState()).Loading)

	require.NoError(t, events.Emit(b, DataEvents.DashboardFetchStarted, events.Empty{}))
	require.True(t, SelectMachinesState(st.GetState()).Loading)

	require.NoError(t, events.Emit(b, MachinesEvents.Selected, MachineSelected{MachineID: "machine-2"}))
	root := st.GetState()
	require.Equal(t, "machine-2", SelectMachinesState(root).SelectedMachineID)
	require.True(t, SelectMetricsState(root).Loading)
	require.True(t, SelectProcessesState(root).Loading)
}

func TestEffects_FailureClearsLoadingAndKeepsData(t *testing.T) {
	b, st := newEffectsHarness(t)
	fx := NewFixtures(fixedClock)

	require.NoError(t, events.Emit(b, ProcessesEvents.Fetched, ProcessesFetched{Processes: fx.Processes("machine-1")}))
	require.NoError(t, events.Emit(b, MachinesEvents.Selected, MachineSelected{MachineID: "machine-1"}))
	require.NoError(t, events.Emit(b, ProcessesEvents.FetchFailed, FetchFailed{Error: "boom"}))
	require.NoError(t, events.Emit(b, MetricsEvents.FetchFailed, FetchFailed{Error: "boom"}))

	root := st.GetState()
	require.False(t, SelectProcessesState(root).Loading)
	require.Len(t, SelectProcessesState(root).Processes, len(processNames))
	require.False(t, SelectMetricsState(root).Loading)
	require.Nil(t, SelectMetricsState(root).CurrentMetrics)

	require.NoError(t, events.Emit(b, DataEvents.FleetFetchStarted, events.Empty{}))
	require.NoError(t, events.Emit(b, FleetEvents.FetchFailed, FetchFailed{Error: "down"}))
	require.False(t, SelectFleetState(st.GetState()).Loading)
}

func TestEffects_TimeRangeChanged(t *testing.T) {
	b, st := newEffectsHarness(t)
	require.NoError(t, events.Emit(b, MetricsEvents.TimeRangeChanged, TimeRangeChanged{TimeRange: Range7Days}))
	require.Equal(t, Range7Days, SelectMetricsState(st.GetState()).TimeRange)
}

// Two independently issued fetch groups must converge on the same state no
// matter which resolves first.
func TestEffects_GroupsAreOrderIndependent(t *testing.T) {
	fx := NewFixtures(fixedClock)
	metrics := func(b *events.Bus) error {
		return events.Emit(b, MetricsEvents.Fetched, MetricsFetched{
			CurrentMetrics: fx.CurrentMetrics("machine-1"),
			RangeMetrics:   fx.MetricsForRange("machine-1", Range1Day),
		})
	}
	processes := func(b *events.Bus) error {
		return events.Emit(b, ProcessesEvents.Fetched, ProcessesFetched{Processes: fx.Processes("machine-1")})
	}
	fleet := func(b *events.Bus) error {
		return events.Emit(b, FleetEvents.Fetched, FleetFetched{Machines: fx.FleetMachines(), Statistics: fx.FleetStatistics()})
	}
	machines := func(b *events.Bus) error {
		return events.Emit(b, MachinesEvents.Fetched, MachinesFetched{Machines: fx.Machines()})
	}

	run := func(order ...func(*events.Bus) error) store.RootState {
		b, st := newEffectsHarness(t)
		require.NoError(t, events.Emit(b, MachinesEvents.Selected, MachineSelected{MachineID: "machine-1"}))
		require.NoError(t, events.Emit(b, DataEvents.FleetFetchStarted, events.Empty{}))
		for _, emit := range order {
			require.NoError(t, emit(b))
		}
		return st.GetState()
	}

	want := run(metrics, processes, fleet, machines)
	for _, order := range [][]func(*events.Bus) error{
		{processes, metrics, fleet, machines},
		{machines, fleet, processes, metrics},
		{fleet, metrics, machines, processes},
	} {
		if diff := cmp.Diff(want, run(order...)); diff != "" {
			t.Fatalf("state depends on resolution order (-want +got):\n%s", diff)
		}
	}

	root := want
	require.False(t, SelectMetricsState(root).Loading)
	require.False(t, SelectProcessesState(root).Loading)
	require.False(t, SelectFleetState(root).Loading)
	require.Equal(t, "machine-1", SelectMachinesState(root).SelectedMachineID)
}
