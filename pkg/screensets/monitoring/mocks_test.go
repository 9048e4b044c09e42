package monitoring

import (
	"context"
	"testing"
	"time"

	"github.com/go-go-golems/screenctl/pkg/api"
	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func mockService(t *testing.T) *MonitoringService {
	t.Helper()
	cfg := api.DefaultConfig()
	cfg.UseMocks = true
	m := MockMap(NewFixtures(fixedClock))
	svc, err := NewMonitoringService(api.Env{
		Domain: MonitoringDomain,
		Config: cfg,
		Logger: zerolog.Nop(),
		Mocks:  func() api.MockMap { return m },
	})
	require.NoError(t, err)
	return svc.(*MonitoringService)
}

func TestMocks_IDsAreNotSubstituted(t *testing.T) {
	svc := mockService(t)
	ctx := context.Background()

	m42, err := svc.GetMachine(ctx, "machine-42")
	require.NoError(t, err)
	m7, err := svc.GetMachine(ctx, "machine-7")
	require.NoError(t, err)
	require.Equal(t, m42, m7)
	require.Equal(t, DefaultMachineID, m42.ID)

	p3, err := svc.GetProcesses(ctx, "machine-3")
	require.NoError(t, err)
	p5, err := svc.GetProcesses(ctx, "machine-5")
	require.NoError(t, err)
	if diff := cmp.Diff(p3, p5); diff != "" {
		t.Fatalf("processes differ (-3 +5):\n%s", diff)
	}
}

func TestMocks_RangeIsIgnored(t *testing.T) {
	svc := mockService(t)
	got, err := svc.GetMetrics(context.Background(), "machine-1", Range30Min)
	require.NoError(t, err)
	require.Len(t, got, 24)
}

func TestMocks_Fleet(t *testing.T) {
	svc := mockService(t)
	ctx := context.Background()

	fleet, err := svc.GetFleetMachines(ctx, &FleetFilters{Status: StatusOffline})
	require.NoError(t, err)
	require.Len(t, fleet, 8)

	stats, err := svc.GetFleetStatistics(ctx)
	require.NoError(t, err)
	require.Equal(t, ComputeFleetStats(fleet), stats)

	one, err := svc.GetFleetMachine(ctx, "machine-8")
	require.NoError(t, err)
	require.Equal(t, "machine-1", one.ID)

	machines, err := svc.GetMachines(ctx)
	require.NoError(t, err)
	require.Len(t, machines, 8)

	cur, err := svc.GetCurrentMetrics(ctx, "x")
	require.NoError(t, err)
	require.True(t, cur.Timestamp.Equal(fixedNow.Truncate(time.Minute)))
}

func TestFixtures_Deterministic(t *testing.T) {
	a := NewFixtures(fixedClock)
	b := NewFixtures(fixedClock)

	if diff := cmp.Diff(a.MetricsForRange("machine-3", Range7Days), b.MetricsForRange("machine-3", Range7Days)); diff != "" {
		t.Fatalf("metrics not deterministic:\n%s", diff)
	}
	require.NotEqual(t, a.Processes("machine-1"), a.Processes("machine-2"))

	series := a.MetricsForRange("machine-1", Range6Hours)
	require.Len(t, series, 36)
	for i := 1; i < len(series); i++ {
		require.Equal(t, Range6Hours.Step(), series[i].Timestamp.Sub(series[i-1].Timestamp))
	}
	for _, s := range series {
		require.GreaterOrEqual(t, s.CPU, 1.0)
		require.LessOrEqual(t, s.CPU, 99.0)
	}
}

func TestComputeFleetStats(t *testing.T) {
	s := NewFixtures(fixedClock).FleetStatistics()
	require.Equal(t, FleetStats{
		TotalMachines:       8,
		OnlineMachines:      6,
		OfflineMachines:     1,
		MaintenanceMachines: 1,
		VirtualMachines:     2,
		PhysicalMachines:    6,
		TotalIssues:         7,
		CriticalIssues:      3,
		WarningIssues:       3,
		InfoIssues:          1,
		IssuesByType:        IssueCounts{Hardware: 1, Software: 2, Security: 2, Backup: 1, Network: 1},
		LocationCounts:      LocationCounts{Datacenter: 4, Cloud: 2, Office: 1, Remote: 1},
	}, s)
}

func TestFilterFleet(t *testing.T) {
	fleet := NewFixtures(fixedClock).FleetMachines()

	require.Len(t, FilterFleet(fleet, FleetFilters{}), 8)
	require.Len(t, FilterFleet(fleet, FleetFilters{Status: StatusOnline}), 6)
	require.Len(t, FilterFleet(fleet, FleetFilters{Location: LocationCloud}), 2)
	require.Len(t, FilterFleet(fleet, FleetFilters{IssueType: IssueSecurity}), 2)

	got := FilterFleet(fleet, FleetFilters{Search: "DB-"})
	require.Len(t, got, 2)
	require.Equal(t, "db-primary", got[0].Name)

	got = FilterFleet(fleet, FleetFilters{Search: "10.0.1.", Status: StatusOnline})
	require.Len(t, got, 2)
}

func TestSortProcesses(t *testing.T) {
	procs := []Process{
		{PID: 3, Name: "b", CPU: 1, Memory: 9},
		{PID: 1, Name: "c", CPU: 5, Memory: 1},
		{PID: 2, Name: "a", CPU: 5, Memory: 3},
	}
	pids := func(ps []Process) []int {
		out := make([]int, len(ps))
		for i, p := range ps {
			out[i] = p.PID
		}
		return out
	}
	require.Equal(t, []int{1, 2, 3}, pids(SortProcesses(procs, SortByCPU)))
	require.Equal(t, []int{3, 2, 1}, pids(SortProcesses(procs, SortByMemory)))
	require.Equal(t, []int{2, 3, 1}, pids(SortProcesses(procs, SortByName)))
	require.Equal(t, 3, procs[0].PID)
}
