package monitoring

import "github.com/go-go-golems/screenctl/pkg/store"

type MachinesState struct {
	Machines          []MachineInfo
	SelectedMachineID string
	Loading           bool
}

type MetricsState struct {
	CurrentMetrics *MetricsSnapshot
	RangeMetrics   []MetricsSnapshot
	TimeRange      TimeRange
	Loading        bool
}

type ProcessesState struct {
	Processes []Process
	Loading   bool
}

type FleetState struct {
	Machines   []MachineFleetInfo
	Statistics *FleetStats
	Loading    bool
}

var (
	MachinesSlice = store.NewSlice(ScreensetID+"/machines", MachinesState{
		Machines: []MachineInfo{},
	})

	SetMachines = store.Reduce(MachinesSlice, "setMachines", func(s MachinesState, m []MachineInfo) MachinesState {
		s.Machines = m
		return s
	})
	SetSelectedMachineID = store.Reduce(MachinesSlice, "setSelectedMachineId", func(s MachinesState, id string) MachinesState {
		s.SelectedMachineID = id
		return s
	})
	SetMachinesLoading = store.Reduce(MachinesSlice, "setLoading", func(s MachinesState, v bool) MachinesState {
		s.Loading = v
		return s
	})
	// ReceiveMachines stores a fetched list, clears loading, and selects the
	// first machine when nothing is selected yet.
	ReceiveMachines = store.Reduce(MachinesSlice, "receiveMachines", func(s MachinesState, m []MachineInfo) MachinesState {
		s.Machines = m
		s.Loading = false
		if len(m) > 0 && s.SelectedMachineID == "" {
			s.SelectedMachineID = m[0].ID
		}
		return s
	})
)

var (
	MetricsSlice = store.NewSlice(ScreensetID+"/metrics", MetricsState{
		RangeMetrics: []MetricsSnapshot{},
		TimeRange:    Range1Day,
	})

	SetCurrentMetrics = store.Reduce(MetricsSlice, "setCurrentMetrics", func(s MetricsState, m *MetricsSnapshot) MetricsState {
		s.CurrentMetrics = m
		return s
	})
	SetRangeMetrics = store.Reduce(MetricsSlice, "setRangeMetrics", func(s MetricsState, m []MetricsSnapshot) MetricsState {
		s.RangeMetrics = m
		return s
	})
	SetTimeRange = store.Reduce(MetricsSlice, "setTimeRange", func(s MetricsState, tr TimeRange) MetricsState {
		s.TimeRange = tr
		return s
	})
	SetMetricsLoading = store.Reduce(MetricsSlice, "setLoading", func(s MetricsState, v bool) MetricsState {
		s.Loading = v
		return s
	})
	SetMetrics = store.Reduce(MetricsSlice, "setMetrics", func(s MetricsState, p MetricsFetched) MetricsState {
		cur := p.CurrentMetrics
		s.CurrentMetrics = &cur
		s.RangeMetrics = p.RangeMetrics
		return s
	})
)

var (
	ProcessesSlice = store.NewSlice(ScreensetID+"/processes", ProcessesState{
		Processes: []Process{},
	})

	SetProcesses = store.Reduce(ProcessesSlice, "setProcesses", func(s ProcessesState, p []Process) ProcessesState {
		s.Processes = p
		return s
	})
	SetProcessesLoading = store.Reduce(ProcessesSlice, "setLoading", func(s ProcessesState, v bool) ProcessesState {
		s.Loading = v
		return s
	})
)

var (
	FleetSlice = store.NewSlice(ScreensetID+"/fleet", FleetState{
		Machines: []MachineFleetInfo{},
	})

	SetFleetMachines = store.Reduce(FleetSlice, "setMachines", func(s FleetState, m []MachineFleetInfo) FleetState {
		s.Machines = m
		return s
	})
	SetFleetStatistics = store.Reduce(FleetSlice, "setStatistics", func(s FleetState, st *FleetStats) FleetState {
		s.Statistics = st
		return s
	})
	SetFleetLoading = store.Reduce(FleetSlice, "setLoading", func(s FleetState, v bool) FleetState {
		s.Loading = v
		return s
	})
	SetFleetData = store.Reduce(FleetSlice, "setFleetData", func(s FleetState, p FleetFetched) FleetState {
		st := p.Statistics
		s.Machines = p.Machines
		s.Statistics = &st
		return s
	})
)

func SelectMachinesState(root store.RootState) MachinesState {
	return MachinesSlice.Select(root)
}

func SelectMetricsState(root store.RootState) MetricsState {
	return MetricsSlice.Select(root)
}

func SelectProcessesState(root store.RootState) ProcessesState {
	return ProcessesSlice.Select(root)
}

func SelectFleetState(root store.RootState) FleetState {
	return FleetSlice.Select(root)
}

// SelectedMachine returns the selected machine, if it is in the list.
func (s MachinesState) SelectedMachine() (MachineInfo, bool) {
	for _, m := range s.Machines {
		if m.ID == s.SelectedMachineID {
			return m, true
		}
	}
	return MachineInfo{}, false
}
