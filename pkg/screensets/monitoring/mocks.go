package monitoring

import "github.com/go-go-golems/screenctl/pkg/api"

// MockMap answers every monitoring endpoint from f. Id segments are not
// captured, so machine-scoped endpoints always describe DefaultMachineID.
func MockMap(f *Fixtures) api.MockMap {
	return api.MockMap{
		"GET /machines": func() any { return f.Machines() },
		"GET /machines/:machineId": func() any {
			m, _ := f.Machine(DefaultMachineID)
			return m
		},
		"GET /machines/:machineId/metrics": func() any {
			return f.MetricsForRange(DefaultMachineID, Range1Day)
		},
		"GET /machines/:machineId/metrics/current": func() any {
			return f.CurrentMetrics(DefaultMachineID)
		},
		"GET /machines/:machineId/processes": func() any {
			return f.Processes(DefaultMachineID)
		},
		"GET /fleet":            func() any { return f.FleetMachines() },
		"GET /fleet/statistics": func() any { return f.FleetStatistics() },
		"GET /fleet/:machineId": func() any { return f.FleetMachines()[0] },
	}
}
