package monitoring

import (
	"sort"
	"strings"
)

// FilterFleet keeps the machines matching every non-empty field of f. Search
// is a case-insensitive substring match on name, hostname and IP address.
func FilterFleet(machines []MachineFleetInfo, f FleetFilters) []MachineFleetInfo {
	q := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]MachineFleetInfo, 0, len(machines))
	for _, m := range machines {
		if f.Status != "" && m.Status != f.Status {
			continue
		}
		if f.Location != "" && m.LocationCategory != f.Location {
			continue
		}
		if f.IssueType != "" && !hasIssue(m.Issues, f.IssueType) {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(m.Name), q) &&
			!strings.Contains(strings.ToLower(m.Hostname), q) &&
			!strings.Contains(m.IPAddress, q) {
			continue
		}
		out = append(out, m)
	}
	return out
}

func hasIssue(issues []Issue, t IssueType) bool {
	for _, is := range issues {
		if is.Type == t {
			return true
		}
	}
	return false
}

type ProcessSort string

const (
	SortByCPU    ProcessSort = "cpu"
	SortByMemory ProcessSort = "memory"
	SortByName   ProcessSort = "name"
)

// SortProcesses returns a sorted copy: cpu and memory descending, name
// ascending. Ties keep the PID order.
func SortProcesses(procs []Process, by ProcessSort) []Process {
	out := append([]Process{}, procs...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		switch by {
		case SortByMemory:
			if a.Memory != b.Memory {
				return a.Memory > b.Memory
			}
		case SortByName:
			if a.Name != b.Name {
				return a.Name < b.Name
			}
		default:
			if a.CPU != b.CPU {
				return a.CPU > b.CPU
			}
		}
		return a.PID < b.PID
	})
	return out
}
