package monitoring

import (
	"hash/fnv"
	"math"
	"math/rand"
	"strings"
	"time"
)

// DefaultMachineID is the machine every id-parameterised mock answers for.
const DefaultMachineID = "machine-1"

// Fixtures generates deterministic monitoring data. The same clock reading and
// inputs always yield the same values.
type Fixtures struct {
	Now func() time.Time
}

func NewFixtures(now func() time.Time) *Fixtures {
	if now == nil {
		now = time.Now
	}
	return &Fixtures{Now: now}
}

func (f *Fixtures) now() time.Time {
	return f.Now().UTC().Truncate(time.Minute)
}

func seeded(parts ...string) *rand.Rand {
	h := fnv.New64a()
	_, _ = h.Write([]byte(strings.Join(parts, "|")))
	return rand.New(rand.NewSource(int64(h.Sum64())))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

var fixtureMachines = []MachineInfo{
	{ID: "machine-1", Name: "web-prod-01", Hostname: "web-prod-01.dc1.internal", OS: "Ubuntu 22.04 LTS", IPAddress: "10.0.1.11", Status: StatusOnline, Type: MachinePhysical, Location: "Frankfurt DC1", CPUModel: "Intel Xeon Gold 6338", CPUCores: 32, MemoryGB: 128, DiskGB: 2000, UptimeSeconds: 3456000},
	{ID: "machine-2", Name: "web-prod-02", Hostname: "web-prod-02.dc1.internal", OS: "Ubuntu 22.04 LTS", IPAddress: "10.0.1.12", Status: StatusOnline, Type: MachinePhysical, Location: "Frankfurt DC1", CPUModel: "Intel Xeon Gold 6338", CPUCores: 32, MemoryGB: 128, DiskGB: 2000, UptimeSeconds: 2160000},
	{ID: "machine-3", Name: "db-primary", Hostname: "db-primary.dc1.internal", OS: "Rocky Linux 9", IPAddress: "10.0.2.21", Status: StatusOnline, Type: MachinePhysical, Location: "Frankfurt DC1", CPUModel: "AMD EPYC 7543", CPUCores: 64, MemoryGB: 512, DiskGB: 8000, UptimeSeconds: 8640000},
	{ID: "machine-4", Name: "db-replica", Hostname: "db-replica.dc2.internal", OS: "Rocky Linux 9", IPAddress: "10.1.2.22", Status: StatusMaintenance, Type: MachinePhysical, Location: "Amsterdam DC2", CPUModel: "AMD EPYC 7543", CPUCores: 64, MemoryGB: 512, DiskGB: 8000, UptimeSeconds: 0},
	{ID: "machine-5", Name: "worker-eu-1", Hostname: "worker-eu-1.cloud", OS: "Debian 12", IPAddress: "172.16.4.5", Status: StatusOnline, Type: MachineVirtual, Location: "eu-central-1", CPUModel: "vCPU", CPUCores: 8, MemoryGB: 32, DiskGB: 200, UptimeSeconds: 604800},
	{ID: "machine-6", Name: "worker-eu-2", Hostname: "worker-eu-2.cloud", OS: "Debian 12", IPAddress: "172.16.4.6", Status: StatusOffline, Type: MachineVirtual, Location: "eu-central-1", CPUModel: "vCPU", CPUCores: 8, MemoryGB: 32, DiskGB: 200, UptimeSeconds: 0},
	{ID: "machine-7", Name: "build-runner", Hostname: "build-runner.office", OS: "Windows Server 2022", IPAddress: "192.168.10.40", Status: StatusOnline, Type: MachinePhysical, Location: "Berlin Office", CPUModel: "Intel Core i9-13900", CPUCores: 24, MemoryGB: 64, DiskGB: 1000, UptimeSeconds: 259200},
	{ID: "machine-8", Name: "laptop-jdoe", Hostname: "laptop-jdoe", OS: "macOS 14", IPAddress: "100.64.0.8", Status: StatusOnline, Type: MachinePhysical, Location: "Remote", CPUModel: "Apple M3 Pro", CPUCores: 12, MemoryGB: 36, DiskGB: 1000, UptimeSeconds: 86400},
}

var fixtureFleet = []struct {
	category LocationCategory
	issues   []Issue
	lastSeen time.Duration
}{
	{LocationDatacenter, nil, time.Minute},
	{LocationDatacenter, []Issue{{Type: IssueSoftware, Severity: SeverityWarning, Message: "12 pending security updates"}}, time.Minute},
	{LocationDatacenter, []Issue{{Type: IssueBackup, Severity: SeverityCritical, Message: "last backup failed"}}, 2 * time.Minute},
	{LocationDatacenter, []Issue{{Type: IssueHardware, Severity: SeverityWarning, Message: "disk 3 reports reallocated sectors"}}, 3 * time.Hour},
	{LocationCloud, nil, time.Minute},
	{LocationCloud, []Issue{{Type: IssueNetwork, Severity: SeverityCritical, Message: "host unreachable"}}, 26 * time.Hour},
	{LocationOffice, []Issue{{Type: IssueSecurity, Severity: SeverityCritical, Message: "antivirus definitions outdated"}, {Type: IssueSoftware, Severity: SeverityInfo, Message: "reboot pending"}}, 5 * time.Minute},
	{LocationRemote, []Issue{{Type: IssueSecurity, Severity: SeverityWarning, Message: "disk encryption disabled"}}, 40 * time.Minute},
}

// Machines returns a fresh copy of the fixture machines.
func (f *Fixtures) Machines() []MachineInfo {
	return append([]MachineInfo{}, fixtureMachines...)
}

func (f *Fixtures) Machine(id string) (MachineInfo, bool) {
	for _, m := range fixtureMachines {
		if m.ID == id {
			return m, true
		}
	}
	return MachineInfo{}, false
}

// FleetMachines returns the fixture machines with fleet details.
func (f *Fixtures) FleetMachines() []MachineFleetInfo {
	now := f.now()
	out := make([]MachineFleetInfo, len(fixtureMachines))
	for i, m := range fixtureMachines {
		fl := fixtureFleet[i]
		issues := append([]Issue{}, fl.issues...)
		out[i] = MachineFleetInfo{
			MachineInfo:      m,
			LocationCategory: fl.category,
			Issues:           issues,
			LastSeen:         now.Add(-fl.lastSeen),
		}
	}
	return out
}

// FleetStatistics aggregates FleetMachines.
func (f *Fixtures) FleetStatistics() FleetStats {
	return ComputeFleetStats(f.FleetMachines())
}

// ComputeFleetStats counts statuses, types, issues and locations.
func ComputeFleetStats(machines []MachineFleetInfo) FleetStats {
	var s FleetStats
	s.TotalMachines = len(machines)
	for _, m := range machines {
		switch m.Status {
		case StatusOnline:
			s.OnlineMachines++
		case StatusOffline:
			s.OfflineMachines++
		case StatusMaintenance:
			s.MaintenanceMachines++
		}
		switch m.Type {
		case MachineVirtual:
			s.VirtualMachines++
		case MachinePhysical:
			s.PhysicalMachines++
		}
		switch m.LocationCategory {
		case LocationDatacenter:
			s.LocationCounts.Datacenter++
		case LocationCloud:
			s.LocationCounts.Cloud++
		case LocationOffice:
			s.LocationCounts.Office++
		case LocationRemote:
			s.LocationCounts.Remote++
		}
		for _, is := range m.Issues {
			s.TotalIssues++
			switch is.Severity {
			case SeverityCritical:
				s.CriticalIssues++
			case SeverityWarning:
				s.WarningIssues++
			case SeverityInfo:
				s.InfoIssues++
			}
			switch is.Type {
			case IssueHardware:
				s.IssuesByType.Hardware++
			case IssueSoftware:
				s.IssuesByType.Software++
			case IssueSecurity:
				s.IssuesByType.Security++
			case IssueBackup:
				s.IssuesByType.Backup++
			case IssueNetwork:
				s.IssuesByType.Network++
			}
		}
	}
	return s
}

// MetricsForRange returns one sample per step of tr, oldest first, ending at
// the current minute.
func (f *Fixtures) MetricsForRange(machineID string, tr TimeRange) []MetricsSnapshot {
	end := f.now().Truncate(tr.Step())
	n := int(tr.Span() / tr.Step())
	r := seeded(machineID, string(tr), end.Format(time.RFC3339))

	cpu := 20 + r.Float64()*40
	mem := 40 + r.Float64()*30
	disk := 50 + r.Float64()*30
	out := make([]MetricsSnapshot, 0, n)
	for i := n - 1; i >= 0; i-- {
		cpu = clamp(cpu+(r.Float64()-0.5)*10, 1, 99)
		mem = clamp(mem+(r.Float64()-0.5)*4, 5, 98)
		disk = clamp(disk+r.Float64()*0.2, 5, 99)
		out = append(out, MetricsSnapshot{
			MachineID:      machineID,
			Timestamp:      end.Add(-time.Duration(i) * tr.Step()),
			CPU:            round1(cpu),
			Memory:         round1(mem),
			Disk:           round1(disk),
			NetworkInKBps:  round1(100 + r.Float64()*900),
			NetworkOutKBps: round1(50 + r.Float64()*400),
			LoadAverage:    round1(cpu / 25),
		})
	}
	return out
}

// CurrentMetrics is the newest sample of the 30 minute range.
func (f *Fixtures) CurrentMetrics(machineID string) MetricsSnapshot {
	m := f.MetricsForRange(machineID, Range30Min)
	return m[len(m)-1]
}

var processNames = []struct {
	name string
	user string
}{
	{"systemd", "root"},
	{"nginx", "www-data"},
	{"postgres", "postgres"},
	{"node", "app"},
	{"redis-server", "redis"},
	{"dockerd", "root"},
	{"sshd", "root"},
	{"prometheus", "prometheus"},
	{"containerd", "root"},
	{"cron", "root"},
	{"journald", "root"},
	{"java", "app"},
}

// Processes returns the process list of a machine.
func (f *Fixtures) Processes(machineID string) []Process {
	now := f.now()
	r := seeded(machineID, "processes")
	out := make([]Process, len(processNames))
	for i, p := range processNames {
		status := "running"
		if r.Intn(5) == 0 {
			status = "sleeping"
		}
		out[i] = Process{
			PID:       100 + i*37 + r.Intn(30),
			Name:      p.name,
			User:      p.user,
			CPU:       round1(r.Float64() * 25),
			Memory:    round1(r.Float64() * 12),
			Status:    status,
			StartedAt: now.Add(-time.Duration(r.Intn(72*60)) * time.Minute),
		}
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
