package monitoring

import "time"

type TimeRange string

const (
	Range30Min  TimeRange = "30min"
	Range1Hour  TimeRange = "1hour"
	Range6Hours TimeRange = "6hours"
	Range1Day   TimeRange = "1day"
	Range7Days  TimeRange = "7days"
)

// TimeRanges lists the selectable ranges in display order.
var TimeRanges = []TimeRange{Range30Min, Range1Hour, Range6Hours, Range1Day, Range7Days}

func (t TimeRange) Valid() bool {
	for _, r := range TimeRanges {
		if r == t {
			return true
		}
	}
	return false
}

// Span is the length of history covered by the range.
func (t TimeRange) Span() time.Duration {
	switch t {
	case Range30Min:
		return 30 * time.Minute
	case Range1Hour:
		return time.Hour
	case Range6Hours:
		return 6 * time.Hour
	case Range7Days:
		return 7 * 24 * time.Hour
	default:
		return 24 * time.Hour
	}
}

// Step is the sampling interval of the range.
func (t TimeRange) Step() time.Duration {
	switch t {
	case Range30Min:
		return time.Minute
	case Range1Hour:
		return 2 * time.Minute
	case Range6Hours:
		return 10 * time.Minute
	case Range7Days:
		return 6 * time.Hour
	default:
		return time.Hour
	}
}

type MachineStatus string

const (
	StatusOnline      MachineStatus = "online"
	StatusOffline     MachineStatus = "offline"
	StatusMaintenance MachineStatus = "maintenance"
)

type MachineType string

const (
	MachinePhysical MachineType = "physical"
	MachineVirtual  MachineType = "virtual"
)

type LocationCategory string

const (
	LocationDatacenter LocationCategory = "datacenter"
	LocationCloud      LocationCategory = "cloud"
	LocationOffice     LocationCategory = "office"
	LocationRemote     LocationCategory = "remote"
)

type IssueType string

const (
	IssueHardware IssueType = "hardware"
	IssueSoftware IssueType = "software"
	IssueSecurity IssueType = "security"
	IssueBackup   IssueType = "backup"
	IssueNetwork  IssueType = "network"
)

type IssueSeverity string

const (
	SeverityCritical IssueSeverity = "critical"
	SeverityWarning  IssueSeverity = "warning"
	SeverityInfo     IssueSeverity = "info"
)

type MachineInfo struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Hostname      string        `json:"hostname"`
	OS            string        `json:"os"`
	IPAddress     string        `json:"ipAddress"`
	Status        MachineStatus `json:"status"`
	Type          MachineType   `json:"type"`
	Location      string        `json:"location"`
	CPUModel      string        `json:"cpuModel"`
	CPUCores      int           `json:"cpuCores"`
	MemoryGB      int           `json:"memoryGb"`
	DiskGB        int           `json:"diskGb"`
	UptimeSeconds int64         `json:"uptimeSeconds"`
}

type MetricsSnapshot struct {
	MachineID      string    `json:"machineId"`
	Timestamp      time.Time `json:"timestamp"`
	CPU            float64   `json:"cpu"`
	Memory         float64   `json:"memory"`
	Disk           float64   `json:"disk"`
	NetworkInKBps  float64   `json:"networkInKbps"`
	NetworkOutKBps float64   `json:"networkOutKbps"`
	LoadAverage    float64   `json:"loadAverage"`
}

type Process struct {
	PID       int       `json:"pid"`
	Name      string    `json:"name"`
	User      string    `json:"user"`
	CPU       float64   `json:"cpu"`
	Memory    float64   `json:"memory"`
	Status    string    `json:"status"`
	StartedAt time.Time `json:"startedAt"`
}

type Issue struct {
	Type     IssueType     `json:"type"`
	Severity IssueSeverity `json:"severity"`
	Message  string        `json:"message"`
}

type MachineFleetInfo struct {
	MachineInfo
	LocationCategory LocationCategory `json:"locationCategory"`
	Issues           []Issue          `json:"issues"`
	LastSeen         time.Time        `json:"lastSeen"`
}

type IssueCounts struct {
	Hardware int `json:"hardware"`
	Software int `json:"software"`
	Security int `json:"security"`
	Backup   int `json:"backup"`
	Network  int `json:"network"`
}

type LocationCounts struct {
	Datacenter int `json:"datacenter"`
	Cloud      int `json:"cloud"`
	Office     int `json:"office"`
	Remote     int `json:"remote"`
}

type FleetStats struct {
	TotalMachines       int            `json:"totalMachines"`
	OnlineMachines      int            `json:"onlineMachines"`
	OfflineMachines     int            `json:"offlineMachines"`
	MaintenanceMachines int            `json:"maintenanceMachines"`
	VirtualMachines     int            `json:"virtualMachines"`
	PhysicalMachines    int            `json:"physicalMachines"`
	TotalIssues         int            `json:"totalIssues"`
	CriticalIssues      int            `json:"criticalIssues"`
	WarningIssues       int            `json:"warningIssues"`
	InfoIssues          int            `json:"infoIssues"`
	IssuesByType        IssueCounts    `json:"issuesByType"`
	LocationCounts      LocationCounts `json:"locationCounts"`
}

// FleetFilters narrows the fleet listing. Empty fields do not filter.
type FleetFilters struct {
	Location  LocationCategory `json:"location,omitempty"`
	IssueType IssueType        `json:"issueType,omitempty"`
	Status    MachineStatus    `json:"status,omitempty"`
	Search    string           `json:"search,omitempty"`
}
