package execsummary

import (
	"hash/fnv"
	"math/rand"
	"strconv"
	"time"

	"github.com/go-go-golems/screenctl/pkg/api"
)

// Fixtures builds the canned summary. Random figures are seeded from the
// calendar day, so a day's responses are stable.
type Fixtures struct {
	Now func() time.Time
}

func NewFixtures(now func() time.Time) *Fixtures {
	if now == nil {
		now = time.Now
	}
	return &Fixtures{Now: now}
}

type dice struct {
	r *rand.Rand
}

func (d dice) between(lo, hi int) int {
	return lo + d.r.Intn(hi-lo+1)
}

func (f *Fixtures) dice(now time.Time) dice {
	h := fnv.New64a()
	_, _ = h.Write([]byte(ScreensetID + "|" + now.Format(time.DateOnly)))
	return dice{r: rand.New(rand.NewSource(int64(h.Sum64())))}
}

func str(s string) *string { return &s }

var fixtureAlerts = []ActiveAlert{
	{ID: "1", Time: "2025-12-03T14:01:00Z", Type: "Low CPU usage", Severity: SeverityInformation, DeviceName: "DESKTOP-FA47EAL", PlanName: "Recommended monitoring for servers", Message: "The CPU usage of workload 'DESKTOP-FA47EAL' was below 20 % for a period of 10 minutes."},
	{ID: "2", Time: "2025-12-03T13:07:00Z", Type: "Restart required to complete the agent installation", Severity: SeverityWarning, DeviceName: "WIN-4H8TV8C4NDH", Message: "Installation of agent '25.8.40800' completed successfully. Please restart 'WIN-4H8TV8C4NDH' to apply the changes."},
	{ID: "3", Time: "2025-12-03T11:09:00Z", Type: "Restart required to complete the agent installation", Severity: SeverityWarning, DeviceName: "DESKTOP-FA47EAL", Message: "Installation of agent '25.7.40497' completed successfully. Please restart 'DESKTOP-FA47EAL' to apply the changes."},
	{ID: "4", Time: "2025-12-03T00:14:00Z", Type: "Disabled antimalware software", Severity: SeverityWarning, DeviceName: "testing", PlanName: "Monitoring plan - default", Message: "'Cyber Protect' is not running on workload 'testing'."},
	{ID: "5", Time: "2025-12-02T17:44:00Z", Type: "Protection plan conflict detected", Severity: SeverityWarning, DeviceName: "WIN-4H8TV8C4NDH", PlanName: "New protection plan (3)", Message: "There is a conflict between protection plan 'Protection plan - for all in customer[policy.security.patch_management]', currently applied to device 'WIN-4H8TV8C4NDH', and protection plan 'New protection plan (3)' from dynamic group 'All'. The following plans applied to 'WIN-4H8TV8C4NDH' will be disabled 'New protection plan (3)'."},
	{ID: "6", Time: "2025-12-02T07:03:00Z", Type: "Protection plan conflict detected", Severity: SeverityWarning, DeviceName: "DESKTOP-FA47EAL", PlanName: "Duos plan", Message: "There is a conflict between protection plan 'Protection plan - for all in customer[policy.security.url_filtering]', currently applied to device 'DESKTOP-FA47EAL', and protection plan 'Duos plan' from dynamic group 'All'. The following plans applied to 'DESKTOP-FA47EAL' will be disabled 'Duos plan'."},
}

type sw struct {
	name, version, vendor string
	status                SoftwareStatus
	installed             string
}

var fixtureInventory = []struct {
	device string
	scan   string
	items  []sw
}{
	{"DESKTOP-FA47EAL", "2025-12-02T21:45:00Z", []sw{
		{"7-Zip", "24.07", "Igor Pavlov", SoftwareNoChange, ""},
		{"7-Zip", "23.01.00.0", "Igor Pavlov", SoftwareNoChange, "2025-09-01T03:00:00Z"},
		{"Cyber Protect", "25.10.41225", "Acronis", SoftwareNoChange, ""},
		{"Far Manager 3", "3.0.6116", "Eugene Roshal & Far Group", SoftwareNoChange, "2023-04-22T03:00:00Z"},
		{"Google Chrome", "142.0.7444.176", "Google LLC", SoftwareNoChange, "2025-11-20T02:00:00Z"},
		{"Mozilla Firefox", "143.0.1", "Mozilla", SoftwareNoChange, ""},
		{"Mozilla Maintenance Service", "143.0.1", "Mozilla", SoftwareNoChange, ""},
		{"Notepad++", "8.8.1", "Notepad++ Team", SoftwareNoChange, ""},
		{"Windows Defender", "-", "Microsoft", SoftwareNoChange, ""},
		{"WinRAR", "7.13.0", "win.rar GmbH", SoftwareNoChange, ""},
	}},
	{"WIN-4H8TV8C4NDH", "2025-12-02T17:51:00Z", []sw{
		{"7-Zip", "23.01.00.0", "Igor Pavlov", SoftwareNoChange, "2025-09-01T03:00:00Z"},
		{"Beyond Compare", "5.0.5.30614", "Scooter Software", SoftwareNoChange, "2025-03-20T02:00:00Z"},
		{"Cyber Protect", "25.6.40217", "Acronis", SoftwareNoChange, ""},
		{"Far Manager 3", "3.0.6116", "Eugene Roshal & Far Group", SoftwareNoChange, "2023-04-18T03:00:00Z"},
		{"FileZilla", "3.67.1", "Tim Kosse", SoftwareNoChange, ""},
		{"Google Chrome", "142.0.7444.176", "Google LLC", SoftwareNoChange, "2025-11-20T02:00:00Z"},
		{"Mozilla Firefox", "127.0", "Mozilla", SoftwareNoChange, ""},
		{"Mozilla Maintenance Service", "108.0.2", "Mozilla", SoftwareNoChange, ""},
		{"Notepad++", "8.8.1", "Notepad++ Team", SoftwareNoChange, ""},
		{"Postman", "9.31.0", "Postman", SoftwareNoChange, "2022-09-29T03:00:00Z"},
		{"Python", "3.11.1150.0", "Python Software Foundation", SoftwareNoChange, ""},
		{"Python Launcher", "3.11.8009.0", "Python Software Foundation", SoftwareNoChange, "2023-01-05T02:00:00Z"},
		{"Windows Defender", "-", "Microsoft", SoftwareNoChange, ""},
		{"WinRAR", "7.13.0", "win.rar GmbH", SoftwareNoChange, ""},
	}},
	{"testing", "2025-11-17T16:00:00Z", []sw{
		{"Acronis Cyber Protect", "25.10.1129", "Acronis International GmbH", SoftwareUpdated, "2025-11-17T15:42:00Z"},
		{"atp-context-menu-service", "1", "Acronis International GmbH", SoftwareNoChange, "2025-11-17T15:42:00Z"},
		{"Connect Agent", "25037", "Acronis International GmbH", SoftwareUpdated, "2025-11-17T15:42:00Z"},
		{"Cyber Protect Agent", "25.10.41225", "Acronis International GmbH (ZU2TV78AA6)", SoftwareUpdated, "2025-11-17T15:42:00Z"},
	}},
}

// Alerts returns a fresh copy of the canned alerts.
func (f *Fixtures) Alerts() []ActiveAlert {
	return append([]ActiveAlert{}, fixtureAlerts...)
}

func (f *Fixtures) SoftwareInventory() []DeviceSoftwareInventory {
	out := make([]DeviceSoftwareInventory, 0, len(fixtureInventory))
	n := 0
	for _, dev := range fixtureInventory {
		inv := DeviceSoftwareInventory{DeviceName: dev.device, Items: make([]SoftwareInventoryItem, 0, len(dev.items))}
		for _, it := range dev.items {
			n++
			item := SoftwareInventoryItem{
				ID:              strconv.Itoa(n),
				SoftwareName:    it.name,
				SoftwareVersion: it.version,
				VendorName:      it.vendor,
				Status:          it.status,
				ScanTime:        dev.scan,
			}
			if it.installed != "" {
				item.DateInstalled = str(it.installed)
			}
			inv.Items = append(inv.Items, item)
		}
		out = append(out, inv)
	}
	return out
}

// Summary covers the month up to the fixture clock's day.
func (f *Fixtures) Summary() *Summary {
	now := f.Now().UTC()
	d := f.dice(now)
	return &Summary{
		CustomerName: "FE",
		DateRange: DateRange{
			Start: now.AddDate(0, -1, 0).Format(time.DateOnly),
			End:   now.Format(time.DateOnly),
		},
		GeneratedAt: now.Format(time.RFC3339),
		CyberProtectionSummary: CyberProtectionSummary{
			DataBackedUp:             "19.18 GB",
			MitigatedThreats:         d.between(5, 50),
			MaliciousURLsBlocked:     d.between(10, 100),
			PatchedVulnerabilities:   66,
			InstalledPatches:         7,
			ServersProtectedWithDR:   d.between(1, 10),
			FileSyncShareUsers:       3,
			NotarizedFiles:           d.between(5, 30),
			ESignedDocuments:         d.between(2, 20),
			BlockedPeripheralDevices: d.between(1, 15),
		},
		MissingUpdates: Breakdown{Total: 12, Items: []ChartItem{
			{Label: "Security updates", Value: d.between(2, 8), Color: "#3b82f6"},
			{Label: "Critical updates", Value: d.between(1, 5), Color: "#22c55e"},
			{Label: "Other", Value: d.between(3, 12), Color: "#6366f1"},
		}},
		WorkloadsBackedUp: Breakdown{Total: 5, Items: []ChartItem{
			{Label: "Backed up", Value: 2, Color: "#22c55e"},
			{Label: "Not backed up", Value: 3, Color: "#f59e0b"},
		}},
		WorkloadsProtectionStatus: WorkloadsProtectionStatus{
			TotalProtected:   4,
			TotalUnprotected: 1,
			Total:            5,
			Items: []WorkloadProtectionItem{
				{Type: WorkloadServers, Label: "Servers", Protected: d.between(1, 3), Unprotected: d.between(0, 2), Total: d.between(2, 5)},
				{Type: WorkloadWorkstations, Label: "Workstations", Protected: d.between(2, 5), Unprotected: d.between(0, 1), Total: d.between(3, 6)},
				{Type: WorkloadVirtualMachines, Label: "Virtual machines", Protected: 3, Unprotected: 1, Total: 4},
				{Type: WorkloadWebHostingServers, Label: "Web hosting servers", Protected: d.between(0, 2), Unprotected: d.between(0, 1), Total: d.between(1, 3)},
				{Type: WorkloadMobileDevices, Label: "Mobile devices", Protected: d.between(1, 4), Unprotected: d.between(0, 2), Total: d.between(2, 6)},
			},
		},
		ActiveAlerts: f.Alerts(),
		PatchedVulnerabilities: PatchedVulnerabilities{
			Breakdown: Breakdown{Total: 66, Items: []ChartItem{
				{Label: "Microsoft vulnerabilities", Value: 50, Color: "#3b82f6"},
				{Label: "Windows third-party vulnerabilities", Value: 16, Color: "#22c55e"},
			}},
			WorkloadsScanned: Progress{Current: 4, Total: 5},
		},
		PatchesInstalled: PatchesInstalled{
			Breakdown: Breakdown{Total: 7, Items: []ChartItem{
				{Label: "Microsoft patches", Value: 3, Color: "#3b82f6"},
				{Label: "Windows third-party patches", Value: 4, Color: "#22c55e"},
			}},
			WorkloadsPatched: Progress{Current: 3, Total: 5},
		},
		AntimalwareScanOfFiles: AntimalwareScanResults{
			TotalFiles: 926549,
			Items: []ChartItem{
				{Label: "Clean", Value: 926549, Color: "#22c55e"},
				{Label: "Detected, quarantined", Value: d.between(5, 25), Color: "#f59e0b"},
				{Label: "Detected, not quarantined", Value: d.between(1, 10), Color: "#ef4444"},
			},
			DevicesProtected: Progress{Current: d.between(3, 5), Total: 5},
		},
		FileSyncShareStats: FileSyncShareStats{EndUsers: 3},
		FileSyncShareStorageUsage: FileSyncShareStorageUsage{
			TotalEndUsers: 3,
			Items: []ChartItem{
				{Label: "0 - 1 GB", Value: d.between(5, 15), Color: "#84cc16"},
				{Label: "1 - 5 GB", Value: d.between(3, 10), Color: "#3b82f6"},
				{Label: "5 - 10 GB", Value: d.between(2, 8), Color: "#6366f1"},
				{Label: "10 - 50 GB", Value: d.between(1, 5), Color: "#8b5cf6"},
				{Label: "50 - 100 GB", Value: d.between(0, 3), Color: "#06b6d4"},
				{Label: "100 - 500 GB", Value: d.between(0, 2), Color: "#f59e0b"},
				{Label: "500 GB - 1 TB", Value: d.between(0, 1), Color: "#22c55e"},
				{Label: "1+ TB", Value: d.between(0, 1), Color: "#9ca3af"},
			},
		},
		SoftwareInventory: f.SoftwareInventory(),
	}
}

// MockMap answers the summary endpoints, relative to /api.
func MockMap(f *Fixtures) api.MockMap {
	return api.MockMap{
		"GET /executive-summary":                    func() any { return f.Summary() },
		"GET /executive-summary/alerts":             func() any { return f.Alerts() },
		"GET /executive-summary/software-inventory": func() any { return f.SoftwareInventory() },
	}
}
