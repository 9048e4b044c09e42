package execsummary

type AlertSeverity string

const (
	SeverityInformation AlertSeverity = "information"
	SeverityWarning     AlertSeverity = "warning"
	SeverityError       AlertSeverity = "error"
	SeverityCritical    AlertSeverity = "critical"
)

// Severities lists severities from least to most severe.
var Severities = []AlertSeverity{SeverityInformation, SeverityWarning, SeverityError, SeverityCritical}

// Rank orders severities; unknown values rank below information.
func (s AlertSeverity) Rank() int {
	for i, v := range Severities {
		if v == s {
			return i
		}
	}
	return -1
}

type SoftwareStatus string

const (
	SoftwareNoChange SoftwareStatus = "no_change"
	SoftwareUpdated  SoftwareStatus = "updated"
	SoftwareNew      SoftwareStatus = "new"
	SoftwareRemoved  SoftwareStatus = "removed"
)

type WorkloadType string

const (
	WorkloadServers           WorkloadType = "servers"
	WorkloadWorkstations      WorkloadType = "workstations"
	WorkloadVirtualMachines   WorkloadType = "virtual_machines"
	WorkloadWebHostingServers WorkloadType = "web_hosting_servers"
	WorkloadMobileDevices     WorkloadType = "mobile_devices"
)

type CyberProtectionSummary struct {
	DataBackedUp             string `json:"dataBackedUp"`
	MitigatedThreats         int    `json:"mitigatedThreats"`
	MaliciousURLsBlocked     int    `json:"maliciousUrlsBlocked"`
	PatchedVulnerabilities   int    `json:"patchedVulnerabilities"`
	InstalledPatches         int    `json:"installedPatches"`
	ServersProtectedWithDR   int    `json:"serversProtectedWithDr"`
	FileSyncShareUsers       int    `json:"fileSyncShareUsers"`
	NotarizedFiles           int    `json:"notarizedFiles"`
	ESignedDocuments         int    `json:"eSignedDocuments"`
	BlockedPeripheralDevices int    `json:"blockedPeripheralDevices"`
}

type ChartItem struct {
	Label string `json:"label"`
	Value int    `json:"value"`
	Color string `json:"color"`
}

// Breakdown is a total split into labelled parts.
type Breakdown struct {
	Total int         `json:"total"`
	Items []ChartItem `json:"items"`
}

type Progress struct {
	Current int `json:"current"`
	Total   int `json:"total"`
}

type PatchedVulnerabilities struct {
	Breakdown
	WorkloadsScanned Progress `json:"workloadsScanned"`
}

type PatchesInstalled struct {
	Breakdown
	WorkloadsPatched Progress `json:"workloadsPatched"`
}

type AntimalwareScanResults struct {
	TotalFiles       int         `json:"totalFiles"`
	Items            []ChartItem `json:"items"`
	DevicesProtected Progress    `json:"devicesProtected"`
}

type FileSyncShareStats struct {
	TotalCloudStorageUsed int `json:"totalCloudStorageUsed"`
	EndUsers              int `json:"endUsers"`
	GuestUsers            int `json:"guestUsers"`
	AverageStoragePerUser int `json:"averageStoragePerUser"`
}

type FileSyncShareStorageUsage struct {
	TotalEndUsers int         `json:"totalEndUsers"`
	Items         []ChartItem `json:"items"`
}

type WorkloadProtectionItem struct {
	Type        WorkloadType `json:"type"`
	Label       string       `json:"label"`
	Protected   int          `json:"protected"`
	Unprotected int          `json:"unprotected"`
	Total       int          `json:"total"`
}

type WorkloadsProtectionStatus struct {
	TotalProtected   int                      `json:"totalProtected"`
	TotalUnprotected int                      `json:"totalUnprotected"`
	Total            int                      `json:"total"`
	Items            []WorkloadProtectionItem `json:"items"`
}

// ActiveAlert keeps Time as the backend sends it; see ParseAlertTime.
type ActiveAlert struct {
	ID         string        `json:"id"`
	Time       string        `json:"time"`
	Type       string        `json:"type"`
	Severity   AlertSeverity `json:"severity"`
	DeviceName string        `json:"deviceName"`
	PlanName   string        `json:"planName"`
	Message    string        `json:"message"`
}

type SoftwareInventoryItem struct {
	ID              string         `json:"id"`
	SoftwareName    string         `json:"softwareName"`
	SoftwareVersion string         `json:"softwareVersion"`
	VendorName      string         `json:"vendorName"`
	Status          SoftwareStatus `json:"status"`
	DateInstalled   *string        `json:"dateInstalled"`
	ScanTime        string         `json:"scanTime"`
}

type DeviceSoftwareInventory struct {
	DeviceName string                  `json:"deviceName"`
	Items      []SoftwareInventoryItem `json:"items"`
}

type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type Summary struct {
	CustomerName              string                    `json:"customerName"`
	DateRange                 DateRange                 `json:"dateRange"`
	GeneratedAt               string                    `json:"generatedAt"`
	CyberProtectionSummary    CyberProtectionSummary    `json:"cyberProtectionSummary"`
	MissingUpdates            Breakdown                 `json:"missingUpdates"`
	WorkloadsBackedUp         Breakdown                 `json:"workloadsBackedUp"`
	WorkloadsProtectionStatus WorkloadsProtectionStatus `json:"workloadsProtectionStatus"`
	ActiveAlerts              []ActiveAlert             `json:"activeAlerts"`
	PatchedVulnerabilities    PatchedVulnerabilities    `json:"patchedVulnerabilities"`
	PatchesInstalled          PatchesInstalled          `json:"patchesInstalled"`
	AntimalwareScanOfFiles    AntimalwareScanResults    `json:"antimalwareScanOfFiles"`
	FileSyncShareStats        FileSyncShareStats        `json:"fileSyncShareStats"`
	FileSyncShareStorageUsage FileSyncShareStorageUsage `json:"fileSyncShareStorageUsage"`
	SoftwareInventory         []DeviceSoftwareInventory `json:"softwareInventory"`
}
