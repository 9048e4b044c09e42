package execsummary

const (
	WidgetCyberProtection        = "cyber-protection-summary"
	WidgetWorkloadsBackedUp      = "workloads-backed-up"
	WidgetMissingUpdates         = "missing-updates"
	WidgetAntimalwareScan        = "antimalware-scan"
	WidgetBlockedURLs            = "blocked-urls"
	WidgetAntimalwareBackups     = "antimalware-backups"
	WidgetThreatsDetected        = "threats-detected"
	WidgetWorkloadsProtection    = "workloads-protection"
	WidgetActiveAlerts           = "active-alerts"
	WidgetPatchedVulnerabilities = "patched-vulnerabilities"
	WidgetPatchesInstalled       = "patches-installed"
	WidgetStorageUsage           = "storage-usage"
	WidgetSoftwareHistory        = "software-history"
	WidgetSoftwareInventory      = "software-inventory"
)

// WidgetCatalog is every widget the dashboard can show, in default order.
var WidgetCatalog = []string{
	WidgetCyberProtection,
	WidgetWorkloadsBackedUp,
	WidgetMissingUpdates,
	WidgetAntimalwareScan,
	WidgetBlockedURLs,
	WidgetAntimalwareBackups,
	WidgetThreatsDetected,
	WidgetWorkloadsProtection,
	WidgetActiveAlerts,
	WidgetPatchedVulnerabilities,
	WidgetPatchesInstalled,
	WidgetStorageUsage,
	WidgetSoftwareHistory,
	WidgetSoftwareInventory,
}

func DefaultWidgets() []string {
	return append([]string{}, WidgetCatalog...)
}

func knownWidget(id string) bool {
	return indexOf(WidgetCatalog, id) >= 0
}

func indexOf(ids []string, id string) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}

// MoveWidget removes id from its index and inserts it at over's index. Unknown
// ids and id == over leave the order unchanged. The input is not modified.
func MoveWidget(order []string, id, over string) []string {
	from, to := indexOf(order, id), indexOf(order, over)
	out := append([]string{}, order...)
	if from < 0 || to < 0 || from == to {
		return out
	}
	out = append(out[:from], out[from+1:]...)
	out = append(out[:to], append([]string{id}, out[to:]...)...)
	return out
}

func RemoveWidget(order []string, id string) []string {
	out := make([]string, 0, len(order))
	for _, v := range order {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// AddWidget appends id if it is a catalog widget not already shown.
func AddWidget(order []string, id string) []string {
	out := append([]string{}, order...)
	if !knownWidget(id) || indexOf(order, id) >= 0 {
		return out
	}
	return append(out, id)
}

// HiddenWidgets lists catalog widgets missing from order, in catalog order.
func HiddenWidgets(order []string) []string {
	var out []string
	for _, id := range WidgetCatalog {
		if indexOf(order, id) < 0 {
			out = append(out, id)
		}
	}
	return out
}
