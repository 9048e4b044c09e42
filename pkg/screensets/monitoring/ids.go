// Package monitoring is the machine-monitoring screenset: a fleet overview
// and a per-machine dashboard with metrics and processes.
package monitoring

// ScreensetID namespaces every event, slice, translation key and API domain
// of this module.
const ScreensetID = "machine-monitoring"

const (
	MachinesListScreenID = "machines-list"
	DashboardScreenID    = "dashboard"
)

// MonitoringDomain is the API registry domain of the monitoring service.
const MonitoringDomain = ScreensetID + ":monitoring"

const (
	MonitorIconID = ScreensetID + ":monitor"
	ServerIconID  = ScreensetID + ":server"
)
