// Package execsummary is the executive-summary screenset: a rearrangeable
// widget dashboard over a protection summary, and an alerts list.
package execsummary

const ScreensetID = "executive-summary"

const (
	DashboardScreenID = "dashboard"
	AlertsScreenID    = "alerts"
)

// APIDomain is the API registry domain of the summary service.
const APIDomain = "executive-summary-api"

const (
	DashboardIconID = ScreensetID + ":dashboard"
	AlertsIconID    = ScreensetID + ":alerts"
)
