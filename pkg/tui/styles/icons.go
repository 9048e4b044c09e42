package styles

// Status icons
const (
	IconSuccess = "✓"
	IconError   = "✗"
	IconWarning = "⚠"
	IconInfo    = "ℹ"
	IconRunning = "▶"
	IconPending = "○"
	IconSkipped = "⊘"
	IconSystem  = "●"
	IconGear    = "⚙"
	IconBullet  = "•"
)

// MachineStatusIcon maps a machine status to a glyph.
func MachineStatusIcon(status string) string {
	switch status {
	case "online":
		return IconSuccess
	case "offline":
		return IconError
	case "maintenance":
		return IconGear
	default:
		return IconPending
	}
}

// SeverityIcon maps an alert or issue severity to a glyph.
func SeverityIcon(severity string) string {
	switch severity {
	case "critical", "error", "high":
		return IconError
	case "warning", "medium":
		return IconWarning
	case "info", "information", "low":
		return IconInfo
	default:
		return IconBullet
	}
}

// LogLevelIcon returns the appropriate icon for a log level.
func LogLevelIcon(level string) string {
	switch level {
	case "error", "ERROR":
		return IconError
	case "warn", "WARN", "warning", "WARNING":
		return IconWarning
	case "info", "INFO":
		return IconInfo
	default:
		return IconBullet
	}
}
