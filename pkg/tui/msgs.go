package tui

import "time"

type EventLogEntry struct {
	At    time.Time
	Type  string
	Level string
	Text  string
}

type EventLogAppendMsg struct {
	Entry EventLogEntry
}

// ForwarderStoppedMsg reports that the event forwarder returned.
type ForwarderStoppedMsg struct {
	Err error
}
