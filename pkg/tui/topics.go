package tui

import (
	"strings"

	"github.com/go-go-golems/screenctl/pkg/events"
)

// TopicEvents is where the bus mirrors every emitted event.
const TopicEvents = events.TopicEvents

const (
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// levelFor classifies an event by its name.
func levelFor(eventType string) string {
	name := eventType
	if i := strings.LastIndex(eventType, "/"); i >= 0 {
		name = eventType[i+1:]
	}
	switch {
	case strings.HasSuffix(name, "Failed"):
		return LevelError
	case strings.HasSuffix(name, "Removed"):
		return LevelWarn
	default:
		return LevelInfo
	}
}
