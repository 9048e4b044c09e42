package monitoring

import (
	"github.com/go-go-golems/screenctl/pkg/events"
)

type MachinesFetched struct {
	Machines []MachineInfo `json:"machines"`
}

type MachineSelected struct {
	MachineID string `json:"machineId"`
}

// FetchFailed carries the normalised failure message of a fetch.
type FetchFailed struct {
	Error string `json:"error"`
}

type MetricsFetched struct {
	CurrentMetrics MetricsSnapshot   `json:"currentMetrics"`
	RangeMetrics   []MetricsSnapshot `json:"rangeMetrics"`
}

type TimeRangeChanged struct {
	TimeRange TimeRange `json:"timeRange"`
}

type ProcessesFetched struct {
	Processes []Process `json:"processes"`
}

type FleetFetched struct {
	Machines   []MachineFleetInfo `json:"machines"`
	Statistics FleetStats         `json:"statistics"`
}

func eventName(domain, name string) string {
	return ScreensetID + "/" + domain + "/" + name
}

var MachinesEvents = struct {
	Fetched     events.Topic[MachinesFetched]
	Selected    events.Topic[MachineSelected]
	FetchFailed events.Topic[FetchFailed]
}{
	Fetched:     events.NewTopic[MachinesFetched](eventName("machines", "fetched")),
	Selected:    events.NewTopic[MachineSelected](eventName("machines", "selected")),
	FetchFailed: events.NewTopic[FetchFailed](eventName("machines", "fetchFailed")),
}

var MetricsEvents = struct {
	Fetched          events.Topic[MetricsFetched]
	TimeRangeChanged events.Topic[TimeRangeChanged]
	FetchFailed      events.Topic[FetchFailed]
}{
	Fetched:          events.NewTopic[MetricsFetched](eventName("metrics", "fetched")),
	TimeRangeChanged: events.NewTopic[TimeRangeChanged](eventName("metrics", "timeRangeChanged")),
	FetchFailed:      events.NewTopic[FetchFailed](eventName("metrics", "fetchFailed")),
}

var ProcessesEvents = struct {
	Fetched     events.Topic[ProcessesFetched]
	FetchFailed events.Topic[FetchFailed]
}{
	Fetched:     events.NewTopic[ProcessesFetched](eventName("processes", "fetched")),
	FetchFailed: events.NewTopic[FetchFailed](eventName("processes", "fetchFailed")),
}

var FleetEvents = struct {
	Fetched     events.Topic[FleetFetched]
	FetchFailed events.Topic[FetchFailed]
}{
	Fetched:     events.NewTopic[FleetFetched](eventName("fleet", "fetched")),
	FetchFailed: events.NewTopic[FetchFailed](eventName("fleet", "fetchFailed")),
}

// DataEvents signal that an aggregate fetch has started.
var DataEvents = struct {
	DashboardFetchStarted events.Topic[events.Empty]
	FleetFetchStarted     events.Topic[events.Empty]
}{
	DashboardFetchStarted: events.NewTopic[events.Empty](eventName("data", "dashboardFetchStarted")),
	FleetFetchStarted:     events.NewTopic[events.Empty](eventName("data", "fleetFetchStarted")),
}

// DeclareEvents registers every event of the screenset with its payload type.
func DeclareEvents(b *events.Bus) error {
	for _, err := range []error{
		events.Declare(b, MachinesEvents.Fetched),
		events.Declare(b, MachinesEvents.Selected),
		events.Declare(b, MachinesEvents.FetchFailed),
		events.Declare(b, MetricsEvents.Fetched),
		events.Declare(b, MetricsEvents.TimeRangeChanged),
		events.Declare(b, MetricsEvents.FetchFailed),
		events.Declare(b, ProcessesEvents.Fetched),
		events.Declare(b, ProcessesEvents.FetchFailed),
		events.Declare(b, FleetEvents.Fetched),
		events.Declare(b, FleetEvents.FetchFailed),
		events.Declare(b, DataEvents.DashboardFetchStarted),
		events.Declare(b, DataEvents.FleetFetchStarted),
	} {
		if err != nil {
			return err
		}
	}
	return nil
}
