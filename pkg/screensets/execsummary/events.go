package execsummary

import "github.com/go-go-golems/screenctl/pkg/events"

type SummaryFetched struct {
	Summary Summary `json:"summary"`
}

type FetchFailed struct {
	Error string `json:"error"`
}

// WidgetMoved places WidgetID where OverID currently is.
type WidgetMoved struct {
	WidgetID string `json:"widgetId"`
	OverID   string `json:"overId"`
}

type WidgetChanged struct {
	WidgetID string `json:"widgetId"`
}

type AlertsFetched struct {
	Alerts []ActiveAlert `json:"alerts"`
}

type SeverityFilterChanged struct {
	Severity AlertSeverity `json:"severity"`
}

func eventName(domain, name string) string {
	return ScreensetID + "/" + domain + "/" + name
}

var DashboardEvents = struct {
	FetchStarted  events.Topic[events.Empty]
	Fetched       events.Topic[SummaryFetched]
	FetchFailed   events.Topic[FetchFailed]
	WidgetMoved   events.Topic[WidgetMoved]
	WidgetRemoved events.Topic[WidgetChanged]
	WidgetAdded   events.Topic[WidgetChanged]
}{
	FetchStarted:  events.NewTopic[events.Empty](eventName("dashboard", "fetchStarted")),
	Fetched:       events.NewTopic[SummaryFetched](eventName("dashboard", "fetched")),
	FetchFailed:   events.NewTopic[FetchFailed](eventName("dashboard", "fetchFailed")),
	WidgetMoved:   events.NewTopic[WidgetMoved](eventName("dashboard", "widgetMoved")),
	WidgetRemoved: events.NewTopic[WidgetChanged](eventName("dashboard", "widgetRemoved")),
	WidgetAdded:   events.NewTopic[WidgetChanged](eventName("dashboard", "widgetAdded")),
}

var AlertsEvents = struct {
	FetchStarted          events.Topic[events.Empty]
	Fetched               events.Topic[AlertsFetched]
	FetchFailed           events.Topic[FetchFailed]
	SeverityFilterChanged events.Topic[SeverityFilterChanged]
}{
	FetchStarted:          events.NewTopic[events.Empty](eventName("alerts", "fetchStarted")),
	Fetched:               events.NewTopic[AlertsFetched](eventName("alerts", "fetched")),
	FetchFailed:           events.NewTopic[FetchFailed](eventName("alerts", "fetchFailed")),
	SeverityFilterChanged: events.NewTopic[SeverityFilterChanged](eventName("alerts", "severityFilterChanged")),
}

func DeclareEvents(b *events.Bus) error {
	for _, err := range []error{
		events.Declare(b, DashboardEvents.FetchStarted),
		events.Declare(b, DashboardEvents.Fetched),
		events.Declare(b, DashboardEvents.FetchFailed),
		events.Declare(b, DashboardEvents.WidgetMoved),
		events.Declare(b, DashboardEvents.WidgetRemoved),
		events.Declare(b, DashboardEvents.WidgetAdded),
		events.Declare(b, AlertsEvents.FetchStarted),
		events.Declare(b, AlertsEvents.Fetched),
		events.Declare(b, AlertsEvents.FetchFailed),
		events.Declare(b, AlertsEvents.SeverityFilterChanged),
	} {
		if err != nil {
			return err
		}
	}
	return nil
}
