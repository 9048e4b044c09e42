package execsummary

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func ids(alerts []ActiveAlert) []string {
	out := make([]string, len(alerts))
	for i, a := range alerts {
		out[i] = a.ID
	}
	return out
}

func TestParseAlertTime(t *testing.T) {
	ts, ok := ParseAlertTime("2025-12-03T14:01:00Z")
	require.True(t, ok)
	require.Equal(t, time.Date(2025, 12, 3, 14, 1, 0, 0, time.UTC), ts)

	ts, ok = ParseAlertTime("2025-12-03 15:30:00")
	require.True(t, ok)
	require.Equal(t, time.Date(2025, 12, 3, 15, 30, 0, 0, time.UTC), ts)

	_, ok = ParseAlertTime("")
	require.False(t, ok)
}

func TestSortAlerts_NewestFirst(t *testing.T) {
	alerts := []ActiveAlert{
		{ID: "old", Time: "2025-12-01T08:00:00Z"},
		{ID: "blank", Time: ""},
		{ID: "new", Time: "2025-12-03 15:30:00"},
		{ID: "mid", Time: "2025-12-02T09:00:00+01:00"},
	}
	require.Equal(t, []string{"new", "mid", "old", "blank"}, ids(SortAlerts(alerts)))
	require.Equal(t, "old", alerts[0].ID, "input must not be modified")

	fx := NewFixtures(fixedClock)
	require.Equal(t, []string{"1", "2", "3", "4", "5", "6"}, ids(SortAlerts(fx.Alerts())))
}

func TestFilterBySeverity(t *testing.T) {
	alerts := NewFixtures(fixedClock).Alerts()

	require.Len(t, FilterBySeverity(alerts, ""), 6)
	require.Equal(t, []string{"1"}, ids(FilterBySeverity(alerts, SeverityInformation)))
	require.Len(t, FilterBySeverity(alerts, SeverityWarning), 5)
	require.Empty(t, FilterBySeverity(alerts, SeverityCritical))

	require.Equal(t, map[AlertSeverity]int{SeverityInformation: 1, SeverityWarning: 5}, CountBySeverity(alerts))
}

func TestNextSeverityFilter(t *testing.T) {
	var seen []AlertSeverity
	cur := AlertSeverity("")
	for i := 0; i < 5; i++ {
		cur = NextSeverityFilter(cur)
		seen = append(seen, cur)
	}
	require.Equal(t, []AlertSeverity{SeverityInformation, SeverityWarning, SeverityError, SeverityCritical, ""}, seen)
	require.Equal(t, AlertSeverity(""), NextSeverityFilter("bogus"))
}
