package execsummary

import (
	"sort"
	"time"

	"github.com/araddon/dateparse"
)

// ParseAlertTime reads the backend timestamp, which is not always RFC 3339.
// Zone-less values are taken as UTC.
func ParseAlertTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t.UTC(), true
}

// SortAlerts returns alerts newest first. Unparseable times sort last, then
// ties keep id order.
func SortAlerts(alerts []ActiveAlert) []ActiveAlert {
	type keyed struct {
		a  ActiveAlert
		t  time.Time
		ok bool
	}
	ks := make([]keyed, len(alerts))
	for i, a := range alerts {
		t, ok := ParseAlertTime(a.Time)
		ks[i] = keyed{a: a, t: t, ok: ok}
	}
	sort.SliceStable(ks, func(i, j int) bool {
		if ks[i].ok != ks[j].ok {
			return ks[i].ok
		}
		if !ks[i].t.Equal(ks[j].t) {
			return ks[i].t.After(ks[j].t)
		}
		return ks[i].a.ID < ks[j].a.ID
	})
	out := make([]ActiveAlert, len(ks))
	for i, k := range ks {
		out[i] = k.a
	}
	return out
}

// FilterBySeverity keeps alerts of sev. An empty sev keeps everything.
func FilterBySeverity(alerts []ActiveAlert, sev AlertSeverity) []ActiveAlert {
	out := make([]ActiveAlert, 0, len(alerts))
	for _, a := range alerts {
		if sev == "" || a.Severity == sev {
			out = append(out, a)
		}
	}
	return out
}

// CountBySeverity tallies alerts per severity.
func CountBySeverity(alerts []ActiveAlert) map[AlertSeverity]int {
	out := map[AlertSeverity]int{}
	for _, a := range alerts {
		out[a.Severity]++
	}
	return out
}

// NextSeverityFilter cycles all, then each severity from least severe.
func NextSeverityFilter(cur AlertSeverity) AlertSeverity {
	if cur == "" {
		return Severities[0]
	}
	i := cur.Rank()
	if i < 0 || i == len(Severities)-1 {
		return ""
	}
	return Severities[i+1]
}
