package payload

import (
	"fmt"
	"strings"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

var dateTimeLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
	DateLayout,
}

// ClockHHMM cuts a "15:04:05" style value down to "15:04".
func ClockHHMM(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > 5 {
		return s[:5]
	}
	return s
}

// ParseClock validates s as a time of day and returns it as HH:MM.
func ParseClock(s string) (string, error) {
	hhmm := ClockHHMM(s)
	if _, err := time.Parse(ClockLayout, hhmm); err != nil {
		return "", fmt.Errorf("invalid time %q", s)
	}
	return hhmm, nil
}

// CombineDateTime joins a calendar date and a time of day in loc.
func CombineDateTime(date, clock string, loc *time.Location) (time.Time, error) {
	hhmm, err := ParseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.ParseInLocation(DateLayout+" "+ClockLayout, strings.TrimSpace(date)+" "+hhmm, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", date)
	}
	return t, nil
}

// ParseDateTime accepts RFC 3339 timestamps and the datetime-local, date-time
// and date-only forms a browser sends. Values without an offset are read in loc.
func ParseDateTime(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	for _, layout := range dateTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}
