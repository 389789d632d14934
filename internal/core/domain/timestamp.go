package domain

import (
	"regexp"
	"strings"
	"time"
)

// InfoTimestampLayout is the layout of the "Info updated" timestamps published by the freshness source.
const InfoTimestampLayout = "2 Jan 2006, 3:04PM"

var meridiemRegex = regexp.MustCompile(`(?i)\s*(am|pm)\b`)

// ParseInfoTimestamp parses a freshness source timestamp such as "5 Jan 3310, 3:04 pm" in loc.
// Whitespace runs and meridiem case are normalized first.
func ParseInfoTimestamp(s string, loc *time.Location) (time.Time, bool) {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return time.Time{}, false
	}
	s = meridiemRegex.ReplaceAllStringFunc(s, func(m string) string {
		return strings.ToUpper(strings.TrimSpace(m))
	})
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(InfoTimestampLayout, s, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FormatInfoTimestamp renders t the way the freshness source displays it, in lower case.
func FormatInfoTimestamp(t time.Time) string {
	return strings.ToLower(t.Format(InfoTimestampLayout))
}
