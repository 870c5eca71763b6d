package format

import (
	"fmt"
	"strings"
	"time"
)

const (
	// Upstream timestamps are always UTC with a literal Z suffix.
	timestampLayout = "2006-01-02T15:04:05Z"
	displayLayout   = "02 Jan 2006 @ 1504 HRS"

	// All results are presented in GMT+8 regardless of server timezone.
	displayOffset = 8 * time.Hour

	searchBaseURL = "https://www.google.com/search?q="
)

var dayNames = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// Timestamp converts an ISO-8601 UTC timestamp into the display format,
// e.g. "2024-03-01T10:00:00Z" -> "01 Mar 2024 @ 1800 HRS".
func Timestamp(s string) (string, error) {
	t, err := time.Parse(timestampLayout, s)
	if err != nil {
		return "", fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t.Add(displayOffset).Format(displayLayout), nil
}

// DayTime is one endpoint of an opening-hours period. Day 0 is Sunday;
// Time is a 24-hour "HHMM" string.
type DayTime struct {
	Day  int    `json:"day"`
	Time string `json:"time"`
}

// Period is a single open/close span from place details. Either endpoint
// may be absent for always-open places.
type Period struct {
	Open  *DayTime `json:"open"`
	Close *DayTime `json:"close"`
}

// OpeningHours builds a weekday table from raw periods. Days without a
// period are omitted; when several periods cover the same day the last
// one wins. Any period missing an endpoint invalidates the whole table
// and yields an empty map.
func OpeningHours(periods []Period) map[string]string {
	hours := make(map[string]string)
	for day := 0; day < 7; day++ {
		for _, p := range periods {
			if p.Open == nil || p.Close == nil {
				return map[string]string{}
			}
			if p.Open.Day == day {
				hours[dayNames[day]] = p.Open.Time + "-" + p.Close.Time
			}
		}
	}
	return hours
}

// SearchURL builds a web-search citation link for a title. Only spaces
// are rewritten; other reserved characters pass through unescaped.
func SearchURL(title string) string {
	return searchBaseURL + strings.ReplaceAll(title, " ", "+")
}
