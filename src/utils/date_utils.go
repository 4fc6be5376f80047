package utils

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

type dateLayout struct {
	pattern               *regexp.Regexp
	dayIdx, monIdx, yrIdx int
}

// Accepted layouts, in priority order.
var dateLayouts = []dateLayout{
	{regexp.MustCompile(`^(\d{2})/(\d{2})/(\d{4})$`), 1, 2, 3},
	{regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`), 3, 2, 1},
	{regexp.MustCompile(`^(\d{2})-(\d{2})-(\d{4})$`), 1, 2, 3},
}

// ParseDate parses a broker date string. It accepts DD/MM/YYYY, YYYY-MM-DD and
// DD-MM-YYYY and returns midnight UTC of that day. Empty values, the
// "not known" sentinel and impossible calendar dates report ok == false.
func ParseDate(dateStr string) (time.Time, bool) {
	s := strings.TrimSpace(dateStr)
	if s == "" || strings.EqualFold(s, "not known") {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		m := layout.pattern.FindStringSubmatch(s)
		if m == nil {
			continue
		}
		day, _ := strconv.Atoi(m[layout.dayIdx])
		month, _ := strconv.Atoi(m[layout.monIdx])
		year, _ := strconv.Atoi(m[layout.yrIdx])
		return calendarDate(year, month, day)
	}
	return time.Time{}, false
}

// calendarDate builds a UTC date, rejecting components time.Date would
// otherwise normalise (31/02 rolling into March).
func calendarDate(year, month, day int) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}
