// Package sprint finds the active sprint among lists whose names carry a
// "(M/D - M/D)" date range, and narrows which spaces are worth scanning.
package sprint

import (
	"regexp"
	"strconv"
	"time"

	"github.com/baiirun/cu/internal/clickup"
)

// Matches "(2/12 - 2/25)", "(2/12-2/25)" and the en-dash variant.
var rangePattern = regexp.MustCompile(`\((\d{1,2})/(\d{1,2})\s*[-–]\s*(\d{1,2})/(\d{1,2})\)`)

// Range is an inclusive sprint window. End is 23:59:59 on the last day.
type Range struct {
	Start time.Time
	End   time.Time
}

func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// ParseDateRange extracts the date range from a list name. Names never carry
// a year, so both ends use the year of now; an end that falls before the
// start is moved into the following year.
func ParseDateRange(name string, now time.Time) (Range, bool) {
	m := rangePattern.FindStringSubmatch(name)
	if m == nil {
		return Range{}, false
	}
	num := func(s string) int {
		n, _ := strconv.Atoi(s)
		return n
	}

	year, loc := now.Year(), now.Location()
	start := time.Date(year, time.Month(num(m[1])), num(m[2]), 0, 0, 0, 0, loc)
	end := time.Date(year, time.Month(num(m[3])), num(m[4]), 23, 59, 59, 0, loc)
	if end.Before(start) {
		end = time.Date(year+1, time.Month(num(m[3])), num(m[4]), 23, 59, 59, 0, loc)
	}
	return Range{Start: start, End: end}, true
}

// ParseDates is ParseDateRange relative to the current time.
func ParseDates(name string) (Range, bool) {
	return ParseDateRange(name, time.Now())
}

// FindActive returns the first list whose range contains today. When none
// does it falls back to the last list, which is usually the newest sprint.
// It reports false only for an empty input.
func FindActive(lists []clickup.List, today time.Time) (clickup.List, bool) {
	if len(lists) == 0 {
		return clickup.List{}, false
	}
	for _, l := range lists {
		if r, ok := ParseDateRange(l.Name, today); ok && r.Contains(today) {
			return l, true
		}
	}
	return lists[len(lists)-1], true
}
