package models

import (
	"fmt"
	"regexp"
	"time"
)

// GlobalScope is the sentinel company tag for platform-level actors.
// A session never carries it as its own tenant scope.
const GlobalScope = "GLOBAL"

var clockPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// ValidClock reports whether s is a zero-padded wall-clock time ("HH:MM").
// Zero-padded clock strings order correctly under plain string comparison,
// which the conflict predicate relies on.
func ValidClock(s string) bool {
	return clockPattern.MatchString(s)
}

// ValidDate reports whether s is a calendar day in "YYYY-MM-DD" form.
func ValidDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// ValidateTimeRange checks a same-day [start, end) wall-clock interval.
func ValidateTimeRange(date, start, end string) error {
	if !ValidDate(date) {
		return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", date)
	}
	if !ValidClock(start) {
		return fmt.Errorf("invalid start time %q, expected HH:MM", start)
	}
	if !ValidClock(end) {
		return fmt.Errorf("invalid end time %q, expected HH:MM", end)
	}
	if start >= end {
		return fmt.Errorf("start time %s must be before end time %s", start, end)
	}
	return nil
}

// Overlaps reports whether two half-open [start, end) wall-clock intervals
// intersect. Intervals that merely touch at a boundary do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd string) bool {
	return aStart < bEnd && aEnd > bStart
}
