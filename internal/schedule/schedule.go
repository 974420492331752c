// Package schedule resolves calendar dates against the recurring item
// schedule and per-date overrides.
package schedule

import (
	"fmt"
	"time"
)

// Day-of-week labels, indexed by time.Weekday (0 = Sunday).
var dayLabels = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// Days lists all day-of-week labels in week order, Sunday first.
func Days() []string {
	return dayLabels[:]
}

// ValidDay reports whether the label names a day of the week.
func ValidDay(label string) bool {
	for _, d := range dayLabels {
		if d == label {
			return true
		}
	}
	return false
}

// DateKey formats a date as its canonical YYYY-MM-DD key using the date's
// local calendar fields. Formatting must not go through a UTC timestamp:
// near midnight that shifts the date by a day.
func DateKey(t time.Time) string {
	return fmt.Sprintf("%04d-%02d-%02d", t.Year(), int(t.Month()), t.Day())
}

// DayOfWeek returns the day label for the date's local weekday.
func DayOfWeek(t time.Time) string {
	return dayLabels[t.Weekday()]
}

// ParseDateKey parses a YYYY-MM-DD key back into a local-time date.
func ParseDateKey(key string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", key, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date key %q: %w", key, err)
	}
	return t, nil
}
