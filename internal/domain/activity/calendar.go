package activity

import (
	"fmt"
	"time"
)

// DayKeyLayout is the canonical day-bucket key format.
const DayKeyLayout = "2006-01-02"

// All calendar arithmetic in this package is done on UTC calendar days. The
// mobile client this service replaced mixed UTC bucketing with local-time
// "is today" checks, which mis-bucketed steps near midnight in offset
// timezones; the server normalizes everything to UTC instead.

// DateKey normalizes an instant to its UTC calendar day and formats it as
// YYYY-MM-DD. Two instants on the same UTC day always share a key.
func DateKey(t time.Time) string {
	return t.UTC().Format(DayKeyLayout)
}

// ParseDateKey parses a YYYY-MM-DD key back to midnight UTC of that day.
func ParseDateKey(key string) (time.Time, error) {
	t, err := time.ParseInLocation(DayKeyLayout, key, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day key %q: %w", key, err)
	}
	return t, nil
}

// Midnight truncates an instant to midnight UTC of its calendar day.
func Midnight(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// StartOfWeek returns the most recent day <= t whose weekday equals
// weekStart (0=Sunday..6=Saturday), at midnight UTC.
func StartOfWeek(t time.Time, weekStart int) time.Time {
	day := Midnight(t)
	diff := (int(day.Weekday()) - weekStart + 7) % 7
	return day.AddDate(0, 0, -diff)
}

// EndOfWeek returns the last instant of the week containing t.
func EndOfWeek(t time.Time, weekStart int) time.Time {
	return StartOfWeek(t, weekStart).AddDate(0, 0, 7).Add(-time.Millisecond)
}

// StartOfMonth returns the first day of the month containing t, midnight UTC.
func StartOfMonth(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// DaysInMonth returns the calendar length (28-31) of the month containing t.
func DaysInMonth(t time.Time) int {
	start := StartOfMonth(t)
	return start.AddDate(0, 1, -1).Day()
}

// AddDays shifts t by n calendar days.
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// AddMonths shifts t by n calendar months.
func AddMonths(t time.Time, n int) time.Time {
	return t.AddDate(0, n, 0)
}

// IsSameDay reports whether a and b fall on the same UTC calendar day.
func IsSameDay(a, b time.Time) bool {
	return DateKey(a) == DateKey(b)
}

// IsToday reports whether t falls on the current UTC calendar day.
func IsToday(t time.Time) bool {
	return IsSameDay(t, time.Now())
}

// IsYesterday reports whether t falls on the UTC calendar day before today.
func IsYesterday(t time.Time) bool {
	return IsSameDay(AddDays(t, 1), time.Now())
}
