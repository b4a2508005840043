package todotxt

import (
	"strconv"
	"time"
)

// MaxDate sorts after every date a todo.txt file can express.
var MaxDate = time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC)

// Date returns the calendar date at midnight UTC.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DateOf truncates t to its calendar date, keeping the year, month and day
// as seen in t's own location.
func DateOf(t time.Time) time.Time {
	return Date(t.Year(), t.Month(), t.Day())
}

// Today returns the current calendar date.
func Today() time.Time {
	return DateOf(time.Now())
}

// parseDate converts the year, month and day groups of a date match.
// Dates that do not exist in the calendar (2018-14-02, 2018-01-32) are
// reported as absent rather than normalized.
func parseDate(year, month, day string) (time.Time, bool) {
	y, err := strconv.Atoi(year)
	if err != nil {
		return time.Time{}, false
	}
	m, err := strconv.Atoi(month)
	if err != nil {
		return time.Time{}, false
	}
	d, err := strconv.Atoi(day)
	if err != nil {
		return time.Time{}, false
	}
	date := Date(y, time.Month(m), d)
	if date.Year() != y || int(date.Month()) != m || date.Day() != d {
		return time.Time{}, false
	}
	return date, true
}
