package streak

import (
	"fmt"
	"time"
)

// Date is a calendar date with day granularity in the reference timezone
// (UTC). Streak arithmetic compares dates, never timestamps, so two uploads
// at 00:05 and 23:55 of the same day count once.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf truncates a timestamp to its UTC calendar date.
func DateOf(t time.Time) Date {
	y, m, d := t.UTC().Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate parses an ISO 8601 date (yyyy-mm-dd, no time component).
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// String renders the ISO 8601 form; zero dates render empty.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.time().Format("2006-01-02")
}

// IsZero reports whether the date is unset (no activity yet).
func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// AddDays returns the date n days later (or earlier for negative n),
// normalizing across month and year boundaries.
func (d Date) AddDays(n int) Date {
	return DateOf(d.time().AddDate(0, 0, n))
}

// Next returns the following calendar day.
func (d Date) Next() Date {
	return d.AddDays(1)
}

func (d Date) Equal(o Date) bool {
	return d == o
}

func (d Date) time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}
