// Package dateparse normalizes the heterogeneous date and time-of-day
// representations that reach the attendance pipeline (manual entry, REST
// filters, spreadsheet imports) into canonical calendar values.
package dateparse

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrUnparseableDate is returned when an input cannot be interpreted as
	// any of the recognized date shapes, or fails calendar validation.
	ErrUnparseableDate = errors.New("value is not a recognizable calendar date")

	// ErrUnparseableTime is returned for time-of-day strings outside HH:MM[:SS].
	ErrUnparseableTime = errors.New("value is not a recognizable time of day")
)

// Date is a canonical calendar date with no time component. It is produced
// only by this package, is immutable, and is always calendar-valid with
// Year in [1900, 2100].
type Date struct {
	Year  int
	Month int
	Day   int
}

// NewDate validates the year/month/day triple against real calendar rules.
// Inconsistent fields (e.g. February 30) are rejected, never corrected.
func NewDate(year, month, day int) (Date, error) {
	if year < 1900 || year > 2100 {
		return Date{}, fmt.Errorf("%w: year %d out of range", ErrUnparseableDate, year)
	}
	if month < 1 || month > 12 {
		return Date{}, fmt.Errorf("%w: month %d out of range", ErrUnparseableDate, month)
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return Date{}, fmt.Errorf("%w: %04d-%02d-%02d does not exist", ErrUnparseableDate, year, month, day)
	}
	return Date{Year: year, Month: month, Day: day}, nil
}

// FromTime takes the UTC calendar fields of t.
func FromTime(t time.Time) (Date, error) {
	u := t.UTC()
	return NewDate(u.Year(), int(u.Month()), u.Day())
}

// Time returns the date at midnight UTC.
func (d Date) Time() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}

// String renders the date as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Weekday returns the day-of-week slot for the date, 1=Sunday through
// 7=Saturday. This is a pure calendar computation.
func (d Date) Weekday() int {
	return int(d.Time().Weekday()) + 1
}

// IsZero reports whether d is the zero value (not a valid date).
func (d Date) IsZero() bool {
	return d == Date{}
}

// Before reports whether d is earlier than other.
func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// After reports whether d is later than other.
func (d Date) After(other Date) bool {
	return other.Before(d)
}
