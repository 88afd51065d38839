package dateutil

import (
	"fmt"
	"time"
)

// Date is a calendar date without time of day or location.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// Input is a date argument: either a structured Date or a Text to be parsed.
// The set of implementations is closed.
type Input interface {
	normalize() (Date, error)
}

// Text is a date string in one of the layouts accepted by ParseDate.
type Text string

func (t Text) normalize() (Date, error) {
	return ParseDate(string(t))
}

// NewDate returns the date for year, month and day without validating it.
// Use Normalize or Validate to reject impossible dates.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// FromTime returns the calendar date of t in t's own location.
func FromTime(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Normalize resolves any Input to a validated Date.
func Normalize(in Input) (Date, error) {
	if in == nil {
		return Date{}, fmt.Errorf("%w: no date given", ErrInvalidDateFormat)
	}
	return in.normalize()
}

func (d Date) normalize() (Date, error) {
	if err := d.Validate(); err != nil {
		return Date{}, err
	}
	return d, nil
}

// Validate reports whether d names a real Gregorian calendar day.
func (d Date) Validate() error {
	if d.Month < time.January || d.Month > time.December {
		return fmt.Errorf("%w: month %d out of range", ErrInvalidDateFormat, int(d.Month))
	}
	if d.Day < 1 || d.Day > DaysIn(d.Year, d.Month) {
		return fmt.Errorf("%w: day %d out of range for %04d-%02d", ErrInvalidDateFormat, d.Day, d.Year, int(d.Month))
	}
	return nil
}

// Time returns midnight UTC of d.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// String formats d as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// MarshalText encodes d as YYYY-MM-DD.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText accepts any layout ParseDate does.
func (d *Date) UnmarshalText(b []byte) error {
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Weekday returns the day of the week of d.
func (d Date) Weekday() time.Weekday {
	return d.Time().Weekday()
}

// AddDays returns d shifted by n calendar days.
func (d Date) AddDays(n int) Date {
	return FromTime(d.Time().AddDate(0, 0, n))
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// After reports whether d is strictly later than other.
func (d Date) After(other Date) bool {
	return other.Before(d)
}

// DayOfYear returns 1 for January 1st.
func (d Date) DayOfYear() int {
	return d.Time().YearDay()
}

// DaysIn returns the number of days in month of year.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DaysInYear returns 366 for leap years and 365 otherwise.
func DaysInYear(year int) int {
	return time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC).YearDay()
}
