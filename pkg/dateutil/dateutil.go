package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDateFormat is returned when a date string matches none of the
// accepted layouts or names a day that does not exist.
var ErrInvalidDateFormat = errors.New("invalid date format")

// layouts are tried in order; the first successful parse wins.
// 20060102 is always read as year, month, day.
var layouts = []string{
	"2006-01-02",
	"2006/01/02",
	"20060102",
}

// IsWeekend reports whether t falls on a Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	weekday := t.Weekday()
	return weekday == time.Saturday || weekday == time.Sunday
}

// ParseDate parses a date string in YYYY-MM-DD, YYYY/MM/DD or YYYYMMDD form.
func ParseDate(dateStr string) (Date, error) {
	s := strings.TrimSpace(dateStr)
	if s == "" {
		return Date{}, fmt.Errorf("%w: empty string", ErrInvalidDateFormat)
	}

	var lastErr error
	for _, layout := range layouts {
		if len(s) != len(layout) {
			continue
		}
		t, err := time.Parse(layout, s)
		if err == nil {
			return FromTime(t), nil
		}
		lastErr = err
	}

	if lastErr != nil {
		return Date{}, fmt.Errorf("%w: %q: %v", ErrInvalidDateFormat, dateStr, lastErr)
	}
	return Date{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, dateStr)
}

// Today returns today's date in the local time zone
func Today() Date {
	return FromTime(time.Now())
}
