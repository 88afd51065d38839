package krholidays

import (
	"sync"
	"time"

	"github.com/g-rebels/kr-holiday/pkg/dataset"
	"github.com/g-rebels/kr-holiday/pkg/dateutil"
)

var (
	defaultOnce sync.Once
	defaultCal  *KoreanHolidays
)

// Default returns the process-wide instance over the embedded dataset.
func Default() *KoreanHolidays {
	defaultOnce.Do(func() {
		defaultCal = New()
	})
	return defaultCal
}

// --- Package-level convenience functions ---

// DayRecord returns the full classification of a date.
func DayRecord(in dateutil.Input) (dataset.DayRecord, error) { return Default().DayRecord(in) }

// IsHoliday reports whether the date is a public holiday.
func IsHoliday(in dateutil.Input) (bool, error) { return Default().IsHoliday(in) }

// IsWeekend reports whether the date is a Saturday or Sunday.
func IsWeekend(in dateutil.Input) (bool, error) { return Default().IsWeekend(in) }

// IsWorkingDay reports whether the date is neither a holiday nor a weekend.
func IsWorkingDay(in dateutil.Input) (bool, error) { return Default().IsWorkingDay(in) }

// IsSubstituteHoliday reports whether the date is a substitute holiday.
func IsSubstituteHoliday(in dateutil.Input) (bool, error) { return Default().IsSubstituteHoliday(in) }

// HolidayName returns the holiday's name, if the date is a holiday.
func HolidayName(in dateutil.Input) (string, bool, error) { return Default().HolidayName(in) }

// HolidaysInYear returns the holiday dates of year.
func HolidaysInYear(year int) ([]dateutil.Date, error) { return Default().HolidaysInYear(year) }

// HolidaysInMonth returns the holiday dates of one month.
func HolidaysInMonth(year int, month time.Month) ([]dateutil.Date, error) {
	return Default().HolidaysInMonth(year, month)
}

// WorkingDaysInMonth returns the working days of one month.
func WorkingDaysInMonth(year int, month time.Month) ([]dateutil.Date, error) {
	return Default().WorkingDaysInMonth(year, month)
}

// NextHoliday returns the first holiday strictly after the date.
func NextHoliday(in dateutil.Input) (dateutil.Date, error) { return Default().NextHoliday(in) }

// CountWorkingDays returns the number of working days in [start, end].
func CountWorkingDays(start, end dateutil.Input) (int, error) {
	return Default().CountWorkingDays(start, end)
}

// AddWorkingDays advances the date by n working days.
func AddWorkingDays(in dateutil.Input, n int) (dateutil.Date, error) {
	return Default().AddWorkingDays(in, n)
}

// SupportedYears returns the years of the embedded dataset.
func SupportedYears() []int { return Default().SupportedYears() }

// IsSupportedYear reports whether the embedded dataset covers year.
func IsSupportedYear(year int) bool { return Default().IsSupportedYear(year) }
