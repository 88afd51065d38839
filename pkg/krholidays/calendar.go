// Package krholidays answers Korean public holiday and working day queries
// over a precomputed per-year dataset.
package krholidays

import (
	"time"

	"github.com/g-rebels/kr-holiday/pkg/dataset"
	"github.com/g-rebels/kr-holiday/pkg/dateutil"
)

// Calendar is the query surface shared by KoreanHolidays and its consumers
type Calendar interface {
	// DayRecord returns the full classification of a date
	DayRecord(in dateutil.Input) (dataset.DayRecord, error)

	IsHoliday(in dateutil.Input) (bool, error)
	IsWeekend(in dateutil.Input) (bool, error)
	IsWorkingDay(in dateutil.Input) (bool, error)
	IsSubstituteHoliday(in dateutil.Input) (bool, error)
	HolidayName(in dateutil.Input) (string, bool, error)

	Holidays(year int) ([]Holiday, error)
	HolidaysInYear(year int) ([]dateutil.Date, error)
	HolidaysInMonth(year int, month time.Month) ([]dateutil.Date, error)
	WorkingDaysInMonth(year int, month time.Month) ([]dateutil.Date, error)
	NextHoliday(in dateutil.Input) (dateutil.Date, error)

	CountWorkingDays(start, end dateutil.Input) (int, error)
	AddWorkingDays(in dateutil.Input, n int) (dateutil.Date, error)

	SupportedYears() []int
	IsSupportedYear(year int) bool
	YearSummary(year int) YearSummary
}

var _ Calendar = (*KoreanHolidays)(nil)
