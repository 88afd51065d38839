// Package dataset holds the precomputed per-year holiday calendars and the
// codec for the holidays_<year>.json file format.
package dataset

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/g-rebels/kr-holiday/pkg/dateutil"
)

// SubstituteHolidayName marks an entry observed in place of a holiday that
// fell on a weekend or on another holiday.
const SubstituteHolidayName = "대체공휴일"

// WeekdayNames are indexed by weekday_num (0 = Monday).
var WeekdayNames = [7]string{"월요일", "화요일", "수요일", "목요일", "금요일", "토요일", "일요일"}

// DayRecord is the classification of a single calendar day.
type DayRecord struct {
	Year                int     `json:"year" yaml:"year"`
	Month               int     `json:"month" yaml:"month"`
	Date                int     `json:"date" yaml:"date"`
	ISODate             string  `json:"iso_date" yaml:"iso_date"`
	Weekday             string  `json:"weekday" yaml:"weekday"`
	WeekdayNum          int     `json:"weekday_num" yaml:"weekday_num"`
	IsWeekend           bool    `json:"is_weekend" yaml:"is_weekend"`
	IsHoliday           bool    `json:"is_holiday" yaml:"is_holiday"`
	HolidayName         *string `json:"holiday_name" yaml:"holiday_name"`
	IsSubstituteHoliday bool    `json:"is_substitute_holiday" yaml:"is_substitute_holiday"`
}

// Statistics are aggregate counts over a YearCalendar's days.
type Statistics struct {
	TotalDays          int `json:"total_days" yaml:"total_days" csv:"total_days"`
	HolidayDays        int `json:"holiday_days" yaml:"holiday_days" csv:"holiday_days"`
	WeekendDays        int `json:"weekend_days" yaml:"weekend_days" csv:"weekend_days"`
	WorkingDays        int `json:"working_days" yaml:"working_days" csv:"working_days"`
	SubstituteHolidays int `json:"substitute_holidays" yaml:"substitute_holidays" csv:"substitute_holidays"`
}

// YearCalendar is every day of one year in ascending order.
type YearCalendar struct {
	Year        int         `json:"year"`
	GeneratedAt string      `json:"generated_at"`
	Source      string      `json:"source"`
	APIURL      *string     `json:"api_url"`
	Statistics  Statistics  `json:"statistics"`
	Days        []DayRecord `json:"days"`
}

// Day returns the canonical date of the record.
func (r DayRecord) Day() dateutil.Date {
	return dateutil.NewDate(r.Year, time.Month(r.Month), r.Date)
}

// Name returns the holiday name; ok is false for non-holidays.
func (r DayRecord) Name() (name string, ok bool) {
	if !r.IsHoliday || r.HolidayName == nil {
		return "", false
	}
	return *r.HolidayName, true
}

// IsWorkingDay reports whether the day is neither a holiday nor a weekend.
func (r DayRecord) IsWorkingDay() bool {
	return !r.IsHoliday && !r.IsWeekend
}

// Record returns the day record for d. d must fall in c.Year.
func (c *YearCalendar) Record(d dateutil.Date) (DayRecord, bool) {
	if d.Year != c.Year {
		return DayRecord{}, false
	}
	i := d.DayOfYear() - 1
	if i < 0 || i >= len(c.Days) {
		return DayRecord{}, false
	}
	return c.Days[i], true
}

// ComputeStatistics derives the aggregate counts from days.
func ComputeStatistics(days []DayRecord) Statistics {
	st := Statistics{TotalDays: len(days)}
	for _, d := range days {
		if d.IsHoliday {
			st.HolidayDays++
		}
		if d.IsWeekend {
			st.WeekendDays++
		}
		if d.IsSubstituteHoliday {
			st.SubstituteHolidays++
		}
		if d.IsWorkingDay() {
			st.WorkingDays++
		}
	}
	return st
}

// Validate checks the structural invariants of the calendar.
func (c *YearCalendar) Validate() error {
	want := dateutil.DaysInYear(c.Year)
	if len(c.Days) != want {
		return fmt.Errorf("year %d: expected %d days, got %d", c.Year, want, len(c.Days))
	}

	expected := dateutil.NewDate(c.Year, time.January, 1)
	for i, rec := range c.Days {
		if rec.Day() != expected {
			return fmt.Errorf("year %d: day %d is %04d-%02d-%02d, expected %s",
				c.Year, i, rec.Year, rec.Month, rec.Date, expected)
		}
		if rec.ISODate != expected.String() {
			return fmt.Errorf("%s: iso_date is %q", expected, rec.ISODate)
		}

		num := (int(expected.Weekday()) + 6) % 7
		if rec.WeekdayNum != num || rec.Weekday != WeekdayNames[num] {
			return fmt.Errorf("%s: weekday %d/%q, expected %d/%q",
				expected, rec.WeekdayNum, rec.Weekday, num, WeekdayNames[num])
		}
		if rec.IsWeekend != dateutil.IsWeekend(expected.Time()) {
			return fmt.Errorf("%s: is_weekend=%v on weekday %d", expected, rec.IsWeekend, num)
		}

		hasName := rec.HolidayName != nil && *rec.HolidayName != ""
		if rec.IsHoliday != hasName {
			return fmt.Errorf("%s: is_holiday=%v but holiday_name present=%v", expected, rec.IsHoliday, hasName)
		}
		if rec.IsSubstituteHoliday && !rec.IsHoliday {
			return fmt.Errorf("%s: substitute holiday that is not a holiday", expected)
		}

		expected = expected.AddDays(1)
	}

	if st := ComputeStatistics(c.Days); st != c.Statistics {
		return fmt.Errorf("year %d: statistics %+v do not match days %+v", c.Year, c.Statistics, st)
	}

	return nil
}

// Decode reads one year file from r and validates it.
func Decode(r io.Reader) (*YearCalendar, error) {
	var cal YearCalendar
	if err := json.NewDecoder(r).Decode(&cal); err != nil {
		return nil, fmt.Errorf("failed to parse calendar JSON: %w", err)
	}

	// A non-holiday may carry an empty name in generated files.
	for i := range cal.Days {
		if !cal.Days[i].IsHoliday && cal.Days[i].HolidayName != nil && *cal.Days[i].HolidayName == "" {
			cal.Days[i].HolidayName = nil
		}
	}

	if err := cal.Validate(); err != nil {
		return nil, fmt.Errorf("invalid calendar data: %w", err)
	}
	return &cal, nil
}

// Encode writes cal as indented JSON.
func Encode(w io.Writer, cal *YearCalendar) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(cal); err != nil {
		return fmt.Errorf("failed to encode calendar %d: %w", cal.Year, err)
	}
	return nil
}
