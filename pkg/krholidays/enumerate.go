package krholidays

import (
	"fmt"
	"time"

	"github.com/g-rebels/kr-holiday/pkg/dataset"
	"github.com/g-rebels/kr-holiday/pkg/dateutil"
)

// Holiday is a single holiday date with its name.
type Holiday struct {
	Date       dateutil.Date `json:"date" yaml:"date" csv:"date"`
	Name       string        `json:"name" yaml:"name" csv:"name"`
	Weekday    string        `json:"weekday" yaml:"weekday" csv:"weekday"`
	Substitute bool          `json:"substitute" yaml:"substitute" csv:"substitute"`
}

// Holidays returns the holidays of year with their names, ascending.
func (e *Engine) Holidays(year int) ([]Holiday, error) {
	cal, err := e.store.Get(year)
	if err != nil {
		return nil, err
	}

	holidays := make([]Holiday, 0, cal.Statistics.HolidayDays)
	for _, rec := range cal.Days {
		if name, ok := rec.Name(); ok {
			holidays = append(holidays, Holiday{
				Date:       rec.Day(),
				Name:       name,
				Weekday:    rec.Weekday,
				Substitute: rec.IsSubstituteHoliday,
			})
		}
	}
	return holidays, nil
}

// HolidaysInYear returns the holiday dates of year, ascending.
func (e *Engine) HolidaysInYear(year int) ([]dateutil.Date, error) {
	cal, err := e.store.Get(year)
	if err != nil {
		return nil, err
	}
	return filterDays(cal.Days, func(r dataset.DayRecord) bool { return r.IsHoliday }), nil
}

// HolidaysInMonth returns the holiday dates of one month, ascending.
func (e *Engine) HolidaysInMonth(year int, month time.Month) ([]dateutil.Date, error) {
	days, err := e.monthDays(year, month)
	if err != nil {
		return nil, err
	}
	return filterDays(days, func(r dataset.DayRecord) bool { return r.IsHoliday }), nil
}

// WorkingDaysInMonth returns the working days of one month, ascending.
func (e *Engine) WorkingDaysInMonth(year int, month time.Month) ([]dateutil.Date, error) {
	days, err := e.monthDays(year, month)
	if err != nil {
		return nil, err
	}
	return filterDays(days, dataset.DayRecord.IsWorkingDay), nil
}

// NextHoliday returns the first holiday strictly after the given date. The
// search continues into following years while they are supported.
func (e *Engine) NextHoliday(in dateutil.Input) (dateutil.Date, error) {
	date, err := dateutil.Normalize(in)
	if err != nil {
		return dateutil.Date{}, err
	}

	cal, err := e.store.Get(date.Year)
	if err != nil {
		return dateutil.Date{}, err
	}

	start := date.DayOfYear()
	for {
		for _, rec := range cal.Days[start:] {
			if rec.IsHoliday {
				return rec.Day(), nil
			}
		}

		next := cal.Year + 1
		if !e.store.IsSupportedYear(next) {
			return dateutil.Date{}, fmt.Errorf("%w: no holiday after %s before year %d", ErrUnsupportedYear, date, next)
		}
		if cal, err = e.store.Get(next); err != nil {
			return dateutil.Date{}, err
		}
		start = 0
	}
}

// monthDays validates month before touching year data.
func (e *Engine) monthDays(year int, month time.Month) ([]dataset.DayRecord, error) {
	if month < time.January || month > time.December {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMonth, int(month))
	}

	cal, err := e.store.Get(year)
	if err != nil {
		return nil, err
	}

	first := dateutil.NewDate(year, month, 1).DayOfYear() - 1
	return cal.Days[first : first+dateutil.DaysIn(year, month)], nil
}

func filterDays(days []dataset.DayRecord, keep func(dataset.DayRecord) bool) []dateutil.Date {
	out := []dateutil.Date{}
	for _, rec := range days {
		if keep(rec) {
			out = append(out, rec.Day())
		}
	}
	return out
}
