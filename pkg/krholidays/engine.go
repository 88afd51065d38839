package krholidays

import (
	"github.com/g-rebels/kr-holiday/pkg/dataset"
	"github.com/g-rebels/kr-holiday/pkg/dateutil"
)

// Engine answers per-date, per-month and per-year holiday questions over a
// Store. It holds no state of its own and is safe for concurrent use.
type Engine struct {
	store *Store
}

// NewEngine creates an Engine backed by store.
func NewEngine(store *Store) *Engine {
	return &Engine{store: store}
}

// Store returns the underlying store.
func (e *Engine) Store() *Store {
	return e.store
}

// DayRecord returns the full classification of a date.
func (e *Engine) DayRecord(in dateutil.Input) (dataset.DayRecord, error) {
	return e.store.DayRecord(in)
}

// IsHoliday reports whether the date is a public holiday.
func (e *Engine) IsHoliday(in dateutil.Input) (bool, error) {
	rec, err := e.store.DayRecord(in)
	if err != nil {
		return false, err
	}
	return rec.IsHoliday, nil
}

// IsWeekend reports whether the date is a Saturday or Sunday.
func (e *Engine) IsWeekend(in dateutil.Input) (bool, error) {
	rec, err := e.store.DayRecord(in)
	if err != nil {
		return false, err
	}
	return rec.IsWeekend, nil
}

// IsWorkingDay reports whether the date is neither a holiday nor a weekend.
func (e *Engine) IsWorkingDay(in dateutil.Input) (bool, error) {
	rec, err := e.store.DayRecord(in)
	if err != nil {
		return false, err
	}
	return rec.IsWorkingDay(), nil
}

// IsSubstituteHoliday reports whether the date is a substitute holiday.
func (e *Engine) IsSubstituteHoliday(in dateutil.Input) (bool, error) {
	rec, err := e.store.DayRecord(in)
	if err != nil {
		return false, err
	}
	return rec.IsSubstituteHoliday, nil
}

// HolidayName returns the holiday's name. ok is false when the date is not
// a holiday; that is not an error.
func (e *Engine) HolidayName(in dateutil.Input) (name string, ok bool, err error) {
	rec, err := e.store.DayRecord(in)
	if err != nil {
		return "", false, err
	}
	name, ok = rec.Name()
	return name, ok, nil
}

func (e *Engine) isWorkingDay(date dateutil.Date) (bool, error) {
	rec, err := e.store.record(date)
	if err != nil {
		return false, err
	}
	return rec.IsWorkingDay(), nil
}
