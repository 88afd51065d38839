package krholidays

import (
	"fmt"

	"github.com/g-rebels/kr-holiday/pkg/dateutil"
)

// CountWorkingDays returns the number of working days in [start, end].
// It is 0 when start is after end.
func (e *Engine) CountWorkingDays(start, end dateutil.Input) (int, error) {
	from, err := dateutil.Normalize(start)
	if err != nil {
		return 0, err
	}
	to, err := dateutil.Normalize(end)
	if err != nil {
		return 0, err
	}

	count := 0
	for d := from; !d.After(to); d = d.AddDays(1) {
		ok, err := e.isWorkingDay(d)
		if err != nil {
			return 0, err
		}
		if ok {
			count++
		}
	}
	return count, nil
}

// AddWorkingDays advances from the given date by n working days. The start
// date itself is never counted, so n == 0 returns it unchanged.
func (e *Engine) AddWorkingDays(in dateutil.Input, n int) (dateutil.Date, error) {
	date, err := dateutil.Normalize(in)
	if err != nil {
		return dateutil.Date{}, err
	}
	if n < 0 {
		return dateutil.Date{}, fmt.Errorf("%w: %d", ErrNegativeOffset, n)
	}

	for remaining := n; remaining > 0; {
		date = date.AddDays(1)
		ok, err := e.isWorkingDay(date)
		if err != nil {
			return dateutil.Date{}, err
		}
		if ok {
			remaining--
		}
	}
	return date, nil
}
