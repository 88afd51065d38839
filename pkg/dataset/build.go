package dataset

import (
	"time"

	"github.com/g-rebels/kr-holiday/pkg/dateutil"
)

// HolidayEntry is one special day as reported by the upstream service.
type HolidayEntry struct {
	Date      dateutil.Date
	Name      string
	IsHoliday bool
}

// Meta describes where a calendar came from.
type Meta struct {
	GeneratedAt time.Time
	Source      string
	APIURL      string
}

// Build lays the entries over every day of year. Entries outside the year
// are ignored; for duplicate dates the later entry wins.
func Build(year int, entries []HolidayEntry, meta Meta) *YearCalendar {
	byDate := make(map[dateutil.Date]HolidayEntry, len(entries))
	for _, e := range entries {
		if e.Date.Year != year {
			continue
		}
		byDate[e.Date] = e
	}

	n := dateutil.DaysInYear(year)
	days := make([]DayRecord, 0, n)
	d := dateutil.NewDate(year, time.January, 1)
	for i := 0; i < n; i++ {
		num := (int(d.Weekday()) + 6) % 7
		rec := DayRecord{
			Year:       d.Year,
			Month:      int(d.Month),
			Date:       d.Day,
			ISODate:    d.String(),
			Weekday:    WeekdayNames[num],
			WeekdayNum: num,
			IsWeekend:  dateutil.IsWeekend(d.Time()),
		}

		if e, ok := byDate[d]; ok && e.IsHoliday && e.Name != "" {
			name := e.Name
			rec.IsHoliday = true
			rec.HolidayName = &name
			rec.IsSubstituteHoliday = name == SubstituteHolidayName
		}

		days = append(days, rec)
		d = d.AddDays(1)
	}

	cal := &YearCalendar{
		Year:        year,
		GeneratedAt: meta.GeneratedAt.Format(time.RFC3339),
		Source:      meta.Source,
		Statistics:  ComputeStatistics(days),
		Days:        days,
	}
	if meta.APIURL != "" {
		url := meta.APIURL
		cal.APIURL = &url
	}
	return cal
}
