package krholidays

import (
	"errors"
	"testing"
	"time"

	"github.com/g-rebels/kr-holiday/pkg/dateutil"
)

func TestEnumerator_HolidaysInYear(t *testing.T) {
	kh := newTestEngine(t)

	for _, year := range kh.SupportedYears() {
		holidays, err := kh.HolidaysInYear(year)
		if err != nil {
			t.Fatalf("HolidaysInYear(%d) error = %v", year, err)
		}

		for i, h := range holidays {
			if h.Year != year {
				t.Errorf("HolidaysInYear(%d) contains %s", year, h)
			}
			if i > 0 && !holidays[i-1].Before(h) {
				t.Errorf("HolidaysInYear(%d) not strictly ascending at %s", year, h)
			}
			if ok, _ := kh.IsHoliday(h); !ok {
				t.Errorf("HolidaysInYear(%d) returned non-holiday %s", year, h)
			}
		}

		stats := kh.YearSummary(year).Statistics
		if stats == nil || stats.HolidayDays != len(holidays) {
			t.Errorf("HolidaysInYear(%d) has %d entries, statistics say %+v", year, len(holidays), stats)
		}
	}
}

func TestEnumerator_HolidaysIn2024(t *testing.T) {
	kh := newTestEngine(t)

	holidays, err := kh.HolidaysInYear(2024)
	if err != nil {
		t.Fatalf("HolidaysInYear() error = %v", err)
	}

	if len(holidays) < 15 {
		t.Errorf("HolidaysInYear(2024) has %d holidays, want at least 15", len(holidays))
	}
	if holidays[0] != d(2024, time.January, 1) {
		t.Errorf("first holiday = %s, want 2024-01-01", holidays[0])
	}

	named, err := kh.Holidays(2024)
	if err != nil {
		t.Fatalf("Holidays() error = %v", err)
	}
	if len(named) != len(holidays) {
		t.Fatalf("Holidays() has %d entries, HolidaysInYear %d", len(named), len(holidays))
	}
	if named[0].Name != "신정" || named[0].Weekday != "월요일" {
		t.Errorf("first named holiday = %+v", named[0])
	}
}

func TestEnumerator_Month(t *testing.T) {
	kh := newTestEngine(t)

	tests := []struct {
		name         string
		year         int
		month        time.Month
		wantHolidays []dateutil.Date
		wantWorkdays int
	}{
		{
			name:         "January 2024",
			year:         2024,
			month:        time.January,
			wantHolidays: []dateutil.Date{d(2024, time.January, 1)},
			wantWorkdays: 22,
		},
		{
			name:  "February 2024 leap month with Seollal",
			year:  2024,
			month: time.February,
			wantHolidays: []dateutil.Date{
				d(2024, time.February, 9),
				d(2024, time.February, 10),
				d(2024, time.February, 11),
				d(2024, time.February, 12),
			},
			wantWorkdays: 19,
		},
		{
			name:         "July 2024 no holidays",
			year:         2024,
			month:        time.July,
			wantHolidays: []dateutil.Date{},
			wantWorkdays: 23,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			holidays, err := kh.HolidaysInMonth(tt.year, tt.month)
			if err != nil {
				t.Fatalf("HolidaysInMonth() error = %v", err)
			}
			if len(holidays) != len(tt.wantHolidays) {
				t.Fatalf("HolidaysInMonth() = %v, want %v", holidays, tt.wantHolidays)
			}
			for i := range holidays {
				if holidays[i] != tt.wantHolidays[i] {
					t.Errorf("HolidaysInMonth()[%d] = %s, want %s", i, holidays[i], tt.wantHolidays[i])
				}
			}

			workdays, err := kh.WorkingDaysInMonth(tt.year, tt.month)
			if err != nil {
				t.Fatalf("WorkingDaysInMonth() error = %v", err)
			}
			if len(workdays) != tt.wantWorkdays {
				t.Errorf("WorkingDaysInMonth() has %d days, want %d", len(workdays), tt.wantWorkdays)
			}
			for _, wd := range workdays {
				if wd.Month != tt.month {
					t.Errorf("WorkingDaysInMonth() returned %s outside month", wd)
				}
				if ok, _ := kh.IsWorkingDay(wd); !ok {
					t.Errorf("WorkingDaysInMonth() returned non-working day %s", wd)
				}
			}
		})
	}
}

func TestEnumerator_NextHoliday(t *testing.T) {
	kh := newTestEngine(t)

	tests := []struct {
		name    string
		input   dateutil.Input
		want    dateutil.Date
		wantErr error
	}{
		{"after New Year", dateutil.Text("2024-01-02"), d(2024, time.February, 9), nil},
		{"strictly after a holiday", d(2024, time.January, 1), d(2024, time.February, 9), nil},
		{"inside Seollal", d(2024, time.February, 10), d(2024, time.February, 11), nil},
		{"crosses into next year", dateutil.Text("2024-12-25"), d(2025, time.January, 1), nil},
		{"from December 31st", d(2024, time.December, 31), d(2025, time.January, 1), nil},
		{"last supported year exhausted", dateutil.Text("2040-12-26"), dateutil.Date{}, ErrUnsupportedYear},
		{"unsupported start year", dateutil.Text("2041-01-01"), dateutil.Date{}, ErrUnsupportedYear},
		{"bad input", dateutil.Text("2024-13-01"), dateutil.Date{}, ErrInvalidDateFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := kh.NextHoliday(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("NextHoliday() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("NextHoliday() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("NextHoliday(%v) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}
