package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/g-rebels/kr-holiday/pkg/dataset"
	"github.com/g-rebels/kr-holiday/pkg/dateutil"
	"github.com/g-rebels/kr-holiday/pkg/krholidays"
	"github.com/spf13/cobra"
)

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [date]",
		Short: "Classify a date (default: today)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cal, err := newCalendar()
			if err != nil {
				return err
			}

			rec, err := cal.DayRecord(dateArg(args))
			if err != nil {
				return err
			}

			name, _ := rec.Name()
			row := dayRow{
				Date:         rec.ISODate,
				Weekday:      rec.Weekday,
				IsWeekend:    rec.IsWeekend,
				IsHoliday:    rec.IsHoliday,
				HolidayName:  name,
				IsSubstitute: rec.IsSubstituteHoliday,
				IsWorkingDay: rec.IsWorkingDay(),
			}

			return output{
				value: struct {
					dataset.DayRecord `yaml:",inline"`
					IsWorkingDay      bool `json:"is_working_day" yaml:"is_working_day"`
				}{rec, rec.IsWorkingDay()},
				rows: []dayRow{row},
				text: func(w io.Writer) {
					fmt.Fprintf(w, "%s (%s)\n", row.Date, row.Weekday)
					holiday := yesNo(row.IsHoliday)
					if row.IsHoliday {
						holiday += " - " + row.HolidayName
						if row.IsSubstitute {
							holiday += " (substitute)"
						}
					}
					fmt.Fprintf(w, "  Holiday:      %s\n", holiday)
					fmt.Fprintf(w, "  Weekend:      %s\n", yesNo(row.IsWeekend))
					fmt.Fprintf(w, "  Working day:  %s\n", yesNo(row.IsWorkingDay))
				},
			}.write(cmd.OutOrStdout(), outputFormat)
		},
	}
}

func holidaysCmd() *cobra.Command {
	var month int

	cmd := &cobra.Command{
		Use:   "holidays [year]",
		Short: "List the holidays of a year (default: current year)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := yearArg(args)
			if err != nil {
				return err
			}
			cal, err := newCalendar()
			if err != nil {
				return err
			}

			holidays, err := cal.Holidays(year)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("month") {
				holidays, err = inMonth(cal, holidays, year, time.Month(month))
				if err != nil {
					return err
				}
			}

			rows := make([]holidayRow, 0, len(holidays))
			for _, h := range holidays {
				rows = append(rows, holidayRow{
					Date:       h.Date.String(),
					Name:       h.Name,
					Weekday:    h.Weekday,
					Substitute: h.Substitute,
				})
			}

			return output{
				value: holidays,
				rows:  rows,
				text: func(w io.Writer) {
					if len(rows) == 0 {
						fmt.Fprintln(w, "No holidays")
						return
					}
					for _, r := range rows {
						fmt.Fprintf(w, "%s  %s  %s\n", r.Date, r.Weekday, r.Name)
					}
					fmt.Fprintf(w, "Total: %d\n", len(rows))
				},
			}.write(cmd.OutOrStdout(), outputFormat)
		},
	}

	cmd.Flags().IntVarP(&month, "month", "m", 0, "Only list holidays of this month (1-12)")

	return cmd
}

// inMonth narrows a year's holidays to the dates HolidaysInMonth reports.
func inMonth(cal krholidays.Calendar, holidays []krholidays.Holiday, year int, month time.Month) ([]krholidays.Holiday, error) {
	dates, err := cal.HolidaysInMonth(year, month)
	if err != nil {
		return nil, err
	}
	keep := make(map[dateutil.Date]bool, len(dates))
	for _, d := range dates {
		keep[d] = true
	}

	out := []krholidays.Holiday{}
	for _, h := range holidays {
		if keep[h.Date] {
			out = append(out, h)
		}
	}
	return out, nil
}

func nextCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "next [date]",
		Short: "Show the first holiday after a date (default: today)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cal, err := newCalendar()
			if err != nil {
				return err
			}
			from, err := dateutil.Normalize(dateArg(args))
			if err != nil {
				return err
			}

			next, err := cal.NextHoliday(from)
			if err != nil {
				return err
			}
			rec, err := cal.DayRecord(next)
			if err != nil {
				return err
			}
			name, _ := rec.Name()
			h := krholidays.Holiday{Date: next, Name: name, Weekday: rec.Weekday, Substitute: rec.IsSubstituteHoliday}

			return output{
				value: h,
				rows:  []holidayRow{{Date: next.String(), Name: name, Weekday: rec.Weekday, Substitute: rec.IsSubstituteHoliday}},
				text: func(w io.Writer) {
					days := int(next.Time().Sub(from.Time()).Hours() / 24)
					fmt.Fprintf(w, "%s (%s) %s, in %d day(s)\n", next, rec.Weekday, name, days)
				},
			}.write(cmd.OutOrStdout(), outputFormat)
		},
	}
}

func summaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary [year]",
		Short: "Show statistics and holidays of a year (default: current year)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := yearArg(args)
			if err != nil {
				return err
			}
			cal, err := newCalendar()
			if err != nil {
				return err
			}

			summary := cal.YearSummary(year)
			row := summaryRow{Year: summary.Year, Supported: summary.Supported}
			if s := summary.Statistics; s != nil {
				row.TotalDays = s.TotalDays
				row.HolidayDays = s.HolidayDays
				row.WeekendDays = s.WeekendDays
				row.WorkingDays = s.WorkingDays
				row.SubstituteHolidays = s.SubstituteHolidays
			}

			return output{
				value: summary,
				rows:  []summaryRow{row},
				text: func(w io.Writer) {
					if !summary.Supported {
						fmt.Fprintf(w, "%d: not supported\n", year)
						return
					}
					fmt.Fprintf(w, "📊 %d\n", year)
					fmt.Fprintln(w, "═══════════════════════════════════")
					fmt.Fprintf(w, "  Total days:          %d\n", row.TotalDays)
					fmt.Fprintf(w, "  Holidays:            %d\n", row.HolidayDays)
					fmt.Fprintf(w, "  Weekend days:        %d\n", row.WeekendDays)
					fmt.Fprintf(w, "  Working days:        %d\n", row.WorkingDays)
					fmt.Fprintf(w, "  Substitute holidays: %d\n", row.SubstituteHolidays)
					dates := make([]string, 0, len(summary.Holidays))
					for _, d := range summary.Holidays {
						dates = append(dates, d.String())
					}
					fmt.Fprintf(w, "  Holiday dates:       %s\n", strings.Join(dates, ", "))
				},
			}.write(cmd.OutOrStdout(), outputFormat)
		},
	}
}

func yearsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "years",
		Short: "List the supported years",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cal, err := newCalendar()
			if err != nil {
				return err
			}

			years := cal.SupportedYears()
			rows := make([]yearRow, 0, len(years))
			for _, y := range years {
				rows = append(rows, yearRow{Year: y})
			}

			return output{
				value: years,
				rows:  rows,
				text: func(w io.Writer) {
					if len(years) == 0 {
						fmt.Fprintln(w, "No years available")
						return
					}
					fmt.Fprintf(w, "%d-%d (%d years)\n", years[0], years[len(years)-1], len(years))
				},
			}.write(cmd.OutOrStdout(), outputFormat)
		},
	}
}

func dateArg(args []string) dateutil.Input {
	if len(args) == 0 {
		return dateutil.Today()
	}
	return dateutil.Text(args[0])
}

func yearArg(args []string) (int, error) {
	if len(args) == 0 {
		return dateutil.Today().Year, nil
	}
	year, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("invalid year %q", args[0])
	}
	return year, nil
}
