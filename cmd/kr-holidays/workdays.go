package main

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/g-rebels/kr-holiday/pkg/dataset"
	"github.com/g-rebels/kr-holiday/pkg/dateutil"
	"github.com/spf13/cobra"
)

func workdaysCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workdays",
		Short: "Working day arithmetic",
	}

	cmd.AddCommand(workdaysCountCmd(), workdaysAddCmd(), workdaysMonthCmd())

	return cmd
}

func workdaysCountCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "count <start> <end>",
		Short: "Count working days between two dates, both inclusive",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cal, err := newCalendar()
			if err != nil {
				return err
			}
			start, err := dateutil.Normalize(dateutil.Text(args[0]))
			if err != nil {
				return err
			}
			end, err := dateutil.Normalize(dateutil.Text(args[1]))
			if err != nil {
				return err
			}

			n, err := cal.CountWorkingDays(start, end)
			if err != nil {
				return err
			}

			row := countRow{Start: start.String(), End: end.String(), WorkingDays: n}
			return output{
				value: map[string]interface{}{"start": start, "end": end, "working_days": n},
				rows:  []countRow{row},
				text: func(w io.Writer) {
					fmt.Fprintf(w, "%s .. %s: %d working day(s)\n", row.Start, row.End, n)
				},
			}.write(cmd.OutOrStdout(), outputFormat)
		},
	}
}

func workdaysAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <date> <n>",
		Short: "Advance a date by n working days",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cal, err := newCalendar()
			if err != nil {
				return err
			}
			date, err := dateutil.Normalize(dateutil.Text(args[0]))
			if err != nil {
				return err
			}
			n, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid working day count %q", args[1])
			}

			result, err := cal.AddWorkingDays(date, n)
			if err != nil {
				return err
			}

			row := addRow{Date: date.String(), Offset: n, Result: result.String()}
			return output{
				value: map[string]interface{}{"date": date, "offset": n, "result": result},
				rows:  []addRow{row},
				text: func(w io.Writer) {
					fmt.Fprintf(w, "%s + %d working day(s) = %s (%s)\n", row.Date, n, row.Result, weekdayName(result))
				},
			}.write(cmd.OutOrStdout(), outputFormat)
		},
	}

	// Flags must precede <date> so a negative n stays positional.
	cmd.Flags().SetInterspersed(false)

	return cmd
}

func workdaysMonthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "month <year> <month>",
		Short: "List the working days of a month",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid year %q", args[0])
			}
			month, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid month %q", args[1])
			}
			cal, err := newCalendar()
			if err != nil {
				return err
			}

			days, err := cal.WorkingDaysInMonth(year, time.Month(month))
			if err != nil {
				return err
			}

			rows := make([]dateRow, 0, len(days))
			for _, d := range days {
				rows = append(rows, dateRow{Date: d.String()})
			}

			return output{
				value: days,
				rows:  rows,
				text: func(w io.Writer) {
					for _, d := range days {
						fmt.Fprintf(w, "%s  %s\n", d, weekdayName(d))
					}
					fmt.Fprintf(w, "Total: %d\n", len(days))
				},
			}.write(cmd.OutOrStdout(), outputFormat)
		},
	}
}

// weekdayName returns the Korean weekday name of d.
func weekdayName(d dateutil.Date) string {
	return dataset.WeekdayNames[(int(d.Weekday())+6)%7]
}
