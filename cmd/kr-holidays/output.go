package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
	"gopkg.in/yaml.v3"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatCSV  = "csv"
	formatYAML = "yaml"
)

func validateFormat(format string) error {
	switch format {
	case formatText, formatJSON, formatCSV, formatYAML:
		return nil
	default:
		return fmt.Errorf("unsupported output format %q (use text, json, csv or yaml)", format)
	}
}

// output is one command result. value feeds json and yaml, rows (a slice
// of flat structs) feeds csv, and text writes the human readable form.
type output struct {
	value interface{}
	rows  interface{}
	text  func(w io.Writer)
}

func (o output) write(w io.Writer, format string) error {
	switch format {
	case formatText:
		o.text(w)
		return nil
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(o.value)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(o.value); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	case formatCSV:
		if err := gocsv.Marshal(o.rows, w); err != nil {
			return fmt.Errorf("failed to encode csv: %w", err)
		}
		return nil
	default:
		return validateFormat(format)
	}
}

type dayRow struct {
	Date         string `csv:"date"`
	Weekday      string `csv:"weekday"`
	IsWeekend    bool   `csv:"is_weekend"`
	IsHoliday    bool   `csv:"is_holiday"`
	HolidayName  string `csv:"holiday_name"`
	IsSubstitute bool   `csv:"is_substitute_holiday"`
	IsWorkingDay bool   `csv:"is_working_day"`
}

type holidayRow struct {
	Date       string `csv:"date"`
	Name       string `csv:"name"`
	Weekday    string `csv:"weekday"`
	Substitute bool   `csv:"substitute"`
}

type dateRow struct {
	Date string `csv:"date"`
}

type summaryRow struct {
	Year               int  `csv:"year"`
	Supported          bool `csv:"supported"`
	TotalDays          int  `csv:"total_days"`
	HolidayDays        int  `csv:"holiday_days"`
	WeekendDays        int  `csv:"weekend_days"`
	WorkingDays        int  `csv:"working_days"`
	SubstituteHolidays int  `csv:"substitute_holidays"`
}

type yearRow struct {
	Year int `csv:"year"`
}

type countRow struct {
	Start       string `csv:"start"`
	End         string `csv:"end"`
	WorkingDays int    `csv:"working_days"`
}

type addRow struct {
	Date   string `csv:"date"`
	Offset int    `csv:"offset"`
	Result string `csv:"result"`
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
