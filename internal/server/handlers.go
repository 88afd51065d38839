package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/g-rebels/kr-holiday/pkg/dataset"
	"github.com/g-rebels/kr-holiday/pkg/dateutil"
	"github.com/g-rebels/kr-holiday/pkg/krholidays"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// errBadParameter marks a malformed query parameter that is not a date.
var errBadParameter = errors.New("bad parameter")

// DayResponse is the classification of one date
type DayResponse struct {
	dataset.DayRecord
	IsWorkingDay bool `json:"is_working_day"`
}

// YearsResponse lists the supported years
type YearsResponse struct {
	Years []int `json:"years"`
}

// HolidaysResponse lists the named holidays of a year
type HolidaysResponse struct {
	Year     int                  `json:"year"`
	Holidays []krholidays.Holiday `json:"holidays"`
}

// MonthResponse lists dates of one month
type MonthResponse struct {
	Year  int             `json:"year"`
	Month int             `json:"month"`
	Dates []dateutil.Date `json:"dates"`
}

// NextHolidayResponse is the first holiday after a date
type NextHolidayResponse struct {
	Date        dateutil.Date `json:"date"`
	NextHoliday dateutil.Date `json:"next_holiday"`
	Name        string        `json:"name"`
}

// CountResponse is the number of working days in a range
type CountResponse struct {
	Start       dateutil.Date `json:"start"`
	End         dateutil.Date `json:"end"`
	WorkingDays int           `json:"working_days"`
}

// AddResponse is a date advanced by working days
type AddResponse struct {
	Date   dateutil.Date `json:"date"`
	Offset int           `json:"offset"`
	Result dateutil.Date `json:"result"`
}

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleDay(w http.ResponseWriter, r *http.Request) {
	rec, err := s.cal.DayRecord(dateutil.Text(mux.Vars(r)["date"]))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, DayResponse{DayRecord: rec, IsWorkingDay: rec.IsWorkingDay()})
}

func (s *Server) handleYears(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, YearsResponse{Years: s.cal.SupportedYears()})
}

func (s *Server) handleYearHolidays(w http.ResponseWriter, r *http.Request) {
	year, err := intVar(r, "year")
	if err != nil {
		s.writeError(w, err)
		return
	}
	holidays, err := s.cal.Holidays(year)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, HolidaysResponse{Year: year, Holidays: holidays})
}

func (s *Server) handleYearSummary(w http.ResponseWriter, r *http.Request) {
	year, err := intVar(r, "year")
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, s.cal.YearSummary(year))
}

func (s *Server) handleMonthHolidays(w http.ResponseWriter, r *http.Request) {
	s.serveMonth(w, r, s.cal.HolidaysInMonth)
}

func (s *Server) handleMonthWorkdays(w http.ResponseWriter, r *http.Request) {
	s.serveMonth(w, r, s.cal.WorkingDaysInMonth)
}

func (s *Server) serveMonth(w http.ResponseWriter, r *http.Request, list func(int, time.Month) ([]dateutil.Date, error)) {
	year, err := intVar(r, "year")
	if err != nil {
		s.writeError(w, err)
		return
	}
	month, err := intVar(r, "month")
	if err != nil {
		s.writeError(w, err)
		return
	}

	dates, err := list(year, time.Month(month))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, MonthResponse{Year: year, Month: month, Dates: dates})
}

func (s *Server) handleNextHoliday(w http.ResponseWriter, r *http.Request) {
	from, err := dateutil.Normalize(dateutil.Text(mux.Vars(r)["date"]))
	if err != nil {
		s.writeError(w, err)
		return
	}
	next, err := s.cal.NextHoliday(from)
	if err != nil {
		s.writeError(w, err)
		return
	}
	name, _, err := s.cal.HolidayName(next)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, NextHolidayResponse{Date: from, NextHoliday: next, Name: name})
}

func (s *Server) handleCountWorkdays(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	start, err := dateutil.Normalize(dateutil.Text(q.Get("start")))
	if err != nil {
		s.writeError(w, err)
		return
	}
	end, err := dateutil.Normalize(dateutil.Text(q.Get("end")))
	if err != nil {
		s.writeError(w, err)
		return
	}

	n, err := s.cal.CountWorkingDays(start, end)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, CountResponse{Start: start, End: end, WorkingDays: n})
}

func (s *Server) handleAddWorkdays(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	date, err := dateutil.Normalize(dateutil.Text(q.Get("date")))
	if err != nil {
		s.writeError(w, err)
		return
	}
	n, err := strconv.Atoi(q.Get("n"))
	if err != nil {
		s.writeError(w, fmt.Errorf("%w: n must be an integer", errBadParameter))
		return
	}

	result, err := s.cal.AddWorkingDays(date, n)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, AddResponse{Date: date, Offset: n, Result: result})
}

func intVar(r *http.Request, name string) (int, error) {
	v, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil {
		return 0, fmt.Errorf("%w: %s", errBadParameter, name)
	}
	return v, nil
}

// statusFor maps query errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, krholidays.ErrInvalidDateFormat),
		errors.Is(err, krholidays.ErrInvalidMonth),
		errors.Is(err, krholidays.ErrNegativeOffset),
		errors.Is(err, errBadParameter):
		return http.StatusBadRequest
	case errors.Is(err, krholidays.ErrUnsupportedYear):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("Request failed", zap.Error(err))
	}
	s.writeJSON(w, status, ErrorResponse{Error: err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Warn("Failed to write response", zap.Error(err))
	}
}
