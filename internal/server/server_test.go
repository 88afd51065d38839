package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/g-rebels/kr-holiday/pkg/dateutil"
	"github.com/g-rebels/kr-holiday/pkg/krholidays"
	"github.com/matryer/is"
	"go.uber.org/zap"
)

func newTestServer() *Server {
	return New(krholidays.New(), ":0", time.Second, zap.NewNop())
}

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
}

func TestServer_Day(t *testing.T) {
	is := is.New(t)
	s := newTestServer()

	rec := get(t, s, "/v1/days/2024-05-06")
	is.Equal(rec.Code, http.StatusOK)
	is.Equal(rec.Header().Get("Content-Type"), "application/json; charset=utf-8")

	var body struct {
		ISODate      string  `json:"iso_date"`
		IsHoliday    bool    `json:"is_holiday"`
		IsSubstitute bool    `json:"is_substitute_holiday"`
		HolidayName  *string `json:"holiday_name"`
		IsWorkingDay bool    `json:"is_working_day"`
	}
	decode(t, rec, &body)
	is.Equal(body.ISODate, "2024-05-06")
	is.True(body.IsHoliday)
	is.True(body.IsSubstitute)
	is.True(body.HolidayName != nil)
	is.Equal(*body.HolidayName, "대체공휴일")
	is.True(!body.IsWorkingDay)

	rec = get(t, s, "/v1/days/20240102")
	is.Equal(rec.Code, http.StatusOK)
	decode(t, rec, &body)
	is.True(body.IsWorkingDay)
	is.True(body.HolidayName == nil)
}

func TestServer_Errors(t *testing.T) {
	s := newTestServer()

	tests := []struct {
		name   string
		target string
		want   int
	}{
		{"invalid date", "/v1/days/not-a-date", http.StatusBadRequest},
		{"impossible date", "/v1/days/2024-02-30", http.StatusBadRequest},
		{"unsupported year", "/v1/days/1999-01-01", http.StatusNotFound},
		{"unsupported year holidays", "/v1/years/1900/holidays", http.StatusNotFound},
		{"invalid month", "/v1/years/2024/months/13/holidays", http.StatusBadRequest},
		{"negative offset", "/v1/workdays/add?date=2024-01-02&n=-1", http.StatusBadRequest},
		{"non-numeric offset", "/v1/workdays/add?date=2024-01-02&n=x", http.StatusBadRequest},
		{"missing start", "/v1/workdays/count?end=2024-01-31", http.StatusBadRequest},
		{"next past dataset", "/v1/next-holiday/2040-12-26", http.StatusNotFound},
		{"unknown route", "/v1/nope", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			is := is.New(t)
			rec := get(t, s, tt.target)
			is.Equal(rec.Code, tt.want)

			if tt.name != "unknown route" {
				var body ErrorResponse
				decode(t, rec, &body)
				is.True(body.Error != "")
			}
		})
	}
}

func TestServer_Years(t *testing.T) {
	is := is.New(t)
	s := newTestServer()

	var years YearsResponse
	rec := get(t, s, "/v1/years")
	is.Equal(rec.Code, http.StatusOK)
	decode(t, rec, &years)
	is.Equal(len(years.Years), 31)
	is.Equal(years.Years[0], 2010)

	var holidays HolidaysResponse
	rec = get(t, s, "/v1/years/2024/holidays")
	is.Equal(rec.Code, http.StatusOK)
	decode(t, rec, &holidays)
	is.Equal(holidays.Year, 2024)
	is.Equal(holidays.Holidays[0].Name, "신정")
	is.Equal(holidays.Holidays[0].Date, dateutil.NewDate(2024, time.January, 1))

	var summary krholidays.YearSummary
	rec = get(t, s, "/v1/years/2024/summary")
	is.Equal(rec.Code, http.StatusOK)
	decode(t, rec, &summary)
	is.True(summary.Supported)
	is.Equal(summary.Statistics.WorkingDays, 246)
	is.Equal(len(summary.Holidays), len(holidays.Holidays))

	var missing krholidays.YearSummary
	rec = get(t, s, "/v1/years/1900/summary")
	is.Equal(rec.Code, http.StatusOK)
	decode(t, rec, &missing)
	is.True(!missing.Supported)
	is.True(missing.Statistics == nil)
}

func TestServer_Month(t *testing.T) {
	is := is.New(t)
	s := newTestServer()

	var holidays MonthResponse
	rec := get(t, s, "/v1/years/2024/months/2/holidays")
	is.Equal(rec.Code, http.StatusOK)
	decode(t, rec, &holidays)
	is.Equal(holidays.Month, 2)
	is.Equal(len(holidays.Dates), 4)

	var workdays MonthResponse
	rec = get(t, s, "/v1/years/2024/months/7/workdays")
	is.Equal(rec.Code, http.StatusOK)
	decode(t, rec, &workdays)
	is.Equal(len(workdays.Dates), 23)

	var empty MonthResponse
	rec = get(t, s, "/v1/years/2024/months/7/holidays")
	is.Equal(rec.Code, http.StatusOK)
	decode(t, rec, &empty)
	is.True(empty.Dates != nil)
	is.Equal(len(empty.Dates), 0)
}

func TestServer_Arithmetic(t *testing.T) {
	is := is.New(t)
	s := newTestServer()

	var next NextHolidayResponse
	rec := get(t, s, "/v1/next-holiday/2024-01-02")
	is.Equal(rec.Code, http.StatusOK)
	decode(t, rec, &next)
	is.Equal(next.NextHoliday, dateutil.NewDate(2024, time.February, 9))
	is.Equal(next.Name, "설날")

	var count CountResponse
	rec = get(t, s, "/v1/workdays/count?start=2024-01-01&end=2024-12-31")
	is.Equal(rec.Code, http.StatusOK)
	decode(t, rec, &count)
	is.Equal(count.WorkingDays, 246)

	var added AddResponse
	rec = get(t, s, "/v1/workdays/add?date=2024-12-31&n=1")
	is.Equal(rec.Code, http.StatusOK)
	decode(t, rec, &added)
	is.Equal(added.Result, dateutil.NewDate(2025, time.January, 2))
}

func TestServer_Health(t *testing.T) {
	is := is.New(t)

	rec := get(t, newTestServer(), "/healthz")
	is.Equal(rec.Code, http.StatusOK)
	is.Equal(rec.Header().Get("Application-Status"), "OK")
}

func TestServer_RunShutsDownOnCancel(t *testing.T) {
	is := is.New(t)
	s := New(krholidays.New(), "127.0.0.1:0", time.Second, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		is.NoErr(err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
