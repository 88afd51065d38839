package krholidays

import (
	"fmt"
	"sort"
	"sync"

	"github.com/g-rebels/kr-holiday/pkg/dataset"
	"github.com/g-rebels/kr-holiday/pkg/dateutil"
	"go.uber.org/zap"
)

// Store loads year calendars from a dataset source and keeps them for the
// lifetime of the Store. Entries are never invalidated.
type Store struct {
	source    dataset.Source
	logger    *zap.Logger
	supported map[int]bool
	years     []int
	cache     map[int]*dataset.YearCalendar
	cacheMu   sync.RWMutex
}

// NewStore creates a Store over src. The set of supported years is taken
// from src once, here.
func NewStore(src dataset.Source, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}

	years := src.Years()
	sort.Ints(years)
	supported := make(map[int]bool, len(years))
	for _, y := range years {
		supported[y] = true
	}

	return &Store{
		source:    src,
		logger:    logger,
		supported: supported,
		years:     years,
		cache:     make(map[int]*dataset.YearCalendar),
	}
}

// SupportedYears returns the years with data in ascending order.
func (s *Store) SupportedYears() []int {
	out := make([]int, len(s.years))
	copy(out, s.years)
	return out
}

// IsSupportedYear reports whether year has data.
func (s *Store) IsSupportedYear(year int) bool {
	return s.supported[year]
}

// Get returns the calendar for year, loading it on first use.
// The returned calendar is shared and must not be modified.
func (s *Store) Get(year int) (*dataset.YearCalendar, error) {
	if !s.supported[year] {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedYear, year)
	}

	s.cacheMu.RLock()
	cal, ok := s.cache[year]
	s.cacheMu.RUnlock()
	if ok {
		return cal, nil
	}

	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()

	// Another goroutine may have loaded it while we waited.
	if cal, ok := s.cache[year]; ok {
		return cal, nil
	}

	cal, err := s.load(year)
	if err != nil {
		return nil, err
	}
	s.cache[year] = cal

	s.logger.Debug("Year calendar loaded",
		zap.Int("year", year),
		zap.String("source", cal.Source),
		zap.Int("holidays", cal.Statistics.HolidayDays))

	return cal, nil
}

// DayRecord returns the record of the given date.
func (s *Store) DayRecord(in dateutil.Input) (dataset.DayRecord, error) {
	date, err := dateutil.Normalize(in)
	if err != nil {
		return dataset.DayRecord{}, err
	}
	return s.record(date)
}

func (s *Store) record(date dateutil.Date) (dataset.DayRecord, error) {
	cal, err := s.Get(date.Year)
	if err != nil {
		return dataset.DayRecord{}, err
	}
	rec, ok := cal.Record(date)
	if !ok {
		return dataset.DayRecord{}, fmt.Errorf("%w: %s missing from year %d", ErrCorruptDataset, date, date.Year)
	}
	return rec, nil
}

func (s *Store) load(year int) (*dataset.YearCalendar, error) {
	rc, err := s.source.Open(year)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open year %d: %v", ErrCorruptDataset, year, err)
	}
	defer rc.Close()

	cal, err := dataset.Decode(rc)
	if err != nil {
		s.logger.Error("Failed to load year calendar",
			zap.Int("year", year),
			zap.Error(err))
		return nil, fmt.Errorf("%w: year %d: %v", ErrCorruptDataset, year, err)
	}
	if cal.Year != year {
		return nil, fmt.Errorf("%w: file for %d contains year %d", ErrCorruptDataset, year, cal.Year)
	}

	return cal, nil
}

// cached reports whether year is already loaded.
func (s *Store) cached(year int) bool {
	s.cacheMu.RLock()
	defer s.cacheMu.RUnlock()
	_, ok := s.cache[year]
	return ok
}
