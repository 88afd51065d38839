package krholidays

import (
	"github.com/g-rebels/kr-holiday/pkg/dataset"
	"github.com/g-rebels/kr-holiday/pkg/dateutil"
	"go.uber.org/zap"
)

// YearSummary describes one year. For an unsupported year Supported is
// false, Statistics is nil and Holidays is empty.
type YearSummary struct {
	Year       int                 `json:"year" yaml:"year"`
	Supported  bool                `json:"supported" yaml:"supported"`
	Statistics *dataset.Statistics `json:"statistics" yaml:"statistics"`
	Holidays   []dateutil.Date     `json:"holidays" yaml:"holidays"`
}

// KoreanHolidays bundles a store and its engine behind one value.
type KoreanHolidays struct {
	*Engine
	logger *zap.Logger
}

type options struct {
	source dataset.Source
	logger *zap.Logger
}

// Option configures New.
type Option func(*options)

// WithSource replaces the embedded dataset.
func WithSource(src dataset.Source) Option {
	return func(o *options) {
		o.source = src
	}
}

// WithLogger sets the logger used for dataset loading.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// New creates a KoreanHolidays with its own cache. Without options it
// serves the embedded dataset and logs nothing.
func New(opts ...Option) *KoreanHolidays {
	o := options{
		source: dataset.Embedded(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	return &KoreanHolidays{
		Engine: NewEngine(NewStore(o.source, o.logger)),
		logger: o.logger,
	}
}

// SupportedYears returns the years with data in ascending order.
func (k *KoreanHolidays) SupportedYears() []int {
	return k.store.SupportedYears()
}

// IsSupportedYear reports whether year has data.
func (k *KoreanHolidays) IsSupportedYear(year int) bool {
	return k.store.IsSupportedYear(year)
}

// YearSummary never fails: an unsupported or unreadable year is reported
// with Supported set to false.
func (k *KoreanHolidays) YearSummary(year int) YearSummary {
	summary := YearSummary{
		Year:     year,
		Holidays: []dateutil.Date{},
	}

	cal, err := k.store.Get(year)
	if err != nil {
		k.logger.Debug("Year summary unavailable",
			zap.Int("year", year),
			zap.Error(err))
		return summary
	}

	holidays, err := k.HolidaysInYear(year)
	if err != nil {
		return summary
	}

	stats := cal.Statistics
	summary.Supported = true
	summary.Statistics = &stats
	summary.Holidays = holidays
	return summary
}
