package generator

import (
	"context"
	"errors"
	"time"

	"github.com/g-rebels/kr-holiday/pkg/dataset"
	"go.uber.org/zap"
)

// Source labels written into generated files.
const (
	SourceAPI      = "공공데이터포털 API"
	SourceFallback = "임시 데이터"
)

// Fetcher returns the special days of one year.
type Fetcher interface {
	FetchYear(ctx context.Context, year int) ([]dataset.HolidayEntry, error)
	APIURL() string
}

// Result describes the file produced for one year.
type Result struct {
	Year       int
	Path       string
	Source     string
	Statistics dataset.Statistics
	Err        error
}

// Summary aggregates one generator run.
type Summary struct {
	Results   []Result
	Written   int
	Failed    int
	Fallbacks int
}

// Generator writes one year file per requested year.
type Generator struct {
	fetcher   Fetcher
	outputDir string
	gzip      bool
	logger    *zap.Logger
	now       func() time.Time
}

// New creates a generator writing into outputDir.
func New(fetcher Fetcher, outputDir string, gzip bool, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{
		fetcher:   fetcher,
		outputDir: outputDir,
		gzip:      gzip,
		logger:    logger,
		now:       time.Now,
	}
}

// Build fetches year and lays it over every day. When fetching fails the
// calendar has no holidays and is labeled as placeholder data.
func (g *Generator) Build(ctx context.Context, year int) *dataset.YearCalendar {
	meta := dataset.Meta{GeneratedAt: g.now()}

	entries, err := g.fetcher.FetchYear(ctx, year)
	if err != nil {
		if errors.Is(err, ErrNoServiceKey) {
			g.logger.Warn("No service key, writing placeholder data", zap.Int("year", year))
		} else {
			g.logger.Error("Fetch failed, writing placeholder data",
				zap.Int("year", year),
				zap.Error(err))
		}
		meta.Source = SourceFallback
		return dataset.Build(year, nil, meta)
	}

	meta.Source = SourceAPI
	meta.APIURL = g.fetcher.APIURL()
	return dataset.Build(year, entries, meta)
}

// Run generates every year in order. Write failures are counted, not
// fatal; a cancelled context stops the run early.
func (g *Generator) Run(ctx context.Context, years []int) Summary {
	var summary Summary

	for _, year := range years {
		if ctx.Err() != nil {
			g.logger.Warn("Generation cancelled", zap.Int("next_year", year))
			break
		}

		cal := g.Build(ctx, year)
		res := Result{
			Year:       year,
			Source:     cal.Source,
			Statistics: cal.Statistics,
		}
		if cal.Source == SourceFallback {
			summary.Fallbacks++
		}

		res.Path, res.Err = dataset.WriteFile(g.outputDir, cal, g.gzip)
		if res.Err != nil {
			summary.Failed++
			g.logger.Error("Failed to write year file",
				zap.Int("year", year),
				zap.Error(res.Err))
		} else {
			summary.Written++
			g.logger.Info("Year file written",
				zap.Int("year", year),
				zap.String("path", res.Path),
				zap.Int("holidays", cal.Statistics.HolidayDays),
				zap.Int("weekend_days", cal.Statistics.WeekendDays),
				zap.Int("working_days", cal.Statistics.WorkingDays),
				zap.Int("substitute_holidays", cal.Statistics.SubstituteHolidays))
		}

		summary.Results = append(summary.Results, res)
	}

	g.logger.Info("Generation completed",
		zap.Int("requested", len(years)),
		zap.Int("written", summary.Written),
		zap.Int("failed", summary.Failed),
		zap.Int("fallbacks", summary.Fallbacks),
		zap.String("output_dir", g.outputDir))

	return summary
}
