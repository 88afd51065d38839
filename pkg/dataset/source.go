package dataset

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	"go.uber.org/zap"
)

// ErrYearNotFound is returned by Source.Open for a year without a file.
var ErrYearNotFound = errors.New("year not found in dataset")

const (
	filePrefix = "holidays_"
	jsonSuffix = ".json"
	gzSuffix   = ".json.gz"
)

//go:embed data/*.json.gz
var embeddedData embed.FS

// Source provides the raw year files of a dataset.
type Source interface {
	// Years returns the years with data in ascending order.
	Years() []int

	// Open returns the decompressed JSON document for year.
	Open(year int) (io.ReadCloser, error)
}

// FileName returns the file name used for year.
func FileName(year int, compressed bool) string {
	if compressed {
		return fmt.Sprintf("%s%d%s", filePrefix, year, gzSuffix)
	}
	return fmt.Sprintf("%s%d%s", filePrefix, year, jsonSuffix)
}

// FSSource reads year files from a directory of an fs.FS.
// Plain .json files take precedence over .json.gz ones.
type FSSource struct {
	fsys  fs.FS
	dir   string
	files map[int]string
	years []int
}

// NewFSSource indexes the year files found in dir of fsys.
func NewFSSource(fsys fs.FS, dir string) (*FSSource, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list dataset directory: %w", err)
	}

	src := &FSSource{
		fsys:  fsys,
		dir:   dir,
		files: make(map[int]string),
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		year, compressed, ok := parseFileName(entry.Name())
		if !ok {
			continue
		}
		if _, seen := src.files[year]; seen && compressed {
			continue
		}
		src.files[year] = entry.Name()
	}

	for year := range src.files {
		src.years = append(src.years, year)
	}
	sort.Ints(src.years)

	return src, nil
}

// NewDirSource indexes the year files in a directory on disk.
func NewDirSource(dir string) (*FSSource, error) {
	return NewFSSource(os.DirFS(dir), ".")
}

var embeddedSource = func() *FSSource {
	src, err := NewFSSource(embeddedData, "data")
	if err != nil {
		panic(fmt.Sprintf("embedded dataset unreadable: %v", err))
	}
	return src
}()

// Embedded returns the dataset compiled into the binary.
func Embedded() *FSSource {
	return embeddedSource
}

// Years returns the indexed years in ascending order.
func (s *FSSource) Years() []int {
	out := make([]int, len(s.years))
	copy(out, s.years)
	return out
}

// Open opens the file for year, decompressing it when needed.
func (s *FSSource) Open(year int) (io.ReadCloser, error) {
	name, ok := s.files[year]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrYearNotFound, year)
	}

	f, err := s.fsys.Open(path.Join(s.dir, name))
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", name, err)
	}
	if !strings.HasSuffix(name, gzSuffix) {
		return f, nil
	}

	zr, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to decompress %s: %w", name, err)
	}
	return &gzipFile{Reader: zr, file: f}, nil
}

type gzipFile struct {
	*gzip.Reader
	file fs.File
}

func (g *gzipFile) Close() error {
	zerr := g.Reader.Close()
	ferr := g.file.Close()
	if zerr != nil {
		return zerr
	}
	return ferr
}

func parseFileName(name string) (year int, compressed bool, ok bool) {
	if !strings.HasPrefix(name, filePrefix) {
		return 0, false, false
	}
	rest := strings.TrimPrefix(name, filePrefix)
	switch {
	case strings.HasSuffix(rest, gzSuffix):
		rest = strings.TrimSuffix(rest, gzSuffix)
		compressed = true
	case strings.HasSuffix(rest, jsonSuffix):
		rest = strings.TrimSuffix(rest, jsonSuffix)
	default:
		return 0, false, false
	}
	year, err := strconv.Atoi(rest)
	if err != nil || len(rest) != 4 {
		return 0, false, false
	}
	return year, compressed, true
}

// CompositeSource serves years from primary and falls back to fallback
// for years primary does not have.
type CompositeSource struct {
	primary  Source
	fallback Source
	logger   *zap.Logger
}

// NewCompositeSource creates a new CompositeSource
func NewCompositeSource(primary, fallback Source, logger *zap.Logger) *CompositeSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CompositeSource{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

// Years returns the sorted union of both sources' years.
func (cs *CompositeSource) Years() []int {
	seen := make(map[int]bool)
	var years []int
	for _, src := range []Source{cs.primary, cs.fallback} {
		for _, y := range src.Years() {
			if !seen[y] {
				seen[y] = true
				years = append(years, y)
			}
		}
	}
	sort.Ints(years)
	return years
}

// Open tries primary first.
func (cs *CompositeSource) Open(year int) (io.ReadCloser, error) {
	rc, err := cs.primary.Open(year)
	if err == nil {
		return rc, nil
	}

	if !errors.Is(err, ErrYearNotFound) {
		cs.logger.Warn("Primary dataset failed, falling back",
			zap.Int("year", year),
			zap.Error(err))
	}

	return cs.fallback.Open(year)
}
