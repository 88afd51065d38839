package krholidays

import (
	"errors"

	"github.com/g-rebels/kr-holiday/pkg/dateutil"
)

// Query errors. Every error returned by a query wraps exactly one of these
// four, so callers can branch with errors.Is.
var (
	ErrInvalidDateFormat = dateutil.ErrInvalidDateFormat
	ErrUnsupportedYear   = errors.New("unsupported year")
	ErrInvalidMonth      = errors.New("invalid month")
	ErrNegativeOffset    = errors.New("negative working day offset")
)

// ErrCorruptDataset is returned when a year file exists but cannot be
// decoded or fails validation.
var ErrCorruptDataset = errors.New("corrupt dataset")
