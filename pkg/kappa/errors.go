package kappa

import "errors"

// Error kinds. Every error caused by input data matches exactly one of
// ErrFile, ErrFormat or ErrAsymmetry via errors.Is. Detail sentinels are
// joined alongside the kind so callers can also match the precise cause.
var (
	// ErrFile is returned when an input file is missing or unreadable.
	ErrFile = errors.New("kappa: bad filename")

	// ErrFormat is returned for malformed numeric content.
	ErrFormat = errors.New("kappa: invalid input")

	// ErrAsymmetry is returned when a custom weight matrix is not square
	// or not symmetric within tolerance.
	ErrAsymmetry = errors.New("kappa: weights matrix has to be symmetric")
)

var (
	ErrEmptyInput        = errors.New("empty input file")
	ErrRaggedRows        = errors.New("same number of elements required in each row")
	ErrNotNumeric        = errors.New("numbers required")
	ErrCategoryRange     = errors.New("category out of range")
	ErrNoSubjects        = errors.New("no subjects to rate")
	ErrDimensionMismatch = errors.New("dimension mismatch")
	ErrUnknownScheme     = errors.New("unknown weighting scheme")
)
