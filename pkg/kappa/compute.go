package kappa

import (
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/mat"
)

// Options is the validated input bundle for one run.
type Options struct {
	Mode     Mode
	CSV      bool
	Filename string

	// Verbose is carried for the caller; Result always holds the details.
	Verbose bool

	// Matrices includes the weight, observed and expected matrices in the result.
	Matrices bool
}

// Result is the outcome of one run. Scheme, Categories and Subjects are the
// details reported in verbose output.
type Result struct {
	File       string      `json:"file" yaml:"file"`
	Kappa      float64     `json:"kappa" yaml:"kappa"`
	Scheme     string      `json:"scheme" yaml:"scheme"`
	Categories int         `json:"categories" yaml:"categories"`
	Subjects   int         `json:"subjects" yaml:"subjects"`
	Weights    [][]float64 `json:"weights,omitempty" yaml:"weights,omitempty"`
	Observed   [][]float64 `json:"observed,omitempty" yaml:"observed,omitempty"`
	Expected   [][]float64 `json:"expected,omitempty" yaml:"expected,omitempty"`
}

// Compute loads the ratings, derives the weight matrix and returns kappa.
// The first failing stage aborts the run.
func Compute(opts Options) (*Result, error) {
	if err := opts.Mode.Validate(); err != nil {
		return nil, err
	}

	ratings, err := LoadRatings(opts.Filename, opts.CSV)
	if err != nil {
		return nil, err
	}

	w, err := weightsFor(opts.Mode, ratings)
	if err != nil {
		return nil, err
	}
	k, _ := w.Dims()

	c, err := BuildContingency(k, ratings)
	if err != nil {
		return nil, err
	}

	expected, err := BuildExpected(c.Distribution)
	if err != nil {
		return nil, err
	}

	kappa, err := Calculate(w, c.Observed, expected)
	if err != nil {
		return nil, fmt.Errorf("error calculating kappa for %s: %w", opts.Filename, err)
	}

	slog.Debug("kappa computed",
		"file", opts.Filename,
		"scheme", opts.Mode.String(),
		"categories", k,
		"subjects", c.Subjects,
		"kappa", kappa)

	res := &Result{
		File:       opts.Filename,
		Kappa:      kappa,
		Scheme:     opts.Mode.String(),
		Categories: k,
		Subjects:   c.Subjects,
	}
	if opts.Matrices {
		res.Weights = rows(w)
		res.Observed = rows(c.Observed)
		res.Expected = rows(expected)
	}
	return res, nil
}

func weightsFor(m Mode, r Ratings) (*mat.Dense, error) {
	if m.Scheme == SchemeCustom {
		return LoadWeights(m.Path)
	}
	return BuildWeights(Categories(r), m.Scheme)
}

func rows(m mat.Matrix) [][]float64 {
	r, c := m.Dims()
	out := make([][]float64, r)
	for i := range out {
		out[i] = make([]float64, c)
		for j := range out[i] {
			out[i][j] = m.At(i, j)
		}
	}
	return out
}
