package kappa

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"

	"gonum.org/v1/gonum/mat"
)

// symmetryTol is the absolute/relative tolerance used when comparing a
// custom weight matrix with its transpose.
const symmetryTol = 1e-8

// BuildWeights synthesizes the k×k disagreement weight matrix for a built-in
// scheme:
//
//	unweighted  linear     squared
//	[0 1 1]     [0 1 2]    [0 1 4]
//	[1 0 1]     [1 0 1]    [1 0 1]
//	[1 1 0]     [2 1 0]    [4 1 0]
func BuildWeights(k int, s Scheme) (*mat.Dense, error) {
	if k < 1 {
		return nil, fmt.Errorf("%w: at least one category required, got %d", ErrFormat, k)
	}
	if err := checkCategories(k); err != nil {
		return nil, err
	}

	var weight func(i, j int) float64
	switch s {
	case SchemeUnweighted:
		weight = func(i, j int) float64 {
			if i != j {
				return 1
			}
			return 0
		}
	case SchemeLinear:
		weight = func(i, j int) float64 { return math.Abs(float64(i - j)) }
	case SchemeSquared:
		weight = func(i, j int) float64 {
			d := float64(i - j)
			return d * d
		}
	default:
		return nil, fmt.Errorf("%w: %s cannot be synthesized", ErrUnknownScheme, s)
	}

	w := mat.NewDense(k, k, nil)
	for i := 0; i < k; i++ {
		for j := 0; j < k; j++ {
			w.Set(i, j, weight(i, j))
		}
	}
	return w, nil
}

// LoadWeights reads a custom weight matrix from a whitespace separated file
// with one matrix row per line. The matrix is returned as read, without
// normalization, once it is known to be numeric, square and symmetric.
func LoadWeights(path string) (*mat.Dense, error) {
	rows, err := readRows(path, false)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: invalid input from weights (%w): %w: %s",
			ErrFormat, ErrNotNumeric, ErrEmptyInput, path)
	}

	cols := len(rows[0].fields)
	for _, r := range rows[1:] {
		if len(r.fields) != cols {
			return nil, fmt.Errorf("%w: invalid input from weights (%w): %s line %d has %d values, expected %d",
				ErrFormat, ErrRaggedRows, path, r.line, len(r.fields), cols)
		}
	}

	if err := checkCategories(max(len(rows), cols)); err != nil {
		return nil, fmt.Errorf("%w: %s", err, path)
	}

	data := make([]float64, 0, len(rows)*cols)
	for _, r := range rows {
		for _, v := range r.fields {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
				return nil, fmt.Errorf("%w: invalid input from weights (%w): %s line %d: %q",
					ErrFormat, ErrNotNumeric, path, r.line, v)
			}
			data = append(data, f)
		}
	}

	w := mat.NewDense(len(rows), cols, data)
	if err := validateSymmetric(w); err != nil {
		return nil, fmt.Errorf("%w: %s", err, path)
	}

	slog.Debug("weights loaded", "file", path, "categories", len(rows))
	return w, nil
}

func validateSymmetric(w *mat.Dense) error {
	r, c := w.Dims()
	if r != c {
		return fmt.Errorf("%w: matrix is %dx%d", ErrAsymmetry, r, c)
	}
	if !mat.EqualApprox(w, w.T(), symmetryTol) {
		return ErrAsymmetry
	}
	return nil
}
