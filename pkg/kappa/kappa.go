// Package kappa computes Cohen's kappa, optionally weighted, for two raters
// who assigned ordinal categories to the same subjects.
package kappa

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Calculate combines the weight, observed and expected matrices:
//
//	kappa = 1 - sum(W*Observed) / sum(W*Expected)
//
// When sum(W*Expected) is zero the ratio is taken as zero and kappa is 1.
// The result is not clamped.
func Calculate(w, observed, expected mat.Matrix) (float64, error) {
	if w == nil || observed == nil || expected == nil {
		return 0, fmt.Errorf("%w: weight, observed and expected matrices required", ErrDimensionMismatch)
	}
	wr, wc := w.Dims()
	or, oc := observed.Dims()
	er, ec := expected.Dims()
	if wr != or || wc != oc || wr != er || wc != ec {
		return 0, fmt.Errorf("%w: weights %dx%d, observed %dx%d, expected %dx%d",
			ErrDimensionMismatch, wr, wc, or, oc, er, ec)
	}

	disagreeExpected := weightedSum(w, expected)
	disagreeObserved := weightedSum(w, observed)
	if !isFinite(disagreeExpected) || !isFinite(disagreeObserved) {
		return 0, fmt.Errorf("%w: %w: weighted disagreement is not finite", ErrFormat, ErrNotNumeric)
	}
	if disagreeExpected == 0 {
		return 1.0, nil
	}
	return 1.0 - disagreeObserved/disagreeExpected, nil
}

func weightedSum(w, m mat.Matrix) float64 {
	var prod mat.Dense
	prod.MulElem(w, m)
	return mat.Sum(&prod)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
