package kappa

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

const (
	raterA = 0
	raterB = 1
)

// Contingency holds the observed joint distribution of rating pairs and the
// marginal distribution of each rater.
type Contingency struct {
	// Observed is k×k; Observed[i][j] is the share of subjects rated i by
	// rater A and j by rater B.
	Observed *mat.Dense

	// Distribution is k×2; column 0 is rater A's marginal distribution and
	// column 1 is rater B's.
	Distribution *mat.Dense

	Subjects int
}

// BuildContingency counts every pair of r into a k-category table and
// normalizes the counts by the number of subjects.
func BuildContingency(k int, r Ratings) (*Contingency, error) {
	n := len(r)
	if n == 0 {
		return nil, fmt.Errorf("%w: %w", ErrFormat, ErrNoSubjects)
	}
	if err := ValidateRatings(r, k); err != nil {
		return nil, err
	}

	observed := mat.NewDense(k, k, nil)
	dist := mat.NewDense(k, 2, nil)
	for _, p := range r {
		observed.Set(p.A, p.B, observed.At(p.A, p.B)+1)
		dist.Set(p.A, raterA, dist.At(p.A, raterA)+1)
		dist.Set(p.B, raterB, dist.At(p.B, raterB)+1)
	}

	normalize(observed, n)
	normalize(dist, n)

	return &Contingency{
		Observed:     observed,
		Distribution: dist,
		Subjects:     n,
	}, nil
}

// normalize divides every cell of m by n in place.
func normalize(m *mat.Dense, n int) {
	d := float64(n)
	m.Apply(func(_, _ int, v float64) float64 { return v / d }, m)
}
