package kappa

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// BuildExpected returns the k×k joint distribution two independent raters
// with the given k×2 marginal distributions would produce:
// Expected[i][j] = dist[i][0] * dist[j][1].
func BuildExpected(dist *mat.Dense) (*mat.Dense, error) {
	if dist == nil {
		return nil, fmt.Errorf("%w: distribution matrix required", ErrDimensionMismatch)
	}
	_, c := dist.Dims()
	if c != 2 {
		return nil, fmt.Errorf("%w: distribution matrix has %d columns, 2 required", ErrDimensionMismatch, c)
	}

	var expected mat.Dense
	expected.Outer(1, dist.ColView(raterA), dist.ColView(raterB))
	return &expected, nil
}
