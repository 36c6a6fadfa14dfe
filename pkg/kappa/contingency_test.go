package kappa

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

const sumTol = 1e-9

func TestBuildContingency(t *testing.T) {
	r := Ratings{{0, 0}, {1, 2}, {2, 1}, {2, 2}}
	c, err := BuildContingency(3, r)
	require.NoError(t, err)
	assert.Equal(t, 4, c.Subjects)

	wantObserved := mat.NewDense(3, 3, []float64{
		0.25, 0, 0,
		0, 0, 0.25,
		0, 0.25, 0.25,
	})
	assert.True(t, mat.Equal(wantObserved, c.Observed))

	wantDist := mat.NewDense(3, 2, []float64{
		0.25, 0.25,
		0.25, 0.25,
		0.5, 0.5,
	})
	assert.True(t, mat.Equal(wantDist, c.Distribution))
}

func TestBuildContingency_Sums(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	for n := 1; n <= 50; n += 7 {
		k := 1 + rnd.Intn(6)
		r := make(Ratings, n)
		for i := range r {
			r[i] = Pair{A: rnd.Intn(k), B: rnd.Intn(k)}
		}

		c, err := BuildContingency(k, r)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, mat.Sum(c.Observed), sumTol)
		assert.InDelta(t, 1.0, mat.Sum(c.Distribution.ColView(0)), sumTol)
		assert.InDelta(t, 1.0, mat.Sum(c.Distribution.ColView(1)), sumTol)
	}
}

func TestBuildContingency_NoSubjects(t *testing.T) {
	_, err := BuildContingency(2, nil)
	assert.ErrorIs(t, err, ErrFormat)
	assert.ErrorIs(t, err, ErrNoSubjects)
}

func TestBuildContingency_OutOfRange(t *testing.T) {
	_, err := BuildContingency(2, Ratings{{0, 2}})
	assert.ErrorIs(t, err, ErrCategoryRange)
}

func TestBuildExpected(t *testing.T) {
	dist := mat.NewDense(2, 2, []float64{
		0.5, 0.6,
		0.5, 0.4,
	})
	e, err := BuildExpected(dist)
	require.NoError(t, err)

	want := mat.NewDense(2, 2, []float64{
		0.5 * 0.6, 0.5 * 0.4,
		0.5 * 0.6, 0.5 * 0.4,
	})
	assert.True(t, mat.Equal(want, e))
	assert.InDelta(t, 1.0, mat.Sum(e), sumTol)
}

func TestBuildExpected_Invalid(t *testing.T) {
	_, err := BuildExpected(nil)
	assert.ErrorIs(t, err, ErrDimensionMismatch)

	_, err = BuildExpected(mat.NewDense(2, 3, nil))
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}
