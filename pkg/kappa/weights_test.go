package kappa

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestBuildWeights_Examples(t *testing.T) {
	tests := []struct {
		scheme Scheme
		want   []float64
	}{
		{SchemeUnweighted, []float64{0, 1, 1, 1, 0, 1, 1, 1, 0}},
		{SchemeLinear, []float64{0, 1, 2, 1, 0, 1, 2, 1, 0}},
		{SchemeSquared, []float64{0, 1, 4, 1, 0, 1, 4, 1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.scheme.String(), func(t *testing.T) {
			w, err := BuildWeights(3, tt.scheme)
			require.NoError(t, err)
			assert.True(t, mat.Equal(mat.NewDense(3, 3, tt.want), w))
		})
	}
}

func TestBuildWeights_Properties(t *testing.T) {
	for _, s := range []Scheme{SchemeUnweighted, SchemeLinear, SchemeSquared} {
		for k := 1; k <= 8; k++ {
			t.Run(fmt.Sprintf("%s/%d", s, k), func(t *testing.T) {
				w, err := BuildWeights(k, s)
				require.NoError(t, err)

				r, c := w.Dims()
				require.Equal(t, k, r)
				require.Equal(t, k, c)
				assert.True(t, mat.Equal(w, w.T()), "symmetric")

				for i := 0; i < k; i++ {
					assert.Zero(t, w.At(i, i))
					for j := 0; j < k; j++ {
						if s == SchemeUnweighted && i != j {
							assert.Equal(t, 1.0, w.At(i, j))
						}
					}
				}
			})
		}
	}
}

func TestBuildWeights_Invalid(t *testing.T) {
	_, err := BuildWeights(0, SchemeLinear)
	assert.ErrorIs(t, err, ErrFormat)

	_, err = BuildWeights(2, SchemeCustom)
	assert.ErrorIs(t, err, ErrUnknownScheme)
}

func TestLoadWeights(t *testing.T) {
	w, err := LoadWeights(testWeights2x2)
	require.NoError(t, err)
	assert.True(t, mat.Equal(mat.NewDense(2, 2, []float64{0, 1, 1, 0}), w))
}

func TestLoadWeights_ReturnsMatrixUnchanged(t *testing.T) {
	tests := []*mat.Dense{
		mat.NewDense(1, 1, []float64{0}),
		mat.NewDense(1, 1, []float64{3.5}),
		mat.NewDense(2, 2, []float64{0, 0.25, 0.25, 0}),
		mat.NewDense(3, 3, []float64{1, -2, 3e-3, -2, 0, 7, 3e-3, 7, 0}),
		mat.NewDense(4, 4, []float64{
			0, 1, 4, 9,
			1, 0, 1, 4,
			4, 1, 0, 1,
			9, 4, 1, 0,
		}),
	}

	for i, want := range tests {
		t.Run(fmt.Sprintf("matrix-%d", i), func(t *testing.T) {
			p := writeFile(t, "weights.txt", formatMatrix(want))
			got, err := LoadWeights(p)
			require.NoError(t, err)
			assert.True(t, mat.Equal(want, got))
		})
	}
}

func TestLoadWeights_Errors(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		kind   error
		detail error
		msg    string
	}{
		{"asymmetric", testAsymmetric, ErrAsymmetry, ErrAsymmetry, "Weights matrix has to be symmetric"},
		{"non square", testNonSquare, ErrAsymmetry, ErrAsymmetry, "Weights matrix has to be symmetric"},
		{"non numeric", testInvalid, ErrFormat, ErrNotNumeric, "Numbers required"},
		{"ragged rows", testRagged, ErrFormat, ErrRaggedRows, "same number of elements required in each row"},
		{"empty", testEmpty, ErrFormat, ErrEmptyInput, "numbers required"},
		{"missing", testMissingFile, ErrFile, ErrFile, testMissingFile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadWeights(tt.path)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.kind)
			assert.ErrorIs(t, err, tt.detail)
			assert.Contains(t, strings.ToLower(err.Error()), strings.ToLower(tt.msg))
		})
	}
}

func TestLoadWeights_EmptyAndNonNumericAreDistinct(t *testing.T) {
	_, emptyErr := LoadWeights(testEmpty)
	_, invalidErr := LoadWeights(testInvalid)

	assert.ErrorIs(t, emptyErr, ErrEmptyInput)
	assert.NotErrorIs(t, invalidErr, ErrEmptyInput)
	assert.ErrorIs(t, invalidErr, ErrNotNumeric)
}

func TestLoadWeights_NaN(t *testing.T) {
	p := writeFile(t, "nan.txt", "0 nan\nnan 0\n")
	_, err := LoadWeights(p)
	assert.ErrorIs(t, err, ErrNotNumeric)
}

func TestLoadWeights_Inf(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"inf", "0 inf 1\ninf 0 1\n1 1 0\n"},
		{"negative inf", "0 -inf\n-inf 0\n"},
		{"overflow", "0 1e400\n1e400 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadWeights(writeFile(t, "inf.txt", tt.content))
			assert.ErrorIs(t, err, ErrFormat)
			assert.ErrorIs(t, err, ErrNotNumeric)
		})
	}
}

func TestLoadWeights_TooManyCategories(t *testing.T) {
	p := writeFile(t, "wide.txt", strings.Repeat("0 ", MaxCategories+1)+"\n")
	_, err := LoadWeights(p)
	assert.ErrorIs(t, err, ErrFormat)
	assert.ErrorIs(t, err, ErrCategoryRange)
}

func TestLoadWeights_LongLine(t *testing.T) {
	pad := strings.Repeat(" ", 100*1024)
	p := writeFile(t, "long.txt", "0"+pad+"1\n1 0\n")
	w, err := LoadWeights(p)
	require.NoError(t, err)
	assert.Equal(t, 1.0, w.At(0, 1))

	p = writeFile(t, "huge.txt", "0 "+strings.Repeat(" ", maxLineBytes)+"1\n1 0\n")
	_, err = LoadWeights(p)
	assert.ErrorIs(t, err, ErrFormat)
	assert.NotErrorIs(t, err, ErrFile)
}

func TestBuildWeights_TooManyCategories(t *testing.T) {
	w, err := BuildWeights(MaxCategories, SchemeUnweighted)
	require.NoError(t, err)
	r, c := w.Dims()
	assert.Equal(t, MaxCategories, r)
	assert.Equal(t, MaxCategories, c)

	_, err = BuildWeights(MaxCategories+1, SchemeLinear)
	assert.ErrorIs(t, err, ErrFormat)
	assert.ErrorIs(t, err, ErrCategoryRange)
}

func TestLoadWeights_NearlySymmetric(t *testing.T) {
	p := writeFile(t, "near.txt", "0 0.3\n0.30000000000000004 0\n")
	_, err := LoadWeights(p)
	assert.NoError(t, err)
}

func formatMatrix(m *mat.Dense) string {
	var sb strings.Builder
	r, c := m.Dims()
	for i := 0; i < r; i++ {
		vals := make([]string, c)
		for j := 0; j < c; j++ {
			vals[j] = fmt.Sprintf("%v", m.At(i, j))
		}
		sb.WriteString(strings.Join(vals, " "))
		sb.WriteString("\n")
	}
	return sb.String()
}
