package kappa

import (
	"fmt"
	"log/slog"
	"strconv"
)

const (
	ratingColumns = 2

	// MaxCategories bounds the category count so the k×k matrices stay small.
	MaxCategories = 1 << 10
)

// Pair holds the categories two raters assigned to one subject.
type Pair struct {
	A int `json:"a" yaml:"a"`
	B int `json:"b" yaml:"b"`
}

// Ratings is the ordered list of rated subjects.
type Ratings []Pair

// LoadRatings reads pairs of non-negative integer ratings from path.
// Fields are comma separated when csv is set, whitespace separated otherwise.
func LoadRatings(path string, csv bool) (Ratings, error) {
	rows, err := readRows(path, csv)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %w: %s", ErrFormat, ErrEmptyInput, path)
	}

	list := make(Ratings, 0, len(rows))
	for _, r := range rows {
		if len(r.fields) != ratingColumns {
			return nil, fmt.Errorf("%w: %w: %s line %d has %d values, %d required",
				ErrFormat, ErrRaggedRows, path, r.line, len(r.fields), ratingColumns)
		}

		var p [ratingColumns]int
		for i, v := range r.fields {
			n, err := strconv.Atoi(v)
			if err != nil {
				return nil, fmt.Errorf("%w: %w: %s line %d: %q is not an integer", ErrFormat, ErrNotNumeric, path, r.line, v)
			}
			if n < 0 {
				return nil, fmt.Errorf("%w: %w: %s line %d: negative category %d", ErrFormat, ErrCategoryRange, path, r.line, n)
			}
			if n >= MaxCategories {
				return nil, fmt.Errorf("%w: %w: %s line %d: category %d exceeds limit of %d categories",
					ErrFormat, ErrCategoryRange, path, r.line, n, MaxCategories)
			}
			p[i] = n
		}
		list = append(list, Pair{A: p[0], B: p[1]})
	}

	slog.Debug("ratings loaded", "file", path, "subjects", len(list))
	return list, nil
}

// Categories returns the category count implied by the ratings: the largest
// observed category plus one. Empty ratings imply zero categories.
func Categories(r Ratings) int {
	k := 0
	for _, p := range r {
		k = max(k, p.A+1, p.B+1)
	}
	return k
}

// ValidateRatings ensures every category in r is a valid index into a
// k-category matrix.
func ValidateRatings(r Ratings, k int) error {
	if err := checkCategories(k); err != nil {
		return err
	}
	for i, p := range r {
		if p.A < 0 || p.A >= k || p.B < 0 || p.B >= k {
			return fmt.Errorf("%w: %w: subject %d rated (%d, %d), categories must be in [0, %d)",
				ErrFormat, ErrCategoryRange, i+1, p.A, p.B, k)
		}
	}
	return nil
}

func checkCategories(k int) error {
	if k > MaxCategories {
		return fmt.Errorf("%w: %w: %d categories, at most %d supported", ErrFormat, ErrCategoryRange, k, MaxCategories)
	}
	return nil
}
