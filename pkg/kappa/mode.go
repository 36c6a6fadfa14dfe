package kappa

import (
	"fmt"
	"strings"
)

// Scheme identifies how disagreements are weighted.
type Scheme int

const (
	SchemeLinear Scheme = iota
	SchemeUnweighted
	SchemeSquared
	SchemeCustom
)

var schemeNames = map[Scheme]string{
	SchemeLinear:     "linear",
	SchemeUnweighted: "unweighted",
	SchemeSquared:    "squared",
	SchemeCustom:     "custom",
}

// SchemeNames lists the accepted scheme names in display order.
var SchemeNames = []string{"linear", "unweighted", "squared", "custom"}

func (s Scheme) String() string {
	if n, ok := schemeNames[s]; ok {
		return n
	}
	return fmt.Sprintf("scheme(%d)", int(s))
}

// ParseScheme converts a scheme name to a Scheme. Matching is case-insensitive.
func ParseScheme(name string) (Scheme, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for s, v := range schemeNames {
		if v == n {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: %q (expected one of %s)", ErrUnknownScheme, name, strings.Join(SchemeNames, ", "))
}

// Mode is the effective weighting mode of a run. Path is only meaningful
// for SchemeCustom. The zero value is the default linear mode.
type Mode struct {
	Scheme Scheme
	Path   string
}

func Linear() Mode { return Mode{Scheme: SchemeLinear} }

func Unweighted() Mode { return Mode{Scheme: SchemeUnweighted} }

func Squared() Mode { return Mode{Scheme: SchemeSquared} }

// Custom returns a mode that reads the weight matrix from path.
func Custom(path string) Mode { return Mode{Scheme: SchemeCustom, Path: path} }

// Validate checks that the mode is one of the four known cases.
func (m Mode) Validate() error {
	switch m.Scheme {
	case SchemeLinear, SchemeUnweighted, SchemeSquared:
		return nil
	case SchemeCustom:
		if m.Path == "" {
			return fmt.Errorf("%w: weights file required for custom scheme", ErrFile)
		}
		return nil
	default:
		return fmt.Errorf("%w: %d", ErrUnknownScheme, int(m.Scheme))
	}
}

// String returns the label reported in verbose output.
func (m Mode) String() string {
	if m.Scheme == SchemeCustom {
		return "weighted with file [" + m.Path + "]"
	}
	return m.Scheme.String()
}
