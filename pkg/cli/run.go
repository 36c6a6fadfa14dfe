package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mchmarny/kappa/pkg/config"
	"github.com/mchmarny/kappa/pkg/kappa"
	urfave "github.com/urfave/cli/v3"
)

const (
	linearFlag     = "linear"
	unweightedFlag = "unweighted"
	squaredFlag    = "squared"
	weightedFlag   = "weighted"
	verboseFlag    = "verbose"
	csvFlag        = "csv"
	filenameFlag   = "filename"
	matricesFlag   = "matrices"
)

var errSchemeConflict = errors.New("only one of --linear, --unweighted, --squared or --weighted may be set")

// kappaFlags returns the flags of the root command. Flags hold their parsed
// values, so every app gets its own set.
func kappaFlags() []urfave.Flag {
	return []urfave.Flag{
		&urfave.BoolFlag{
			Name:    linearFlag,
			Aliases: []string{"l"},
			Usage:   "Linear weights for disagreements (default)",
		},
		&urfave.BoolFlag{
			Name:    unweightedFlag,
			Aliases: []string{"u"},
			Usage:   "Cohen's kappa (unweighted agreement/disagreement)",
		},
		&urfave.BoolFlag{
			Name:    squaredFlag,
			Aliases: []string{"s"},
			Usage:   "Squared weights for disagreements",
		},
		&urfave.StringFlag{
			Name:      weightedFlag,
			Aliases:   []string{"w"},
			Usage:     "File with a custom k×k weights matrix, k whitespace separated values per line",
			TakesFile: true,
		},
		&urfave.BoolFlag{
			Name:    verboseFlag,
			Aliases: []string{"v"},
			Usage:   "Include the number of categories and subjects in the output",
		},
		&urfave.BoolFlag{
			Name:    csvFlag,
			Aliases: []string{"c"},
			Usage:   "Ratings file has comma separated values",
		},
		&urfave.StringFlag{
			Name:      filenameFlag,
			Aliases:   []string{"f"},
			Usage:     "File with a pair of integer ratings per line, one line per subject",
			TakesFile: true,
			Local:     true,
		},
		&urfave.BoolFlag{
			Name:  matricesFlag,
			Usage: "Include weight, observed and expected matrices in json/yaml output",
		},
	}
}

func cmdKappa(_ context.Context, cmd *urfave.Command) error {
	file := cmd.String(filenameFlag)
	if file == "" {
		return errors.New("ratings file required (--filename)")
	}

	opts, err := buildOptions(cmd)
	if err != nil {
		return err
	}
	opts.Filename = file

	res, err := kappa.Compute(opts)
	if err != nil {
		return fmt.Errorf("failed to compute kappa: %w", err)
	}

	cfg := getConfig(cmd)
	w := cmd.Root().Writer
	if cfg.Format != config.FormatText {
		if err := encode(w, cfg.Format, res); err != nil {
			return fmt.Errorf("error encoding result: %w", err)
		}
		return nil
	}
	return printResult(w, res, opts.Verbose)
}

// buildOptions merges the scheme, csv and verbosity flags over the config
// defaults. Filename is left for the caller.
func buildOptions(cmd *urfave.Command) (kappa.Options, error) {
	defaults := getConfig(cmd).Defaults

	mode, err := resolveMode(cmd, defaults)
	if err != nil {
		return kappa.Options{}, err
	}

	csv := defaults.CSV
	if cmd.IsSet(csvFlag) {
		csv = cmd.Bool(csvFlag)
	}

	return kappa.Options{
		Mode:     mode,
		CSV:      csv,
		Verbose:  cmd.Bool(verboseFlag),
		Matrices: cmd.Bool(matricesFlag),
	}, nil
}

func resolveMode(cmd *urfave.Command, defaults *config.Config) (kappa.Mode, error) {
	var modes []kappa.Mode
	if cmd.Bool(linearFlag) {
		modes = append(modes, kappa.Linear())
	}
	if cmd.Bool(unweightedFlag) {
		modes = append(modes, kappa.Unweighted())
	}
	if cmd.Bool(squaredFlag) {
		modes = append(modes, kappa.Squared())
	}
	if p := cmd.String(weightedFlag); p != "" {
		modes = append(modes, kappa.Custom(p))
	}

	switch len(modes) {
	case 0:
		return defaults.Mode()
	case 1:
		return modes[0], nil
	default:
		return kappa.Mode{}, errSchemeConflict
	}
}

func printResult(w io.Writer, res *kappa.Result, verbose bool) error {
	if !verbose {
		_, err := fmt.Fprintln(w, formatKappa(res.Kappa))
		return err
	}
	_, err := fmt.Fprintf(w, "Kappa (%s):\n%s\nCategories: %d\nSubjects: %d\n",
		res.Scheme, formatKappa(res.Kappa), res.Categories, res.Subjects)
	return err
}

// formatKappa prints the shortest exact representation of v, keeping a
// decimal point on whole numbers (1.0 rather than 1).
func formatKappa(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".NI") {
		s += ".0"
	}
	return s
}
