package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"text/tabwriter"

	"github.com/mchmarny/kappa/pkg/config"
	"github.com/mchmarny/kappa/pkg/kappa"
	urfave "github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"
)

const parallelFlag = "parallel"

func newBatchCmd() *urfave.Command {
	return &urfave.Command{
		Name:      "batch",
		Aliases:   []string{"b"},
		Usage:     "Compute kappa for several ratings files with the same settings",
		ArgsUsage: "FILE...",
		UsageText: `kappa batch a.txt b.txt                      # linear weights for each file
   kappa --squared --csv batch a.csv b.csv       # shared scheme and delimiter
   kappa --format yaml batch --parallel 2 *.txt`,
		Action: cmdBatch,
		Flags: []urfave.Flag{
			&urfave.IntFlag{
				Name:  parallelFlag,
				Usage: "Maximum number of files processed concurrently (default: number of CPUs)",
			},
		},
	}
}

func cmdBatch(ctx context.Context, cmd *urfave.Command) error {
	files := cmd.Args().Slice()
	if len(files) == 0 {
		return errors.New("at least one ratings file required")
	}

	opts, err := buildOptions(cmd)
	if err != nil {
		return err
	}

	limit := int(cmd.Int(parallelFlag))
	if limit <= 0 {
		limit = runtime.NumCPU()
	}

	results, err := computeAll(ctx, opts, files, limit)
	if err != nil {
		return err
	}

	cfg := getConfig(cmd)
	w := cmd.Root().Writer
	if cfg.Format != config.FormatText {
		if err := encode(w, cfg.Format, results); err != nil {
			return fmt.Errorf("error encoding results: %w", err)
		}
		return nil
	}
	return printResults(w, results, opts.Verbose)
}

// computeAll runs one independent computation per file, at most limit at a
// time. Results keep the order of files. The first failure cancels the
// remaining runs.
func computeAll(ctx context.Context, opts kappa.Options, files []string, limit int) ([]*kappa.Result, error) {
	logger := slog.Default().WithGroup("batch")
	results := make([]*kappa.Result, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, f := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			o := opts
			o.Filename = f
			res, err := kappa.Compute(o)
			if err != nil {
				return fmt.Errorf("failed to compute kappa for %s: %w", f, err)
			}
			logger.Debug("file done", "file", f, "kappa", res.Kappa)
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func printResults(w io.Writer, results []*kappa.Result, verbose bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if verbose {
		fmt.Fprintln(tw, "FILE\tKAPPA\tSCHEME\tCATEGORIES\tSUBJECTS")
	}
	for _, r := range results {
		if verbose {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\n", r.File, formatKappa(r.Kappa), r.Scheme, r.Categories, r.Subjects)
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\n", r.File, formatKappa(r.Kappa))
	}
	return tw.Flush()
}
