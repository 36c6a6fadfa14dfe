package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mchmarny/kappa/pkg/config"
	"github.com/mchmarny/kappa/pkg/logging"
	urfave "github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

const (
	appName      = "kappa"
	appConfigKey = "app-config"
)

var (
	version = "v0.0.1-default"
	commit  = ""
	date    = ""
)

const (
	debugFlag    = "debug"
	logLevelFlag = "log-level"
	configFlag   = "config"
	formatFlag   = "format"
)

// Execute creates and runs the CLI application.
func Execute() {
	logging.SetDefaultCLILogger("info")

	app := newApp()
	if err := app.Run(context.Background(), os.Args); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

// appConfig is the effective configuration shared with every command.
type appConfig struct {
	Defaults *config.Config
	Format   string
}

func getConfig(cmd *urfave.Command) *appConfig {
	return cmd.Root().Metadata[appConfigKey].(*appConfig)
}

func newApp() *urfave.Command {
	// -v is reserved for --verbose.
	urfave.VersionFlag = &urfave.BoolFlag{
		Name:  "version",
		Usage: "print the version",
	}

	return &urfave.Command{
		Name:    appName,
		Version: fmt.Sprintf("%s (%s - %s)", version, commit, date),
		Usage:   "Cohen's kappa (unweighted, linear, squared or custom weights) for two raters",
		UsageText: `kappa --filename ratings.txt                         # linear weights (default)
   kappa -u -f ratings.txt                              # unweighted
   kappa --squared --csv --filename ratings.csv         # squared weights, comma separated
   kappa --weighted weights.txt --verbose -f ratings.txt
   kappa --format json batch a.txt b.txt c.txt`,
		HideHelpCommand: true,
		Metadata:        map[string]any{},
		Flags:           append(kappaFlags(), globalFlags()...),
		Commands: []*urfave.Command{
			newBatchCmd(),
			newConfigCmd(),
		},
		Before: func(ctx context.Context, cmd *urfave.Command) (context.Context, error) {
			if cmd.Bool(debugFlag) {
				logging.SetDefaultCLILogger("debug")
			} else if cmd.IsSet(logLevelFlag) {
				logging.SetDefaultCLILogger(cmd.String(logLevelFlag))
			}

			defaults, err := config.LoadOrDefault(cmd.String(configFlag))
			if err != nil {
				return ctx, fmt.Errorf("loading config: %w", err)
			}
			if !cmd.Bool(debugFlag) && !cmd.IsSet(logLevelFlag) {
				logging.SetDefaultCLILogger(defaults.LogLevel)
			}

			format := defaults.Format
			if cmd.IsSet(formatFlag) {
				format = cmd.String(formatFlag)
			}
			if err := validateFormat(format); err != nil {
				return ctx, err
			}

			cmd.Metadata[appConfigKey] = &appConfig{
				Defaults: defaults,
				Format:   config.NormalizeFormat(format),
			}
			return ctx, nil
		},
		Action: cmdKappa,
	}
}

func globalFlags() []urfave.Flag {
	return []urfave.Flag{
		&urfave.StringFlag{
			Name:  formatFlag,
			Usage: "Output format [" + strings.Join(config.Formats, ", ") + "]",
		},
		&urfave.StringFlag{
			Name:      configFlag,
			Usage:     "Path to a YAML defaults file (optional, defaults to $HOME/.kappa/config.yaml when present)",
			TakesFile: true,
		},
		&urfave.BoolFlag{
			Name:  debugFlag,
			Usage: "Prints verbose logs (optional, default: false)",
		},
		&urfave.StringFlag{
			Name:  logLevelFlag,
			Usage: "Log level [debug, info, warn, error]",
		},
	}
}

func validateFormat(f string) error {
	n := config.NormalizeFormat(f)
	for _, v := range config.Formats {
		if v == n {
			return nil
		}
	}
	return fmt.Errorf("invalid format %q (expected one of %s)", f, strings.Join(config.Formats, ", "))
}

func encode(w io.Writer, format string, v any) error {
	if format == config.FormatYAML {
		e := yaml.NewEncoder(w)
		defer e.Close()
		return e.Encode(v)
	}
	e := json.NewEncoder(w)
	e.SetIndent("", "  ")
	return e.Encode(v)
}
