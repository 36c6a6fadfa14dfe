package cli

import (
	"context"
	"fmt"

	"github.com/mchmarny/kappa/pkg/config"
	urfave "github.com/urfave/cli/v3"
)

func newConfigCmd() *urfave.Command {
	return &urfave.Command{
		Name:  "config",
		Usage: "Show or create the defaults file",
		Commands: []*urfave.Command{
			{
				Name:   "show",
				Usage:  "Print the effective defaults as YAML",
				Action: cmdConfigShow,
			},
			{
				Name:   "init",
				Usage:  "Write the built-in defaults to $HOME/.kappa/config.yaml unless it exists",
				Action: cmdConfigInit,
			},
		},
	}
}

func cmdConfigShow(_ context.Context, cmd *urfave.Command) error {
	if err := encode(cmd.Root().Writer, config.FormatYAML, getConfig(cmd).Defaults); err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}
	return nil
}

func cmdConfigInit(_ context.Context, cmd *urfave.Command) error {
	path, err := config.Init()
	if err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}
	_, err = fmt.Fprintln(cmd.Root().Writer, path)
	return err
}
