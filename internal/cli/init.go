package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/indaco/hubbump/internal/config"
	"github.com/indaco/hubbump/internal/printer"
	urfavecli "github.com/urfave/cli/v3"
)

// initCmd returns the "init" command.
func initCmd(deps Dependencies) *urfavecli.Command {
	return &urfavecli.Command{
		Name:      "init",
		Usage:     "Write a config file with the default settings",
		UsageText: "hubbump init [--path file] [--force]",
		Flags: []urfavecli.Flag{
			&urfavecli.StringFlag{
				Name:  "path",
				Usage: "Where to write the config file",
				Value: config.DefaultConfigFile,
			},
			&urfavecli.BoolFlag{
				Name:  "force",
				Usage: "Overwrite an existing config file",
			},
		},
		Action: func(ctx context.Context, cmd *urfavecli.Command) error {
			return runInit(ctx, deps, cmd.String("path"), cmd.Bool("force"))
		},
	}
}

func runInit(ctx context.Context, deps Dependencies, path string, force bool) error {
	_, err := deps.FS.Stat(ctx, path)
	switch {
	case err == nil && !force:
		if !deps.Interactive() {
			return fmt.Errorf("%s already exists, use --force to overwrite it", path)
		}
		ok, err := deps.Prompter.Confirm(fmt.Sprintf("Overwrite %s?", path), "The current settings are replaced by the defaults.")
		if err != nil {
			return err
		}
		if !ok {
			printer.PrintWarning("Kept the existing config file.")
			return nil
		}
	case err != nil && !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("cannot access %s: %w", path, err)
	}

	if err := config.Save(ctx, deps.FS, config.Default(), path); err != nil {
		return err
	}
	printer.PrintSuccess(fmt.Sprintf("Wrote %s", path))
	return nil
}
