package cli

import (
	"context"
	"fmt"

	"github.com/indaco/hubbump/internal/printer"
	"github.com/indaco/hubbump/internal/version"
	urfavecli "github.com/urfave/cli/v3"
)

var noColorFlag bool

// New builds and returns the root CLI command. Without a subcommand it bumps
// every hub manifest that lags behind the core version.
func New(deps Dependencies) *urfavecli.Command {
	return &urfavecli.Command{
		Name:                  "hubbump",
		Version:               fmt.Sprintf("v%s", version.GetVersion()),
		Usage:                 "Bump hub plugin manifests to the latest core release and open pull requests",
		UsageText:             "hubbump [--flags]\nhubbump <subcommand> [--flags]",
		EnableShellCompletion: true,
		Flags:                 rootFlags(),
		Before: func(ctx context.Context, cmd *urfavecli.Command) (context.Context, error) {
			printer.SetNoColor(noColorFlag)
			return ctx, nil
		},
		Action: runAction(deps),
		Commands: []*urfavecli.Command{
			initCmd(deps),
			doctorCmd(deps),
		},
	}
}

func rootFlags() []urfavecli.Flag {
	return []urfavecli.Flag{
		&urfavecli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to the config file",
			Sources: urfavecli.EnvVars("HUBBUMP_CONFIG"),
		},
		&urfavecli.StringFlag{
			Name:  "hub-dir",
			Usage: "Checkout of the hub repository holding the manifests",
		},
		&urfavecli.StringFlag{
			Name:  "core-dir",
			Usage: "Checkout of the core repository whose tags give the target version",
		},
		&urfavecli.StringFlag{
			Name:  "base",
			Usage: "Branch pull requests are opened against",
		},
		&urfavecli.StringFlag{
			Name:  "remote",
			Usage: "Git remote branches are pushed to",
		},
		&urfavecli.StringFlag{
			Name:  "core-version",
			Usage: "Target core version, instead of the latest core tag",
		},
		&urfavecli.BoolFlag{
			Name:  "include-prereleases",
			Usage: "Consider pre-release core tags when picking the target version",
		},
		&urfavecli.BoolFlag{
			Name:  "dry-run",
			Usage: "Show what would be bumped without changing anything",
		},
		&urfavecli.BoolFlag{
			Name:    "yes",
			Aliases: []string{"y"},
			Usage:   "Do not ask for confirmation",
		},
		&urfavecli.BoolFlag{
			Name:  "no-merge",
			Usage: "Open pull requests but do not try to merge them",
		},
		&urfavecli.IntFlag{
			Name:  "merge-attempts",
			Usage: "Maximum number of merge polling passes",
		},
		&urfavecli.DurationFlag{
			Name:  "merge-interval",
			Usage: "Pause between two merge polling passes",
		},
		&urfavecli.StringFlag{
			Name:  "merge-method",
			Usage: "Merge method: merge, squash or rebase",
		},
		&urfavecli.BoolFlag{
			Name:        "no-color",
			Usage:       "Disable colored output",
			Destination: &noColorFlag,
		},
	}
}
