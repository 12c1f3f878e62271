package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/indaco/hubbump/internal/config"
	"github.com/indaco/hubbump/internal/discovery"
	"github.com/indaco/hubbump/internal/git"
	"github.com/indaco/hubbump/internal/manifest"
	"github.com/indaco/hubbump/internal/operations"
	"github.com/indaco/hubbump/internal/printer"
	"github.com/indaco/hubbump/internal/tui"
	urfavecli "github.com/urfave/cli/v3"
)

func runAction(deps Dependencies) urfavecli.ActionFunc {
	return func(ctx context.Context, cmd *urfavecli.Command) error {
		cfg, err := loadConfig(ctx, cmd, deps)
		if err != nil {
			return err
		}
		if err := config.Err(config.NewValidator(deps.FS, cfg).Validate(ctx)); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		dryRun := cmd.Bool("dry-run")
		opts, err := runOptions(cfg, dryRun)
		if err != nil {
			return err
		}
		if !dryRun && !cmd.Bool("yes") && deps.Interactive() {
			opts.Confirm = confirmPlans(deps.Prompter)
		}

		var prs operations.PullRequestClient
		if !dryRun {
			if prs, err = deps.NewPullRequestClient(cfg); err != nil {
				return err
			}
		}

		runner := operations.NewRunner(
			deps.NewHubRepository(cfg.HubDir),
			deps.NewCoreRepository(cfg.CoreDir),
			prs,
			discovery.NewService(deps.FS),
			manifest.NewStore(deps.FS),
			opts,
		)

		report, err := runner.Run(ctx)
		if errors.Is(err, operations.ErrAborted) {
			printer.PrintWarning("Aborted, nothing was published.")
			return nil
		}
		if err != nil {
			if report != nil && len(report.Modules) > 0 {
				printSummary(report)
			}
			printHint(err)
			return err
		}

		if !dryRun && cfg.Merge.IsEnabled() && len(report.PullRequests()) > 0 {
			title := fmt.Sprintf("Waiting for %d pull request(s) to become mergeable...", len(report.PullRequests()))
			err = deps.Prompter.Spin(ctx, title, func(ctx context.Context) error {
				return runner.Merge(ctx, report)
			})
		}

		printSummary(report)
		return err
	}
}

// loadConfig reads the config file and applies command line overrides.
func loadConfig(ctx context.Context, cmd *urfavecli.Command, deps Dependencies) (*config.Config, error) {
	cfg, err := deps.LoadConfig(ctx, cmd.String("config"))
	if err != nil {
		return nil, err
	}

	setString := func(flag string, field *string) {
		if cmd.IsSet(flag) {
			*field = cmd.String(flag)
		}
	}
	setString("hub-dir", &cfg.HubDir)
	setString("core-dir", &cfg.CoreDir)
	setString("base", &cfg.BaseBranch)
	setString("remote", &cfg.Remote)
	setString("core-version", &cfg.CoreVersion)
	setString("merge-method", &cfg.Merge.Method)

	if cmd.IsSet("include-prereleases") {
		cfg.IncludePrereleases = cmd.Bool("include-prereleases")
	}
	if cmd.Bool("no-merge") {
		disabled := false
		cfg.Merge.Enabled = &disabled
	}
	if cmd.IsSet("merge-attempts") {
		cfg.Merge.MaxAttempts = cmd.Int("merge-attempts")
	}
	if cmd.IsSet("merge-interval") {
		cfg.Merge.Interval = cmd.Duration("merge-interval").String()
	}

	tui.SetTheme(cfg.Theme)
	return cfg, nil
}

func runOptions(cfg *config.Config, dryRun bool) (operations.RunOptions, error) {
	interval, err := cfg.Merge.IntervalDuration()
	if err != nil {
		return operations.RunOptions{}, err
	}

	return operations.RunOptions{
		HubDir:             cfg.HubDir,
		Base:               cfg.BaseBranch,
		Remote:             cfg.Remote,
		HubRepo:            cfg.HubRepo,
		CoreRepo:           cfg.CoreRepo,
		CoreVersion:        cfg.CoreVersion,
		IncludePrereleases: cfg.IncludePrereleases,
		Discovery: discovery.Options{
			Pattern:  cfg.ManifestPattern,
			MaxDepth: cfg.MaxDepth,
			Excludes: cfg.Excludes,
		},
		DryRun: dryRun,
		Merge: operations.MergeOptions{
			MaxAttempts: cfg.Merge.MaxAttempts,
			Interval:    interval,
			Remote:      cfg.Remote,
			Message:     operations.DefaultMergeMessage,
		},
	}, nil
}

func confirmPlans(p tui.Prompter) func(context.Context, []*operations.Plan) (bool, error) {
	return func(_ context.Context, plans []*operations.Plan) (bool, error) {
		rows := make([][]string, 0, len(plans))
		for _, plan := range plans {
			rows = append(rows, []string{plan.Module, plan.OldVersion + " -> " + plan.NewVersion, plan.Branch})
		}
		printer.PrintTable([]string{"MODULE", "VERSION", "BRANCH"}, rows)

		return p.Confirm(
			fmt.Sprintf("Publish %d module bump(s)?", len(plans)),
			"Each bump is committed on its own branch, pushed, and gets a pull request.",
		)
	}
}

// printHint suggests a fix for git failures the user can resolve.
func printHint(err error) {
	if hint := git.Hint(err); hint != "" {
		printer.PrintFaint("hint: " + hint)
	}
}
