package cli

import (
	"context"
	"fmt"

	"github.com/indaco/hubbump/internal/config"
	"github.com/indaco/hubbump/internal/printer"
	urfavecli "github.com/urfave/cli/v3"
)

// doctorCmd returns the "doctor" command.
func doctorCmd(deps Dependencies) *urfavecli.Command {
	return &urfavecli.Command{
		Name:      "doctor",
		Usage:     "Check the configuration and the environment",
		UsageText: "hubbump doctor [--config file]",
		Action: func(ctx context.Context, cmd *urfavecli.Command) error {
			return runDoctor(ctx, cmd, deps)
		},
	}
}

func runDoctor(ctx context.Context, cmd *urfavecli.Command, deps Dependencies) error {
	cfg, err := loadConfig(ctx, cmd, deps)
	if err != nil {
		return err
	}

	results := config.NewValidator(deps.FS, cfg).Validate(ctx)
	results = append(results, environmentChecks(deps, cfg)...)

	source := cfg.Source
	if source == "" {
		source = "built-in defaults"
	}
	printer.PrintBold(fmt.Sprintf("Configuration: %s", source))
	for _, r := range results {
		printResult(r)
	}

	errs, warnings := config.ErrorCount(results), config.WarningCount(results)
	if errs > 0 {
		return fmt.Errorf("%d check(s) failed, %d warning(s)", errs, warnings)
	}
	printer.PrintSuccess(fmt.Sprintf("All checks passed, %d warning(s)", warnings))
	return nil
}

func environmentChecks(deps Dependencies, cfg *config.Config) []config.ValidationResult {
	var results []config.ValidationResult
	if deps.GitAvailable() {
		results = append(results, config.ValidationResult{Category: "Environment", Passed: true, Message: "git found"})
	} else {
		results = append(results, config.ValidationResult{Category: "Environment", Message: "git executable not found in PATH"})
	}

	if cfg.Token == "" {
		results = append(results, config.ValidationResult{
			Category: "Environment",
			Passed:   true,
			Warning:  true,
			Message:  config.EnvToken + " is not set, only --dry-run works",
		})
	} else {
		results = append(results, config.ValidationResult{Category: "Environment", Passed: true, Message: config.EnvToken + " is set"})
	}
	return results
}

func printResult(r config.ValidationResult) {
	line := fmt.Sprintf("[%s] %s", r.Category, r.Message)
	switch {
	case r.Warning:
		printer.PrintWarning("! " + line)
	case r.Passed:
		printer.PrintSuccess("✓ " + line)
	default:
		printer.PrintError("✗ " + line)
	}
}
