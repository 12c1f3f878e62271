package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/indaco/hubbump/internal/core"
	"github.com/indaco/hubbump/internal/tui"
)

// ValidationResult represents the result of a validation check.
type ValidationResult struct {
	// Category is the validation category (e.g., "Directories", "Merge").
	Category string

	// Passed indicates if the check passed.
	Passed bool

	// Message provides details about the validation result.
	Message string

	// Warning indicates if this is a warning rather than an error.
	Warning bool
}

// Validator validates a loaded configuration against the filesystem.
type Validator struct {
	fs          core.FileSystem
	cfg         *Config
	validations []ValidationResult
}

// NewValidator creates a new configuration validator.
func NewValidator(fs core.FileSystem, cfg *Config) *Validator {
	return &Validator{
		fs:          fs,
		cfg:         cfg,
		validations: make([]ValidationResult, 0),
	}
}

// Validate runs all validation checks and returns the results.
func (v *Validator) Validate(ctx context.Context) []ValidationResult {
	v.validations = make([]ValidationResult, 0)

	v.validateDirectory(ctx, "hub-dir", v.cfg.HubDir)
	v.validateDirectory(ctx, "core-dir", v.cfg.CoreDir)
	v.validateDiscovery()
	v.validateRepositories()
	v.validateMerge()
	v.validateTheme()

	return v.validations
}

// addValidation adds a validation result to the list.
func (v *Validator) addValidation(category string, passed bool, message string, warning bool) {
	v.validations = append(v.validations, ValidationResult{
		Category: category,
		Passed:   passed,
		Message:  message,
		Warning:  warning,
	})
}

func (v *Validator) validateDirectory(ctx context.Context, key, dir string) {
	if dir == "" {
		v.addValidation("Directories", false, key+" is empty", false)
		return
	}

	info, err := v.fs.Stat(ctx, dir)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		v.addValidation("Directories", false, fmt.Sprintf("%s %q does not exist", key, dir), false)
	case err != nil:
		v.addValidation("Directories", false, fmt.Sprintf("cannot access %s %q: %v", key, dir, err), false)
	case !info.IsDir():
		v.addValidation("Directories", false, fmt.Sprintf("%s %q is not a directory", key, dir), false)
	default:
		v.addValidation("Directories", true, fmt.Sprintf("%s %q found", key, dir), false)
	}
}

func (v *Validator) validateDiscovery() {
	if _, err := filepath.Match(v.cfg.ManifestPattern, ""); err != nil || v.cfg.ManifestPattern == "" {
		v.addValidation("Discovery", false,
			fmt.Sprintf("manifest-pattern %q is not a valid file pattern", v.cfg.ManifestPattern), false)
	}
	if v.cfg.MaxDepth < 0 {
		v.addValidation("Discovery", false, "max-depth cannot be negative", false)
	}
	for i, pattern := range v.cfg.Excludes {
		if strings.TrimSpace(pattern) == "" {
			v.addValidation("Discovery", true, fmt.Sprintf("exclude %d is empty and ignored", i+1), true)
		}
	}
}

func (v *Validator) validateRepositories() {
	owner, name, ok := strings.Cut(v.cfg.HubRepo, "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		v.addValidation("Repositories", false,
			fmt.Sprintf("hub-repo %q must be an owner/name slug", v.cfg.HubRepo), false)
	}
	if v.cfg.CoreRepo == "" {
		v.addValidation("Repositories", true, "core-repo is empty, core checkout identity is not verified", true)
	}
	if v.cfg.BaseBranch == "" || v.cfg.Remote == "" {
		v.addValidation("Repositories", false, "base-branch and remote must not be empty", false)
	}
}

func (v *Validator) validateMerge() {
	m := &v.cfg.Merge
	if m.MaxAttempts < 0 {
		v.addValidation("Merge", false, "merge.max-attempts must be positive", false)
	}

	interval, err := m.IntervalDuration()
	switch {
	case err != nil:
		v.addValidation("Merge", false, err.Error(), false)
	case interval < 0:
		v.addValidation("Merge", false, "merge.interval cannot be negative", false)
	case interval == 0 && m.MaxAttempts > 1 && m.IsEnabled():
		v.addValidation("Merge", true, "merge.interval is 0, polling passes run back to back", true)
	}

	switch m.Method {
	case "merge", "squash", "rebase":
	default:
		v.addValidation("Merge", false,
			fmt.Sprintf("merge.method %q must be one of merge, squash, rebase", m.Method), false)
	}
}

func (v *Validator) validateTheme() {
	if v.cfg.Theme != "" && !tui.IsValidTheme(v.cfg.Theme) {
		v.addValidation("Theme", true,
			fmt.Sprintf("unknown theme %q, using the default (valid: %s)", v.cfg.Theme, strings.Join(tui.ValidThemes, ", ")), true)
	}
}

// HasErrors returns true if any validation failed.
func HasErrors(results []ValidationResult) bool {
	return ErrorCount(results) > 0
}

// ErrorCount returns the number of failed validations.
func ErrorCount(results []ValidationResult) int {
	count := 0
	for _, r := range results {
		if !r.Passed && !r.Warning {
			count++
		}
	}
	return count
}

// WarningCount returns the number of warnings.
func WarningCount(results []ValidationResult) int {
	count := 0
	for _, r := range results {
		if r.Warning {
			count++
		}
	}
	return count
}

// Err joins the failed validations into one error, or returns nil.
func Err(results []ValidationResult) error {
	var errs []error
	for _, r := range results {
		if !r.Passed && !r.Warning {
			errs = append(errs, fmt.Errorf("%s: %s", r.Category, r.Message))
		}
	}
	return errors.Join(errs...)
}
