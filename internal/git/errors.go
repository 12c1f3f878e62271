package git

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Error categories reported by Classify.
const (
	CategoryUnknown          = "unknown"
	CategoryBranchDiverged   = "branch_diverged"
	CategoryBranchExists     = "branch_exists"
	CategoryNotARepository   = "not_a_repository"
	CategoryAuthRequired     = "auth_required"
	CategoryPermissionDenied = "permission_denied"
	CategoryNetwork          = "network_error"
	CategoryNothingToCommit  = "nothing_to_commit"
)

// CommandError is returned when a git command exits with a failure.
type CommandError struct {
	Args   []string
	Stderr string
	Err    error
}

// Error implements the error interface.
func (e *CommandError) Error() string {
	cmd := "git " + strings.Join(e.Args, " ")
	if e.Stderr != "" {
		return fmt.Sprintf("%s: %s: %v", cmd, e.Stderr, e.Err)
	}
	return fmt.Sprintf("%s failed: %v", cmd, e.Err)
}

// Unwrap returns the underlying exec error.
func (e *CommandError) Unwrap() error {
	return e.Err
}

// Category returns the classification of this failure.
func (e *CommandError) Category() string {
	return classifyOutput(e.Stderr)
}

// gitErrorPattern maps git output to a category.
type gitErrorPattern struct {
	pattern  *regexp.Regexp
	category string
}

// gitErrorPatterns is checked in order; more specific patterns come first.
var gitErrorPatterns = []gitErrorPattern{
	// A push rejected because the remote branch has commits we do not.
	// This is what a branch left behind by an earlier run looks like.
	{
		pattern: regexp.MustCompile(`(?i)tip of your current branch is behind` +
			`|the remote contains work that you do` +
			`|\[rejected\].*\((fetch first|non-fast-forward)\)`),
		category: CategoryBranchDiverged,
	},
	{
		pattern:  regexp.MustCompile(`(?i)fatal: a branch named .* already exists`),
		category: CategoryBranchExists,
	},
	{
		pattern:  regexp.MustCompile(`(?i)not a git repository`),
		category: CategoryNotARepository,
	},
	{
		pattern:  regexp.MustCompile(`(?i)nothing to commit|no changes added to commit`),
		category: CategoryNothingToCommit,
	},
	{
		pattern:  regexp.MustCompile(`(?i)Authentication failed|fatal: could not read (Username|Password)`),
		category: CategoryAuthRequired,
	},
	{
		pattern:  regexp.MustCompile(`(?i)Permission denied|The requested URL returned error: 403`),
		category: CategoryPermissionDenied,
	},
	{
		pattern:  regexp.MustCompile(`(?i)Could not resolve host|fatal: unable to access|Connection timed out`),
		category: CategoryNetwork,
	},
}

func classifyOutput(output string) string {
	for _, p := range gitErrorPatterns {
		if p.pattern.MatchString(output) {
			return p.category
		}
	}
	return CategoryUnknown
}

// Classify returns the category of a git failure, or CategoryUnknown when
// err is not a *CommandError or matches no known pattern.
func Classify(err error) string {
	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) {
		return CategoryUnknown
	}
	return cmdErr.Category()
}

// IsBranchDiverged reports whether err is a git failure caused by the
// remote branch already holding commits the local branch lacks.
func IsBranchDiverged(err error) bool {
	return Classify(err) == CategoryBranchDiverged
}

// categoryHints suggest a next step for failures the user can fix.
var categoryHints = map[string]string{
	CategoryBranchExists:     "a local branch from an earlier run is left over; delete it with 'git branch -D <branch>' and rerun",
	CategoryNotARepository:   "point hub-dir and core-dir at git checkouts",
	CategoryAuthRequired:     "git could not authenticate; check the credentials for the remote (GITHUB_TOKEN is only used for the API)",
	CategoryPermissionDenied: "the credentials in use cannot push to the remote",
	CategoryNetwork:          "the remote is unreachable; check the network and the remote URL",
	CategoryNothingToCommit:  "the manifest did not change on disk; check that it is tracked by git",
}

// Hint returns a suggestion for resolving err, or "" when there is none.
func Hint(err error) string {
	return categoryHints[Classify(err)]
}
