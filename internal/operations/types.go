package operations

import (
	"errors"

	"github.com/indaco/hubbump/internal/hosting"
)

// Outcome is the terminal state of one module.
type Outcome string

const (
	// OutcomeSkipped: the manifest already requires the target core version.
	OutcomeSkipped Outcome = "skipped"
	// OutcomeDryRun: the manifest would have been bumped.
	OutcomeDryRun Outcome = "dry-run"
	// OutcomePRCreated: the bump was pushed and a pull request opened.
	OutcomePRCreated Outcome = "pr-created"
	// OutcomePRReused: the branch already existed remotely and its single
	// open pull request was reused.
	OutcomePRReused Outcome = "pr-reused"
	// OutcomeSkippedOnAmbiguity: the branch already existed remotely but zero
	// or several open pull requests matched it.
	OutcomeSkippedOnAmbiguity Outcome = "skipped-on-ambiguity"
)

// ModuleResult records what happened to one module.
type ModuleResult struct {
	Module      string
	Path        string
	OldVersion  string
	NewVersion  string
	Branch      string
	Outcome     Outcome
	PullRequest *hosting.PullRequest
}

// MergeState is the final state of a pull request after merge polling.
type MergeState string

const (
	MergeStateMerged  MergeState = "merged"
	MergeStateBlocked MergeState = "blocked"
	MergeStateFailed  MergeState = "failed"
)

// MergeResult records the merge polling outcome of one pull request.
type MergeResult struct {
	PullRequest *hosting.PullRequest
	State       MergeState
	Attempts    int
	Err         error
}

// Report collects the results of one run.
type Report struct {
	CoreVersion string
	Modules     []*ModuleResult
	Merges      []MergeResult
}

// PullRequests returns the pull requests created or reused during the run,
// in module order.
func (r *Report) PullRequests() []*hosting.PullRequest {
	var prs []*hosting.PullRequest
	for _, m := range r.Modules {
		if m.PullRequest != nil {
			prs = append(prs, m.PullRequest)
		}
	}
	return prs
}

// Count returns the number of modules that ended in outcome.
func (r *Report) Count(outcome Outcome) int {
	n := 0
	for _, m := range r.Modules {
		if m.Outcome == outcome {
			n++
		}
	}
	return n
}

var (
	// ErrRepositoryMismatch is returned when a checkout's remote does not
	// point at the expected repository.
	ErrRepositoryMismatch = errors.New("repository was not initialized correctly")

	// ErrAborted is returned when the user declines the confirmation prompt.
	ErrAborted = errors.New("aborted by user")
)
