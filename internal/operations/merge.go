package operations

import (
	"context"
	"fmt"
	"time"

	"github.com/indaco/hubbump/internal/hosting"
	"github.com/indaco/hubbump/internal/printer"
)

// DefaultMergeMessage is the commit message used for automatic merges.
const DefaultMergeMessage = "automatic merge"

// MergeOptions configures a MergeWatcher.
type MergeOptions struct {
	// MaxAttempts bounds the number of polling passes.
	MaxAttempts int
	// Interval is the pause between two passes.
	Interval time.Duration
	// Remote is fetched before every merge attempt.
	Remote string
	// Message is the merge commit message.
	Message string
}

// MergeWatcher polls pull requests and merges the ones that are not blocked.
type MergeWatcher struct {
	repo GitRepository
	prs  PullRequestClient
	opts MergeOptions

	// wait pauses between passes; replaced in tests.
	wait func(ctx context.Context, d time.Duration) error
}

// NewMergeWatcher creates a MergeWatcher. Zero options fall back to a single
// pass, the "origin" remote and DefaultMergeMessage.
func NewMergeWatcher(repo GitRepository, prs PullRequestClient, opts MergeOptions) *MergeWatcher {
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 1
	}
	if opts.Remote == "" {
		opts.Remote = "origin"
	}
	if opts.Message == "" {
		opts.Message = DefaultMergeMessage
	}
	return &MergeWatcher{repo: repo, prs: prs, opts: opts, wait: sleep}
}

// Watch runs at most MaxAttempts passes over pullRequests. In each pass every
// pending pull request is refreshed; a blocked one is skipped until the next
// pass, any other is fetched locally and merged. A failed merge is retried in
// the next pass.
//
// Every pull request gets exactly one result, in input order. Pull requests
// still pending after the last pass are reported as blocked or failed; that
// is not an error. Watch only returns an error when ctx is done, together
// with the results known so far.
func (w *MergeWatcher) Watch(ctx context.Context, pullRequests []*hosting.PullRequest) ([]MergeResult, error) {
	results := make([]MergeResult, len(pullRequests))
	pending := make([]int, 0, len(pullRequests))
	for i, pr := range pullRequests {
		results[i] = MergeResult{PullRequest: pr, State: MergeStateBlocked}
		pending = append(pending, i)
	}

	for attempt := 1; attempt <= w.opts.MaxAttempts && len(pending) > 0; attempt++ {
		if attempt > 1 {
			if err := w.wait(ctx, w.opts.Interval); err != nil {
				return results, err
			}
		}

		var next []int
		for _, i := range pending {
			if err := ctx.Err(); err != nil {
				return results, err
			}

			results[i].Attempts = attempt
			if !w.try(ctx, &results[i]) {
				next = append(next, i)
			}
		}
		pending = next
	}

	for _, i := range pending {
		r := results[i]
		printer.PrintWarning(fmt.Sprintf("pull request %s still %s after %d attempts", r.PullRequest, r.State, r.Attempts))
	}
	return results, nil
}

// try makes one merge attempt and reports whether the pull request is done.
func (w *MergeWatcher) try(ctx context.Context, r *MergeResult) bool {
	number := r.PullRequest.Number

	pr, err := w.prs.GetPullRequest(ctx, number)
	if err != nil {
		r.State, r.Err = MergeStateFailed, err
		return false
	}
	r.PullRequest = pr

	if pr.Merged {
		r.State, r.Err = MergeStateMerged, nil
		return true
	}
	if pr.IsBlocked() {
		r.State, r.Err = MergeStateBlocked, nil
		return false
	}

	if err := w.repo.Fetch(ctx, w.opts.Remote, pr.HeadRef); err != nil {
		r.State, r.Err = MergeStateFailed, err
		return false
	}
	if err := w.prs.MergePullRequest(ctx, number, w.opts.Message); err != nil {
		r.State, r.Err = MergeStateFailed, err
		return false
	}

	printer.PrintSuccess(fmt.Sprintf("merged pull request %s", pr))
	r.State, r.Err = MergeStateMerged, nil
	return true
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
