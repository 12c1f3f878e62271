package operations

import (
	"context"
	"errors"
	"fmt"

	"github.com/indaco/hubbump/internal/git"
	"github.com/indaco/hubbump/internal/hosting"
	"github.com/indaco/hubbump/internal/manifest"
	"github.com/indaco/hubbump/internal/printer"
)

// DriverOptions configures a Driver.
type DriverOptions struct {
	// Base is the branch pull requests target and the branch the hub
	// checkout is returned to after every module.
	Base string
	// Remote is the git remote branches are pushed to.
	Remote string
}

// Driver bumps and publishes single modules.
type Driver struct {
	repo  GitRepository
	prs   PullRequestClient
	store *manifest.Store
	opts  DriverOptions
}

// NewDriver creates a Driver. Empty options default to "master" and "origin".
func NewDriver(repo GitRepository, prs PullRequestClient, store *manifest.Store, opts DriverOptions) *Driver {
	if opts.Base == "" {
		opts.Base = "master"
	}
	if opts.Remote == "" {
		opts.Remote = "origin"
	}
	if store == nil {
		store = manifest.NewStore(nil)
	}
	return &Driver{repo: repo, prs: prs, store: store, opts: opts}
}

// Plan loads the manifest at path and decides whether it needs a bump for
// coreVersion. When it does, the loaded manifest is updated in memory only.
func (d *Driver) Plan(ctx context.Context, path, coreVersion string) (*Plan, error) {
	m, err := d.store.Load(ctx, path)
	if err != nil {
		return nil, err
	}

	plan := &Plan{
		Manifest:    m,
		Module:      m.Module(),
		OldVersion:  m.Version,
		CoreVersion: coreVersion,
	}

	update, err := ShouldUpdate(m, coreVersion)
	if err != nil {
		return nil, err
	}
	if !update {
		return plan, nil
	}

	oldVersion, newVersion, err := BumpManifest(m, coreVersion)
	if err != nil {
		return nil, err
	}
	plan.OldVersion = oldVersion
	plan.NewVersion = newVersion
	plan.Branch = BranchName(plan.Module, newVersion, coreVersion)
	plan.Update = true
	return plan, nil
}

// Apply writes the bumped manifest and publishes it: branch, commit, push and
// pull request. Whatever happens, the hub checkout is switched back to the
// base branch and the module branch is force-deleted before Apply returns.
//
// A push rejected because the remote branch already exists from an earlier
// run is not an error: the single open pull request for that branch is
// reused, or the module is skipped when there is none or more than one.
func (d *Driver) Apply(ctx context.Context, plan *Plan) (result *ModuleResult, err error) {
	if !plan.Update {
		return plan.result(OutcomeSkipped, nil), nil
	}

	if err := d.store.Save(ctx, plan.Manifest); err != nil {
		return nil, err
	}
	printer.PrintFaint(fmt.Sprintf("  bumped %s to %s", plan.Module, plan.NewVersion))

	created := false
	defer func() {
		if cerr := d.cleanup(context.WithoutCancel(ctx), plan.Branch, created); cerr != nil {
			err = errors.Join(err, cerr)
		}
	}()

	if err := d.repo.CreateBranch(ctx, plan.Branch); err != nil {
		return nil, fmt.Errorf("%s: %w", plan.Module, err)
	}
	created = true

	if err := d.commitAndPush(ctx, plan); err != nil {
		if !git.IsBranchDiverged(err) {
			return nil, fmt.Errorf("%s: %w", plan.Module, err)
		}
		return d.reuse(ctx, plan)
	}

	pr, err := d.prs.CreatePullRequest(ctx, hosting.NewPullRequest{
		Title: PullRequestTitle(plan.Module, plan.NewVersion),
		Body:  PullRequestBody(plan.OldVersion, plan.NewVersion),
		Head:  plan.Branch,
		Base:  d.opts.Base,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", plan.Module, err)
	}
	printer.PrintSuccess(fmt.Sprintf("  opened pull request %s", pr))
	return plan.result(OutcomePRCreated, pr), nil
}

func (d *Driver) commitAndPush(ctx context.Context, plan *Plan) error {
	if err := d.repo.Checkout(ctx, plan.Branch); err != nil {
		return err
	}
	if err := d.repo.StageTracked(ctx); err != nil {
		return err
	}
	if err := d.repo.Commit(ctx, CommitMessage(plan.Module, plan.NewVersion)); err != nil {
		return err
	}
	return d.repo.PushSetUpstream(ctx, d.opts.Remote, plan.Branch)
}

// reuse looks up the open pull request of a branch that already existed on
// the remote.
func (d *Driver) reuse(ctx context.Context, plan *Plan) (*ModuleResult, error) {
	printer.PrintWarning(fmt.Sprintf("  branch %q already exists on %s, looking up its pull request", plan.Branch, d.opts.Remote))

	prs, err := d.prs.ListOpenPullRequests(ctx, plan.Branch)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", plan.Module, err)
	}
	if len(prs) != 1 {
		printer.PrintWarning(fmt.Sprintf("  found %d open pull requests for %q, skipping %s", len(prs), plan.Branch, plan.Module))
		return plan.result(OutcomeSkippedOnAmbiguity, nil), nil
	}

	printer.PrintInfo(fmt.Sprintf("  reusing pull request %s", prs[0]))
	return plan.result(OutcomePRReused, prs[0]), nil
}

func (d *Driver) cleanup(ctx context.Context, branch string, created bool) error {
	if err := d.repo.Checkout(ctx, d.opts.Base); err != nil {
		return fmt.Errorf("cleanup: %w", err)
	}
	if !created {
		return nil
	}
	if err := d.repo.DeleteBranch(ctx, branch, true); err != nil {
		return fmt.Errorf("cleanup: %w", err)
	}
	return nil
}

func (p *Plan) result(outcome Outcome, pr *hosting.PullRequest) *ModuleResult {
	return &ModuleResult{
		Module:      p.Module,
		Path:        p.Manifest.Path,
		OldVersion:  p.OldVersion,
		NewVersion:  p.NewVersion,
		Branch:      p.Branch,
		Outcome:     outcome,
		PullRequest: pr,
	}
}
