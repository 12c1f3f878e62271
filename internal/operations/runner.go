package operations

import (
	"context"
	"fmt"
	"strings"

	"github.com/indaco/hubbump/internal/discovery"
	"github.com/indaco/hubbump/internal/manifest"
	"github.com/indaco/hubbump/internal/printer"
	"github.com/indaco/hubbump/internal/semver"
)

// RunOptions configures a Runner.
type RunOptions struct {
	HubDir string
	Base   string
	Remote string

	// HubRepo and CoreRepo must appear in the remote URL of the respective
	// checkout, e.g. "jina-ai/jina-hub".
	HubRepo  string
	CoreRepo string

	// CoreVersion overrides the version read from the core checkout tags.
	CoreVersion        string
	IncludePrereleases bool

	Discovery discovery.Options
	DryRun    bool
	Merge     MergeOptions

	// Confirm, when set, is asked once before the first module is published.
	Confirm func(ctx context.Context, plans []*Plan) (bool, error)
}

// Runner performs one bump of all hub manifests.
type Runner struct {
	hub    GitRepository
	core   CoreRepository
	prs    PullRequestClient
	finder ManifestFinder
	driver *Driver
	opts   RunOptions
}

// NewRunner wires a Runner from its collaborators.
func NewRunner(hub GitRepository, core CoreRepository, prs PullRequestClient, finder ManifestFinder, store *manifest.Store, opts RunOptions) *Runner {
	if opts.Remote == "" {
		opts.Remote = "origin"
	}
	if opts.Merge.Remote == "" {
		opts.Merge.Remote = opts.Remote
	}
	return &Runner{
		hub:    hub,
		core:   core,
		prs:    prs,
		finder: finder,
		driver: NewDriver(hub, prs, store, DriverOptions{Base: opts.Base, Remote: opts.Remote}),
		opts:   opts,
	}
}

// Run verifies both checkouts, resolves the target core version and handles
// every discovered manifest in order. The first unrecovered module error
// aborts the run; the returned report then holds the modules handled so far.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	if err := r.VerifyIdentity(ctx); err != nil {
		return nil, err
	}

	coreVersion, err := r.CoreVersion(ctx)
	if err != nil {
		return nil, err
	}
	report := &Report{CoreVersion: coreVersion}
	printer.PrintInfo(fmt.Sprintf("target core version: %s", coreVersion))

	candidates, err := r.finder.Discover(ctx, r.opts.HubDir, r.opts.Discovery)
	if err != nil {
		return nil, err
	}
	printer.PrintInfo(fmt.Sprintf("found %d manifests", len(candidates)))

	plans := make([]*Plan, 0, len(candidates))
	var updates []*Plan
	for _, c := range candidates {
		plan, err := r.driver.Plan(ctx, c.Path, coreVersion)
		if err != nil {
			return report, err
		}
		plans = append(plans, plan)
		if plan.Update {
			updates = append(updates, plan)
		}
	}

	if r.opts.DryRun {
		for _, plan := range plans {
			outcome := OutcomeSkipped
			if plan.Update {
				outcome = OutcomeDryRun
			}
			report.Modules = append(report.Modules, plan.result(outcome, nil))
		}
		return report, nil
	}

	if len(updates) > 0 && r.opts.Confirm != nil {
		ok, err := r.opts.Confirm(ctx, updates)
		if err != nil {
			return report, err
		}
		if !ok {
			return report, ErrAborted
		}
	}

	for _, plan := range plans {
		if !plan.Update {
			printer.PrintFaint(fmt.Sprintf("%s already requires %s %s >= %s, skipping",
				plan.Module, manifest.FieldCoreVersion, plan.Manifest.CoreVersion, coreVersion))
			report.Modules = append(report.Modules, plan.result(OutcomeSkipped, nil))
			continue
		}

		printer.PrintInfo(fmt.Sprintf("handling %s...", plan.Module))
		result, err := r.driver.Apply(ctx, plan)
		if result != nil {
			report.Modules = append(report.Modules, result)
		}
		if err != nil {
			return report, err
		}
	}
	return report, nil
}

// Merge polls the pull requests of report until they are merged or the
// configured attempts are used up, and stores the results in report.
func (r *Runner) Merge(ctx context.Context, report *Report) error {
	prs := report.PullRequests()
	if len(prs) == 0 {
		return nil
	}

	watcher := NewMergeWatcher(r.hub, r.prs, r.opts.Merge)
	results, err := watcher.Watch(ctx, prs)
	report.Merges = results
	return err
}

// VerifyIdentity checks that both checkouts point at the expected repositories.
func (r *Runner) VerifyIdentity(ctx context.Context) error {
	if err := verifyRemote(ctx, "hub", r.hub, r.opts.Remote, r.opts.HubRepo); err != nil {
		return err
	}
	return verifyRemote(ctx, "core", r.core, r.opts.Remote, r.opts.CoreRepo)
}

// CoreVersion returns the configured core version, or the latest version tag
// of the core checkout.
func (r *Runner) CoreVersion(ctx context.Context) (string, error) {
	if r.opts.CoreVersion != "" {
		return ResolveCoreVersion(r.opts.CoreVersion)
	}

	tag, err := r.core.LatestVersionTag(ctx, r.opts.IncludePrereleases)
	if err != nil {
		return "", fmt.Errorf("failed to determine core version: %w", err)
	}
	return ResolveCoreVersion(tag)
}

// ResolveCoreVersion strips the leading "v" of a version tag and checks that
// the remainder is a semantic version.
func ResolveCoreVersion(tag string) (string, error) {
	version := strings.TrimPrefix(strings.TrimSpace(tag), "v")
	if _, err := semver.ParseVersion(version); err != nil {
		return "", fmt.Errorf("invalid core version %q: %w", tag, err)
	}
	return version, nil
}

type remoteLookup interface {
	RemoteURL(ctx context.Context, remote string) (string, error)
}

func verifyRemote(ctx context.Context, name string, repo remoteLookup, remote, want string) error {
	if want == "" {
		return nil
	}
	url, err := repo.RemoteURL(ctx, remote)
	if err != nil {
		return fmt.Errorf("%s repo: %w", name, err)
	}
	if !strings.Contains(url, want) {
		return fmt.Errorf("%w: %s remote %q is %q, expected it to contain %q",
			ErrRepositoryMismatch, name, remote, url, want)
	}
	return nil
}
