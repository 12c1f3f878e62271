package operations

import (
	"context"

	"github.com/indaco/hubbump/internal/discovery"
	"github.com/indaco/hubbump/internal/git"
	"github.com/indaco/hubbump/internal/hosting"
)

// GitRepository is the subset of git operations performed on the hub checkout.
type GitRepository interface {
	RemoteURL(ctx context.Context, remote string) (string, error)
	CreateBranch(ctx context.Context, name string) error
	Checkout(ctx context.Context, branch string) error
	DeleteBranch(ctx context.Context, name string, force bool) error
	StageTracked(ctx context.Context) error
	Commit(ctx context.Context, message string) error
	PushSetUpstream(ctx context.Context, remote, branch string) error
	Fetch(ctx context.Context, remote, branch string) error
}

// CoreRepository is the subset of git operations performed on the core checkout.
type CoreRepository interface {
	RemoteURL(ctx context.Context, remote string) (string, error)
	LatestVersionTag(ctx context.Context, includePre bool) (string, error)
}

// PullRequestClient manages pull requests on the hosted hub repository.
type PullRequestClient interface {
	CreatePullRequest(ctx context.Context, pr hosting.NewPullRequest) (*hosting.PullRequest, error)
	ListOpenPullRequests(ctx context.Context, head string) ([]*hosting.PullRequest, error)
	GetPullRequest(ctx context.Context, number int) (*hosting.PullRequest, error)
	MergePullRequest(ctx context.Context, number int, message string) error
}

// ManifestFinder locates manifests below a directory.
type ManifestFinder interface {
	Discover(ctx context.Context, root string, opts discovery.Options) ([]discovery.Candidate, error)
}

var (
	_ GitRepository     = (*git.Repository)(nil)
	_ CoreRepository    = (*git.Repository)(nil)
	_ PullRequestClient = (*hosting.GitHubClient)(nil)
	_ ManifestFinder    = (*discovery.Service)(nil)
)
