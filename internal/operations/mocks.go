package operations

import (
	"context"

	"github.com/indaco/hubbump/internal/discovery"
	"github.com/indaco/hubbump/internal/hosting"
)

// MockGitRepository is a mock implementation of GitRepository for testing.
type MockGitRepository struct {
	RemoteURLFn       func(ctx context.Context, remote string) (string, error)
	CreateBranchFn    func(ctx context.Context, name string) error
	CheckoutFn        func(ctx context.Context, branch string) error
	DeleteBranchFn    func(ctx context.Context, name string, force bool) error
	StageTrackedFn    func(ctx context.Context) error
	CommitFn          func(ctx context.Context, message string) error
	PushSetUpstreamFn func(ctx context.Context, remote, branch string) error
	FetchFn           func(ctx context.Context, remote, branch string) error
}

var _ GitRepository = (*MockGitRepository)(nil)

// RemoteURL implements GitRepository.
func (m *MockGitRepository) RemoteURL(ctx context.Context, remote string) (string, error) {
	if m.RemoteURLFn != nil {
		return m.RemoteURLFn(ctx, remote)
	}
	return "", nil
}

// CreateBranch implements GitRepository.
func (m *MockGitRepository) CreateBranch(ctx context.Context, name string) error {
	if m.CreateBranchFn != nil {
		return m.CreateBranchFn(ctx, name)
	}
	return nil
}

// Checkout implements GitRepository.
func (m *MockGitRepository) Checkout(ctx context.Context, branch string) error {
	if m.CheckoutFn != nil {
		return m.CheckoutFn(ctx, branch)
	}
	return nil
}

// DeleteBranch implements GitRepository.
func (m *MockGitRepository) DeleteBranch(ctx context.Context, name string, force bool) error {
	if m.DeleteBranchFn != nil {
		return m.DeleteBranchFn(ctx, name, force)
	}
	return nil
}

// StageTracked implements GitRepository.
func (m *MockGitRepository) StageTracked(ctx context.Context) error {
	if m.StageTrackedFn != nil {
		return m.StageTrackedFn(ctx)
	}
	return nil
}

// Commit implements GitRepository.
func (m *MockGitRepository) Commit(ctx context.Context, message string) error {
	if m.CommitFn != nil {
		return m.CommitFn(ctx, message)
	}
	return nil
}

// PushSetUpstream implements GitRepository.
func (m *MockGitRepository) PushSetUpstream(ctx context.Context, remote, branch string) error {
	if m.PushSetUpstreamFn != nil {
		return m.PushSetUpstreamFn(ctx, remote, branch)
	}
	return nil
}

// Fetch implements GitRepository.
func (m *MockGitRepository) Fetch(ctx context.Context, remote, branch string) error {
	if m.FetchFn != nil {
		return m.FetchFn(ctx, remote, branch)
	}
	return nil
}

// MockCoreRepository is a mock implementation of CoreRepository for testing.
type MockCoreRepository struct {
	RemoteURLFn        func(ctx context.Context, remote string) (string, error)
	LatestVersionTagFn func(ctx context.Context, includePre bool) (string, error)
}

var _ CoreRepository = (*MockCoreRepository)(nil)

// RemoteURL implements CoreRepository.
func (m *MockCoreRepository) RemoteURL(ctx context.Context, remote string) (string, error) {
	if m.RemoteURLFn != nil {
		return m.RemoteURLFn(ctx, remote)
	}
	return "", nil
}

// LatestVersionTag implements CoreRepository.
func (m *MockCoreRepository) LatestVersionTag(ctx context.Context, includePre bool) (string, error) {
	if m.LatestVersionTagFn != nil {
		return m.LatestVersionTagFn(ctx, includePre)
	}
	return "", nil
}

// MockPullRequestClient is a mock implementation of PullRequestClient for testing.
type MockPullRequestClient struct {
	CreatePullRequestFn    func(ctx context.Context, pr hosting.NewPullRequest) (*hosting.PullRequest, error)
	ListOpenPullRequestsFn func(ctx context.Context, head string) ([]*hosting.PullRequest, error)
	GetPullRequestFn       func(ctx context.Context, number int) (*hosting.PullRequest, error)
	MergePullRequestFn     func(ctx context.Context, number int, message string) error
}

var _ PullRequestClient = (*MockPullRequestClient)(nil)

// CreatePullRequest implements PullRequestClient.
func (m *MockPullRequestClient) CreatePullRequest(ctx context.Context, pr hosting.NewPullRequest) (*hosting.PullRequest, error) {
	if m.CreatePullRequestFn != nil {
		return m.CreatePullRequestFn(ctx, pr)
	}
	return &hosting.PullRequest{Number: 1, Title: pr.Title, Body: pr.Body, HeadRef: pr.Head, BaseRef: pr.Base}, nil
}

// ListOpenPullRequests implements PullRequestClient.
func (m *MockPullRequestClient) ListOpenPullRequests(ctx context.Context, head string) ([]*hosting.PullRequest, error) {
	if m.ListOpenPullRequestsFn != nil {
		return m.ListOpenPullRequestsFn(ctx, head)
	}
	return nil, nil
}

// GetPullRequest implements PullRequestClient.
func (m *MockPullRequestClient) GetPullRequest(ctx context.Context, number int) (*hosting.PullRequest, error) {
	if m.GetPullRequestFn != nil {
		return m.GetPullRequestFn(ctx, number)
	}
	return &hosting.PullRequest{Number: number}, nil
}

// MergePullRequest implements PullRequestClient.
func (m *MockPullRequestClient) MergePullRequest(ctx context.Context, number int, message string) error {
	if m.MergePullRequestFn != nil {
		return m.MergePullRequestFn(ctx, number, message)
	}
	return nil
}

// MockManifestFinder is a mock implementation of ManifestFinder for testing.
type MockManifestFinder struct {
	DiscoverFn func(ctx context.Context, root string, opts discovery.Options) ([]discovery.Candidate, error)
}

var _ ManifestFinder = (*MockManifestFinder)(nil)

// Discover implements ManifestFinder.
func (m *MockManifestFinder) Discover(ctx context.Context, root string, opts discovery.Options) ([]discovery.Candidate, error) {
	if m.DiscoverFn != nil {
		return m.DiscoverFn(ctx, root, opts)
	}
	return nil, nil
}
