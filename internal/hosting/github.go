package hosting

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v66/github"
)

// GitHubClient manages pull requests of one GitHub repository.
type GitHubClient struct {
	client      *github.Client
	owner       string
	repo        string
	mergeMethod string
}

// Option configures a GitHubClient.
type Option func(*GitHubClient) error

// WithBaseURL points the client at another API root, e.g. a GitHub
// Enterprise instance or a test server.
func WithBaseURL(base string) Option {
	return func(c *GitHubClient) error {
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		u, err := url.Parse(base)
		if err != nil {
			return fmt.Errorf("invalid API base URL %q: %w", base, err)
		}
		c.client.BaseURL = u
		return nil
	}
}

// WithMergeMethod selects merge, squash or rebase for MergePullRequest.
func WithMergeMethod(method string) Option {
	return func(c *GitHubClient) error {
		if !IsValidMergeMethod(method) {
			return fmt.Errorf("invalid merge method %q", method)
		}
		c.mergeMethod = method
		return nil
	}
}

// NewGitHubClient returns a client for the "owner/name" repository slug,
// authenticated with token. httpClient may be nil.
func NewGitHubClient(httpClient *http.Client, token, slug string, opts ...Option) (*GitHubClient, error) {
	if token == "" {
		return nil, ErrMissingToken
	}

	owner, repo, err := SplitSlug(slug)
	if err != nil {
		return nil, err
	}

	c := &GitHubClient{
		client:      github.NewClient(httpClient).WithAuthToken(token),
		owner:       owner,
		repo:        repo,
		mergeMethod: MergeMethodMerge,
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// CreatePullRequest opens a pull request.
func (c *GitHubClient) CreatePullRequest(ctx context.Context, pr NewPullRequest) (*PullRequest, error) {
	created, _, err := c.client.PullRequests.Create(ctx, c.owner, c.repo, &github.NewPullRequest{
		Title: github.String(pr.Title),
		Body:  github.String(pr.Body),
		Head:  github.String(pr.Head),
		Base:  github.String(pr.Base),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create pull request for %s: %w", pr.Head, err)
	}
	return fromGitHub(created), nil
}

// ListOpenPullRequests returns the open pull requests whose head branch is
// head. The owner prefix GitHub expects is added here.
func (c *GitHubClient) ListOpenPullRequests(ctx context.Context, head string) ([]*PullRequest, error) {
	opts := &github.PullRequestListOptions{
		State:       "open",
		Head:        c.owner + ":" + head,
		ListOptions: github.ListOptions{PerPage: 100},
	}

	var result []*PullRequest
	for {
		prs, resp, err := c.client.PullRequests.List(ctx, c.owner, c.repo, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list pull requests for %s: %w", head, err)
		}
		for _, pr := range prs {
			result = append(result, fromGitHub(pr))
		}
		if resp == nil || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return result, nil
}

// GetPullRequest fetches a pull request, including its mergeable state.
func (c *GitHubClient) GetPullRequest(ctx context.Context, number int) (*PullRequest, error) {
	pr, _, err := c.client.PullRequests.Get(ctx, c.owner, c.repo, number)
	if err != nil {
		return nil, fmt.Errorf("failed to get pull request #%d: %w", number, err)
	}
	return fromGitHub(pr), nil
}

// MergePullRequest merges a pull request with the configured merge method.
func (c *GitHubClient) MergePullRequest(ctx context.Context, number int, message string) error {
	res, _, err := c.client.PullRequests.Merge(ctx, c.owner, c.repo, number, message, &github.PullRequestOptions{
		MergeMethod: c.mergeMethod,
	})
	if err != nil {
		return fmt.Errorf("failed to merge pull request #%d: %w", number, err)
	}
	if !res.GetMerged() {
		return fmt.Errorf("pull request #%d was not merged: %s", number, res.GetMessage())
	}
	return nil
}

func fromGitHub(pr *github.PullRequest) *PullRequest {
	return &PullRequest{
		Number:         pr.GetNumber(),
		Title:          pr.GetTitle(),
		Body:           pr.GetBody(),
		HeadRef:        pr.GetHead().GetRef(),
		BaseRef:        pr.GetBase().GetRef(),
		URL:            pr.GetHTMLURL(),
		State:          pr.GetState(),
		MergeableState: pr.GetMergeableState(),
		Merged:         pr.GetMerged(),
	}
}
