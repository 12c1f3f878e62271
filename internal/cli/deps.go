package cli

import (
	"context"

	"github.com/indaco/hubbump/internal/config"
	"github.com/indaco/hubbump/internal/core"
	"github.com/indaco/hubbump/internal/git"
	"github.com/indaco/hubbump/internal/hosting"
	"github.com/indaco/hubbump/internal/operations"
	"github.com/indaco/hubbump/internal/tui"
)

// Dependencies are the collaborators commands are built from. Tests replace
// them with mocks.
type Dependencies struct {
	FS                   core.FileSystem
	LoadConfig           func(ctx context.Context, path string) (*config.Config, error)
	NewHubRepository     func(dir string) operations.GitRepository
	NewCoreRepository    func(dir string) operations.CoreRepository
	NewPullRequestClient func(cfg *config.Config) (operations.PullRequestClient, error)
	GitAvailable         func() bool
	Prompter             tui.Prompter
	Interactive          func() bool
}

// DefaultDependencies returns the production collaborators.
func DefaultDependencies() Dependencies {
	return Dependencies{
		FS:                   core.NewOSFileSystem(),
		LoadConfig:           config.LoadConfigFn,
		NewHubRepository:     func(dir string) operations.GitRepository { return git.NewRepository(dir) },
		NewCoreRepository:    func(dir string) operations.CoreRepository { return git.NewRepository(dir) },
		NewPullRequestClient: newGitHubClient,
		GitAvailable:         git.IsAvailable,
		Prompter:             tui.NewPrompter(),
		Interactive:          tui.IsInteractive,
	}
}

func newGitHubClient(cfg *config.Config) (operations.PullRequestClient, error) {
	opts := []hosting.Option{hosting.WithMergeMethod(cfg.Merge.Method)}
	if cfg.APIURL != "" {
		opts = append(opts, hosting.WithBaseURL(cfg.APIURL))
	}

	client, err := hosting.NewGitHubClient(nil, cfg.Token, cfg.HubRepo, opts...)
	if err != nil {
		return nil, err
	}
	return client, nil
}
