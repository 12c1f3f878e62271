package operations

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"

	"github.com/indaco/hubbump/internal/core"
	"github.com/indaco/hubbump/internal/git"
	"github.com/indaco/hubbump/internal/hosting"
	"github.com/indaco/hubbump/internal/manifest"
)

const testManifestPath = "/hub/encoders/MyEncoder/manifest.yml"

// fakeHub tracks the branch state a MockGitRepository would leave behind.
type fakeHub struct {
	current  string
	branches map[string]bool
	calls    []string
	commits  []string
	pushes   []string
	fetches  []string

	// failOn makes the named operation return the error.
	failOn map[string]error
}

func newFakeHub() *fakeHub {
	return &fakeHub{
		current:  "master",
		branches: map[string]bool{"master": true},
		failOn:   map[string]error{},
	}
}

func (h *fakeHub) record(op string) error {
	h.calls = append(h.calls, op)
	return h.failOn[op]
}

// localBranches returns the local branches other than master.
func (h *fakeHub) localBranches() []string {
	var out []string
	for b := range h.branches {
		if b != "master" {
			out = append(out, b)
		}
	}
	sort.Strings(out)
	return out
}

func (h *fakeHub) repo() *MockGitRepository {
	return &MockGitRepository{
		RemoteURLFn: func(_ context.Context, remote string) (string, error) {
			if err := h.record("remote-url"); err != nil {
				return "", err
			}
			return "git@github.com:jina-ai/jina-hub.git", nil
		},
		CreateBranchFn: func(_ context.Context, name string) error {
			if err := h.record("branch"); err != nil {
				return err
			}
			if h.branches[name] {
				return fmt.Errorf("branch %s exists", name)
			}
			h.branches[name] = true
			return nil
		},
		CheckoutFn: func(_ context.Context, branch string) error {
			if err := h.record("checkout " + branch); err != nil {
				return err
			}
			if !h.branches[branch] {
				return fmt.Errorf("unknown branch %s", branch)
			}
			h.current = branch
			return nil
		},
		DeleteBranchFn: func(_ context.Context, name string, force bool) error {
			if err := h.record("delete"); err != nil {
				return err
			}
			if !force {
				return errors.New("branch not fully merged")
			}
			if h.current == name {
				return errors.New("cannot delete checked out branch")
			}
			delete(h.branches, name)
			return nil
		},
		StageTrackedFn: func(context.Context) error {
			return h.record("add")
		},
		CommitFn: func(_ context.Context, message string) error {
			if err := h.record("commit"); err != nil {
				return err
			}
			h.commits = append(h.commits, message)
			return nil
		},
		PushSetUpstreamFn: func(_ context.Context, remote, branch string) error {
			if err := h.record("push"); err != nil {
				return err
			}
			h.pushes = append(h.pushes, remote+" "+branch)
			return nil
		},
		FetchFn: func(_ context.Context, remote, branch string) error {
			if err := h.record("fetch"); err != nil {
				return err
			}
			h.fetches = append(h.fetches, remote+" "+branch)
			return nil
		},
	}
}

// assertCleanedUp checks that the hub is back on master without module branches.
func assertCleanedUp(t *testing.T, h *fakeHub) {
	t.Helper()
	if h.current != "master" {
		t.Errorf("current branch = %q, want master", h.current)
	}
	if left := h.localBranches(); len(left) != 0 {
		t.Errorf("dangling branches: %v", left)
	}
}

// fakePRs records pull request calls on top of MockPullRequestClient.
type fakePRs struct {
	created []hosting.NewPullRequest
	listed  []string
	open    []*hosting.PullRequest
}

func (f *fakePRs) client() *MockPullRequestClient {
	return &MockPullRequestClient{
		CreatePullRequestFn: func(_ context.Context, pr hosting.NewPullRequest) (*hosting.PullRequest, error) {
			f.created = append(f.created, pr)
			return &hosting.PullRequest{
				Number:  len(f.created),
				Title:   pr.Title,
				Body:    pr.Body,
				HeadRef: pr.Head,
				BaseRef: pr.Base,
			}, nil
		},
		ListOpenPullRequestsFn: func(_ context.Context, head string) ([]*hosting.PullRequest, error) {
			f.listed = append(f.listed, head)
			var out []*hosting.PullRequest
			for _, pr := range f.open {
				if pr.HeadRef == head {
					out = append(out, pr)
				}
			}
			return out, nil
		},
		GetPullRequestFn: func(_ context.Context, number int) (*hosting.PullRequest, error) {
			if number < 1 || number > len(f.created) {
				return nil, fmt.Errorf("pull request #%d not found", number)
			}
			return &hosting.PullRequest{
				Number:         number,
				HeadRef:        f.created[number-1].Head,
				MergeableState: "clean",
			}, nil
		},
	}
}

func newTestStore(t *testing.T, files map[string]string) (*manifest.Store, *core.MockFileSystem) {
	t.Helper()
	fs := core.NewMockFileSystem()
	for p, content := range files {
		fs.SetFile(p, []byte(content))
	}
	return manifest.NewStore(fs), fs
}

func loadManifest(t *testing.T, store *manifest.Store, path string) *manifest.Manifest {
	t.Helper()
	m, err := store.Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load(%s) error: %v", path, err)
	}
	return m
}

func divergedPushError(branch string) error {
	return &git.CommandError{
		Args:   []string{"push", "--set-upstream", "origin", branch},
		Stderr: "hint: Updates were rejected because the tip of your current branch is behind\nhint: its remote counterpart.",
		Err:    errors.New("exit status 1"),
	}
}
