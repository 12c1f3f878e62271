package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Repository runs git commands inside one local checkout.
type Repository struct {
	dir         string
	execCommand func(ctx context.Context, name string, arg ...string) *exec.Cmd
}

// NewRepository returns a Repository operating on the checkout at dir.
func NewRepository(dir string) *Repository {
	return &Repository{
		dir:         dir,
		execCommand: exec.CommandContext,
	}
}

// IsAvailable reports whether a git binary can be found on PATH.
func IsAvailable() bool {
	_, err := exec.LookPath("git")
	return err == nil
}

// run executes git with args and returns its trimmed stdout.
// Failures are returned as *CommandError carrying git's stderr.
func (r *Repository) run(ctx context.Context, args ...string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	cmd := r.execCommand(ctx, "git", args...)
	cmd.Dir = r.dir
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", errors.Join(ctxErr, err)
		}
		return "", &CommandError{
			Args:   args,
			Stderr: strings.TrimSpace(stderr.String()),
			Err:    err,
		}
	}

	return strings.TrimSpace(stdout.String()), nil
}

// RemoteURL returns the first URL configured for remote.
func (r *Repository) RemoteURL(ctx context.Context, remote string) (string, error) {
	out, err := r.run(ctx, "remote", "get-url", remote)
	if err != nil {
		return "", fmt.Errorf("failed to read URL of remote %q in %s: %w", remote, r.dir, err)
	}
	return out, nil
}

// ListTags returns all tag names of the repository.
func (r *Repository) ListTags(ctx context.Context) ([]string, error) {
	out, err := r.run(ctx, "tag", "--list")
	if err != nil {
		return nil, fmt.Errorf("failed to list tags in %s: %w", r.dir, err)
	}
	if out == "" {
		return []string{}, nil
	}
	return strings.Split(out, "\n"), nil
}

// CreateBranch creates a local branch at HEAD without checking it out.
func (r *Repository) CreateBranch(ctx context.Context, name string) error {
	_, err := r.run(ctx, "branch", name)
	return err
}

// Checkout switches the working tree to branch.
func (r *Repository) Checkout(ctx context.Context, branch string) error {
	_, err := r.run(ctx, "checkout", branch)
	return err
}

// DeleteBranch deletes a local branch. With force the branch is removed
// even when it was never merged.
func (r *Repository) DeleteBranch(ctx context.Context, name string, force bool) error {
	flag := "-d"
	if force {
		flag = "-D"
	}
	_, err := r.run(ctx, "branch", flag, name)
	return err
}

// StageTracked stages modifications and deletions of tracked files only.
func (r *Repository) StageTracked(ctx context.Context) error {
	_, err := r.run(ctx, "add", "--update")
	return err
}

// Commit records the staged changes. Hooks are not run.
func (r *Repository) Commit(ctx context.Context, message string) error {
	_, err := r.run(ctx, "commit", "--no-verify", "-m", message)
	return err
}

// PushSetUpstream pushes branch to remote and records it as upstream.
func (r *Repository) PushSetUpstream(ctx context.Context, remote, branch string) error {
	_, err := r.run(ctx, "push", "--set-upstream", remote, branch)
	return err
}

// Fetch updates the remote-tracking ref of branch from remote.
func (r *Repository) Fetch(ctx context.Context, remote, branch string) error {
	_, err := r.run(ctx, "fetch", remote, branch)
	return err
}
