package hosting

import (
	"errors"
	"fmt"
	"strings"
)

// MergeableStateBlocked is the mergeable state GitHub reports while required
// checks or reviews are outstanding.
const MergeableStateBlocked = "blocked"

// Merge methods accepted by the GitHub merge endpoint.
const (
	MergeMethodMerge  = "merge"
	MergeMethodSquash = "squash"
	MergeMethodRebase = "rebase"
)

// ErrMissingToken is returned when no API token was configured.
var ErrMissingToken = errors.New("missing API token: set GITHUB_TOKEN")

// PullRequest is the subset of a hosted pull request hubbump works with.
type PullRequest struct {
	Number         int
	Title          string
	Body           string
	HeadRef        string
	BaseRef        string
	URL            string
	State          string
	MergeableState string
	Merged         bool
}

// IsBlocked reports whether the pull request cannot currently be merged.
func (p *PullRequest) IsBlocked() bool {
	return p.MergeableState == MergeableStateBlocked
}

// String returns a short human-readable reference such as "#42 (chore-x)".
func (p *PullRequest) String() string {
	return fmt.Sprintf("#%d (%s)", p.Number, p.HeadRef)
}

// NewPullRequest describes a pull request to open.
type NewPullRequest struct {
	Title string
	Body  string
	Head  string
	Base  string
}

// SplitSlug splits an "owner/name" repository slug.
func SplitSlug(slug string) (owner, name string, err error) {
	owner, name, ok := strings.Cut(slug, "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return "", "", fmt.Errorf("invalid repository %q: expected owner/name", slug)
	}
	return owner, name, nil
}

// IsValidMergeMethod reports whether method is one GitHub accepts.
func IsValidMergeMethod(method string) bool {
	switch method {
	case MergeMethodMerge, MergeMethodSquash, MergeMethodRebase:
		return true
	default:
		return false
	}
}
