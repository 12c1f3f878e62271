package git

import (
	"context"
	"errors"

	"github.com/indaco/hubbump/internal/semver"
)

// ErrNoVersionTag is returned when a repository has no semantic version tag.
var ErrNoVersionTag = errors.New("no semantic version tag found")

// LatestVersionTag returns the highest semantic version tag of the
// repository, e.g. "v2.0.1". Tags that are not full major.minor.patch
// versions are ignored, and so are pre-releases unless includePre is set.
func (r *Repository) LatestVersionTag(ctx context.Context, includePre bool) (string, error) {
	tags, err := r.ListTags(ctx)
	if err != nil {
		return "", err
	}
	return HighestVersionTag(tags, includePre)
}

// HighestVersionTag picks the highest semantic version among tags.
func HighestVersionTag(tags []string, includePre bool) (string, error) {
	best, ok := semver.Highest(tags, includePre)
	if !ok {
		return "", ErrNoVersionTag
	}
	return best, nil
}
