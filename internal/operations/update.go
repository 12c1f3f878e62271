package operations

import (
	"fmt"
	"strings"

	"github.com/indaco/hubbump/internal/manifest"
	"github.com/indaco/hubbump/internal/semver"
)

// Plan is the decision taken for one manifest before anything is published.
type Plan struct {
	Manifest    *manifest.Manifest
	Module      string
	OldVersion  string
	NewVersion  string
	CoreVersion string
	Branch      string

	// Update is false when the manifest already requires CoreVersion or newer.
	Update bool
}

// ShouldUpdate reports whether m must be bumped for coreVersion. A manifest
// without a core version always needs one; otherwise only an older one does.
func ShouldUpdate(m *manifest.Manifest, coreVersion string) (bool, error) {
	if !m.HasCoreVersion {
		if _, err := semver.ParseVersion(coreVersion); err != nil {
			return false, fmt.Errorf("invalid core version: %w", err)
		}
		return true, nil
	}

	current, err := semver.AtLeast(m.CoreVersion, coreVersion)
	if err != nil {
		return false, fmt.Errorf("%s: compare %s %q with %q: %w",
			m.Path, manifest.FieldCoreVersion, m.CoreVersion, coreVersion, err)
	}
	return !current, nil
}

// BumpManifest increments the last component of the manifest version and
// records coreVersion. It returns the previous and the new version.
func BumpManifest(m *manifest.Manifest, coreVersion string) (oldVersion, newVersion string, err error) {
	oldVersion = m.Version
	newVersion, err = semver.BumpLastSegment(oldVersion)
	if err != nil {
		return "", "", fmt.Errorf("%s: %w", m.Path, err)
	}

	if err := m.SetVersion(newVersion); err != nil {
		return "", "", err
	}
	if err := m.SetCoreVersion(coreVersion); err != nil {
		return "", "", err
	}
	return oldVersion, newVersion, nil
}

// BranchName returns the branch a module bump is published on, e.g.
// "chore-myencoder-1-2-4-core-2-0-0".
func BranchName(module, newVersion, coreVersion string) string {
	return fmt.Sprintf("chore-%s-%s-core-%s",
		strings.ToLower(module), dashed(newVersion), dashed(coreVersion))
}

// CommitMessage returns the commit message of a module bump.
func CommitMessage(module, newVersion string) string {
	return fmt.Sprintf("chore: bump %s version to %s", module, newVersion)
}

// PullRequestTitle returns the pull request title of a module bump.
func PullRequestTitle(module, newVersion string) string {
	return fmt.Sprintf("bumping version for %s to %s", module, newVersion)
}

// PullRequestBody returns the pull request body of a module bump.
func PullRequestBody(oldVersion, newVersion string) string {
	return fmt.Sprintf("bumping version from %s to %s", oldVersion, newVersion)
}

func dashed(version string) string {
	return strings.ReplaceAll(version, ".", "-")
}
