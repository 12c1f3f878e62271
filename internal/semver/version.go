// Package semver validates and orders semantic versions and bumps the dotted
// versions hub manifests carry. Ordering is delegated to golang.org/x/mod/semver.
package semver

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
)

// ErrInvalidVersion is returned when a version string is not a full
// MAJOR.MINOR.PATCH semantic version.
var ErrInvalidVersion = errors.New("invalid version format")

// ParseVersion checks that s is a full semantic version, with or without a
// leading "v", and returns it in the "vMAJOR.MINOR.PATCH[-pre][+build]" form.
// Shorthands such as "2.1" and leading zeros such as "01.2.3" are rejected.
func ParseVersion(s string) (string, error) {
	v := strings.TrimSpace(s)
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return "", fmt.Errorf("%w: %q", ErrInvalidVersion, s)
	}
	if strings.TrimSuffix(v, semver.Build(v)) != semver.Canonical(v) {
		return "", fmt.Errorf("%w: %q is not MAJOR.MINOR.PATCH", ErrInvalidVersion, s)
	}
	return v, nil
}

// Compare returns -1, 0 or +1 as a is lower than, equal to or higher than b.
// Build metadata is ignored.
func Compare(a, b string) (int, error) {
	va, err := ParseVersion(a)
	if err != nil {
		return 0, err
	}
	vb, err := ParseVersion(b)
	if err != nil {
		return 0, err
	}
	return semver.Compare(va, vb), nil
}

// AtLeast reports whether have is greater than or equal to want.
func AtLeast(have, want string) (bool, error) {
	c, err := Compare(have, want)
	if err != nil {
		return false, err
	}
	return c >= 0, nil
}

// Highest returns the highest valid version among versions, as written.
// Entries that are not full semantic versions are ignored, and so are
// pre-releases unless includePre is set.
func Highest(versions []string, includePre bool) (string, bool) {
	best, bestKey := "", ""
	for _, s := range versions {
		key, err := ParseVersion(s)
		if err != nil {
			continue
		}
		if !includePre && semver.Prerelease(key) != "" {
			continue
		}
		if bestKey == "" || semver.Compare(key, bestKey) > 0 {
			best, bestKey = s, key
		}
	}
	return best, bestKey != ""
}

// BumpLastSegment increments the final dot-separated component of a dotted
// version string, leaving the other components untouched.
//
//	"1.2.3" -> "1.2.4"
//	"0.9"   -> "0.10"
//	"7"     -> "8"
//
// It fails when the last component is not an integer literal.
func BumpLastSegment(version string) (string, error) {
	parts := strings.Split(version, ".")
	last := parts[len(parts)-1]

	n, err := strconv.Atoi(last)
	if err != nil || n < 0 {
		return "", fmt.Errorf("%w: last component %q of %q is not an integer", ErrInvalidVersion, last, version)
	}

	parts[len(parts)-1] = strconv.Itoa(n + 1)
	return strings.Join(parts, "."), nil
}
