// Package version reports the hubbump build version.
package version

import (
	"runtime/debug"
	"strings"
)

// version is set at build time:
//
//	go build -ldflags "-X github.com/indaco/hubbump/internal/version.version=1.2.3"
var version string

// GetVersion returns the build version without a leading "v", falling back
// to the module version recorded by go install, then to "dev".
func GetVersion() string {
	if version != "" {
		return strings.TrimPrefix(version, "v")
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		if v := info.Main.Version; v != "" && v != "(devel)" {
			return strings.TrimPrefix(v, "v")
		}
	}
	return "dev"
}
