/*
Package version holds build information for the recommender binary.

Release builds inject the values with ldflags:

	go build -ldflags "-X github.com/khanglvm/recommender/internal/version.Version=v0.3.0 \
	  -X github.com/khanglvm/recommender/internal/version.Commit=$(git rev-parse --short HEAD) \
	  -X github.com/khanglvm/recommender/internal/version.Date=$(date -u +%Y-%m-%d)"

A binary from `go install` carries no ldflags; Get then falls back to the
module version and VCS stamp recorded by the Go toolchain.
*/
package version

import (
	"runtime"
	"runtime/debug"
)

const (
	devVersion  = "dev"
	noCommit    = "none"
	unknownDate = "unknown"

	shortCommitLen = 7
)

var (
	// Version is the release tag, e.g. v0.3.0.
	Version = devVersion
	// Commit is the short git hash.
	Commit = noCommit
	// Date is the UTC build date (YYYY-MM-DD).
	Date = unknownDate
)

// Info describes the running binary.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go_version"`
}

// String formats the info the way --version prints it.
func (i Info) String() string {
	return FormatVersion(i.Version, i.Commit, i.Date)
}

// Get returns the build information of the running binary.
func Get() Info {
	info := Info{Version: Version, Commit: Commit, Date: Date, GoVersion: runtime.Version()}
	if bi, ok := debug.ReadBuildInfo(); ok {
		info = withBuildInfo(info, bi)
	}
	return info
}

// withBuildInfo fills fields still at their defaults from the toolchain's
// build metadata. Values set with ldflags always win.
func withBuildInfo(info Info, bi *debug.BuildInfo) Info {
	if info.Version == devVersion && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}

	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == noCommit && s.Value != "" {
				info.Commit = s.Value[:min(len(s.Value), shortCommitLen)]
			}
		case "vcs.time":
			// RFC 3339; keep the date part
			if info.Date == unknownDate && len(s.Value) >= len("2006-01-02") {
				info.Date = s.Value[:len("2006-01-02")]
			}
		}
	}

	return info
}

// GetVersion returns the one-line version string shown by --version.
func GetVersion() string {
	return Get().String()
}

// FormatVersion formats version components into a display string.
func FormatVersion(version, commit, date string) string {
	if version == devVersion {
		return version + " (development build)"
	}
	return version + " (commit: " + commit + ", built: " + date + ")"
}
