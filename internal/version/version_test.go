package version

import (
	"runtime"
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatVersion(t *testing.T) {
	tests := []struct {
		name                  string
		version, commit, date string
		want                  string
	}{
		{"dev build", "dev", "none", "unknown", "dev (development build)"},
		{"release", "v0.3.0", "abc1234", "2026-10-01", "v0.3.0 (commit: abc1234, built: 2026-10-01)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatVersion(tt.version, tt.commit, tt.date))
		})
	}
}

func TestWithBuildInfo(t *testing.T) {
	defaults := Info{Version: devVersion, Commit: noCommit, Date: unknownDate}
	stamped := &debug.BuildInfo{
		Main: debug.Module{Path: "github.com/khanglvm/recommender", Version: "v0.4.1"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef"},
			{Key: "vcs.time", Value: "2026-09-30T12:34:56Z"},
		},
	}

	tests := []struct {
		name string
		info Info
		bi   *debug.BuildInfo
		want Info
	}{
		{
			name: "go install build",
			info: defaults,
			bi:   stamped,
			want: Info{Version: "v0.4.1", Commit: "0123456", Date: "2026-09-30"},
		},
		{
			name: "ldflags win",
			info: Info{Version: "v1.0.0", Commit: "abc1234", Date: "2026-10-01"},
			bi:   stamped,
			want: Info{Version: "v1.0.0", Commit: "abc1234", Date: "2026-10-01"},
		},
		{
			name: "local devel build",
			info: defaults,
			bi:   &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}},
			want: defaults,
		},
		{
			name: "short revision",
			info: defaults,
			bi:   &debug.BuildInfo{Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "abc"}}},
			want: Info{Version: devVersion, Commit: "abc", Date: unknownDate},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, withBuildInfo(tt.info, tt.bi))
		})
	}
}

func TestGet(t *testing.T) {
	info := Get()
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.NotEmpty(t, info.Version)
	assert.Equal(t, info.String(), GetVersion())
}
