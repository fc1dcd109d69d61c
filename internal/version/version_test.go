package version

import (
	"testing"
)

func withBuild(t *testing.T, buildTime, commit string) {
	t.Helper()
	oldTime, oldCommit := BuildTime, GitCommit
	BuildTime, GitCommit = buildTime, commit
	t.Cleanup(func() {
		BuildTime, GitCommit = oldTime, oldCommit
	})
}

func TestInfo(t *testing.T) {
	tests := []struct {
		buildTime string
		commit    string
		expected  string
	}{
		{"unknown", "unknown", Version + " (development build)"},
		{"yesterday", "abc", Version + " (built yesterday)"},
		{"2024-03-01T10:20:30Z", "0123456789abcdef", Version + " (built 2024-03-01 10:20:30 UTC, commit 01234567)"},
		{"2024-03-01T10:20:30Z", "abc", Version + " (built 2024-03-01 10:20:30 UTC, commit abc)"},
	}

	for _, tt := range tests {
		withBuild(t, tt.buildTime, tt.commit)
		if result := Info(); result != tt.expected {
			t.Errorf("Info() with %s/%s = %q; want %q", tt.buildTime, tt.commit, result, tt.expected)
		}
	}
}

func TestGetBuildInfo(t *testing.T) {
	info := GetBuildInfo()
	if info.Version != Version {
		t.Errorf("Version = %q; want %q", info.Version, Version)
	}
	if info.GoVersion == "" || info.Platform == "" {
		t.Errorf("runtime fields not populated: %+v", info)
	}
}
