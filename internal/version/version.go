package version

import (
	"fmt"
	"runtime"
	"time"
)

// Stamped by the release build:
//
//	go build -ldflags "-X github.com/osa911/contactrelay/internal/version.Version=v1.2.0 \
//	  -X github.com/osa911/contactrelay/internal/version.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ) \
//	  -X github.com/osa911/contactrelay/internal/version.GitCommit=$(git rev-parse HEAD)"
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// BuildInfo describes the running binary
type BuildInfo struct {
	Version   string
	BuildTime string
	GitCommit string
	GoVersion string
	Platform  string
}

func GetBuildInfo() BuildInfo {
	return BuildInfo{
		Version:   Version,
		BuildTime: BuildTime,
		GitCommit: GitCommit,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// Info is the one-line summary printed by the version command and logged at
// startup
func Info() string {
	if BuildTime == "unknown" {
		return Version + " (development build)"
	}

	built, err := time.Parse(time.RFC3339, BuildTime)
	if err != nil {
		return fmt.Sprintf("%s (built %s)", Version, BuildTime)
	}

	commit := GitCommit
	if len(commit) > 8 {
		commit = commit[:8]
	}
	return fmt.Sprintf("%s (built %s, commit %s)", Version, built.UTC().Format("2006-01-02 15:04:05 UTC"), commit)
}
