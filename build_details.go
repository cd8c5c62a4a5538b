package truespec

import (
	"fmt"
	"runtime"
)

var (
	// version is set via ldflags during build by GoReleaser.
	// For development builds, this will show "dev".
	version = "dev"

	// commit is the short git commit hash, set via ldflags.
	commit = "unknown"

	// buildTime is the RFC3339 build timestamp, set via ldflags.
	buildTime = "unknown"
)

// Version returns the compiled version or "dev" if run from source.
func Version() string {
	return version
}

// Commit returns the short git commit hash, or "unknown" for dev builds.
func Commit() string {
	return commit
}

// BuildTime returns the RFC3339 build timestamp, or "unknown" for dev builds.
func BuildTime() string {
	return buildTime
}

// GoVersion returns the Go runtime version used to build the binary.
func GoVersion() string {
	return runtime.Version()
}

// UserAgent returns a User-Agent string identifying this build, of the
// form "truespec/<version>".
func UserAgent() string {
	return fmt.Sprintf("truespec/%s", version)
}

// BuildInfo returns a human-readable multi-line summary of build metadata,
// suitable for a "version" CLI subcommand.
func BuildInfo() string {
	return fmt.Sprintf("Version: %s\nCommit: %s\nBuild Time: %s\nGo Version: %s",
		Version(), Commit(), BuildTime(), GoVersion())
}
