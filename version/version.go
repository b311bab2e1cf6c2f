package version

import (
	"fmt"
	"runtime"
)

// API is the version of the handler API. Handler packs declare a semver
// constraint against it.
const API = "1.0.0"

// Build information. These variables are set at build time via ldflags.
var (
	// CommitHash is the git commit hash when the binary was built
	CommitHash = "dev"

	// BuildTime is when the binary was built
	BuildTime = "unknown"

	// Version is the semantic version (if tagged)
	Version = "dev"
)

// Info contains version and build information
type Info struct {
	CommitHash string `json:"commit_hash" yaml:"commit_hash" toml:"commit_hash"`
	BuildTime  string `json:"build_time" yaml:"build_time" toml:"build_time"`
	Version    string `json:"version" yaml:"version" toml:"version"`
	API        string `json:"api" yaml:"api" toml:"api"`
	GoVersion  string `json:"go_version" yaml:"go_version" toml:"go_version"`
	Platform   string `json:"platform" yaml:"platform" toml:"platform"`
}

// Get returns the current version information
func Get() Info {
	return Info{
		CommitHash: CommitHash,
		BuildTime:  BuildTime,
		Version:    Version,
		API:        API,
		GoVersion:  runtime.Version(),
		Platform:   fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// String returns a human-readable version string
func (i Info) String() string {
	if i.Version != "dev" {
		return fmt.Sprintf("inhabit %s (api %s, commit %s, built %s)", i.Version, i.API, i.CommitHash, i.BuildTime)
	}
	return fmt.Sprintf("inhabit dev (api %s, commit %s, built %s)", i.API, i.CommitHash, i.BuildTime)
}

// Short returns a short version string with just the commit hash
func (i Info) Short() string {
	if len(i.CommitHash) >= 7 {
		return i.CommitHash[:7]
	}
	return i.CommitHash
}
