// Package version exposes build metadata injected with -ldflags.
package version

//nolint:gochecknoglobals // Set at build time via -ldflags.
var (
	version   = "0.1.0-dev"
	gitCommit = "unknown"
	buildDate = "unknown"
)

// GetVersion returns the semantic version of the binary.
func GetVersion() string {
	return version
}

// GetGitCommit returns the commit the binary was built from.
func GetGitCommit() string {
	return gitCommit
}

// GetBuildDate returns the build timestamp.
func GetBuildDate() string {
	return buildDate
}

// UserAgent is sent with every catalog request.
func UserAgent() string {
	return "artgrid/" + version
}
