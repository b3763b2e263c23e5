// Package version holds the build-time version string, overridden via
// -ldflags "-X github.com/octofabric/reactor/pkg/version.Version=...".
package version

// Version is stamped at build time; "dev" is used for local/unstamped builds.
var Version = "dev"
