// Package version provides version information.
package version

// Version is set at build time via -ldflags "-X github.com/tk-425/caller-cli/internal/version.Version=<value>"
// The default is a development placeholder.
var Version = "v2.0.0-dev"

// String renders the --version line.
func String() string {
	return "caller " + Version
}
