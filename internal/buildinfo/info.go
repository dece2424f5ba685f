// Package buildinfo holds release metadata stamped in with -ldflags -X.
package buildinfo

import (
	"fmt"
	"runtime/debug"
)

var (
	// Version is the release tag, e.g. v0.3.1.
	Version = "dev"
	// Commit is the short git hash of the build.
	Commit = "none"
	// Date is the build time in RFC 3339.
	Date = "unknown"
)

// String renders the version line shown by --version. Builds without ldflags fall back
// to the module version recorded by the Go toolchain, when there is one.
func String() string {
	version := Version
	if version == "dev" {
		if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			version = bi.Main.Version
		}
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", version, Commit, Date)
}
