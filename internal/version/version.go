// Package version holds build metadata injected via ldflags.
package version

import "fmt"

//nolint:revive // Set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// String returns "designkb <version> (<commit>, <date>)".
func String() string {
	return fmt.Sprintf("designkb %s (%s, %s)", Version, Commit, Date)
}
