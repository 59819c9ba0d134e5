package app

import "fmt"

// Build information populated via -ldflags at build time.
var (
	BuildVersion = "0.0.0-dev"
	BuildCommit  = "unknown"
	BuildDate    = "unknown"
)

// VersionString is what -version prints and /health reports.
func VersionString() string {
	return fmt.Sprintf("npchunk %s (commit %s, built %s)", BuildVersion, BuildCommit, BuildDate)
}
