// Package build holds build-time information.
package build

// Version, Commit and Date default to development values and are overwritten by linker flags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent returns the User-Agent sent to external sources.
func UserAgent() string {
	return "EDPPM/" + Version
}
