// Package version exposes the votd build version.
package version

// Version is the current votd version. It is overridden at release time via
// -ldflags "-X github.com/MWPuppire/votd/pkg/version.Version=v1.2.3".
var Version = "0.1.0-dev"

// GetVersion returns the version string for this build.
func GetVersion() string {
	return Version
}
