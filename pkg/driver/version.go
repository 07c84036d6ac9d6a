package driver

import (
	"regexp"
	"strings"
)

// VersionUnknown is the sentinel for an unresolved driver version. Version
// comparison elsewhere is exact string equality; Unknown never equals a real
// version, so an unresolved side always results in a download attempt.
const VersionUnknown = "Unknown"

// versionToken matches the vendor's public driver version format, three
// digits, a dot, two digits (e.g. 536.23).
var versionToken = regexp.MustCompile(`\d{3}\.\d{2}`)

// VersionFromURL extracts the driver version token from a download URL.
// Returns VersionUnknown when the URL carries no recognizable token.
func VersionFromURL(url string) string {
	if v := versionToken.FindString(url); v != "" {
		return v
	}
	return VersionUnknown
}

// VersionFromDriverMetadata derives the public driver version from the
// build and revision fields of the Windows driver metadata version
// (e.g. build "15", revision "3623" of "31.0.15.3623" → "536.23"). The
// public version is the concatenation with its first character dropped.
// Degenerate input yields VersionUnknown.
func VersionFromDriverMetadata(build, revision string) string {
	combined := strings.TrimSpace(build) + strings.TrimSpace(revision)
	if len(combined) < 2 {
		return VersionUnknown
	}
	trimmed := combined[1:]
	if len(trimmed) < 5 {
		return VersionUnknown
	}
	digits := trimmed[len(trimmed)-5:]
	v := digits[:3] + "." + digits[3:]
	if !versionToken.MatchString(v) {
		return VersionUnknown
	}
	return v
}

// IsKnown reports whether v is a resolved version rather than the sentinel.
func IsKnown(v string) bool {
	return v != "" && v != VersionUnknown
}
