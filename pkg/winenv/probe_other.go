//go:build !windows

package winenv

import "runtime"

// HostProbe on non-Windows hosts reports a zero version so Validate rejects
// the platform. Only the Windows build performs driver updates; this stub
// keeps the rest of the module testable elsewhere.
func HostProbe() Info {
	return Info{Arch: runtime.GOARCH}
}

// IsElevated is always false off Windows.
func IsElevated() bool {
	return false
}
