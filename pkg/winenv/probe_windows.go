//go:build windows

package winenv

import (
	"runtime"

	"golang.org/x/sys/windows"
)

// HostProbe reads the true OS version via RtlGetNtVersionNumbers, which is
// not subject to the compatibility shims that affect GetVersionEx.
func HostProbe() Info {
	major, minor, build := windows.RtlGetNtVersionNumbers()
	return Info{
		Major: major,
		Minor: minor,
		Build: build,
		Arch:  runtime.GOARCH,
	}
}

// IsElevated reports whether the current process token carries administrator
// privileges. The vendor installer requires elevation; the updater only warns
// since launching it will surface the UAC prompt anyway.
func IsElevated() bool {
	return windows.GetCurrentProcessToken().IsElevated()
}
