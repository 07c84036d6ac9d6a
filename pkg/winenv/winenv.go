package winenv

import (
	"github.com/NVIDIA/driver-update/pkg/errors"
)

// Minimum supported platform: 64-bit Windows 10.
const minSupportedMajor = 10

// win11BuildThreshold is the first Windows 11 build number. Builds at or
// above it use the Windows 11 driver catalog selector.
const win11BuildThreshold = 22000

// OSFamily is the vendor catalog selector distinguishing Windows 10 from
// Windows 11 driver queries.
type OSFamily int

const (
	// FamilyWindows10 selects 64-bit Windows 10 drivers.
	FamilyWindows10 OSFamily = 57
	// FamilyWindows11 selects Windows 11 drivers.
	FamilyWindows11 OSFamily = 135
)

// Info describes the running OS version and architecture.
type Info struct {
	Major uint32
	Minor uint32
	Build uint32
	Arch  string
}

// Probe resolves the running OS Info. Injectable so tests can exercise the
// validation matrix without the host's actual version.
type Probe func() Info

// Is64Bit reports whether the architecture is a supported 64-bit one.
func (i Info) Is64Bit() bool {
	return i.Arch == "amd64" || i.Arch == "arm64"
}

// Validate fails fast when the OS is below the minimum supported major
// version or is not 64-bit. Pure precondition check, no side effects.
func Validate(info Info) error {
	if info.Major < minSupportedMajor {
		return errors.Newf(errors.ErrCodeEnvironment,
			"Windows %d.%d is not supported, version %d or newer is required",
			info.Major, info.Minor, minSupportedMajor)
	}
	if !info.Is64Bit() {
		return errors.Newf(errors.ErrCodeEnvironment,
			"unsupported architecture %q, a 64-bit OS is required", info.Arch)
	}
	return nil
}

// Family maps the OS build number onto the vendor catalog OS selector.
func Family(info Info) OSFamily {
	if info.Build >= win11BuildThreshold {
		return FamilyWindows11
	}
	return FamilyWindows10
}
