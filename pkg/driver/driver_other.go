//go:build !windows

package driver

// NewResolver off Windows carries no strategies; resolution always reports
// VersionUnknown, which downstream logic treats as "attempt the download".
func NewResolver() *Resolver {
	return &Resolver{}
}
