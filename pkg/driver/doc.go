// Package driver resolves the currently installed NVIDIA driver version.
//
// Resolution is best-effort by design: an ordered list of strategies is
// tried (nvidia-smi CSV query, then Windows driver metadata from the
// registry) and the first result wins. When every strategy comes up empty
// the package reports the VersionUnknown sentinel instead of an error, which
// downstream logic treats as "update availability cannot be ruled out".
//
// Version strings are opaque tokens. The updater compares them by exact
// string equality only; there is deliberately no semantic ordering.
package driver
