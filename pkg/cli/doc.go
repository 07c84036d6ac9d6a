// Package cli implements the command-line interface for the nvup driver
// updater.
//
// # Usage
//
//	nvup [--clean] [--dir DIR] [--log-level LEVEL]
//
// The single command checks the installed NVIDIA driver against the vendor
// catalog and, when a different version is available, downloads, extracts,
// and silently launches the installer. The --clean flag requests a full
// clean install.
//
// All flags can also be supplied through NVUP_* environment variables.
package cli
