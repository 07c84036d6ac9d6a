// Package gpu identifies the NVIDIA GPU present on the host.
//
// Identification tries local hardware inventory sources in order (the
// display adapter registry class, then WMI via PowerShell) and takes the
// first NVIDIA-branded entry. When nothing is found locally the identifier
// falls back to an interactive single-select over the vendor's GPU catalog.
//
// The resulting Device carries the display name and, once enriched against
// the catalog, the two vendor lookup keys required to query driver
// availability.
package gpu
