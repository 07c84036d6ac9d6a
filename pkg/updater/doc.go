// Package updater orchestrates the driver update workflow as a single
// sequential pipeline: validate the environment, identify the GPU, resolve
// the installed and newest driver versions, and when they differ download,
// extract, and silently launch the vendor installer.
//
// Versions are compared by exact string equality only; an unknown version on
// either side always results in a download attempt. Every collaborator is an
// injected interface, so the whole pipeline runs against fakes in tests.
//
// A run is not guarded against a concurrently executing previous run sharing
// the same working directory.
package updater
