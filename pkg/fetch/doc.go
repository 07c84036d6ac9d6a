// Package fetch provides the HTTP plumbing for the driver updater: a tuned
// HTTP reader for the small vendor API requests and an idempotent bulk
// downloader for driver packages.
//
// The downloader keys its cache on the URL's final path segment: before
// transferring it probes the remote size with a header-only request and skips
// the download when a local file of the same size already exists. Transient
// transfer failures are retried, paced at a fixed interval, until the caller's
// context is cancelled.
package fetch
