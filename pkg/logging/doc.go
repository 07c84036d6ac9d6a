// Package logging provides structured logging utilities for the driver
// updater.
//
// # Overview
//
// This package wraps the standard library slog package with program-wide
// defaults and conventions: structured JSON output, environment-based log
// level configuration, module/version context injection, and an optional
// secondary append-only file sink inside the working directory so every run
// leaves a reviewable trail next to the downloaded artifacts.
//
// # Log Levels
//
// Supported log levels (case-insensitive):
//   - DEBUG: Detailed diagnostic information with source location
//   - INFO: General informational messages (default)
//   - WARN/WARNING: Warning messages for potentially problematic situations
//   - ERROR: Error messages for failures requiring attention
//
// # Usage
//
// Setting the default logger:
//
//	logging.SetDefaultStructuredLoggerWithLevel("nvup", "v1.0.0", "debug")
//	slog.Info("checking driver", "gpu", name)
//
// Adding the working-directory file sink:
//
//	closeFn, err := logging.AddFileSink(filepath.Join(workDir, "nvup.log"))
//	if err == nil {
//	    defer closeFn()
//	}
//
// # Environment Configuration
//
// The LOG_LEVEL environment variable controls logging verbosity when no
// explicit level is given:
//
//	LOG_LEVEL=debug nvup
package logging
