/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package installer

import (
	"context"
	stderrors "errors"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/NVIDIA/driver-update/pkg/errors"
)

// SetupName is the fixed entry point the vendor package extracts to.
const SetupName = "setup.exe"

// Silent install flags. The clean flag additionally wipes existing driver
// settings and profiles.
const (
	flagPassive  = "-passive"
	flagNoEULA   = "-noeula"
	flagNoFinish = "-nofinish"
	flagClean    = "-clean"
)

// Request describes one installer launch.
type Request struct {
	// ExtractedDir is the folder the driver package was extracted into.
	ExtractedDir string
	// Clean requests a full clean install.
	Clean bool
}

// Flags returns the command-line flags for the request.
func (r Request) Flags() []string {
	flags := []string{flagPassive, flagNoEULA, flagNoFinish}
	if r.Clean {
		flags = append(flags, flagClean)
	}
	return flags
}

// Runner abstracts the blocking installer child process.
type Runner func(ctx context.Context, name string, args ...string) error

// ExecRunner launches the installer and blocks until it returns.
func ExecRunner(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = filepath.Dir(name)
	return cmd.Run()
}

// Launcher starts the vendor installer.
type Launcher struct {
	// Run invokes the installer; defaults to ExecRunner.
	Run Runner
}

// Launch locates the setup entry point inside the extraction folder and runs
// it to completion with silent flags. The installer's own exit code is not
// checked: the stage is complete once the process returns. Only a missing
// entry point or a failure to start the process at all is an error.
func (l *Launcher) Launch(ctx context.Context, req Request) error {
	setup := filepath.Join(req.ExtractedDir, SetupName)
	if _, err := os.Stat(setup); err != nil {
		return errors.Wrap(errors.ErrCodeInstaller, "installer entry point not found", err)
	}

	run := l.Run
	if run == nil {
		run = ExecRunner
	}

	flags := req.Flags()
	slog.Info("launching installer", "setup", setup, "flags", flags)

	if err := run(ctx, setup, flags...); err != nil {
		var exitErr *exec.ExitError
		if stderrors.As(err, &exitErr) {
			// Deliberately tolerated: the vendor installer's exit code
			// carries reboot-required and partial-success semantics the
			// updater does not interpret.
			slog.Warn("installer exited non-zero", "code", exitErr.ExitCode())
			return nil
		}
		return errors.Wrap(errors.ErrCodeInstaller, "failed to start installer", err)
	}

	slog.Info("installer finished")
	return nil
}
