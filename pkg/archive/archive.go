/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package archive

import (
	"context"
	stderrors "errors"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/NVIDIA/driver-update/pkg/defaults"
	"github.com/NVIDIA/driver-update/pkg/errors"
)

// ToolURL is the fixed download location of the standalone 7-Zip console
// extractor used to unpack driver packages.
const ToolURL = "https://www.7-zip.org/a/7zr.exe"

// ToolName is the extractor's file name inside the working directory.
const ToolName = "7zr.exe"

// Ensurer downloads a file to a destination unless it already exists.
// Satisfied by fetch.Downloader.
type Ensurer interface {
	EnsureFile(ctx context.Context, url, dest string) error
}

// EnsureTool makes the extractor available inside dir, downloading it once.
// Returns the tool path.
func EnsureTool(ctx context.Context, e Ensurer, dir string) (string, error) {
	dest := filepath.Join(dir, ToolName)
	if err := e.EnsureFile(ctx, ToolURL, dest); err != nil {
		return "", errors.Wrap(errors.ErrCodeDownload, "failed to fetch archive tool", err)
	}
	return dest, nil
}

// Runner abstracts the extractor child process so tests can simulate exit
// codes. It returns the process exit code and any invocation error.
type Runner func(ctx context.Context, name string, args ...string) (int, error)

// ExecRunner runs the tool and reports its exit code.
func ExecRunner(ctx context.Context, name string, args ...string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, defaults.ExtractTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if stderrors.As(err, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return -1, err
	}
	return 0, nil
}

// Extractor unpacks driver packages with the 7-Zip console tool.
type Extractor struct {
	// Tool is the extractor binary path.
	Tool string
	// Run invokes the tool; defaults to ExecRunner.
	Run Runner
}

// Extract unpacks archive into dest, creating it if absent and overwriting
// existing contents. Success is solely the child's zero exit code; any
// non-zero code is fatal with no partial-extraction recovery.
func (e *Extractor) Extract(ctx context.Context, archive, dest string) error {
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeExtraction, "failed to create extraction folder", err)
	}

	run := e.Run
	if run == nil {
		run = ExecRunner
	}

	// x: extract with paths, -aoa: overwrite all, -bso0: quiet, -y: assume yes
	args := []string{"x", "-aoa", "-bso0", "-y", archive, "-o" + dest}
	slog.Info("extracting driver package", "archive", archive, "dest", dest)

	code, err := run(ctx, e.Tool, args...)
	if err != nil {
		return errors.Wrap(errors.ErrCodeExtraction, "failed to run archive tool", err)
	}
	if code != 0 {
		return errors.Newf(errors.ErrCodeExtraction, "archive tool exited with code %d", code)
	}
	return nil
}
