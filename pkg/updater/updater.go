/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package updater

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/NVIDIA/driver-update/pkg/archive"
	"github.com/NVIDIA/driver-update/pkg/driver"
	"github.com/NVIDIA/driver-update/pkg/errors"
	"github.com/NVIDIA/driver-update/pkg/fetch"
	"github.com/NVIDIA/driver-update/pkg/gpu"
	"github.com/NVIDIA/driver-update/pkg/installer"
	"github.com/NVIDIA/driver-update/pkg/nvapi"
	"github.com/NVIDIA/driver-update/pkg/winenv"
)

// extractSubdir is the folder inside the working directory that driver
// packages are unpacked into.
const extractSubdir = "extracted"

// VendorClient is the slice of the vendor API the pipeline needs.
type VendorClient interface {
	LatestDriver(ctx context.Context, parentID, value string, family winenv.OSFamily) (*nvapi.Driver, error)
}

// PackageFetcher downloads driver packages and helper tools idempotently.
type PackageFetcher interface {
	Fetch(ctx context.Context, url, dir string) (string, error)
	EnsureFile(ctx context.Context, url, dest string) error
}

// Extractor unpacks a downloaded package with the given tool.
type Extractor interface {
	Extract(ctx context.Context, tool, archive, dest string) error
}

// Launcher runs the vendor installer.
type Launcher interface {
	Launch(ctx context.Context, req installer.Request) error
}

// Options configure a run.
type Options struct {
	// Clean requests a full clean install.
	Clean bool
	// WorkDir is the download and extraction folder. Empty selects the
	// default under the OS temp directory.
	WorkDir string
}

// Outcome classifies how a run ended.
type Outcome string

const (
	// OutcomeUpToDate means the installed driver already matches the
	// newest one and nothing was downloaded.
	OutcomeUpToDate Outcome = "up-to-date"
	// OutcomeInstalled means the installer was downloaded, extracted, and
	// launched to completion.
	OutcomeInstalled Outcome = "installed"
)

// Pipeline runs the update workflow: environment validation, GPU
// identification, version comparison, download, extraction, and installer
// launch, strictly in that order. Each stage depends on the success of the
// previous one and the first failure aborts the run.
type Pipeline struct {
	Probe      winenv.Probe
	Elevated   func() bool
	Identifier *gpu.Identifier
	Versions   *driver.Resolver
	Vendor     VendorClient
	Fetcher    PackageFetcher
	Extractor  Extractor
	Launcher   Launcher
	Options    Options
}

// New assembles the production pipeline.
func New(opts Options) *Pipeline {
	client := nvapi.NewClient()
	downloader := fetch.NewDownloader()
	return &Pipeline{
		Probe:    winenv.HostProbe,
		Elevated: winenv.IsElevated,
		Identifier: &gpu.Identifier{
			Inventories: gpu.DefaultInventories(),
			Select:      gpu.HuhSelect,
			Catalog:     client,
		},
		Versions:  driver.NewResolver(),
		Vendor:    client,
		Fetcher:   downloader,
		Extractor: toolExtractor{},
		Launcher:  &installer.Launcher{},
		Options:   opts,
	}
}

// Run executes the pipeline and returns the run report. A nil error with
// OutcomeUpToDate means the process is done without any download having been
// attempted.
func (p *Pipeline) Run(ctx context.Context) (*Report, error) {
	report := &Report{StartedAt: time.Now().UTC(), Clean: p.Options.Clean}

	info := p.Probe()
	if err := winenv.Validate(info); err != nil {
		return nil, err
	}
	slog.Info("environment eligible", "major", info.Major, "build", info.Build, "arch", info.Arch)

	if p.Elevated != nil && !p.Elevated() {
		slog.Warn("process is not elevated, the installer will prompt for elevation")
	}

	dev, err := p.Identifier.Identify(ctx)
	if err != nil {
		return nil, err
	}
	report.GPU = dev.Name

	report.CurrentVersion = p.Versions.Current(ctx)
	slog.Info("installed driver version", "version", report.CurrentVersion)

	dev, err = p.Identifier.Enrich(ctx, dev)
	if err != nil {
		return nil, err
	}

	latest, err := p.Vendor.LatestDriver(ctx, dev.ParentID, dev.Value, winenv.Family(info))
	if err != nil {
		return nil, err
	}
	report.LatestVersion = latest.Version
	report.DownloadURL = latest.DownloadURL

	// Exact string comparison only. A textually different but numerically
	// lower version still counts as an available update.
	if driver.IsKnown(report.CurrentVersion) && driver.IsKnown(latest.Version) &&
		report.CurrentVersion == latest.Version {
		slog.Info("driver already installed, no update needed", "version", latest.Version)
		report.finish(OutcomeUpToDate)
		p.writeReport(report)
		return report, nil
	}

	workDir := p.WorkDir()
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, "failed to create working directory", err)
	}

	pkgPath, err := p.Fetcher.Fetch(ctx, latest.DownloadURL, workDir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDownload, "failed to download driver package", err)
	}
	report.PackagePath = pkgPath

	tool, err := archive.EnsureTool(ctx, p.Fetcher, workDir)
	if err != nil {
		return nil, err
	}

	extractDir := filepath.Join(workDir, extractSubdir)
	if err := p.Extractor.Extract(ctx, tool, pkgPath, extractDir); err != nil {
		return nil, err
	}

	req := installer.Request{ExtractedDir: extractDir, Clean: p.Options.Clean}
	if err := p.Launcher.Launch(ctx, req); err != nil {
		return nil, err
	}

	report.finish(OutcomeInstalled)
	p.writeReport(report)
	return report, nil
}

// WorkDir resolves the effective working directory.
func (p *Pipeline) WorkDir() string {
	if p.Options.WorkDir != "" {
		return p.Options.WorkDir
	}
	return filepath.Join(os.TempDir(), "nvup")
}

func (p *Pipeline) writeReport(r *Report) {
	path := filepath.Join(p.WorkDir(), reportName)
	if err := WriteReport(path, r); err != nil {
		slog.Warn("failed to write run report", "path", path, "error", err)
	}
}

// toolExtractor adapts archive.Extractor to the pipeline interface.
type toolExtractor struct{}

func (toolExtractor) Extract(ctx context.Context, tool, archivePath, dest string) error {
	e := &archive.Extractor{Tool: tool}
	return e.Extract(ctx, archivePath, dest)
}
