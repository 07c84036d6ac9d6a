/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/driver-update/pkg/logging"
	"github.com/NVIDIA/driver-update/pkg/nvapi"
	"github.com/NVIDIA/driver-update/pkg/updater"
)

const name = "nvup"

var (
	// overridden during build with ldflags
	version = "dev"
	commit  = "unknown"
)

func rootCmd() *cli.Command {
	return &cli.Command{
		Name:    name,
		Version: fmt.Sprintf("%s (%s)", version, commit),
		Usage:   "Check for, download, and silently install the newest NVIDIA GPU driver",
		Description: `Detects the installed NVIDIA GPU, queries the vendor driver catalog for the
newest matching driver, and when the installed version differs downloads the
package, extracts it, and launches the installer unattended.

When no GPU can be detected locally, an interactive picker over the vendor's
GPU catalog is offered instead.

# Examples

Plain update check and install:
  nvup

Clean install (wipes existing driver settings and profiles):
  nvup --clean

Custom working directory:
  nvup --dir D:\nvup`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "clean",
				Usage: "Perform a full clean install, removing existing driver settings",
			},
			&cli.StringFlag{
				Name:    "dir",
				Usage:   "Working directory for downloads and extraction",
				Sources: cli.EnvVars("NVUP_DIR"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Sources: cli.EnvVars("NVUP_LOG_LEVEL"),
				Value:   "info",
			},
			&cli.BoolFlag{
				Name:  "no-log-file",
				Usage: "Disable the append-only log file in the working directory",
			},
			&cli.StringFlag{
				Name:    "catalog-url",
				Usage:   "Override the vendor GPU catalog endpoint",
				Sources: cli.EnvVars("NVUP_CATALOG_URL"),
				Value:   nvapi.DefaultCatalogURL,
			},
			&cli.StringFlag{
				Name:    "lookup-url",
				Usage:   "Override the vendor driver lookup endpoint",
				Sources: cli.EnvVars("NVUP_LOOKUP_URL"),
				Value:   nvapi.DefaultLookupURL,
			},
			&cli.StringFlag{
				Name:    "details-url",
				Usage:   "Override the vendor download details endpoint",
				Sources: cli.EnvVars("NVUP_DETAILS_URL"),
				Value:   nvapi.DefaultDetailsURL,
			},
		},
		Action: updateAction,
	}
}

func updateAction(ctx context.Context, cmd *cli.Command) error {
	opts := updater.Options{
		Clean:   cmd.Bool("clean"),
		WorkDir: cmd.String("dir"),
	}

	p := updater.New(opts)

	if err := os.MkdirAll(p.WorkDir(), 0o755); err != nil {
		return fmt.Errorf("failed to create working directory: %w", err)
	}

	if !cmd.Bool("no-log-file") {
		closeFn, err := logging.AddFileSink(filepath.Join(p.WorkDir(), name+".log"))
		if err != nil {
			fmt.Fprintf(os.Stderr, "log file unavailable: %v\n", err)
		} else {
			defer func() { _ = closeFn() }()
		}
	}
	logging.SetDefaultStructuredLoggerWithLevel(name, version, cmd.String("log-level"))

	client := nvapi.NewClient(
		nvapi.WithCatalogURL(cmd.String("catalog-url")),
		nvapi.WithLookupURL(cmd.String("lookup-url")),
		nvapi.WithDetailsURL(cmd.String("details-url")),
	)
	p.Vendor = client
	p.Identifier.Catalog = client

	slog.Info("starting", "name", name, "version", version, "clean", opts.Clean, "dir", p.WorkDir())

	report, err := p.Run(ctx)
	if err != nil {
		slog.Error("update failed", "error", err)
		return err
	}

	switch report.Outcome {
	case updater.OutcomeUpToDate:
		fmt.Printf("Driver %s is already installed, no update needed.\n", report.LatestVersion)
	case updater.OutcomeInstalled:
		fmt.Printf("Driver %s installed (was %s).\n", report.LatestVersion, report.CurrentVersion)
	}
	return nil
}

// Run executes the CLI. SIGINT/SIGTERM cancel the run context so in-flight
// downloads and child processes are stopped.
func Run(args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return rootCmd().Run(ctx, args)
}
