package driver

import (
	"context"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/NVIDIA/driver-update/pkg/defaults"
)

// Runner abstracts child-process invocation so tests can substitute canned
// output for the diagnostic tool.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// ExecRunner runs the command and returns its combined stdout.
func ExecRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, defaults.ToolQueryTimeout)
	defer cancel()
	return exec.CommandContext(ctx, name, args...).Output()
}

// Strategy resolves the currently installed driver version. The second
// return value reports whether the strategy produced a result; strategies
// never abort the pipeline.
type Strategy interface {
	Name() string
	Resolve(ctx context.Context) (string, bool)
}

// Resolver tries each strategy in order and falls back to VersionUnknown.
type Resolver struct {
	Strategies []Strategy
}

// Current returns the installed driver version, or VersionUnknown when no
// strategy could determine it. Best-effort by contract: any inconsistency is
// treated as unknown rather than an error.
func (r *Resolver) Current(ctx context.Context) string {
	for _, s := range r.Strategies {
		if v, ok := s.Resolve(ctx); ok {
			slog.Info("resolved installed driver version", "strategy", s.Name(), "version", v)
			return v
		}
		slog.Debug("version strategy yielded nothing", "strategy", s.Name())
	}
	return VersionUnknown
}

// SmiStrategy queries nvidia-smi for the installed driver version using its
// machine-readable CSV output.
type SmiStrategy struct {
	// Paths are candidate fixed locations of the tool, tried in order.
	Paths []string
	// Glob optionally locates the tool inside the Windows driver store.
	Glob string
	// Run invokes the tool; defaults to ExecRunner.
	Run Runner
}

func (s *SmiStrategy) Name() string { return "nvidia-smi" }

func (s *SmiStrategy) Resolve(ctx context.Context) (string, bool) {
	tool := s.locate()
	if tool == "" {
		return "", false
	}

	run := s.Run
	if run == nil {
		run = ExecRunner
	}

	out, err := run(ctx, tool, "--query-gpu=driver_version", "--format=csv,noheader")
	if err != nil {
		slog.Debug("nvidia-smi query failed", "tool", tool, "error", err)
		return "", false
	}

	v := strings.TrimSpace(string(out))
	if v == "" || strings.Contains(v, "has failed") || strings.Contains(v, "Error") {
		return "", false
	}
	return v, true
}

func (s *SmiStrategy) locate() string {
	if s.Glob != "" {
		if matches, err := filepath.Glob(s.Glob); err == nil && len(matches) > 0 {
			return matches[0]
		}
	}
	for _, p := range s.Paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// MetadataSource supplies the raw Windows driver metadata version string
// (e.g. "31.0.15.3623" from the display adapter registry key).
type MetadataSource interface {
	DriverVersion() (string, error)
}

// MetadataStrategy derives the public driver version from driver metadata
// build and revision fields.
type MetadataStrategy struct {
	Source MetadataSource
}

func (s *MetadataStrategy) Name() string { return "driver-metadata" }

func (s *MetadataStrategy) Resolve(_ context.Context) (string, bool) {
	if s.Source == nil {
		return "", false
	}
	raw, err := s.Source.DriverVersion()
	if err != nil {
		slog.Debug("driver metadata unavailable", "error", err)
		return "", false
	}

	fields := strings.Split(strings.TrimSpace(raw), ".")
	if len(fields) < 4 {
		return "", false
	}
	v := VersionFromDriverMetadata(fields[2], fields[3])
	if !IsKnown(v) {
		return "", false
	}
	return v, true
}
