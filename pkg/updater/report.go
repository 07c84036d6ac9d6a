package updater

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// reportName is the run report file inside the working directory.
const reportName = "report.yaml"

// Report records what a single run observed and did. It is written to the
// working directory after every completed run so the last decision is
// reviewable next to the downloaded artifacts.
type Report struct {
	Outcome        Outcome   `yaml:"outcome"`
	GPU            string    `yaml:"gpu"`
	CurrentVersion string    `yaml:"currentVersion"`
	LatestVersion  string    `yaml:"latestVersion"`
	DownloadURL    string    `yaml:"downloadUrl,omitempty"`
	PackagePath    string    `yaml:"packagePath,omitempty"`
	Clean          bool      `yaml:"cleanInstall"`
	StartedAt      time.Time `yaml:"startedAt"`
	CompletedAt    time.Time `yaml:"completedAt"`
}

func (r *Report) finish(outcome Outcome) {
	r.Outcome = outcome
	r.CompletedAt = time.Now().UTC()
}

// WriteReport serializes the report as YAML to path, creating the parent
// directory when needed.
func WriteReport(path string, r *Report) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to serialize report: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
