// Package report archives run outcomes as YAML files, one per run, and
// looks the newest one back up for the status command.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/repofill/repofill/internal/model"
	"github.com/repofill/repofill/internal/yaml"
)

const (
	SchemaVersion     = 1
	FileTypeRunReport = "run_report"
)

// FailedOp is one permanently failed operation carried in a run report.
type FailedOp struct {
	Owner string `yaml:"owner"`
	Repo  string `yaml:"repo"`
	Path  string `yaml:"path"`
	Index int    `yaml:"index"`
	Size  int    `yaml:"size"`
	Class string `yaml:"class"`
}

// RunReport is the record archived after every run.
type RunReport struct {
	SchemaVersion  int        `yaml:"schema_version"`
	FileType       string     `yaml:"file_type"`
	RunID          string     `yaml:"run_id"`
	Mode           string     `yaml:"mode"`
	StartedAt      string     `yaml:"started_at"`
	FinishedAt     string     `yaml:"finished_at"`
	ReposRequested int        `yaml:"repos_requested"`
	ReposCreated   int        `yaml:"repos_created"`
	FilesRequested int        `yaml:"files_requested"`
	FilesCreated   int        `yaml:"files_created"`
	Recovered      int        `yaml:"recovered"`
	RetryRounds    int        `yaml:"retry_rounds"`
	Failed         []FailedOp `yaml:"failed,omitempty"`
}

// Write archives r under dir as <run_id>.yaml and returns the path.
func Write(dir string, r RunReport) (string, error) {
	if !model.ValidateRunID(r.RunID) {
		return "", fmt.Errorf("invalid run id: %s", r.RunID)
	}
	path := filepath.Join(dir, r.RunID+".yaml")
	if err := yaml.AtomicWrite(path, r); err != nil {
		return "", fmt.Errorf("write run report: %w", err)
	}
	return path, nil
}

// Latest loads the newest run report in dir. Run IDs embed a unix
// timestamp, so lexical filename order is chronological.
func Latest(dir string) (RunReport, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return RunReport{}, fmt.Errorf("read reports dir: %w", err)
	}

	var newest string
	for _, entry := range entries {
		name := entry.Name()
		id := strings.TrimSuffix(name, ".yaml")
		if !strings.HasSuffix(name, ".yaml") || !model.ValidateRunID(id) {
			continue
		}
		if name > newest {
			newest = name
		}
	}
	if newest == "" {
		return RunReport{}, fmt.Errorf("no run reports in %s", dir)
	}

	var r RunReport
	if err := yaml.Load(filepath.Join(dir, newest), &r); err != nil {
		return RunReport{}, fmt.Errorf("load run report: %w", err)
	}
	return r, nil
}
