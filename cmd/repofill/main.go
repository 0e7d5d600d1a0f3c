package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/repofill/repofill/internal/batch"
	"github.com/repofill/repofill/internal/config"
	"github.com/repofill/repofill/internal/content"
	"github.com/repofill/repofill/internal/lock"
	"github.com/repofill/repofill/internal/model"
	"github.com/repofill/repofill/internal/prompt"
	"github.com/repofill/repofill/internal/remote"
	"github.com/repofill/repofill/internal/report"
)

const version = "1.0.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "run":
		runRun(os.Args[2:])
	case "status":
		runStatus(os.Args[2:])
	case "version":
		fmt.Printf("repofill %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func parseConfigFlag(args []string, usage string) string {
	configPath := "config.yaml"
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--config":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "--config requires a path\n%s\n", usage)
				os.Exit(1)
			}
			i++
			configPath = args[i]
		default:
			fmt.Fprintf(os.Stderr, "unknown flag: %s\n%s\n", args[i], usage)
			os.Exit(1)
		}
	}
	return configPath
}

func runRun(args []string) {
	configPath := parseConfigFlag(args, "usage: repofill run [--config path]")
	if err := doRun(configPath); err != nil {
		fmt.Fprintf(os.Stderr, "run: %v\n", err)
		os.Exit(1)
	}
}

func doRun(configPath string) error {
	ctx := context.Background()

	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.Reports.Dir, 0755); err != nil {
		return fmt.Errorf("create reports dir: %w", err)
	}
	fl := lock.NewFileLock(filepath.Join(cfg.Reports.Dir, "repofill.lock"))
	if err := fl.TryLock(); err != nil {
		return err
	}
	defer func() { _ = fl.Unlock() }()

	p := prompt.New(os.Stdin, os.Stdout)
	mode, err := p.Mode()
	if err != nil {
		return err
	}
	if mode == model.ModeSlow {
		fmt.Println("Running in SLOW mode. Concurrency is reduced and delays are added to avoid rate limiting.")
	} else {
		fmt.Println("Running in SUPER FAST mode. This will use maximum concurrency (use with caution).")
	}

	repoCount, err := p.Count("Enter the number of repositories to create", 1)
	if err != nil {
		return err
	}
	filesPerRepo, err := p.Count("Enter the number of junk files per repository", 1)
	if err != nil {
		return err
	}
	fileSize, err := p.Count("Enter the number of characters (each on its own line) per junk file", 0)
	if err != nil {
		return err
	}

	logger := log.New(os.Stdout, "", 0)
	logLevel := batch.ParseLogLevel(cfg.Logging.Level)
	forge := remote.NewGitHub(cfg.GitHub.Token, cfg.GitHub.Org)
	runner := batch.NewRunner(forge, cfg, mode, logger, logLevel)

	started := time.Now().UTC()
	summary := runner.Run(ctx, batch.RunParams{
		RepoCount:    repoCount,
		FilesPerRepo: filesPerRepo,
		FileSize:     fileSize,
	})
	finished := time.Now().UTC()

	printSummary(summary)

	runID, err := model.GenerateRunID()
	if err != nil {
		return err
	}
	path, err := report.Write(cfg.Reports.Dir, buildReport(runID, mode, started, finished, cfg, summary))
	if err != nil {
		return err
	}
	fmt.Printf("Run report written to %s\n", path)
	return nil
}

func printSummary(s batch.RunSummary) {
	fmt.Println()
	fmt.Printf("Repositories created: %d/%d\n", s.ReposCreated, s.ReposRequested)
	fmt.Printf("Files created/updated: %d/%d\n", s.FilesCreated, s.FilesRequested)
	if s.Recovered > 0 {
		fmt.Printf("Recovered on retry: %d (rounds used: %d)\n", s.Recovered, s.RetryRounds)
	}
	if len(s.Failed) == 0 {
		fmt.Println("All files created/updated successfully.")
		return
	}
	fmt.Printf("After %d retry round(s), %d file(s) still failed:\n", s.RetryRounds, len(s.Failed))
	for _, f := range s.Failed {
		fmt.Printf("  %s/%s file %d (%s)\n", f.Op.Repo.Owner, f.Op.Repo.Name, f.Op.Index, f.Class)
	}
}

func buildReport(runID string, mode model.Mode, started, finished time.Time, cfg model.Config, s batch.RunSummary) report.RunReport {
	failed := make([]report.FailedOp, 0, len(s.Failed))
	for _, f := range s.Failed {
		failed = append(failed, report.FailedOp{
			Owner: f.Op.Repo.Owner,
			Repo:  f.Op.Repo.Name,
			Path:  content.FileName(cfg.Naming, f.Op.Index),
			Index: f.Op.Index,
			Size:  f.Op.Size,
			Class: f.Class.String(),
		})
	}
	return report.RunReport{
		SchemaVersion:  report.SchemaVersion,
		FileType:       report.FileTypeRunReport,
		RunID:          runID,
		Mode:           mode.String(),
		StartedAt:      started.Format(time.RFC3339),
		FinishedAt:     finished.Format(time.RFC3339),
		ReposRequested: s.ReposRequested,
		ReposCreated:   s.ReposCreated,
		FilesRequested: s.FilesRequested,
		FilesCreated:   s.FilesCreated,
		Recovered:      s.Recovered,
		RetryRounds:    s.RetryRounds,
		Failed:         failed,
	}
}

func runStatus(args []string) {
	configPath := parseConfigFlag(args, "usage: repofill status [--config path]")

	ctx := context.Background()
	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "status: %v\n", err)
		os.Exit(1)
	}

	r, err := report.Latest(cfg.Reports.Dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "status: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Run:        %s (%s mode)\n", r.RunID, r.Mode)
	fmt.Printf("Started:    %s\n", r.StartedAt)
	fmt.Printf("Finished:   %s\n", r.FinishedAt)
	fmt.Printf("Repos:      %d/%d created\n", r.ReposCreated, r.ReposRequested)
	fmt.Printf("Files:      %d/%d created/updated\n", r.FilesCreated, r.FilesRequested)
	fmt.Printf("Recovered:  %d (retry rounds: %d)\n", r.Recovered, r.RetryRounds)
	if len(r.Failed) == 0 {
		fmt.Println("Failures:   none")
		return
	}
	fmt.Printf("Failures:   %d\n", len(r.Failed))
	for _, f := range r.Failed {
		fmt.Printf("  %s/%s %s (%s)\n", f.Owner, f.Repo, f.Path, f.Class)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `repofill %s — Bulk placeholder repository seeding for GitHub

Usage: repofill <command> [options]

Commands:
  run [--config path]     Create repositories and fill them with junk files
  status [--config path]  Show the result of the most recent run
  version                 Show version
  help                    Show this help

Configuration is read from config.yaml (override with --config). The GitHub
token may come from the GITHUB_TOKEN environment variable instead of the file.
`, version)
}
