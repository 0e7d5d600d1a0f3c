package batch

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/repofill/repofill/internal/model"
	"github.com/repofill/repofill/internal/remote"
)

// Runner drives a whole run: one dispatcher batch per repository, every
// batch's failures merged into a single global set, then one coordinator
// drain over that set.
type Runner struct {
	dispatcher  *Dispatcher
	coordinator *Coordinator
	mode        model.Mode
	logger      *log.Logger
	logLevel    LogLevel
}

// RunParams are the operator-supplied integers for one run.
type RunParams struct {
	RepoCount    int
	FilesPerRepo int
	FileSize     int
}

// RunSummary is the user-visible outcome of a run.
type RunSummary struct {
	ReposRequested int
	ReposCreated   int
	FilesRequested int
	FilesCreated   int
	Recovered      int
	RetryRounds    int
	Failed         []Failure
}

func NewRunner(forge remote.Forge, cfg model.Config, mode model.Mode, logger *log.Logger, logLevel LogLevel) *Runner {
	d := NewDispatcher(forge, cfg, mode, logger, logLevel)
	return &Runner{
		dispatcher:  d,
		coordinator: NewCoordinator(d, logger, logLevel),
		mode:        mode,
		logger:      logger,
		logLevel:    logLevel,
	}
}

// SetSleepFunc overrides every blocking sleep in the run for testing.
func (r *Runner) SetSleepFunc(f func(time.Duration)) {
	r.dispatcher.SetSleepFunc(f)
	r.coordinator.SetSleepFunc(f)
}

// Run executes p. A repository whose creation fails is skipped (its files
// are never attempted); everything else proceeds. The returned summary's
// Failed set holds the operations that survived all retry rounds.
func (r *Runner) Run(ctx context.Context, p RunParams) RunSummary {
	summary := RunSummary{
		ReposRequested: p.RepoCount,
		FilesRequested: p.RepoCount * p.FilesPerRepo,
	}
	if p.RepoCount <= 0 {
		return summary
	}

	var (
		mu        sync.Mutex
		global    []Failure
		created   int
		attempted int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.mode.Width(p.RepoCount))

	for i := 1; i <= p.RepoCount; i++ {
		g.Go(func() error {
			res := r.dispatcher.RunBatch(gctx, i, p.FilesPerRepo, p.FileSize)
			mu.Lock()
			defer mu.Unlock()
			if res.RepoCreated {
				created++
				attempted += res.Attempted
			}
			global = append(global, res.Failures...)
			return nil
		})
	}
	_ = g.Wait()

	firstPassFailed := len(global)
	r.log(LogLevelInfo, "first_pass repos=%d/%d files_attempted=%d failed=%d",
		created, p.RepoCount, attempted, firstPassFailed)

	remaining, rounds := r.coordinator.Drain(ctx, global)

	summary.ReposCreated = created
	summary.FilesCreated = attempted - len(remaining)
	summary.Recovered = firstPassFailed - len(remaining)
	summary.RetryRounds = rounds
	summary.Failed = remaining
	return summary
}

func (r *Runner) log(level LogLevel, format string, args ...any) {
	if level < r.logLevel {
		return
	}
	levelStr := "INFO"
	switch level {
	case LogLevelDebug:
		levelStr = "DEBUG"
	case LogLevelWarn:
		levelStr = "WARN"
	case LogLevelError:
		levelStr = "ERROR"
	}
	msg := fmt.Sprintf(format, args...)
	r.logger.Printf("%s %s runner: %s", time.Now().Format(time.RFC3339), levelStr, msg)
}
