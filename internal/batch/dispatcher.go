package batch

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/repofill/repofill/internal/content"
	"github.com/repofill/repofill/internal/model"
	"github.com/repofill/repofill/internal/remote"
)

// Dispatcher executes one repository's batch of file Operations with
// bounded parallelism and returns the subset that failed. Remote failures
// never propagate as errors; they come back as Failure values.
type Dispatcher struct {
	forge    remote.Forge
	cfg      model.Config
	policy   model.RetryPolicy
	mode     model.Mode
	logger   *log.Logger
	logLevel LogLevel
	sleep    func(time.Duration)
}

func NewDispatcher(forge remote.Forge, cfg model.Config, mode model.Mode, logger *log.Logger, logLevel LogLevel) *Dispatcher {
	return &Dispatcher{
		forge:    forge,
		cfg:      cfg,
		policy:   cfg.Policy(),
		mode:     mode,
		logger:   logger,
		logLevel: logLevel,
		sleep:    time.Sleep,
	}
}

// SetSleepFunc overrides the blocking sleep for testing.
func (d *Dispatcher) SetSleepFunc(f func(time.Duration)) {
	d.sleep = f
}

// BatchResult describes one repository batch.
type BatchResult struct {
	Repo        remote.Repo
	RepoCreated bool
	Attempted   int
	Failures    []Failure
}

// RunBatch creates the repository for repoIndex and drives its n file
// Operations. If repository creation fails the batch is aborted with zero
// items attempted; that failure is logged, not retried.
func (d *Dispatcher) RunBatch(ctx context.Context, repoIndex, n, size int) BatchResult {
	name := content.RepoName(d.cfg.Naming, repoIndex)

	repo, err := d.forge.CreateRepo(ctx, name, d.cfg.Repo.Description, d.cfg.Repo.Private)
	if err != nil {
		d.log(LogLevelError, "create_repo_failed repo=%s error=%v", name, err)
		return BatchResult{}
	}
	d.log(LogLevelInfo, "repo_created repo=%s/%s", repo.Owner, repo.Name)

	if n <= 0 {
		return BatchResult{Repo: repo, RepoCreated: true}
	}

	var (
		mu       sync.Mutex
		failures []Failure
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.mode.Width(n))

	for i := 1; i <= n; i++ {
		op := Operation{Repo: repo, Index: i, Size: size}
		g.Go(func() error {
			if f, failed := d.attempt(gctx, op); failed {
				mu.Lock()
				failures = append(failures, f)
				mu.Unlock()
			}
			// Slow mode paces wall-clock request rate: one pause after each
			// observed outcome, success or not.
			if d.mode == model.ModeSlow {
				d.sleep(d.policy.SlowPace)
			}
			return nil
		})
	}
	_ = g.Wait()

	return BatchResult{Repo: repo, RepoCreated: true, Attempted: n, Failures: failures}
}

// attempt drives one Operation to a terminal outcome for the current round.
// The same logic serves the dispatcher's fan-out and the coordinator's
// sequential re-attempts.
func (d *Dispatcher) attempt(ctx context.Context, op Operation) (Failure, bool) {
	name := content.FileName(d.cfg.Naming, op.Index)
	body := content.Generate(op.Size)
	msg := content.CommitMessage(name)

	err := d.forge.CreateFile(ctx, op.Repo, name, body, msg)
	if err == nil {
		d.log(LogLevelInfo, "file_created repo=%s path=%s", op.Repo.Name, name)
		return Failure{}, false
	}

	switch {
	case remote.IsConflict(err):
		// File already exists. Reconcile with exactly one read-then-update
		// keyed on the current version token.
		if cerr := d.compensate(ctx, op.Repo, name, body, msg); cerr != nil {
			d.log(LogLevelWarn, "file_update_failed repo=%s path=%s error=%v", op.Repo.Name, name, cerr)
			return Failure{Op: op, Class: ClassOther}, true
		}
		d.log(LogLevelInfo, "file_updated repo=%s path=%s", op.Repo.Name, name)
		return Failure{}, false

	case remote.IsRateLimited(err):
		d.log(LogLevelWarn, "rate_limited repo=%s path=%s wait=%s", op.Repo.Name, name, d.policy.RateLimitDelay)
		d.sleep(d.policy.RateLimitDelay)
		return Failure{Op: op, Class: ClassRateLimited}, true

	default:
		d.log(LogLevelWarn, "file_create_failed repo=%s path=%s error=%v", op.Repo.Name, name, err)
		return Failure{Op: op, Class: ClassOther}, true
	}
}

func (d *Dispatcher) compensate(ctx context.Context, repo remote.Repo, name, body, msg string) error {
	info, err := d.forge.GetFile(ctx, repo, name)
	if err != nil {
		return fmt.Errorf("read current version: %w", err)
	}
	if err := d.forge.UpdateFile(ctx, repo, name, body, msg, info.SHA); err != nil {
		return fmt.Errorf("update: %w", err)
	}
	return nil
}

func (d *Dispatcher) log(level LogLevel, format string, args ...any) {
	if level < d.logLevel {
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
	d.logger.Printf("%s %s dispatcher: %s", time.Now().Format(time.RFC3339), levelStr, msg)
}
