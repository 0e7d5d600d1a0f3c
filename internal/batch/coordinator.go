package batch

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/repofill/repofill/internal/model"
)

// Coordinator drains a failure set over bounded sequential retry rounds.
// It never parallelizes, even in fast mode: its purpose is to de-escalate
// the contention that caused the failures in the first place.
type Coordinator struct {
	dispatcher *Dispatcher
	policy     model.RetryPolicy
	mode       model.Mode
	logger     *log.Logger
	logLevel   LogLevel
	sleep      func(time.Duration)
}

func NewCoordinator(d *Dispatcher, logger *log.Logger, logLevel LogLevel) *Coordinator {
	return &Coordinator{
		dispatcher: d,
		policy:     d.policy,
		mode:       d.mode,
		logger:     logger,
		logLevel:   logLevel,
		sleep:      time.Sleep,
	}
}

// SetSleepFunc overrides the blocking sleep for testing. The dispatcher's
// sleep (rate-limit cooldown inside attempts) is configured separately.
func (c *Coordinator) SetSleepFunc(f func(time.Duration)) {
	c.sleep = f
}

// Drain re-attempts every failed Operation over up to MaxRounds rounds,
// waiting InterRoundDelay before the first round and between rounds. Each
// round replaces the set with whatever re-failed. Returns the permanently
// failed set and the number of rounds executed.
func (c *Coordinator) Drain(ctx context.Context, failures []Failure) ([]Failure, int) {
	if len(failures) == 0 {
		return nil, 0
	}

	c.log(LogLevelInfo, "retry_start failed=%d delay=%s", len(failures), c.policy.InterRoundDelay)
	c.sleep(c.policy.InterRoundDelay)

	rounds := 0
	for round := 1; round <= c.policy.MaxRounds; round++ {
		rounds = round
		c.log(LogLevelInfo, "retry_round round=%d remaining=%d", round, len(failures))

		var next []Failure
		for _, f := range failures {
			if c.mode == model.ModeSlow {
				c.sleep(c.policy.SlowPace)
			}
			if nf, failed := c.dispatcher.attempt(ctx, f.Op); failed {
				next = append(next, nf)
			}
		}
		failures = next

		if len(failures) == 0 {
			c.log(LogLevelInfo, "retry_drained round=%d", round)
			return nil, rounds
		}
		if round < c.policy.MaxRounds {
			c.log(LogLevelWarn, "retry_round_failed round=%d remaining=%d delay=%s", round, len(failures), c.policy.InterRoundDelay)
			c.sleep(c.policy.InterRoundDelay)
		}
	}

	c.log(LogLevelWarn, "retry_exhausted rounds=%d remaining=%d", rounds, len(failures))
	return failures, rounds
}

func (c *Coordinator) log(level LogLevel, format string, args ...any) {
	if level < c.logLevel {
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
	c.logger.Printf("%s %s coordinator: %s", time.Now().Format(time.RFC3339), levelStr, msg)
}
