// Package batch implements the concurrent batch-operation engine: a
// dispatcher that fans file creations out across a bounded worker pool and
// collects the failed subset, and a coordinator that re-drives failures
// through bounded sequential retry rounds.
package batch

import (
	"strings"

	"github.com/repofill/repofill/internal/remote"
)

type LogLevel int

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)

func ParseLogLevel(s string) LogLevel {
	switch strings.ToLower(s) {
	case "debug":
		return LogLevelDebug
	case "info":
		return LogLevelInfo
	case "warn", "warning":
		return LogLevelWarn
	case "error":
		return LogLevelError
	default:
		return LogLevelInfo
	}
}

// Classification buckets a failed remote attempt for recovery policy.
type Classification int

const (
	ClassOther Classification = iota
	ClassConflict
	ClassRateLimited
)

func (c Classification) String() string {
	switch c {
	case ClassConflict:
		return "conflict"
	case ClassRateLimited:
		return "rate_limited"
	default:
		return "other"
	}
}

// Operation is one "ensure file exists" unit of work against a repository.
// It is created when a batch fans out and carried unchanged through retry
// rounds; content is regenerated on every attempt.
type Operation struct {
	Repo  remote.Repo
	Index int
	Size  int
}

// Failure records one failed Operation with its classification.
type Failure struct {
	Op    Operation
	Class Classification
}
