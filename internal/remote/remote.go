// Package remote defines the source-hosting collaborators the batch engine
// drives and the failure classes it distinguishes.
package remote

import (
	"context"
	"errors"
)

// Repo identifies one remotely hosted repository.
type Repo struct {
	Owner string
	Name  string
}

// FileInfo carries the version token guarding optimistic file updates.
type FileInfo struct {
	SHA string
}

// Forge is the remote API surface the engine consumes. Implementations
// return errors wrapping ErrConflict or ErrRateLimited where the remote
// reported those conditions; any other error is unclassified.
type Forge interface {
	CreateRepo(ctx context.Context, name, description string, private bool) (Repo, error)
	CreateFile(ctx context.Context, repo Repo, path, content, message string) error
	GetFile(ctx context.Context, repo Repo, path string) (FileInfo, error)
	UpdateFile(ctx context.Context, repo Repo, path, content, message, sha string) error
}

var (
	// ErrConflict marks "resource already exists" failures, recoverable via
	// a compensating update.
	ErrConflict = errors.New("remote: resource already exists")
	// ErrRateLimited marks remote-imposed backpressure, recoverable via
	// cooldown and retry.
	ErrRateLimited = errors.New("remote: rate limited")
)

func IsConflict(err error) bool { return errors.Is(err, ErrConflict) }

func IsRateLimited(err error) bool { return errors.Is(err, ErrRateLimited) }
