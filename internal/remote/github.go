package remote

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/go-github/v66/github"
)

// GitHub implements Forge against the GitHub REST API. Repositories are
// created under org when set, otherwise under the authenticated user.
type GitHub struct {
	client *github.Client
	org    string
}

func NewGitHub(token, org string) *GitHub {
	return &GitHub{
		client: github.NewClient(nil).WithAuthToken(token),
		org:    org,
	}
}

func (g *GitHub) CreateRepo(ctx context.Context, name, description string, private bool) (Repo, error) {
	repo, _, err := g.client.Repositories.Create(ctx, g.org, &github.Repository{
		Name:        github.String(name),
		Description: github.String(description),
		Private:     github.Bool(private),
		AutoInit:    github.Bool(true),
	})
	if err != nil {
		return Repo{}, fmt.Errorf("create repo %s: %w", name, classify(err))
	}
	return Repo{Owner: repo.GetOwner().GetLogin(), Name: repo.GetName()}, nil
}

func (g *GitHub) CreateFile(ctx context.Context, repo Repo, path, content, message string) error {
	_, _, err := g.client.Repositories.CreateFile(ctx, repo.Owner, repo.Name, path, &github.RepositoryContentFileOptions{
		Message: github.String(message),
		Content: []byte(content),
	})
	if err != nil {
		return fmt.Errorf("create file %s: %w", path, classify(err))
	}
	return nil
}

func (g *GitHub) GetFile(ctx context.Context, repo Repo, path string) (FileInfo, error) {
	fileContent, _, _, err := g.client.Repositories.GetContents(ctx, repo.Owner, repo.Name, path, nil)
	if err != nil {
		return FileInfo{}, fmt.Errorf("get file %s: %w", path, classify(err))
	}
	if fileContent == nil {
		return FileInfo{}, fmt.Errorf("get file %s: path is a directory", path)
	}
	return FileInfo{SHA: fileContent.GetSHA()}, nil
}

func (g *GitHub) UpdateFile(ctx context.Context, repo Repo, path, content, message, sha string) error {
	_, _, err := g.client.Repositories.UpdateFile(ctx, repo.Owner, repo.Name, path, &github.RepositoryContentFileOptions{
		Message: github.String(message),
		Content: []byte(content),
		SHA:     github.String(sha),
	})
	if err != nil {
		return fmt.Errorf("update file %s: %w", path, classify(err))
	}
	return nil
}

// classify maps GitHub transport errors onto the engine's failure classes.
// The contents API answers 422 (not 409) when a file already exists, so both
// are treated as conflicts. Secondary rate limits surface as 403 or as
// go-github's dedicated error types.
func classify(err error) error {
	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		return fmt.Errorf("%w: %v", ErrRateLimited, err)
	}
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return fmt.Errorf("%w: %v", ErrRateLimited, err)
	}

	var respErr *github.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil {
		switch respErr.Response.StatusCode {
		case http.StatusConflict, http.StatusUnprocessableEntity:
			return fmt.Errorf("%w: %v", ErrConflict, err)
		case http.StatusForbidden, http.StatusTooManyRequests:
			return fmt.Errorf("%w: %v", ErrRateLimited, err)
		}
	}
	return err
}
