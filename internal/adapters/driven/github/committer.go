package github

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"

	"github.com/custodia-labs/newsroom/internal/core/domain"
	"github.com/custodia-labs/newsroom/internal/core/ports/driven"
)

// Ensure Committer implements the interface.
var _ driven.ContentCommitter = (*Committer)(nil)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// Config holds the target repository and credentials.
type Config struct {
	Token  string
	Owner  string
	Repo   string
	Branch string

	// BaseURL overrides the API endpoint (GitHub Enterprise, tests).
	BaseURL string

	// RequestsPerSecond throttles API calls (default: ProactiveRate).
	RequestsPerSecond float64
}

// Committer creates or updates files through the contents API.
type Committer struct {
	gh          *gh.Client
	owner       string
	repo        string
	branch      string
	rateLimiter *RateLimiter
}

// NewCommitter creates a committer authenticated with a static token.
func NewCommitter(ctx context.Context, cfg Config) (*Committer, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("%w: github token", domain.ErrNotConfigured)
	}
	if cfg.Owner == "" || cfg.Repo == "" {
		return nil, fmt.Errorf("%w: github repository", domain.ErrNotConfigured)
	}
	if cfg.Branch == "" {
		cfg.Branch = domain.DefaultBranch
	}

	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: cfg.Token},
	)
	tc := oauth2.NewClient(ctx, ts)
	tc.Timeout = DefaultTimeout
	client := gh.NewClient(tc)

	if cfg.BaseURL != "" {
		base, err := url.Parse(strings.TrimSuffix(cfg.BaseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("%w: github base url: %w", domain.ErrInvalidInput, err)
		}
		client.BaseURL = base
	}

	return &Committer{
		gh:          client,
		owner:       cfg.Owner,
		repo:        cfg.Repo,
		branch:      cfg.Branch,
		rateLimiter: NewRateLimiter(cfg.RequestsPerSecond),
	}, nil
}

// Commit creates path on the branch, or updates it when it already exists.
func (c *Committer) Commit(ctx context.Context, path string, content []byte, message string) error {
	sha, err := c.fileSHA(ctx, path)
	if err != nil {
		return err
	}

	opts := &gh.RepositoryContentFileOptions{
		Message: gh.Ptr(message),
		Content: content,
		Branch:  gh.Ptr(c.branch),
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	var resp *gh.Response
	if sha == "" {
		_, resp, err = c.gh.Repositories.CreateFile(ctx, c.owner, c.repo, path, opts)
	} else {
		opts.SHA = gh.Ptr(sha)
		_, resp, err = c.gh.Repositories.UpdateFile(ctx, c.owner, c.repo, path, opts)
	}
	c.updateRateLimitFromResponse(resp)
	if err != nil {
		return c.wrapError(err, "put contents")
	}
	return nil
}

// fileSHA returns the blob SHA of path on the branch, or "" if it does not exist.
func (c *Committer) fileSHA(ctx context.Context, path string) (string, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}

	opts := &gh.RepositoryContentGetOptions{Ref: c.branch}
	file, _, resp, err := c.gh.Repositories.GetContents(ctx, c.owner, c.repo, path, opts)
	c.updateRateLimitFromResponse(resp)
	if err != nil {
		wrapped := c.wrapError(err, "get contents")
		if IsNotFound(wrapped) {
			return "", nil
		}
		return "", wrapped
	}
	if file == nil {
		return "", fmt.Errorf("%w: %s is a directory", domain.ErrInvalidInput, path)
	}
	return file.GetSHA(), nil
}

// updateRateLimitFromResponse updates the rate limiter from GitHub response headers.
func (c *Committer) updateRateLimitFromResponse(resp *gh.Response) {
	if resp == nil || resp.Response == nil {
		return
	}
	c.rateLimiter.UpdateFromResponse(resp.Response)
}

// wrapError converts go-github errors to our error types.
func (c *Committer) wrapError(err error, operation string) error {
	var rateLimitErr *gh.RateLimitError
	if errors.As(err, &rateLimitErr) {
		return &RateLimitError{
			ResetAt:   c.rateLimiter.ResetTime(),
			Remaining: c.rateLimiter.Remaining(),
			Limit:     c.rateLimiter.Limit(),
		}
	}

	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		apiErr := &APIError{
			StatusCode: ghErr.Response.StatusCode,
			Message:    ghErr.Message,
		}
		if ghErr.Response.Request != nil {
			apiErr.URL = ghErr.Response.Request.URL.String()
		}
		return apiErr
	}

	return fmt.Errorf("%s: %w", operation, err)
}
