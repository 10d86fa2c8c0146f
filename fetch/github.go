package fetch

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/go-github/v66/github"
)

// ReadmeAPI is the authenticated tier of README resolution.
type ReadmeAPI interface {
	Readme(ctx context.Context, owner, repo string) (string, error)
}

// Client wraps the GitHub REST client for default-branch README lookups.
type Client struct {
	gh *github.Client
}

// NewClient builds a GitHub client. An empty token yields an unauthenticated
// client (60 requests/hour); a token that fails the rate-limit probe falls
// back to unauthenticated access rather than aborting the run.
func NewClient(ctx context.Context, token string) *Client {
	if token == "" {
		slog.Warn("no GitHub token provided, requests are limited to 60/hour; set GITHUB_TOKEN for higher limits")
		return &Client{gh: github.NewClient(nil)}
	}

	gh := github.NewClient(nil).WithAuthToken(token)
	limits, _, err := gh.RateLimit.Get(ctx)
	if err != nil {
		slog.Warn("failed to verify GitHub token, falling back to unauthenticated access", "error", err)
		return &Client{gh: github.NewClient(nil)}
	}
	slog.Debug("GitHub API rate limit", "remaining", limits.Core.Remaining, "limit", limits.Core.Limit)
	slog.Info("GitHub client authenticated")
	return &Client{gh: gh}
}

// Readme fetches the README of the repository's default branch.
func (c *Client) Readme(ctx context.Context, owner, repo string) (string, error) {
	readme, _, err := c.gh.Repositories.GetReadme(ctx, owner, repo, nil)
	if err != nil {
		return "", err
	}
	content, err := readme.GetContent()
	if err != nil {
		return "", fmt.Errorf("failed to decode README content: %w", err)
	}
	return content, nil
}
