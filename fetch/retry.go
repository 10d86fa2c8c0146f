package fetch

import (
	"errors"
	"log/slog"
	"time"

	"github.com/google/go-github/v66/github"
)

// Defaults for the API retry policy.
const (
	DefaultMaxAttempts = 3
	DefaultInitialWait = time.Second
)

// Retrier executes a GitHub API operation with exponential backoff on rate
// limit errors. Only the rate-limit class is retried: any other error fails
// fast, so a dead connection does not stall the whole run while quota
// exhaustion gets a chance to recover.
type Retrier struct {
	MaxAttempts int
	InitialWait time.Duration
	Sleep       func(time.Duration) // nil means time.Sleep
}

// NewRetrier returns a Retrier with the default policy (3 attempts, waits
// of 1s, 2s, 4s, ... between them).
func NewRetrier() *Retrier {
	return &Retrier{MaxAttempts: DefaultMaxAttempts, InitialWait: DefaultInitialWait}
}

// Do invokes op until it succeeds or the policy is exhausted. It reports
// ok=false instead of an error: callers always degrade to the next tier.
func (r *Retrier) Do(repoName string, op func() (string, error)) (string, bool) {
	sleep := r.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}

	for attempt := 0; attempt < r.MaxAttempts; attempt++ {
		slog.Debug("fetching via GitHub API", "repo", repoName, "attempt", attempt+1, "max", r.MaxAttempts)
		result, err := op()
		if err == nil {
			return result, true
		}

		if !isRateLimit(err) {
			slog.Error("failed to fetch repository", "repo", repoName, "error", err)
			return "", false
		}

		if attempt == r.MaxAttempts-1 {
			slog.Error("rate limit exceeded, giving up", "repo", repoName, "attempts", r.MaxAttempts)
			return "", false
		}

		wait := r.InitialWait * (1 << attempt)
		slog.Warn("rate limit exceeded, backing off", "repo", repoName, "wait", wait, "attempt", attempt+1)
		sleep(wait)
	}
	return "", false
}

func isRateLimit(err error) bool {
	var rateLimit *github.RateLimitError
	var abuse *github.AbuseRateLimitError
	return errors.As(err, &rateLimit) || errors.As(err, &abuse)
}
