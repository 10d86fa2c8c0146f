package fetch

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// DefaultRawBaseURL is the unauthenticated raw-content endpoint.
const DefaultRawBaseURL = "https://raw.githubusercontent.com"

const rawTimeout = 10 * time.Second

// readmeCandidates are tried in order on each branch.
var readmeCandidates = []string{"README.md", "README.markdown", "README.rst", "README"}

// RawFetcher downloads files from the raw-content endpoint without
// authentication. It is the fallback when the API tier is exhausted.
type RawFetcher struct {
	BaseURL string
	Client  *http.Client
}

// NewRawFetcher returns a RawFetcher against the public endpoint with a
// fixed per-request timeout.
func NewRawFetcher() *RawFetcher {
	return &RawFetcher{
		BaseURL: DefaultRawBaseURL,
		Client:  &http.Client{Timeout: rawTimeout},
	}
}

// Readme tries every candidate README filename on the main branch, then the
// whole list once more on master. An unparseable repository URL fails
// immediately without any HTTP attempt.
func (f *RawFetcher) Readme(repoURL string) (string, bool) {
	owner, repo, ok := ParseRepoURL(repoURL)
	if !ok {
		slog.Warn("could not parse repository URL", "url", repoURL)
		return "", false
	}

	for _, branch := range []string{"main", "master"} {
		for _, name := range readmeCandidates {
			if content, ok := f.File(owner, repo, branch, name); ok {
				slog.Info("fetched README from raw content", "repo", owner+"/"+repo, "branch", branch, "file", name)
				return content, true
			}
		}
		slog.Debug("no README found on branch", "repo", owner+"/"+repo, "branch", branch)
	}

	slog.Warn("could not fetch README from raw content", "url", repoURL)
	return "", false
}

// File downloads a single file from a branch. A 404 is a soft miss; any
// other HTTP or transport error is treated the same way so the caller can
// move on to the next candidate.
func (f *RawFetcher) File(owner, repo, branch, name string) (string, bool) {
	rawURL := fmt.Sprintf("%s/%s/%s/%s/%s", f.BaseURL, owner, repo, branch, name)
	slog.Debug("HTTP GET", "url", rawURL)

	req, err := http.NewRequest(http.MethodGet, rawURL, nil)
	if err != nil {
		slog.Warn("failed to build request", "url", rawURL, "error", err)
		return "", false
	}
	req.Header.Set("User-Agent", "awesomedocs")

	resp, err := f.Client.Do(req)
	if err != nil {
		slog.Warn("failed to fetch raw content", "url", rawURL, "error", err)
		return "", false
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		slog.Debug("file not found", "url", rawURL)
		return "", false
	case resp.StatusCode != http.StatusOK:
		slog.Warn("unexpected status fetching raw content", "url", rawURL, "status", resp.StatusCode)
		return "", false
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		slog.Warn("failed to read raw content body", "url", rawURL, "error", err)
		return "", false
	}
	return string(body), true
}
