// Package fetch resolves catalog projects to documentation page content
// through a three-tier strategy: authenticated GitHub API lookup with
// rate-limit backoff, raw-content HTTP fallback, and a synthesized summary
// built from a project's Python entry point when no README exists.
package fetch

import "regexp"

// Tier identifies which fallback level produced a page body.
const (
	TierReadme  = "readme"  // fetched README (API or raw content)
	TierSource  = "source"  // summary synthesized from a source file
	TierCatalog = "catalog" // placeholder built from catalog metadata only
)

var repoURLRe = regexp.MustCompile(`github\.com[/:]?([^/]+)/([^/]+?)(?:\.git)?/?$`)

// ParseRepoURL extracts the owner and repository name from a GitHub URL.
// Trailing ".git" suffixes and slashes are tolerated.
func ParseRepoURL(repoURL string) (owner, repo string, ok bool) {
	m := repoURLRe.FindStringSubmatch(repoURL)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}
