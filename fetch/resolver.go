package fetch

import (
	"context"
	"log/slog"
	"strings"

	"github.com/yoanbernabeu/awesomedocs/catalog"
	"github.com/yoanbernabeu/awesomedocs/pysrc"
)

// Via values record which path produced a readme-tier page.
const (
	ViaAPI = "api"
	ViaRaw = "raw"
)

// Page is the resolved content for one project.
type Page struct {
	Project     catalog.Project
	Description string
	Body        string
	Tier        string
	Via         string // set for TierReadme only
}

// Resolver walks a project through the tiers. It never returns an error:
// every failure degrades to the next tier, ending at the catalog-only
// placeholder.
type Resolver struct {
	api     ReadmeAPI
	retrier *Retrier
	raw     *RawFetcher
	cache   map[string]cachedReadme // keyed by repo URL; nil disables caching
}

type cachedReadme struct {
	body string
	via  string
}

// NewResolver wires the tiers together. The cache lives for one run only.
func NewResolver(api ReadmeAPI, retrier *Retrier, raw *RawFetcher, useCache bool) *Resolver {
	r := &Resolver{api: api, retrier: retrier, raw: raw}
	if useCache {
		r.cache = map[string]cachedReadme{}
	}
	return r
}

// Resolve produces the page for a project.
func (r *Resolver) Resolve(ctx context.Context, p catalog.Project) Page {
	slog.Info("processing project", "title", p.Title, "category", p.Category)

	if body, via, ok := r.readme(ctx, p); ok {
		return Page{Project: p, Description: p.Description, Body: body, Tier: TierReadme, Via: via}
	}

	slog.Info("README fetch failed, attempting source summary", "title", p.Title)
	if desc, body, ok := r.sourceSummary(p); ok {
		return Page{Project: p, Description: desc, Body: body, Tier: TierSource}
	}

	slog.Warn("all tiers failed, using catalog metadata only", "title", p.Title)
	return Page{Project: p, Description: p.Description, Body: placeholder(p), Tier: TierCatalog}
}

// readme is the fetched-README tier: cache, then authenticated API with
// retry, then raw-content fallback.
func (r *Resolver) readme(ctx context.Context, p catalog.Project) (string, string, bool) {
	if r.cache != nil {
		if cached, ok := r.cache[p.URL]; ok {
			slog.Debug("using cached README", "title", p.Title)
			return cached.body, cached.via, true
		}
	}

	owner, repo, ok := ParseRepoURL(p.URL)
	if !ok {
		slog.Warn("could not parse repository URL", "title", p.Title, "url", p.URL)
		return "", "", false
	}
	repoName := owner + "/" + repo

	via := ViaAPI
	body, ok := r.retrier.Do(repoName, func() (string, error) {
		return r.api.Readme(ctx, owner, repo)
	})
	if !ok {
		slog.Debug("API fetch failed, falling back to raw content", "repo", repoName)
		via = ViaRaw
		body, ok = r.raw.Readme(p.URL)
	}
	if !ok {
		return "", "", false
	}

	if r.cache != nil {
		r.cache[p.URL] = cachedReadme{body: body, via: via}
	}
	return body, via, true
}

// sourceSummary is the third tier: download a conventionally named Python
// entry point from the main branch and synthesize a page from its structure.
// The first candidate that both downloads and analyzes to a non-empty
// description wins.
func (r *Resolver) sourceSummary(p catalog.Project) (desc, body string, ok bool) {
	owner, repo, ok := ParseRepoURL(p.URL)
	if !ok {
		return "", "", false
	}

	for _, name := range sourceCandidates(repo) {
		code, ok := r.raw.File(owner, repo, "main", name)
		if !ok {
			continue
		}
		analysis, ok := pysrc.Analyze([]byte(code))
		if !ok || analysis.Description == "" {
			slog.Debug("source file yielded no description", "repo", owner+"/"+repo, "file", name)
			continue
		}
		slog.Info("synthesized summary from source file", "title", p.Title, "file", name)
		return analysis.Description, pysrc.Summary(p.Title, analysis), true
	}
	return "", "", false
}

// sourceCandidates lists the conventional entry-point filenames, most
// specific first.
func sourceCandidates(repo string) []string {
	return []string{
		strings.ToLower(repo) + ".py",
		"main.py",
		"app.py",
		"run.py",
		"__init__.py",
	}
}

// placeholder is the tier-1 fallback body built from catalog metadata.
func placeholder(p catalog.Project) string {
	var b strings.Builder
	b.WriteString("# " + p.Title + "\n\n")
	if p.Description != "" {
		b.WriteString(p.Description + "\n\n")
	}
	b.WriteString("**Repository:** " + p.URL + "\n\n")
	b.WriteString("---\n\n")
	b.WriteString("*This project has no README available and no source summary could be generated.*\n")
	return b.String()
}
