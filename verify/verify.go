// Package verify checks the generated documentation tree and the built
// search index against the invariants the site depends on: every page
// carries complete frontmatter, and the index covers the pages with the
// separator configuration the theme expects.
package verify

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gernest/front"
	"github.com/tidwall/gjson"
	"github.com/yoanbernabeu/awesomedocs/site"
)

// DefaultMinSearchDocs is the smallest plausible document count for a
// built index; fewer indicates a broken or partial build.
const DefaultMinSearchDocs = 5

// Problem is one violation found during verification.
type Problem struct {
	Path    string `json:"path"` // page path or search index path
	Message string `json:"message"`
}

// Report is the outcome of a verification pass.
type Report struct {
	Checked  int       `json:"checked"`
	Problems []Problem `json:"problems"`
}

// OK reports whether the pass found no problems.
func (r *Report) OK() bool {
	return len(r.Problems) == 0
}

func (r *Report) add(path, format string, args ...interface{}) {
	r.Problems = append(r.Problems, Problem{
		Path:    path,
		Message: fmt.Sprintf(format, args...),
	})
}

// requiredFrontmatterFields must be present and non-empty on every page.
var requiredFrontmatterFields = []string{"title", "category", "url"}

// Frontmatter walks the output tree at root and checks that every
// Markdown page has parseable frontmatter with the required fields.
func Frontmatter(root string) (*Report, error) {
	if _, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("output directory not found at %s: %w", root, err)
	}

	matter := front.NewMatter()
	matter.Handle("---", front.YAMLHandler)

	report := &Report{}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".md") {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		report.Checked++
		checkPage(report, matter, path, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan output directory: %w", err)
	}

	if report.Checked == 0 {
		return nil, fmt.Errorf("no markdown files found in %s", root)
	}
	return report, nil
}

func checkPage(report *Report, matter *front.Matter, path, rel string) {
	data, err := os.ReadFile(path)
	if err != nil {
		report.add(rel, "unreadable: %v", err)
		return
	}
	fields, _, err := matter.Parse(bytes.NewReader(data))
	if err != nil {
		report.add(rel, "no valid frontmatter")
		return
	}
	for _, key := range requiredFrontmatterFields {
		v, ok := fields[key].(string)
		if !ok || v == "" {
			report.add(rel, "missing required frontmatter field %q", key)
		}
	}
	if v, ok := fields["url"].(string); ok && v != "" && !strings.HasPrefix(v, "http") {
		report.add(rel, "url %q is not an http(s) link", v)
	}
}

// SearchIndex checks the built search_index.json at path: it must parse,
// carry the expected separator, hold at least minDocs documents, and
// every document must have a title and a text body. A minDocs of zero
// or less falls back to DefaultMinSearchDocs.
func SearchIndex(path string, minDocs int) (*Report, error) {
	if minDocs <= 0 {
		minDocs = DefaultMinSearchDocs
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("search index not found at %s: %w", path, err)
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("search index at %s is not valid JSON", path)
	}

	report := &Report{}
	doc := gjson.ParseBytes(data)

	sep := doc.Get("config.separator")
	if !sep.Exists() {
		report.add(path, "config.separator missing")
	} else if sep.String() != site.SearchSeparator {
		report.add(path, "config.separator = %q, want %q", sep.String(), site.SearchSeparator)
	}

	docs := doc.Get("docs")
	if !docs.IsArray() {
		report.add(path, "docs is not an array")
		return report, nil
	}

	n := 0
	docs.ForEach(func(_, d gjson.Result) bool {
		n++
		report.Checked++
		location := d.Get("location").String()
		name := location
		if name == "" {
			name = "(homepage)"
		}
		if !d.Get("location").Exists() {
			report.add(path, "doc %d has no location", n)
		}
		if d.Get("title").String() == "" {
			report.add(path, "doc %q has an empty title", name)
		}
		if d.Get("text").String() == "" {
			report.add(path, "doc %q has no searchable text", name)
		}
		if location != "" && !strings.HasSuffix(location, "/") {
			report.add(path, "doc location %q does not end with /", location)
		}
		return true
	})

	if n < minDocs {
		report.add(path, "index holds %d docs, want at least %d", n, minDocs)
	}
	return report, nil
}
