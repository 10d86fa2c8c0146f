package site

import (
	"bytes"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gernest/front"
	gitignore "github.com/sabhiram/go-gitignore"
)

// IgnoreFileName is an optional ignore file at the output-tree root whose
// gitignore-style patterns exclude pages from gather, homepage and index.
const IgnoreFileName = ".docsignore"

// Entry is the metadata of one generated page, re-derived from its
// frontmatter.
type Entry struct {
	Frontmatter
	FilePath string `json:"file_path"` // relative to the output root
}

// Inventory is the result of rescanning the output tree.
type Inventory struct {
	order      []string
	byCategory map[string][]Entry

	FilesScanned int
	ParseErrors  int
}

// Gather recursively scans root for Markdown pages and groups their
// metadata by category. Pages without frontmatter or a title are counted
// as parse errors and skipped; a missing directory or zero valid pages is
// an error.
func Gather(root string) (*Inventory, error) {
	if _, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("output directory not found at %s: %w", root, err)
	}

	ignore := loadIgnore(root)
	matter := front.NewMatter()
	matter.Handle("---", front.YAMLHandler)

	inv := &Inventory{byCategory: map[string][]Entry{}}

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
		if ignore != nil && ignore.MatchesPath(rel) {
			slog.Debug("skipping ignored page", "path", rel)
			return nil
		}

		inv.FilesScanned++
		entry, ok := parsePage(matter, path, rel)
		if !ok {
			inv.ParseErrors++
			return nil
		}
		inv.add(entry)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan output directory: %w", err)
	}

	if inv.FilesScanned == 0 {
		return nil, fmt.Errorf("no markdown files found in %s", root)
	}
	if inv.Total() == 0 {
		return nil, fmt.Errorf("no valid page metadata found in %s", root)
	}

	slog.Info("gathered page metadata",
		"scanned", inv.FilesScanned,
		"valid", inv.Total(),
		"errors", inv.ParseErrors,
		"categories", len(inv.order))
	return inv, nil
}

func loadIgnore(root string) *gitignore.GitIgnore {
	path := filepath.Join(root, IgnoreFileName)
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	ignore, err := gitignore.CompileIgnoreFile(path)
	if err != nil {
		slog.Warn("failed to compile ignore file", "path", path, "error", err)
		return nil
	}
	return ignore
}

func parsePage(matter *front.Matter, path, rel string) (Entry, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("failed to read page", "path", path, "error", err)
		return Entry{}, false
	}

	fields, _, err := matter.Parse(bytes.NewReader(data))
	if err != nil {
		slog.Warn("no valid frontmatter found, skipping", "path", rel, "error", err)
		return Entry{}, false
	}

	entry := Entry{
		Frontmatter: Frontmatter{
			Title:       stringField(fields, "title"),
			URL:         stringField(fields, "url"),
			Category:    stringField(fields, "category"),
			Description: stringField(fields, "description"),
		},
		FilePath: filepath.ToSlash(rel),
	}
	if entry.Title == "" {
		slog.Warn("page has no title, skipping", "path", rel)
		return Entry{}, false
	}
	if entry.Category == "" {
		entry.Category = "Uncategorized"
	}
	return entry, true
}

func stringField(fields map[string]interface{}, key string) string {
	if v, ok := fields[key].(string); ok {
		return v
	}
	return ""
}

func (inv *Inventory) add(e Entry) {
	if _, ok := inv.byCategory[e.Category]; !ok {
		inv.order = append(inv.order, e.Category)
	}
	inv.byCategory[e.Category] = append(inv.byCategory[e.Category], e)
}

// Categories returns category names sorted alphabetically.
func (inv *Inventory) Categories() []string {
	out := make([]string, len(inv.order))
	copy(out, inv.order)
	sort.Strings(out)
	return out
}

// Entries returns the entries of a category sorted by title,
// case-insensitively.
func (inv *Inventory) Entries(category string) []Entry {
	entries := make([]Entry, len(inv.byCategory[category]))
	copy(entries, inv.byCategory[category])
	sort.Slice(entries, func(i, j int) bool {
		return strings.ToLower(entries[i].Title) < strings.ToLower(entries[j].Title)
	})
	return entries
}

// Total returns the number of valid entries.
func (inv *Inventory) Total() int {
	n := 0
	for _, entries := range inv.byCategory {
		n += len(entries)
	}
	return n
}

// ByCategory returns a plain map view for JSON serialization.
func (inv *Inventory) ByCategory() map[string][]Entry {
	out := make(map[string][]Entry, len(inv.byCategory))
	for category, entries := range inv.byCategory {
		out[category] = entries
	}
	return out
}
