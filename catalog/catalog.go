// Package catalog parses the source "awesome list" README into projects
// grouped by category. The expected format is:
//
//	## Category Name
//	- [Project Title](URL) - Description
//
// Category order and per-category project order follow the source document.
package catalog

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"
	"strings"
)

// Project is a single entry from the source catalog.
type Project struct {
	Title       string
	URL         string
	Description string // empty when the bullet item has no trailing description
	Category    string
}

// Catalog holds projects grouped by category, in order of first appearance.
type Catalog struct {
	order      []string
	byCategory map[string][]Project
}

// DefaultCategory is assigned to projects listed before any category header.
const DefaultCategory = "Uncategorized"

var (
	categoryRe = regexp.MustCompile(`^##\s+(.+)$`)
	projectRe  = regexp.MustCompile(`^-\s+\[([^\]]+)\]\(([^)]+)\)\s*(?:-\s*(.+))?$`)
)

// Parse scans a Markdown document line by line and extracts the catalog.
// It returns an error when no valid project entries are found.
func Parse(r io.Reader) (*Catalog, error) {
	cat := &Catalog{byCategory: map[string][]Project{}}
	current := DefaultCategory

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if m := categoryRe.FindStringSubmatch(line); m != nil {
			current = strings.TrimSpace(m[1])
			cat.ensureCategory(current)
			slog.Debug("found category", "category", current)
			continue
		}

		if m := projectRe.FindStringSubmatch(line); m != nil {
			p := Project{
				Title:       strings.TrimSpace(m[1]),
				URL:         strings.TrimSpace(m[2]),
				Description: strings.TrimSpace(m[3]),
				Category:    current,
			}
			cat.ensureCategory(current)
			cat.byCategory[current] = append(cat.byCategory[current], p)
			slog.Debug("found project", "title", p.Title, "category", current)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	if cat.Total() == 0 {
		return nil, fmt.Errorf("no valid project entries found in catalog")
	}

	slog.Info("parsed catalog", "categories", len(cat.order), "projects", cat.Total())
	return cat, nil
}

// ParseFile parses the catalog README at path. A missing file is a fatal
// condition for the pipeline and is reported as an error.
func ParseFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("catalog README not found at %s: %w", path, err)
	}
	defer f.Close()
	return Parse(f)
}

func (c *Catalog) ensureCategory(name string) {
	if _, ok := c.byCategory[name]; ok {
		return
	}
	c.byCategory[name] = nil
	c.order = append(c.order, name)
}

// Categories returns category names in order of first appearance.
func (c *Catalog) Categories() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Projects returns the projects of a category in source order.
func (c *Catalog) Projects(category string) []Project {
	return c.byCategory[category]
}

// Total returns the number of projects across all categories.
func (c *Catalog) Total() int {
	n := 0
	for _, projects := range c.byCategory {
		n += len(projects)
	}
	return n
}
