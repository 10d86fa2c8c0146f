// Package site writes and rescans the generated documentation tree: one
// frontmattered Markdown page per project under a directory mirroring the
// category hierarchy, plus the derived homepage and search index.
package site

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Frontmatter is the structured header of every generated page. Field
// order here is the serialization order.
type Frontmatter struct {
	Title       string `yaml:"title" json:"title"`
	URL         string `yaml:"url" json:"url"`
	Category    string `yaml:"category" json:"category"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// SanitizeCategory makes a category name safe for use as a directory name.
func SanitizeCategory(name string) string {
	name = strings.ReplaceAll(name, "/", "-")
	return strings.ReplaceAll(name, "\\", "-")
}

// SanitizeTitle makes a project title safe for use as a filename.
func SanitizeTitle(title string) string {
	title = SanitizeCategory(title)
	return strings.ReplaceAll(title, " ", "_")
}

// Writer writes pages under Root. With DryRun set it logs what it would
// write instead of touching the filesystem.
type Writer struct {
	Root   string
	DryRun bool
}

// Scaffold creates the base output directory and one subdirectory per
// category.
func (w *Writer) Scaffold(categories []string) error {
	if w.DryRun {
		slog.Info("[dry-run] would create output structure", "root", w.Root, "categories", len(categories))
		return nil
	}
	if err := os.MkdirAll(w.Root, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	for _, category := range categories {
		dir := filepath.Join(w.Root, SanitizeCategory(category))
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create category directory %s: %w", dir, err)
		}
	}
	slog.Info("output structure ready", "root", w.Root, "categories", len(categories))
	return nil
}

// PagePath returns the output path for a project page.
func (w *Writer) PagePath(category, title string) string {
	return filepath.Join(w.Root, SanitizeCategory(category), SanitizeTitle(title)+".md")
}

// WritePage writes one frontmattered page.
func (w *Writer) WritePage(meta Frontmatter, body string) error {
	path := w.PagePath(meta.Category, meta.Title)
	if w.DryRun {
		slog.Info("[dry-run] would write page", "path", path, "title", meta.Title)
		return nil
	}

	data, err := MarshalPage(meta, body)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write page %s: %w", path, err)
	}
	slog.Debug("wrote page", "path", path)
	return nil
}

// MarshalPage serializes a page as YAML frontmatter between "---" fences
// followed by the body.
func MarshalPage(meta Frontmatter, body string) ([]byte, error) {
	fm, err := yaml.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal frontmatter: %w", err)
	}
	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(fm)
	buf.WriteString("---\n\n")
	buf.WriteString(body)
	if !strings.HasSuffix(body, "\n") {
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}
