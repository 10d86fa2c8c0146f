package site_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/yoanbernabeu/awesomedocs/site"
)

func writePageFile(t *testing.T, root, category, title, description, url string) {
	t.Helper()
	w := &site.Writer{Root: root}
	meta := site.Frontmatter{Title: title, URL: url, Category: category, Description: description}
	if err := w.WritePage(meta, "# "+title+"\n\nBody.\n"); err != nil {
		t.Fatalf("write page: %v", err)
	}
}

func TestGather_ValidTree(t *testing.T) {
	root := t.TempDir()
	writePageFile(t, root, "AI Tools", "Agent One", "First agent", "https://github.com/u/one")
	writePageFile(t, root, "AI Tools", "Agent Two", "", "https://github.com/u/two")
	writePageFile(t, root, "Chatbots", "Bot", "Chat bot", "https://github.com/u/bot")

	inv, err := site.Gather(root)
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}

	if inv.Total() != 3 {
		t.Errorf("Total() = %d, want 3", inv.Total())
	}
	categories := inv.Categories()
	if len(categories) != 2 || categories[0] != "AI Tools" || categories[1] != "Chatbots" {
		t.Errorf("Categories() = %v", categories)
	}

	entries := inv.Entries("AI Tools")
	if len(entries) != 2 {
		t.Fatalf("len(Entries(AI Tools)) = %d, want 2", len(entries))
	}
	if entries[0].Title != "Agent One" {
		t.Errorf("entries not sorted by title: %v", entries)
	}
	if entries[0].FilePath != "AI Tools/Agent_One.md" {
		t.Errorf("FilePath = %q", entries[0].FilePath)
	}
	if entries[1].Description != "" {
		t.Errorf("Description = %q, want empty", entries[1].Description)
	}
}

func TestGather_SkipsPagesWithoutFrontmatter(t *testing.T) {
	root := t.TempDir()
	writePageFile(t, root, "Tools", "Good", "ok", "https://github.com/u/g")
	bare := filepath.Join(root, "Tools", "bare.md")
	if err := os.WriteFile(bare, []byte("# No frontmatter here\n"), 0o644); err != nil {
		t.Fatalf("write bare page: %v", err)
	}

	inv, err := site.Gather(root)
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	if inv.FilesScanned != 2 {
		t.Errorf("FilesScanned = %d, want 2", inv.FilesScanned)
	}
	if inv.ParseErrors != 1 {
		t.Errorf("ParseErrors = %d, want 1", inv.ParseErrors)
	}
	if inv.Total() != 1 {
		t.Errorf("Total() = %d, want 1", inv.Total())
	}
}

func TestGather_MissingDir(t *testing.T) {
	if _, err := site.Gather(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestGather_EmptyTree(t *testing.T) {
	if _, err := site.Gather(t.TempDir()); err == nil {
		t.Fatal("expected error for tree without markdown files")
	}
}

func TestGather_HonorsDocsignore(t *testing.T) {
	root := t.TempDir()
	writePageFile(t, root, "Tools", "Keep", "kept", "https://github.com/u/k")
	writePageFile(t, root, "Drafts", "Skip", "skipped", "https://github.com/u/s")
	ignore := filepath.Join(root, site.IgnoreFileName)
	if err := os.WriteFile(ignore, []byte("Drafts/\n"), 0o644); err != nil {
		t.Fatalf("write ignore file: %v", err)
	}

	inv, err := site.Gather(root)
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	if inv.Total() != 1 {
		t.Errorf("Total() = %d, want 1 (drafts ignored)", inv.Total())
	}
	if len(inv.Entries("Drafts")) != 0 {
		t.Error("ignored category should have no entries")
	}
}
