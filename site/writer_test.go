package site_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yoanbernabeu/awesomedocs/site"
)

func TestSanitize(t *testing.T) {
	cases := []struct {
		in, category, title string
	}{
		{"AI Tools", "AI Tools", "AI_Tools"},
		{"Voice/Audio", "Voice-Audio", "Voice-Audio"},
		{`Back\Slash`, "Back-Slash", "Back-Slash"},
		{"Multi Word Name", "Multi Word Name", "Multi_Word_Name"},
	}
	for _, c := range cases {
		if got := site.SanitizeCategory(c.in); got != c.category {
			t.Errorf("SanitizeCategory(%q) = %q, want %q", c.in, got, c.category)
		}
		if got := site.SanitizeTitle(c.in); got != c.title {
			t.Errorf("SanitizeTitle(%q) = %q, want %q", c.in, got, c.title)
		}
	}
}

func TestWritePage(t *testing.T) {
	root := t.TempDir()
	w := &site.Writer{Root: root}

	meta := site.Frontmatter{
		Title:       "My Agent",
		URL:         "https://github.com/user/my-agent",
		Category:    "AI Tools",
		Description: "Does things",
	}
	if err := w.WritePage(meta, "# My Agent\n\nBody text.\n"); err != nil {
		t.Fatalf("WritePage: %v", err)
	}

	path := filepath.Join(root, "AI Tools", "My_Agent.md")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read page: %v", err)
	}
	content := string(data)

	if !strings.HasPrefix(content, "---\n") {
		t.Error("page should start with a frontmatter fence")
	}
	for _, want := range []string{
		"title: My Agent",
		"url: https://github.com/user/my-agent",
		"category: AI Tools",
		"description: Does things",
		"# My Agent",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("page missing %q\n%s", want, content)
		}
	}

	// title must come before url: struct field order is the contract.
	if strings.Index(content, "title:") > strings.Index(content, "url:") {
		t.Error("frontmatter keys out of order")
	}
}

func TestWritePage_OmitsEmptyDescription(t *testing.T) {
	data, err := site.MarshalPage(site.Frontmatter{
		Title:    "X",
		URL:      "https://github.com/u/x",
		Category: "C",
	}, "body")
	if err != nil {
		t.Fatalf("MarshalPage: %v", err)
	}
	if strings.Contains(string(data), "description:") {
		t.Error("empty description should be omitted from frontmatter")
	}
	if !strings.HasSuffix(string(data), "body\n") {
		t.Error("body should end with a newline")
	}
}

func TestWritePage_DryRun(t *testing.T) {
	root := t.TempDir()
	w := &site.Writer{Root: root, DryRun: true}
	meta := site.Frontmatter{Title: "X", URL: "u", Category: "C"}
	if err := w.WritePage(meta, "body"); err != nil {
		t.Fatalf("WritePage: %v", err)
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("dry-run wrote %d entries, want 0", len(entries))
	}
}

func TestScaffold(t *testing.T) {
	root := filepath.Join(t.TempDir(), "out")
	w := &site.Writer{Root: root}
	if err := w.Scaffold([]string{"AI Tools", "Voice/Audio"}); err != nil {
		t.Fatalf("Scaffold: %v", err)
	}
	for _, dir := range []string{"AI Tools", "Voice-Audio"} {
		info, err := os.Stat(filepath.Join(root, dir))
		if err != nil || !info.IsDir() {
			t.Errorf("expected directory %q to exist", dir)
		}
	}
}
