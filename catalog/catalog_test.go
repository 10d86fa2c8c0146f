package catalog_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yoanbernabeu/awesomedocs/catalog"
)

const simpleReadme = `# Awesome LLM Apps

Some intro text.

## AI Tools

- [OpenAI ChatGPT](https://github.com/openai/chatgpt) - AI chatbot
- [Claude](https://github.com/anthropics/claude) - Assistant

## Chatbots

- [Bot1](https://github.com/user/bot1) - A cool bot
`

func parseString(t *testing.T, s string) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Parse(strings.NewReader(s))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return cat
}

func TestParse_SimpleReadme(t *testing.T) {
	cat := parseString(t, simpleReadme)

	got := cat.Categories()
	want := []string{"AI Tools", "Chatbots"}
	if len(got) != len(want) {
		t.Fatalf("Categories() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Categories()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	aiTools := cat.Projects("AI Tools")
	if len(aiTools) != 2 {
		t.Fatalf("len(Projects(AI Tools)) = %d, want 2", len(aiTools))
	}
	first := aiTools[0]
	if first.Title != "OpenAI ChatGPT" {
		t.Errorf("Title = %q, want %q", first.Title, "OpenAI ChatGPT")
	}
	if first.URL != "https://github.com/openai/chatgpt" {
		t.Errorf("URL = %q", first.URL)
	}
	if first.Description != "AI chatbot" {
		t.Errorf("Description = %q, want %q", first.Description, "AI chatbot")
	}
	if first.Category != "AI Tools" {
		t.Errorf("Category = %q, want %q", first.Category, "AI Tools")
	}

	chatbots := cat.Projects("Chatbots")
	if len(chatbots) != 1 {
		t.Fatalf("len(Projects(Chatbots)) = %d, want 1", len(chatbots))
	}
	if chatbots[0].Description != "A cool bot" {
		t.Errorf("Description = %q, want %q", chatbots[0].Description, "A cool bot")
	}

	if cat.Total() != 3 {
		t.Errorf("Total() = %d, want 3", cat.Total())
	}
}

func TestParse_WithoutDescriptions(t *testing.T) {
	readme := `## Tools

- [Project1](https://github.com/user/project1)
- [Project2](https://github.com/user/project2)
`
	cat := parseString(t, readme)
	projects := cat.Projects("Tools")
	if len(projects) != 2 {
		t.Fatalf("len(Projects) = %d, want 2", len(projects))
	}
	for i, p := range projects {
		if p.Description != "" {
			t.Errorf("[%d] Description = %q, want empty", i, p.Description)
		}
	}
}

func TestParse_EmptyReadme(t *testing.T) {
	_, err := catalog.Parse(strings.NewReader("# Just a Title\n\nNo projects here.\n"))
	if err == nil {
		t.Fatal("expected error for catalog with no entries")
	}
}

func TestParse_ProjectBeforeAnyHeader(t *testing.T) {
	cat := parseString(t, "- [Orphan](https://github.com/user/orphan) - No home\n")
	projects := cat.Projects(catalog.DefaultCategory)
	if len(projects) != 1 {
		t.Fatalf("len(Projects(%s)) = %d, want 1", catalog.DefaultCategory, len(projects))
	}
	if projects[0].Category != catalog.DefaultCategory {
		t.Errorf("Category = %q, want %q", projects[0].Category, catalog.DefaultCategory)
	}
}

func TestParse_DuplicateCategoryHeader(t *testing.T) {
	readme := `## Tools

- [A](https://github.com/u/a) - first

## Other

- [B](https://github.com/u/b) - second

## Tools

- [C](https://github.com/u/c) - third
`
	cat := parseString(t, readme)
	if len(cat.Categories()) != 2 {
		t.Fatalf("Categories() = %v, want 2 entries", cat.Categories())
	}
	if got := len(cat.Projects("Tools")); got != 2 {
		t.Errorf("len(Projects(Tools)) = %d, want 2", got)
	}
}

func TestParse_SpecialCharacterTitles(t *testing.T) {
	readme := `## Misc

- [Project & Co](https://github.com/user/andco) - Uses ampersand
- [Test-Project_v2](https://github.com/user/testv2) - Dashes and underscores
`
	cat := parseString(t, readme)
	projects := cat.Projects("Misc")
	if len(projects) != 2 {
		t.Fatalf("len(Projects) = %d, want 2", len(projects))
	}
	if projects[0].Title != "Project & Co" {
		t.Errorf("Title = %q", projects[0].Title)
	}
	if projects[1].Title != "Test-Project_v2" {
		t.Errorf("Title = %q", projects[1].Title)
	}
}

func TestParseFile_NotFound(t *testing.T) {
	_, err := catalog.ParseFile(filepath.Join(t.TempDir(), "missing.md"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestParseFile_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "README.md")
	if err := os.WriteFile(path, []byte(simpleReadme), 0o644); err != nil {
		t.Fatalf("write readme: %v", err)
	}
	cat, err := catalog.ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if cat.Total() != 3 {
		t.Errorf("Total() = %d, want 3", cat.Total())
	}
}
