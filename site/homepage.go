package site

import (
	_ "embed"
	"fmt"
	"net/url"
	"strings"
	"text/template"
)

//go:embed templates/homepage.md.tmpl
var homepageTemplate string

// HomepageCard is one project card on the homepage grid.
type HomepageCard struct {
	Title       string
	Link        string
	Category    string
	Description string
	RepoURL     string
}

// HomepageSection groups the cards of one category.
type HomepageSection struct {
	Name  string
	Count int
	Cards []HomepageCard
}

// HomepageData is the template input.
type HomepageData struct {
	TotalAgents     int
	TotalCategories int
	Sections        []HomepageSection
}

// Homepage renders the card-grid homepage Markdown from gathered metadata.
// Categories are sorted alphabetically, cards by title.
func Homepage(inv *Inventory) (string, error) {
	data := HomepageData{
		TotalAgents:     inv.Total(),
		TotalCategories: len(inv.Categories()),
	}
	for _, category := range inv.Categories() {
		section := HomepageSection{Name: category}
		for _, entry := range inv.Entries(category) {
			description := entry.Description
			if description == "" {
				description = "No description available"
			}
			section.Cards = append(section.Cards, HomepageCard{
				Title:       entry.Title,
				Link:        pageLink(entry.FilePath),
				Category:    category,
				Description: description,
				RepoURL:     entry.URL,
			})
		}
		section.Count = len(section.Cards)
		data.Sections = append(data.Sections, section)
	}

	tmpl, err := template.New("homepage").Parse(homepageTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse homepage template: %w", err)
	}
	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("failed to render homepage: %w", err)
	}
	return b.String(), nil
}

// pageLink builds the homepage-relative link to a page, escaping each path
// segment so titles with spaces stay clickable.
func pageLink(filePath string) string {
	path := strings.TrimSuffix(filePath, ".md")
	segments := strings.Split("../output/"+path, "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	return strings.Join(segments, "/")
}
