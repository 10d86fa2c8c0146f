package site

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gernest/front"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// SearchSeparator is the token separator the search configuration must
// carry; verify checks the built index against it.
const SearchSeparator = `[\s\-\.]+`

// SearchDoc is one searchable document.
type SearchDoc struct {
	Location string `json:"location"`
	Title    string `json:"title"`
	Text     string `json:"text"`
}

// SearchConfig mirrors the mkdocs search plugin configuration block.
type SearchConfig struct {
	Lang      []string `json:"lang"`
	Separator string   `json:"separator"`
	Pipeline  []string `json:"pipeline"`
}

// SearchIndex is the search_index.json document.
type SearchIndex struct {
	Config SearchConfig `json:"config"`
	Docs   []SearchDoc  `json:"docs"`
}

// BuildSearchIndex builds the index from the generated tree: one document
// per valid page, plus the homepage (location "") when homepagePath exists.
func BuildSearchIndex(root, homepagePath string) (*SearchIndex, error) {
	inv, err := Gather(root)
	if err != nil {
		return nil, err
	}

	idx := &SearchIndex{
		Config: SearchConfig{
			Lang:      []string{"en"},
			Separator: SearchSeparator,
			Pipeline:  []string{"stopWordFilter"},
		},
	}

	if homepagePath != "" {
		if data, err := os.ReadFile(homepagePath); err == nil {
			idx.Docs = append(idx.Docs, SearchDoc{
				Location: "",
				Title:    "Home",
				Text:     PlainText(data),
			})
		} else {
			slog.Debug("homepage not found, index built without it", "path", homepagePath)
		}
	}

	matter := front.NewMatter()
	matter.Handle("---", front.YAMLHandler)

	for _, category := range inv.Categories() {
		for _, entry := range inv.Entries(category) {
			doc, ok := searchDoc(matter, root, entry)
			if !ok {
				continue
			}
			idx.Docs = append(idx.Docs, doc)
		}
	}

	slog.Info("built search index", "docs", len(idx.Docs))
	return idx, nil
}

func searchDoc(matter *front.Matter, root string, entry Entry) (SearchDoc, bool) {
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(entry.FilePath)))
	if err != nil {
		slog.Warn("failed to read page for indexing", "path", entry.FilePath, "error", err)
		return SearchDoc{}, false
	}
	_, body, err := matter.Parse(bytes.NewReader(data))
	if err != nil {
		// Gather already validated the frontmatter; index the raw text.
		body = string(data)
	}
	return SearchDoc{
		Location: strings.TrimSuffix(entry.FilePath, ".md") + "/",
		Title:    entry.Title,
		Text:     PlainText([]byte(body)),
	}, true
}

// WriteSearchIndex serializes the index to path, creating parent
// directories as needed.
func WriteSearchIndex(idx *SearchIndex, path string) error {
	data, err := json.MarshalIndent(idx, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal search index: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create search index directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write search index: %w", err)
	}
	return nil
}

// PlainText strips Markdown structure from source, returning the text
// content with whitespace collapsed. Used for the searchable text field.
func PlainText(source []byte) string {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	doc := md.Parser().Parse(text.NewReader(source))

	var b strings.Builder
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			if n.Type() == ast.TypeBlock {
				b.WriteByte(' ')
			}
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Text:
			b.Write(node.Segment.Value(source))
			b.WriteByte(' ')
		case *ast.FencedCodeBlock:
			writeLines(&b, node, source)
		case *ast.CodeBlock:
			writeLines(&b, node, source)
		}
		return ast.WalkContinue, nil
	})

	return strings.Join(strings.Fields(b.String()), " ")
}

func writeLines(b *strings.Builder, node ast.Node, source []byte) {
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		b.Write(segment.Value(source))
		b.WriteByte(' ')
	}
}
