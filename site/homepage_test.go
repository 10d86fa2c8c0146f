package site_test

import (
	"strings"
	"testing"

	"github.com/yoanbernabeu/awesomedocs/site"
)

func gatherFixture(t *testing.T) *site.Inventory {
	t.Helper()
	root := t.TempDir()
	writePageFile(t, root, "Chatbots", "Zeta Bot", "Last alphabetically", "https://github.com/u/zeta")
	writePageFile(t, root, "AI Tools", "My Agent", "Does things", "https://github.com/u/agent")
	writePageFile(t, root, "AI Tools", "Another", "", "https://github.com/u/another")

	inv, err := site.Gather(root)
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	return inv
}

func TestHomepage_Rendering(t *testing.T) {
	inv := gatherFixture(t)
	out, err := site.Homepage(inv)
	if err != nil {
		t.Fatalf("Homepage: %v", err)
	}

	for _, want := range []string{
		"**3+ LLM agents and tools** across **2 categories**",
		"### AI Tools",
		"### Chatbots",
		`<div class="agent-card-grid">`,
		`<div class="agent-card">`,
		"**[My Agent](../output/AI%20Tools/My_Agent)**",
		"[:material-github: View Repository](https://github.com/u/agent){ .md-button }",
		"No description available",
		"- **AI Tools** - 2 agents",
		"- **Chatbots** - 1 agent\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("homepage missing %q", want)
		}
	}

	// Categories must appear alphabetically.
	if strings.Index(out, "### AI Tools") > strings.Index(out, "### Chatbots") {
		t.Error("category sections out of order")
	}
}

func TestHomepage_CardsSortedByTitle(t *testing.T) {
	inv := gatherFixture(t)
	out, err := site.Homepage(inv)
	if err != nil {
		t.Fatalf("Homepage: %v", err)
	}
	if strings.Index(out, "[Another]") > strings.Index(out, "[My Agent]") {
		t.Error("cards not sorted by title within category")
	}
}
