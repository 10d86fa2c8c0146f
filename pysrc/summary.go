package pysrc

import "strings"

const (
	maxListedEntries    = 10
	maxDocstringPreview = 100
)

// Summary renders a placeholder documentation page from an analysis:
// heading, derived description, and capped function/class listings with
// docstring previews.
func Summary(title string, a *Analysis) string {
	var b strings.Builder
	b.WriteString("# " + title + "\n\n")
	if a.Description != "" {
		b.WriteString(a.Description + "\n\n")
	}

	if len(a.Functions) > 0 {
		b.WriteString("## Functions\n\n")
		for _, fn := range capFunctions(a.Functions) {
			b.WriteString("- **" + fn.Name + "**")
			if fn.Docstring != "" {
				b.WriteString(": " + preview(fn.Docstring))
			}
			b.WriteString("\n")
		}
	}

	if len(a.Classes) > 0 {
		b.WriteString("\n## Classes\n\n")
		n := len(a.Classes)
		if n > maxListedEntries {
			n = maxListedEntries
		}
		for _, cls := range a.Classes[:n] {
			b.WriteString("- **" + cls.Name + "**")
			if cls.Docstring != "" {
				b.WriteString(": " + preview(cls.Docstring))
			}
			b.WriteString("\n")
		}
	}

	return b.String()
}

func capFunctions(fns []Function) []Function {
	if len(fns) > maxListedEntries {
		return fns[:maxListedEntries]
	}
	return fns
}

// preview returns the first line of a docstring capped at
// maxDocstringPreview characters.
func preview(doc string) string {
	line := strings.Split(doc, "\n")[0]
	runes := []rune(line)
	if len(runes) > maxDocstringPreview {
		return string(runes[:maxDocstringPreview])
	}
	return line
}
