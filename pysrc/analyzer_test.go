package pysrc_test

import (
	"strings"
	"testing"

	"github.com/yoanbernabeu/awesomedocs/pysrc"
)

const simpleSource = `"""Simple module for testing."""


def greet(name, greeting="Hello"):
    """Greet the user."""
    return f"{greeting}, {name}"


class MyClass:
    """A test class."""

    def method_one(self, value):
        """First method."""
        return value
`

func analyze(t *testing.T, src string) *pysrc.Analysis {
	t.Helper()
	a, ok := pysrc.Analyze([]byte(src))
	if !ok {
		t.Fatal("Analyze reported not-ok for valid source")
	}
	return a
}

func TestAnalyze_SimpleSource(t *testing.T) {
	a := analyze(t, simpleSource)

	if a.Description != "Simple module for testing." {
		t.Errorf("Description = %q", a.Description)
	}

	if len(a.Functions) != 1 {
		t.Fatalf("len(Functions) = %d, want 1 (methods must be excluded)", len(a.Functions))
	}
	fn := a.Functions[0]
	if fn.Name != "greet" {
		t.Errorf("Functions[0].Name = %q, want greet", fn.Name)
	}
	if fn.Docstring != "Greet the user." {
		t.Errorf("Functions[0].Docstring = %q", fn.Docstring)
	}
	if len(fn.Params) != 2 || fn.Params[0] != "name" || fn.Params[1] != "greeting" {
		t.Errorf("Functions[0].Params = %v, want [name greeting]", fn.Params)
	}

	if len(a.Classes) != 1 {
		t.Fatalf("len(Classes) = %d, want 1", len(a.Classes))
	}
	cls := a.Classes[0]
	if cls.Name != "MyClass" {
		t.Errorf("Classes[0].Name = %q", cls.Name)
	}
	if cls.Docstring != "A test class." {
		t.Errorf("Classes[0].Docstring = %q", cls.Docstring)
	}
	if len(cls.Methods) != 1 || cls.Methods[0].Name != "method_one" {
		t.Errorf("Classes[0].Methods = %v, want one method_one", cls.Methods)
	}
}

func TestAnalyze_InvalidSyntax(t *testing.T) {
	if _, ok := pysrc.Analyze([]byte("def broken(:\n    pass\n")); ok {
		t.Error("expected not-ok for invalid syntax")
	}
}

func TestAnalyze_EmptyFile(t *testing.T) {
	a := analyze(t, "")
	if a.Description != "" {
		t.Errorf("Description = %q, want empty", a.Description)
	}
	if len(a.Functions) != 0 || len(a.Classes) != 0 {
		t.Errorf("expected zero functions and classes, got %d/%d", len(a.Functions), len(a.Classes))
	}
}

func TestAnalyze_LongDocstringTruncated(t *testing.T) {
	long := strings.Repeat("x", 250)
	a := analyze(t, `"""`+long+`"""`+"\n")
	if len(a.Description) != 203 {
		t.Errorf("len(Description) = %d, want 203 (200 chars + ellipsis)", len(a.Description))
	}
	if !strings.HasSuffix(a.Description, "...") {
		t.Errorf("Description should end with ellipsis, got %q", a.Description[190:])
	}
	if !strings.HasPrefix(a.Description, "xxx") {
		t.Errorf("Description should start with docstring content")
	}
}

func TestAnalyze_ShebangBeforeModuleDocstring(t *testing.T) {
	src := `#!/usr/bin/env python3
"""Entry point for the demo app."""


def main():
    pass
`
	a := analyze(t, src)
	if a.Description != "Entry point for the demo app." {
		t.Errorf("Description = %q, want module docstring despite shebang", a.Description)
	}
}

func TestAnalyze_CommentsBeforeDocstrings(t *testing.T) {
	src := `#!/usr/bin/env python3
# -*- coding: utf-8 -*-
"""Module docstring."""


def work():
    # implementation note
    """Do the work."""
    pass


class Job:
    # internal
    """One unit of work."""
`
	a := analyze(t, src)
	if a.Description != "Module docstring." {
		t.Errorf("Description = %q, want module docstring despite leading comments", a.Description)
	}
	if len(a.Functions) != 1 || a.Functions[0].Docstring != "Do the work." {
		t.Errorf("Functions = %+v, want work with its docstring", a.Functions)
	}
	if len(a.Classes) != 1 || a.Classes[0].Docstring != "One unit of work." {
		t.Errorf("Classes = %+v, want Job with its docstring", a.Classes)
	}
}

func TestAnalyze_CommentOnlyFileHasNoDescription(t *testing.T) {
	a := analyze(t, "#!/usr/bin/env python3\n# nothing else here\n")
	if a.Description != "" {
		t.Errorf("Description = %q, want empty for a comment-only file", a.Description)
	}
}

func TestAnalyze_ClassDocstringFallback(t *testing.T) {
	src := `class Worker:
    """Processes jobs from the queue."""

    def run(self):
        pass
`
	a := analyze(t, src)
	if a.Description != "Processes jobs from the queue." {
		t.Errorf("Description = %q, want class docstring", a.Description)
	}
}

func TestAnalyze_MainDocstringFallback(t *testing.T) {
	src := `def helper():
    pass


def main():
    """Entry point of the tool."""
    pass
`
	a := analyze(t, src)
	if a.Description != "Entry point of the tool." {
		t.Errorf("Description = %q, want main docstring", a.Description)
	}
	if len(a.Functions) != 2 {
		t.Errorf("len(Functions) = %d, want 2", len(a.Functions))
	}
}

func TestAnalyze_DecoratedDefinitions(t *testing.T) {
	src := `@decorator
def handler(event):
    """Handle one event."""
    pass
`
	a := analyze(t, src)
	if len(a.Functions) != 1 || a.Functions[0].Name != "handler" {
		t.Fatalf("Functions = %v, want decorated handler", a.Functions)
	}
}

func TestAnalyze_MultilineDocstringFirstLine(t *testing.T) {
	src := `"""
First meaningful line.

More detail below.
"""
`
	a := analyze(t, src)
	if a.Description != "First meaningful line." {
		t.Errorf("Description = %q, want first non-blank line", a.Description)
	}
}

func TestSummary_Rendering(t *testing.T) {
	a := analyze(t, simpleSource)
	out := pysrc.Summary("My Project", a)

	for _, want := range []string{
		"# My Project",
		"Simple module for testing.",
		"## Functions",
		"- **greet**: Greet the user.",
		"## Classes",
		"- **MyClass**: A test class.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Summary missing %q\n%s", want, out)
		}
	}
	if strings.Contains(out, "method_one") {
		t.Error("Summary should not list methods as top-level functions")
	}
}

func TestSummary_CapsEntries(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 15; i++ {
		b.WriteString("def fn_")
		b.WriteByte(byte('a' + i))
		b.WriteString("():\n    pass\n\n")
	}
	a := analyze(t, `"""Many functions."""`+"\n\n"+b.String())
	out := pysrc.Summary("Big", a)
	if got := strings.Count(out, "- **fn_"); got != 10 {
		t.Errorf("listed %d functions, want 10", got)
	}
}
