package highlight

import (
	"regexp"
	"strings"
	"testing"

	"github.com/alecthomas/chroma/v2"
)

var ansiEscape = regexp.MustCompile("\x1b\\[[0-9;]*m")

func stripANSI(s string) string {
	return ansiEscape.ReplaceAllString(s, "")
}

func TestRenderHighlightsKnownSyntax(t *testing.T) {
	h := New()
	content := "let x = 5;"

	got := h.Render(content, "rs", "monokai")
	if got == content {
		t.Fatal("expected escape codes in rendered output")
	}
	if !strings.HasSuffix(got, Reset) {
		t.Fatalf("expected output to end with reset, got %q", got)
	}
	if stripped := stripANSI(got); stripped != content {
		t.Fatalf("expected stripped output %q, got %q", content, stripped)
	}
}

func TestRenderPreservesLineStructure(t *testing.T) {
	h := New()
	tests := []struct {
		name    string
		syntax  string
		content string
	}{
		{name: "trailing newline", syntax: "go", content: "package main\n\nfunc main() {}\n"},
		{name: "no trailing newline", syntax: "py", content: "def f():\n    return 1"},
		{name: "crlf endings", syntax: "js", content: "const a = 1;\r\nconst b = 2;\r\n"},
		{name: "blank lines", syntax: "rs", content: "\n\nfn main() {}\n\n"},
		{name: "unterminated string", syntax: "go", content: "s := \"open\nnext line\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := h.Render(tt.content, tt.syntax, "monokai")
			if stripped := stripANSI(got); stripped != tt.content {
				t.Fatalf("expected stripped output %q, got %q", tt.content, stripped)
			}
			if strings.Count(got, "\n") != strings.Count(tt.content, "\n") {
				t.Fatalf("line count changed: %q", got)
			}
		})
	}
}

func TestRenderEveryLineEndsWithReset(t *testing.T) {
	h := New()
	content := "fn a() {}\nfn b() {}\n"

	got := h.Render(content, "rs", "monokai")
	lines := strings.SplitAfter(got, Reset)
	if lines[len(lines)-1] != "" {
		t.Fatalf("expected output to end in reset, got %q", got)
	}
	if resets := strings.Count(got, Reset); resets < 2 {
		t.Fatalf("expected at least one reset per line, got %d in %q", resets, got)
	}
	for _, line := range strings.Split(stripANSI(got), "\n")[:2] {
		if !strings.HasPrefix(line, "fn ") {
			t.Fatalf("unexpected line %q", line)
		}
	}
}

func TestRenderUnknownSyntaxReturnsContent(t *testing.T) {
	h := New()
	content := "let x = 5;\nsecond line\n"

	for _, syntax := range []string{"no-such-lang", "", "   "} {
		if got := h.Render(content, syntax, "monokai"); got != content {
			t.Fatalf("syntax %q: expected content unchanged, got %q", syntax, got)
		}
	}
}

func TestRenderUnknownThemeUsesDefault(t *testing.T) {
	h := New()
	content := "let x = 5;"

	got := h.Render(content, "rs", "no-such-theme")
	want := h.Render(content, "rs", h.defaultStyle.Name)
	if got != want {
		t.Fatalf("expected default style output %q, got %q", want, got)
	}
	if stripANSI(got) != content {
		t.Fatalf("expected stripped output %q, got %q", content, stripANSI(got))
	}
}

func TestRenderEmptyContent(t *testing.T) {
	h := New()
	if got := h.Render("", "rs", "monokai"); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}

func TestRenderLookupByName(t *testing.T) {
	h := New()
	content := "SELECT 1;"

	got := h.Render(content, "sql", "monokai")
	if got == content {
		t.Fatal("expected sql to resolve to a lexer")
	}
	if stripANSI(got) != content {
		t.Fatalf("expected stripped output %q, got %q", content, stripANSI(got))
	}
}

func TestRenderLinePassesThroughOnMismatch(t *testing.T) {
	h := New()
	style := h.lookupStyle("monokai")

	line := "original\n"
	tokens := []chroma.Token{{Type: chroma.Text, Value: "different\n"}}
	if got := h.renderLine(line, tokens, style); got != line {
		t.Fatalf("expected unmodified line, got %q", got)
	}
	if got := h.renderLine(line, nil, style); got != line {
		t.Fatalf("expected unmodified line for missing tokens, got %q", got)
	}
}

func TestTrimAddedNewline(t *testing.T) {
	tokens := []chroma.Token{
		{Type: chroma.Keyword, Value: "let"},
		{Type: chroma.Text, Value: "\n"},
	}

	got := trimAddedNewline(tokens, "let")
	if tokensText(got) != "let" {
		t.Fatalf("expected trailing newline trimmed, got %q", tokensText(got))
	}
	if tokensText(tokens) != "let\n" {
		t.Fatal("input tokens must not be modified")
	}

	kept := trimAddedNewline(tokens, "let\n")
	if tokensText(kept) != "let\n" {
		t.Fatalf("expected newline kept when line has one, got %q", tokensText(kept))
	}
}

func TestLinesWithEndings(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{in: "", want: nil},
		{in: "a", want: []string{"a"}},
		{in: "a\n", want: []string{"a\n"}},
		{in: "a\r\nb", want: []string{"a\r\n", "b"}},
		{in: "\n\n", want: []string{"\n", "\n"}},
	}

	for _, tt := range tests {
		got := linesWithEndings(tt.in)
		if strings.Join(got, "|") != strings.Join(tt.want, "|") || len(got) != len(tt.want) {
			t.Fatalf("linesWithEndings(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestConcurrentRender(t *testing.T) {
	h := New()
	content := "fn main() { println!(\"hi\"); }\n"
	want := h.Render(content, "rs", "monokai")

	done := make(chan string, 8)
	for i := 0; i < 8; i++ {
		go func() { done <- h.Render(content, "rs", "monokai") }()
	}
	for i := 0; i < 8; i++ {
		if got := <-done; got != want {
			t.Fatalf("concurrent render differs: %q vs %q", got, want)
		}
	}
}

func TestSyntaxesIncludesRust(t *testing.T) {
	h := New()
	for _, name := range h.Syntaxes() {
		if strings.EqualFold(name, "rust") {
			return
		}
	}
	t.Fatal("expected rust among known syntaxes")
}
