// Package highlight renders text with 24-bit terminal color escapes.
//
// Syntax and theme tables are captured once by New and are read-only
// afterwards, so a single Highlighter is safe for concurrent use.
package highlight

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// Reset is the escape sequence appended to every highlighted line.
const Reset = "\x1b[0m"

// Highlighter applies syntax coloring using pre-loaded lexers and styles.
type Highlighter struct {
	lexers       *chroma.LexerRegistry
	styles       map[string]*chroma.Style
	defaultStyle *chroma.Style
	formatter    chroma.Formatter
}

// New returns a Highlighter over chroma's bundled lexers and styles.
func New() *Highlighter {
	return &Highlighter{
		lexers:       lexers.GlobalLexerRegistry,
		styles:       styles.Registry,
		defaultStyle: styles.Fallback,
		formatter:    formatters.TTY16m,
	}
}

// Render highlights content using the lexer selected by syntax and the style
// named by theme.
//
// An unknown syntax returns content unchanged and an unknown theme falls back
// to the default style. A line that cannot be highlighted is emitted as is.
func (h *Highlighter) Render(content, syntax, theme string) string {
	lexer := h.lookupLexer(syntax)
	if lexer == nil {
		return content
	}
	style := h.lookupStyle(theme)

	lines := linesWithEndings(content)
	if len(lines) == 0 {
		return content
	}

	tokens, ok := tokenise(lexer, content)
	if !ok {
		return content
	}
	tokenLines := chroma.SplitTokensIntoLines(tokens)

	var out strings.Builder
	out.Grow(len(content) * 2)
	for i, line := range lines {
		var lineTokens []chroma.Token
		if i < len(tokenLines) {
			lineTokens = trimAddedNewline(tokenLines[i], line)
		}
		out.WriteString(h.renderLine(line, lineTokens, style))
	}
	return out.String()
}

// Syntaxes returns the names of all known lexers.
func (h *Highlighter) Syntaxes() []string {
	return h.lexers.Names(false)
}

func (h *Highlighter) lookupLexer(syntax string) chroma.Lexer {
	syntax = strings.TrimSpace(syntax)
	if syntax == "" {
		return nil
	}
	if lexer := h.lexers.Match("paste." + syntax); lexer != nil {
		return chroma.Coalesce(lexer)
	}
	if lexer := h.lexers.Get(syntax); lexer != nil {
		return chroma.Coalesce(lexer)
	}
	return nil
}

func (h *Highlighter) lookupStyle(theme string) *chroma.Style {
	if style, ok := h.styles[strings.TrimSpace(theme)]; ok && style != nil {
		return style
	}
	return h.defaultStyle
}

// renderLine formats one line. The tokens must reproduce line exactly,
// otherwise the line is passed through unmodified.
func (h *Highlighter) renderLine(line string, tokens []chroma.Token, style *chroma.Style) string {
	if tokensText(tokens) != line {
		return line
	}
	var buf strings.Builder
	if err := h.formatter.Format(&buf, style, chroma.Literator(tokens...)); err != nil {
		return line
	}
	buf.WriteString(Reset)
	return buf.String()
}

func tokenise(lexer chroma.Lexer, content string) (tokens []chroma.Token, ok bool) {
	defer func() {
		if recover() != nil {
			tokens, ok = nil, false
		}
	}()
	it, err := lexer.Tokenise(&chroma.TokeniseOptions{State: "root"}, content)
	if err != nil {
		return nil, false
	}
	return it.Tokens(), true
}

// trimAddedNewline drops the trailing newline some lexers append when the
// input does not end with one.
func trimAddedNewline(tokens []chroma.Token, line string) []chroma.Token {
	if strings.HasSuffix(line, "\n") || len(tokens) == 0 {
		return tokens
	}
	last := tokens[len(tokens)-1]
	if !strings.HasSuffix(last.Value, "\n") {
		return tokens
	}
	out := make([]chroma.Token, len(tokens))
	copy(out, tokens)
	last.Value = strings.TrimSuffix(last.Value, "\n")
	if last.Value == "" {
		return out[:len(out)-1]
	}
	out[len(out)-1] = last
	return out
}

func tokensText(tokens []chroma.Token) string {
	var b strings.Builder
	for _, tok := range tokens {
		b.WriteString(tok.Value)
	}
	return b.String()
}

// linesWithEndings splits s after each "\n", keeping the terminators.
func linesWithEndings(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
