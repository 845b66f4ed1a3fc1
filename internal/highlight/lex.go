package highlight

import (
	"fmt"
	"strings"

	"braces.dev/errtrace"
	chroma "github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

// Lexer analyzes source code and generates a stream of tokens.
type Lexer interface {
	Lex(src []byte) ([]chroma.Token, error)
}

// chromaLexer builds a [Lexer] from a Chroma lexer.
type chromaLexer struct{ l chroma.Lexer }

var _ Lexer = (*chromaLexer)(nil)

// Lex lexically analyzes the given source code using Chroma.
func (cl *chromaLexer) Lex(src []byte) ([]chroma.Token, error) {
	return errtrace.Wrap2(chroma.Tokenise(cl.l, nil, string(src)))
}

// LexerFor returns a Lexer for the given language.
// The language may be a Chroma lexer name or alias ("tsx", "typescript"),
// or a file name ("createProject.ts").
//
// Languages that Chroma doesn't recognize are lexed as plain text.
func LexerFor(lang string) Lexer {
	l := lexers.Get(lang)
	if l == nil {
		l = lexers.Match(lang)
	}
	if l == nil {
		l = lexers.Fallback
	}
	return &chromaLexer{l: chroma.Coalesce(l)}
}

// Tokenize normalizes the given snippet and highlights it with lexer.
//
// Leading and trailing blank lines are dropped,
// and indentation common to all lines is removed.
//
// Snippets are developer-authored, so a lexing failure
// doesn't fail the operation:
// it's reported inside the returned Code as an [ErrorSpan].
func Tokenize(lexer Lexer, src string) *Code {
	src = Dedent(src)
	tokens, err := lexer.Lex([]byte(src))
	if err != nil {
		return &Code{
			Spans: []Span{
				&ErrorSpan{
					Msg: "Failed to highlight snippet",
					Err: fmt.Errorf("lex: %w", err),
				},
				&TextSpan{Text: []byte(src)},
			},
		}
	}
	return &Code{
		Spans: []Span{&TokenSpan{Tokens: tokens}},
	}
}

// Dedent removes blank lines from the start and end of src,
// and strips whitespace common to the start of every non-blank line.
// The result ends with a single newline unless it's empty.
func Dedent(src string) string {
	src = strings.ReplaceAll(src, "\r\n", "\n")
	lines := strings.Split(src, "\n")

	for len(lines) > 0 && isBlank(lines[0]) {
		lines = lines[1:]
	}
	for len(lines) > 0 && isBlank(lines[len(lines)-1]) {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return ""
	}

	prefix := leadingSpace(lines[0])
	for _, line := range lines[1:] {
		if isBlank(line) {
			continue
		}
		prefix = commonPrefix(prefix, leadingSpace(line))
	}

	var sb strings.Builder
	for _, line := range lines {
		if isBlank(line) {
			sb.WriteString("\n")
			continue
		}
		sb.WriteString(strings.TrimPrefix(line, prefix))
		sb.WriteString("\n")
	}
	return sb.String()
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func leadingSpace(s string) string {
	return s[:len(s)-len(strings.TrimLeft(s, " \t"))]
}

func commonPrefix(a, b string) string {
	n := min(len(a), len(b))
	for i := range n {
		if a[i] != b[i] {
			return a[:i]
		}
	}
	return a[:n]
}
