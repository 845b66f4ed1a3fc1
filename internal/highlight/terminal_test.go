package highlight

import (
	"errors"
	"testing"

	chroma "github.com/alecthomas/chroma/v2"
	"github.com/stretchr/testify/assert"
)

func TestTerminalHighlighter_Highlight(t *testing.T) {
	t.Parallel()

	var h TerminalHighlighter
	got := h.Highlight(&Code{
		Spans: []Span{
			&TokenSpan{
				Tokens: []chroma.Token{
					{Type: chroma.Comment, Value: "/* foo */"},
					{Type: chroma.Text, Value: "bar"},
				},
			},
			&TextSpan{Text: []byte(" baz")},
			&ErrorSpan{Msg: "oops", Err: errors.New("great sadness")},
		},
	})

	assert.Contains(t, got, "/* foo */")
	assert.Contains(t, got, "bar")
	assert.Contains(t, got, " baz")
	assert.Contains(t, got, "oops: great sadness")
	assert.Contains(t, got, "\x1b[", "expected ANSI escapes")
}

func TestTerminalHighlighter_nil(t *testing.T) {
	t.Parallel()

	assert.Empty(t, new(TerminalHighlighter).Highlight(nil))
}

func TestCode_Text(t *testing.T) {
	t.Parallel()

	code := &Code{
		Spans: []Span{
			&TokenSpan{Tokens: []chroma.Token{{Value: "foo"}, {Value: "("}}},
			&ErrorSpan{Msg: "ignored", Err: errors.New("ignored")},
			&TextSpan{Text: []byte(")")},
		},
	}
	assert.Equal(t, "foo()", code.Text())
	assert.Empty(t, (*Code)(nil).Text())
}
