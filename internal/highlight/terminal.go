package highlight

import (
	"fmt"
	"strings"
	"sync"

	chroma "github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
)

// TerminalHighlighter turns [Code] into text
// with ANSI escape sequences for a terminal.
type TerminalHighlighter struct {
	// Style used for syntax highlighting of code.
	// Defaults to [PlainStyle].
	Style *chroma.Style

	// Formatter is the name of a Chroma terminal formatter.
	// Defaults to "terminal256".
	Formatter string

	once sync.Once
	fmt  chroma.Formatter
}

func (h *TerminalHighlighter) init() {
	h.once.Do(func() {
		if h.Style == nil {
			h.Style = PlainStyle
		}
		name := h.Formatter
		if name == "" {
			name = "terminal256"
		}
		h.fmt = formatters.Get(name)
	})
}

// Highlight renders the given code block for a terminal.
func (h *TerminalHighlighter) Highlight(code *Code) string {
	h.init()

	if code == nil {
		return ""
	}

	var sb strings.Builder
	for _, span := range code.Spans {
		switch b := span.(type) {
		case *TokenSpan:
			_ = h.fmt.Format(&sb, h.Style, chroma.Literator(b.Tokens...))
		case *TextSpan:
			sb.Write(b.Text)
		case *ErrorSpan:
			fmt.Fprintf(&sb, "%v: %v\n", b.Msg, b.Err)
		default:
			panic(fmt.Sprintf("unrecognized node type %T", b))
		}
	}
	return sb.String()
}
