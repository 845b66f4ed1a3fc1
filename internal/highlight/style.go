package highlight

import (
	"fmt"
	"sort"
	"strings"

	"braces.dev/errtrace"
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
)

// PlainStyle is a minimal syntax highlighting style for Chroma.
// It leaves most text as-is, and fades comments ever so slightly.
var PlainStyle = chroma.MustNewStyle("plain", map[chroma.TokenType]string{
	chroma.Comment:    "#666666",
	chroma.PreWrapper: "bg:#eeeeee",
	chroma.Background: "bg:#eeeeee",
})

func init() {
	styles.Register(PlainStyle)
}

// ParseHighlighter builds a Highlighter from a specification
// of the form "[classes:|inline:]style".
//
// The style is the name of a registered Chroma style.
// If unset, [PlainStyle] is used.
// The prefix selects between CSS classes (the default)
// and inline style attributes.
func ParseHighlighter(spec string) (*Highlighter, error) {
	useClasses := true
	name := spec
	if mode, rest, ok := strings.Cut(spec, ":"); ok {
		switch mode {
		case "classes":
		case "inline":
			useClasses = false
		default:
			return nil, errtrace.Wrap(fmt.Errorf("unknown highlight mode %q: expected 'classes' or 'inline'", mode))
		}
		name = rest
	}

	style, err := LookupStyle(name)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return &Highlighter{Style: style, UseClasses: useClasses}, nil
}

// LookupStyle finds a registered Chroma style by name.
// An empty name refers to [PlainStyle].
func LookupStyle(name string) (*chroma.Style, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return PlainStyle, nil
	}

	if style, ok := styles.Registry[name]; ok {
		return style, nil
	}

	names := styles.Names()
	sort.Strings(names)
	return nil, errtrace.Wrap(fmt.Errorf("unknown style %q: valid values are %q", name, names))
}
