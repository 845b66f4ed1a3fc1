package flagvalue

import (
	"flag"

	"braces.dev/errtrace"
	"golang.org/x/text/language"
)

// Language is a flag that accepts a BCP 47 language tag.
type Language language.Tag

var _ flag.Getter = (*Language)(nil)

// Tag returns the parsed language tag.
func (l *Language) Tag() language.Tag { return language.Tag(*l) }

// Get returns the language.Tag.
func (l *Language) Get() any { return l.Tag() }

// String returns the canonical form of the tag.
func (l *Language) String() string {
	return l.Tag().String()
}

// Set parses a language tag.
func (l *Language) Set(s string) error {
	tag, err := language.Parse(s)
	if err != nil {
		return errtrace.Wrap(err)
	}
	*l = Language(tag)
	return nil
}
