// Package footer describes the site footer:
// a newsletter prompt, lists of links, a hosting credit,
// and a copyright notice.
//
// The footer is plain data.
// Rendering it is the job of the html package.
package footer

import (
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
)

// Footer is the content of the page footer.
type Footer struct {
	// Lang is the language the footer is written in.
	Lang language.Tag

	// Blurb invites readers to sign up for the newsletter.
	Blurb string

	// Newsletter is the sign-up form.
	Newsletter Newsletter

	// Lists are the columns of links.
	Lists []LinkList

	// Hosting credits the hosting provider.
	Hosting Link

	// HostingPrefix precedes the provider name in the hosting credit.
	HostingPrefix string

	Copyright Copyright

	// DarkMode is set if the page supports a dark color scheme.
	DarkMode bool
}

// Newsletter is the newsletter sign-up form.
type Newsletter struct {
	// Action is the URL the form posts to.
	Action string

	Placeholder string
	Submit      string
}

// LinkList is a titled column of links.
type LinkList struct {
	Title string
	Links []Link
}

// Link is a single hyperlink.
type Link struct {
	Text string
	Href string

	// External links open in a new tab.
	External bool
}

// Rel returns the rel attribute for this link.
func (l Link) Rel() string {
	if l.External {
		return "noopener noreferrer"
	}
	return ""
}

// Target returns the target attribute for this link.
func (l Link) Target() string {
	if l.External {
		return "_blank"
	}
	return ""
}

// Copyright is the copyright notice.
type Copyright struct {
	Year   int
	Holder string

	// Format places the year and holder into the notice.
	// It must contain "{year}" and "{holder}".
	Format string
}

// String renders the copyright notice.
func (c Copyright) String() string {
	format := c.Format
	if format == "" {
		format = "Copyright © {year} {holder}"
	}
	return strings.NewReplacer(
		"{year}", strconv.Itoa(c.Year),
		"{holder}", c.Holder,
	).Replace(format)
}

// ClassNames returns the CSS classes for the credits line.
// Pages with dark mode support swap colors with the scheme;
// others always use the light text color.
func (f *Footer) ClassNames() string {
	classes := []string{"text-xs", "font-secondary"}
	if f.DarkMode {
		classes = append(classes, "dark:text-off-white", "text-black")
	} else {
		classes = append(classes, "text-off-white")
	}
	return strings.Join(classes, " ")
}

// Default builds the stock site footer in the language best matching tag,
// with the copyright year taken from now.
func Default(tag language.Tag, now time.Time) *Footer {
	cat := lookupCatalog(tag)
	return &Footer{
		Lang:  cat.lang,
		Blurb: cat.blurb,
		Newsletter: Newsletter{
			Action:      "https://blitzjs.us4.list-manage.com/subscribe/post",
			Placeholder: cat.emailPlaceholder,
			Submit:      cat.subscribe,
		},
		Lists: []LinkList{
			{
				Title: cat.docs,
				Links: []Link{
					{Text: cat.allDocs, Href: "/docs"},
					{Text: cat.getStarted, Href: "/docs/get-started"},
					{Text: cat.contributing, Href: "/docs/contributing"},
				},
			},
			{
				Title: cat.community,
				Links: []Link{
					{Text: "Discord", Href: "https://discord.blitzjs.com/", External: true},
					{Text: cat.forum, Href: "https://github.com/blitz-js/blitz/discussions", External: true},
					{Text: "Twitter", Href: "https://twitter.com/blitz_js", External: true},
				},
			},
			{
				Title: cat.more,
				Links: []Link{
					{Text: "GitHub", Href: "https://github.com/blitz-js/blitz", External: true},
					{Text: cat.wiki, Href: "https://github.com/blitz-js/blitz/wiki", External: true},
					{Text: cat.store, Href: "https://store.blitzjs.com", External: true},
				},
			},
		},
		Hosting: Link{
			Text:     "Vercel",
			Href:     "https://vercel.com/?utm_source=blitzjs",
			External: true,
		},
		HostingPrefix: cat.hostedOn,
		Copyright: Copyright{
			Year:   now.Year(),
			Holder: cat.holder,
			Format: cat.copyright,
		},
	}
}
