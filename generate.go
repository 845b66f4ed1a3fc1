package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"
	"unicode"

	"braces.dev/errtrace"
	"github.com/spf13/afero"
	"go.abhg.dev/codetabs/internal/footer"
	"go.abhg.dev/codetabs/internal/html"
	"go.abhg.dev/codetabs/internal/tabs"
)

// Renderer renders the code viewer and footer to HTML.
type Renderer interface {
	WriteStatic(fsys afero.Fs, dir string) error
	RenderPage(io.Writer, *html.PageInfo) error
}

var _ Renderer = (*html.Renderer)(nil)

// Generator generates pages for a set of code tabs.
//
// In terms of code organization,
// Generator's purpose is to add a separation between main
// and the program's core logic to aid in testability.
type Generator struct {
	Log      *log.Logger
	Renderer Renderer

	// Fs is the filesystem to write to.
	// Defaults to the OS filesystem.
	Fs afero.Fs

	OutDir string

	// Basename is the name of each generated page.
	// Defaults to index.html.
	Basename string

	Title  string
	Footer *footer.Footer
}

// Generate writes one page for each tab in the set.
//
// The page for the tab selected in set is written at the root
// of the output directory.
// Pages for the other tabs are written to subdirectories
// named after the tab titles.
func (g *Generator) Generate(set tabs.Set) error {
	fsys := g.Fs
	if fsys == nil {
		fsys = afero.NewOsFs()
	}

	if err := g.Renderer.WriteStatic(fsys, g.OutDir); err != nil {
		return errtrace.Wrap(err)
	}

	paths := tabPaths(set)
	for i := range set.Len() {
		if err := g.renderTab(fsys, set.Select(i), paths); err != nil {
			return errtrace.Wrap(err)
		}
	}
	return nil
}

func (g *Generator) renderTab(fsys afero.Fs, set tabs.Set, paths []string) (err error) {
	idx, tab := set.Selected()
	g.Log.Printf("Rendering tab %q", tab.Title)

	dir := filepath.Join(g.OutDir, filepath.FromSlash(paths[idx]))
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return errtrace.Wrap(err)
	}

	basename := g.Basename
	if basename == "" {
		basename = "index.html"
	}
	f, err := fsys.Create(filepath.Join(dir, basename))
	if err != nil {
		return errtrace.Wrap(err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()

	info := html.PageInfo{
		Path:     paths[idx],
		Title:    g.Title,
		Tabs:     set,
		TabPaths: paths,
		Footer:   g.Footer,
	}
	if err := g.Renderer.RenderPage(f, &info); err != nil {
		return errtrace.Wrap(fmt.Errorf("render %q: %w", tab.Title, err))
	}
	return nil
}

// tabPaths picks an output directory for the page of each tab,
// relative to the output root.
// The initially selected tab's page is the root.
func tabPaths(set tabs.Set) []string {
	sel, _ := set.Selected()
	seen := map[string]struct{}{
		html.StaticDir: {},
	}

	paths := make([]string, set.Len())
	for i, tab := range set.Tabs() {
		if i == sel {
			continue
		}

		base := slugify(tab.Title)
		if base == "" {
			base = fmt.Sprintf("tab-%d", i+1)
		}

		p := base
		for n := 2; ; n++ {
			if _, ok := seen[p]; !ok {
				break
			}
			p = fmt.Sprintf("%v-%d", base, n)
		}
		seen[p] = struct{}{}
		paths[i] = p
	}
	return paths
}

// slugify turns a title into a lowercase path component.
// Runs of characters other than letters and digits become a single "-".
func slugify(title string) string {
	var sb strings.Builder
	dash := false
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if dash && sb.Len() > 0 {
				sb.WriteByte('-')
			}
			dash = false
			sb.WriteRune(r)
			continue
		}
		dash = true
	}
	return sb.String()
}
