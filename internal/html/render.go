// Package html renders the tabbed code viewer and the site footer as HTML.
package html

import (
	"bytes"
	"embed"
	"html/template"
	"io"
	"io/fs"
	"path"
	"path/filepath"
	ttemplate "text/template"

	"braces.dev/errtrace"
	"github.com/spf13/afero"
	"go.abhg.dev/codetabs/internal/footer"
	"go.abhg.dev/codetabs/internal/highlight"
	"go.abhg.dev/codetabs/internal/relative"
	"go.abhg.dev/codetabs/internal/tabs"
)

// StaticDir is the directory inside the output
// that holds stylesheets and other assets.
const StaticDir = "_"

var (
	//go:embed tmpl/*.html
	_tmplFS embed.FS

	//go:embed static/**
	_staticFS embed.FS

	// Trick borrowed from pkgsite:
	// Unusable function references at parse time,
	// and then Clone and replace at render time.
	// This way, template validity is still
	// verified at init.
	_pageTmpl = template.Must(
		template.New("page.html").
			Funcs((*render)(nil).FuncMap()).
			ParseFS(_tmplFS, "tmpl/page.html", "tmpl/layout.html", "tmpl/codeviewer.html", "tmpl/footer.html"),
	)
)

// Highlighter renders code into HTML.
type Highlighter interface {
	Highlight(*highlight.Code) string
	WriteCSS(io.Writer) error
}

var _ Highlighter = (*highlight.Highlighter)(nil)

// Renderer renders components into HTML.
type Renderer struct {
	// Path to the home page of the generated site.
	Home string

	// Whether we're in embedded mode.
	// In this mode, output will only contain the components
	// and will not generate complete, stylized HTML pages.
	Embedded bool

	// FrontMatter to include at the top of each file, if any.
	FrontMatter *ttemplate.Template

	// Highlighter renders code blocks into HTML.
	Highlighter Highlighter
}

func (r *Renderer) templateName() string {
	if r.Embedded {
		return "Body"
	}
	return "Page"
}

// WriteStatic dumps the contents of static/ into the given directory.
//
// This is a no-op if the renderer is running in embedded mode.
func (r *Renderer) WriteStatic(fsys afero.Fs, dir string) error {
	if r.Embedded {
		return nil
	}

	dir = filepath.Join(dir, StaticDir)
	static, err := fs.Sub(_staticFS, "static")
	if err != nil {
		return errtrace.Wrap(err)
	}
	return errtrace.Wrap(fs.WalkDir(static, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil || path == "." {
			return err
		}

		outPath := filepath.Join(dir, filepath.FromSlash(path))
		if d.IsDir() {
			return fsys.MkdirAll(outPath, 0o755)
		}

		bs, err := fs.ReadFile(static, path)
		if err != nil {
			return err
		}

		// The highlighter's classes are appended to the main stylesheet
		// so that pages need only one <link>.
		if path == "css/main.css" && r.Highlighter != nil {
			buff := bytes.NewBuffer(bs)
			buff.WriteString("\n")
			if err := r.Highlighter.WriteCSS(buff); err != nil {
				return err
			}
			bs = buff.Bytes()
		}

		return afero.WriteFile(fsys, outPath, bs, 0o644)
	}))
}

type frontmatterData struct {
	Path    string
	Title   string
	Index   int
	NumTabs int
	Lang    string
}

func (r *Renderer) renderFrontmatter(w io.Writer, d frontmatterData) error {
	if r.FrontMatter == nil {
		return nil
	}

	var buff bytes.Buffer
	if err := r.FrontMatter.Execute(&buff, d); err != nil {
		return errtrace.Wrap(err)
	}

	bs := bytes.TrimSpace(buff.Bytes())
	if len(bs) == 0 {
		return nil
	}
	bs = append(bs, '\n', '\n')

	_, err := w.Write(bs)
	return errtrace.Wrap(err)
}

// PageInfo specifies a page that should be rendered.
//
// A page shows the code viewer in one selection state,
// followed by the footer.
type PageInfo struct {
	// Path to the directory holding this page,
	// relative to the root of the output.
	// Empty for the root.
	Path string

	// Title of the page.
	Title string

	// Tabs is the state of the code viewer on this page.
	Tabs tabs.Set

	// TabPaths holds the page path for each tab in Tabs.
	// The tab strip links to these.
	// If nil, the tab strip has no links.
	TabPaths []string

	// Footer to render at the bottom of the page, if any.
	Footer *footer.Footer
}

// TabView is a single entry in the rendered tab strip.
type TabView struct {
	Title      string
	ShortTitle string
	Selected   bool

	// Href is a link to the page with this tab selected,
	// or empty if there's no such page.
	Href string
}

// CodeViewer is the rendered state of a tabbed code viewer.
type CodeViewer struct {
	Tabs []TabView

	// Code of the selected tab.
	// This is the only code shown.
	Code *highlight.Code

	// Language of the selected tab.
	Language string
}

type pageData struct {
	Title  string
	Lang   string
	Viewer CodeViewer
	Footer *footer.Footer
}

// NewCodeViewer projects the given tab state into a CodeViewer,
// resolving links relative to the page at dir.
func NewCodeViewer(set tabs.Set, dir string, tabPaths []string) CodeViewer {
	all := set.Tabs()
	views := make([]TabView, len(all))
	for i, t := range all {
		views[i] = TabView{
			Title:      t.Title,
			ShortTitle: t.CompactTitle(),
			Selected:   t.Selected,
		}
		if i < len(tabPaths) {
			views[i].Href = relative.Link(dir, tabPaths[i])
		}
	}

	_, sel := set.Selected()
	return CodeViewer{
		Tabs:     views,
		Code:     sel.Tokens,
		Language: sel.Language,
	}
}

// RenderPage renders a page with the code viewer and footer.
func (r *Renderer) RenderPage(w io.Writer, info *PageInfo) error {
	idx, _ := info.Tabs.Selected()
	var lang string
	if info.Footer != nil {
		lang = info.Footer.Lang.String()
	}

	err := r.renderFrontmatter(w, frontmatterData{
		Path:    info.Path,
		Title:   info.Title,
		Index:   idx,
		NumTabs: info.Tabs.Len(),
		Lang:    lang,
	})
	if err != nil {
		return errtrace.Wrap(err)
	}

	hl := r.Highlighter
	if hl == nil {
		hl = new(highlight.Highlighter)
	}
	render := render{
		Home:        r.Home,
		Path:        info.Path,
		Highlighter: hl,
	}
	data := pageData{
		Title:  info.Title,
		Lang:   lang,
		Viewer: NewCodeViewer(info.Tabs, info.Path, info.TabPaths),
		Footer: info.Footer,
	}
	return errtrace.Wrap(template.Must(_pageTmpl.Clone()).
		Funcs(render.FuncMap()).
		ExecuteTemplate(w, r.templateName(), &data))
}

type render struct {
	Home string
	Path string

	Highlighter Highlighter
}

func (r *render) FuncMap() template.FuncMap {
	return template.FuncMap{
		"code":   r.code,
		"static": r.static,
	}
}

func (r *render) static(p string) string {
	return relative.Path(r.Path, path.Join(r.Home, StaticDir, p))
}

func (r *render) code(code *highlight.Code) template.HTML {
	if code == nil {
		return ""
	}
	return template.HTML(r.Highlighter.Highlight(code))
}
