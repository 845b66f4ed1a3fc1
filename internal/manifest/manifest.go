// Package manifest loads the description of a site's code tabs and footer
// from a YAML file.
//
//	title: Blitz.js
//	footer:
//	  lang: zh-CN
//	  dark_mode: true
//	tabs:
//	  - title: mutations/createProject.ts
//	    short_title: createProject.ts
//	    file: snippets/createProject.ts
//	  - title: pages/projects/new.tsx
//	    lang: tsx
//	    source: |
//	      export default NewProjectPage
//
// Relative file paths and globs are resolved
// against the directory containing the manifest.
package manifest

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"braces.dev/errtrace"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"
	"go.abhg.dev/codetabs/internal/highlight"
	"go.abhg.dev/codetabs/internal/tabs"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the manifest file name used if none is specified.
const DefaultFile = "codetabs.yaml"

// Manifest describes the contents of the generated site.
type Manifest struct {
	// Title of the generated pages.
	Title string `yaml:"title"`

	Footer FooterSpec `yaml:"footer"`

	Tabs []TabSpec `yaml:"tabs"`

	// Dir is the directory that relative paths are resolved against.
	// Load sets it to the directory of the manifest file.
	Dir string `yaml:"-"`
}

// FooterSpec configures the stock footer.
type FooterSpec struct {
	// Lang is a BCP 47 language tag.
	Lang string `yaml:"lang"`

	// DarkMode enables dark color scheme classes.
	DarkMode bool `yaml:"dark_mode"`

	// Disabled omits the footer.
	Disabled bool `yaml:"disabled"`
}

// TabSpec describes one or more tabs.
//
// Exactly one of Source and File must be set.
// If File is a glob, it expands to one tab per match,
// each titled with the matching path.
type TabSpec struct {
	Title      string `yaml:"title"`
	ShortTitle string `yaml:"short_title"`

	// Lang is the language of the snippet.
	// Defaults to guessing from the file name or title.
	Lang string `yaml:"lang"`

	Source string `yaml:"source"`
	File   string `yaml:"file"`

	// Selected marks the tab shown initially.
	Selected bool `yaml:"selected"`
}

var _ flag.Getter = (*TabSpec)(nil)

// Get returns the TabSpec.
func (ts *TabSpec) Get() any { return ts }

// String returns the TabSpec in the form accepted by Set.
func (ts *TabSpec) String() string {
	return fmt.Sprintf("%s=%s", ts.Title, ts.File)
}

// Set parses a tab from the command line in the form "title=file".
func (ts *TabSpec) Set(s string) error {
	title, file, ok := strings.Cut(s, "=")
	if !ok {
		return errtrace.Wrap(errors.New("expected form 'title=file'"))
	}
	ts.Title = title
	ts.File = file
	return nil
}

// Snippet is a single source snippet resolved from a [TabSpec].
type Snippet struct {
	Title      string
	ShortTitle string
	Lang       string
	Source     string
	Selected   bool

	// Path is the file the source was read from, if any.
	Path string
}

// Loader reads manifests and snippets from a filesystem.
type Loader struct {
	// Fs is the filesystem to read from.
	// Defaults to the OS filesystem.
	Fs afero.Fs
}

func (l *Loader) fs() afero.Fs {
	if l.Fs == nil {
		return afero.NewOsFs()
	}
	return l.Fs
}

// Load reads and parses the manifest at the given path.
func (l *Loader) Load(name string) (*Manifest, error) {
	bs, err := afero.ReadFile(l.fs(), name)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}

	var m Manifest
	dec := yaml.NewDecoder(bytes.NewReader(bs))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		return nil, errtrace.Wrap(fmt.Errorf("%v: %w", name, err))
	}
	m.Dir = filepath.Dir(name)
	return &m, nil
}

// Snippets resolves the tabs of a manifest into snippets,
// reading files and expanding globs.
func (l *Loader) Snippets(m *Manifest) ([]Snippet, error) {
	var snippets []Snippet
	for i, spec := range m.Tabs {
		got, err := l.resolve(m.Dir, spec)
		if err != nil {
			return nil, errtrace.Wrap(fmt.Errorf("tab %d: %w", i, err))
		}
		snippets = append(snippets, got...)
	}
	return snippets, nil
}

func (l *Loader) resolve(dir string, spec TabSpec) ([]Snippet, error) {
	switch {
	case spec.Source != "" && spec.File != "":
		return nil, errtrace.Wrap(errors.New("only one of 'source' and 'file' may be set"))
	case spec.Source != "":
		if spec.Title == "" {
			return nil, errtrace.Wrap(errors.New("'title' is required with 'source'"))
		}
		return []Snippet{spec.snippet(spec.Title, spec.Source, "")}, nil
	case spec.File == "":
		return nil, errtrace.Wrap(errors.New("one of 'source' or 'file' is required"))
	}

	pattern := filepath.ToSlash(spec.File)
	if !isGlob(pattern) {
		src, err := l.read(dir, pattern)
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
		title := spec.Title
		if title == "" {
			title = pattern
		}
		return []Snippet{spec.snippet(title, src, joinDir(dir, pattern))}, nil
	}

	if spec.Selected {
		return nil, errtrace.Wrap(fmt.Errorf("glob %q: 'selected' is not supported for globs", pattern))
	}
	if spec.Title != "" || spec.ShortTitle != "" {
		return nil, errtrace.Wrap(fmt.Errorf("glob %q: tabs are titled by file name", pattern))
	}

	// Absolute globs are matched from their static prefix
	// instead of the manifest directory.
	root, rel := dir, pattern
	var prefix string
	if isAbs(pattern) {
		prefix, rel = doublestar.SplitPattern(pattern)
		root = filepath.FromSlash(prefix)
	}

	matches, err := doublestar.Glob(afero.NewIOFS(l.dirFs(root)), rel)
	if err != nil {
		return nil, errtrace.Wrap(fmt.Errorf("glob %q: %w", pattern, err))
	}
	if len(matches) == 0 {
		return nil, errtrace.Wrap(fmt.Errorf("glob %q: no matches", pattern))
	}
	sort.Strings(matches)

	snippets := make([]Snippet, 0, len(matches))
	for _, match := range matches {
		if prefix != "" {
			match = path.Join(prefix, match)
		}
		src, err := l.read(dir, match)
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
		s := spec.snippet(match, src, joinDir(dir, match))
		s.ShortTitle = path.Base(match)
		snippets = append(snippets, s)
	}
	return snippets, nil
}

// dirFs returns a filesystem rooted at dir.
func (l *Loader) dirFs(dir string) afero.Fs {
	if dir == "" || dir == "." {
		return l.fs()
	}
	return afero.NewBasePathFs(l.fs(), dir)
}

func (l *Loader) read(dir, name string) (string, error) {
	bs, err := afero.ReadFile(l.fs(), joinDir(dir, name))
	if err != nil {
		return "", errtrace.Wrap(err)
	}
	return string(bs), nil
}

func (spec TabSpec) snippet(title, src, file string) Snippet {
	lang := spec.Lang
	if lang == "" {
		lang = path.Base(title)
		if file != "" {
			lang = filepath.Base(file)
		}
	}
	return Snippet{
		Title:      title,
		ShortTitle: spec.ShortTitle,
		Lang:       lang,
		Source:     src,
		Selected:   spec.Selected,
		Path:       file,
	}
}

// joinDir resolves a slash-separated name against dir.
// Absolute names are returned as-is.
func joinDir(dir, name string) string {
	name = filepath.FromSlash(name)
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(dir, name)
}

func isAbs(p string) bool {
	return filepath.IsAbs(filepath.FromSlash(p))
}

func isGlob(p string) bool {
	return strings.ContainsAny(p, "*?[{")
}

// Tabs tokenizes the given snippets and builds a tab set from them.
func Tabs(snippets []Snippet) (tabs.Set, error) {
	all := make([]tabs.Tab, len(snippets))
	for i, s := range snippets {
		all[i] = tabs.Tab{
			Title:      s.Title,
			ShortTitle: s.ShortTitle,
			Language:   s.Lang,
			Tokens:     highlight.Tokenize(highlight.LexerFor(s.Lang), s.Source),
			Selected:   s.Selected,
		}
	}
	set, err := tabs.New(all...)
	return set, errtrace.Wrap(err)
}

// Files returns the files the given snippets were read from.
func Files(snippets []Snippet) []string {
	var files []string
	for _, s := range snippets {
		if s.Path != "" {
			files = append(files, s.Path)
		}
	}
	return files
}
