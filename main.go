package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"text/template"
	"time"

	"braces.dev/errtrace"
	"github.com/spf13/afero"
	"go.abhg.dev/codetabs/internal/footer"
	"go.abhg.dev/codetabs/internal/highlight"
	"go.abhg.dev/codetabs/internal/html"
	"go.abhg.dev/codetabs/internal/manifest"
	"go.abhg.dev/codetabs/internal/preview"
	"go.abhg.dev/codetabs/internal/tabs"
	"golang.org/x/text/language"
)

func main() {
	cmd := mainCmd{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
	os.Exit(cmd.Run(os.Args[1:]))
}

// mainCmd is the actual entry point to the program.
type mainCmd struct {
	Stdin  io.Reader // == os.Stdin
	Stdout io.Writer // == os.Stdout
	Stderr io.Writer // == os.Stderr

	// Fs is the filesystem snippets are read from
	// and pages are written to.
	// Defaults to the OS filesystem.
	Fs afero.Fs

	// Now reports the current time.
	// Defaults to time.Now.
	Now func() time.Time

	log *log.Logger
}

func (cmd *mainCmd) Run(args []string) (exitCode int) {
	cmd.log = log.New(cmd.Stderr, "", 0)
	if cmd.Fs == nil {
		cmd.Fs = afero.NewOsFs()
	}
	if cmd.Now == nil {
		cmd.Now = time.Now
	}

	opts, err := (&cliParser{
		Stdout: cmd.Stdout,
		Stderr: cmd.Stderr,
	}).Parse(args)
	if err != nil {
		// '$cmd -h' should exit with zero.
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		// No need to print anything.
		// Parse prints messages.
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cmd.run(ctx, opts); err != nil {
		cmd.log.Printf("codetabs: %v", err)
		return 1
	}
	return 0
}

func (cmd *mainCmd) run(ctx context.Context, opts *params) (err error) {
	debugw, err := opts.Debug.Open(cmd.Stderr)
	if err != nil {
		return errtrace.Wrap(fmt.Errorf("open debug log: %w", err))
	}
	defer func() {
		err = errors.Join(err, debugw.Close())
	}()
	debugLog := log.New(debugw, "", 0)

	hl, err := highlight.ParseHighlighter(opts.Highlight)
	if err != nil {
		return errtrace.Wrap(fmt.Errorf("bad highlight style: %w", err))
	}

	var frontmatter *template.Template
	if len(opts.FrontMatter) > 0 {
		frontmatter, err = template.New("frontmatter").Parse(opts.FrontMatter)
		if err != nil {
			return errtrace.Wrap(fmt.Errorf("bad frontmatter template: %w", err))
		}
	}

	loader := siteLoader{
		Log:    debugLog,
		Warn:   cmd.log,
		Loader: &manifest.Loader{Fs: cmd.Fs},
		Params: opts,
		Now:    cmd.Now,
	}

	if opts.Preview {
		site, err := loader.Load()
		if err != nil {
			return errtrace.Wrap(err)
		}

		_, err = preview.Run(ctx, site.Tabs, preview.Options{
			Input:  cmd.Stdin,
			Output: cmd.Stdout,
			Highlighter: &highlight.TerminalHighlighter{
				Style: hl.Style,
			},
		})
		return errtrace.Wrap(err)
	}

	renderer := html.Renderer{
		Home:        opts.Home,
		Embedded:    opts.Embedded,
		FrontMatter: frontmatter,
		Highlighter: hl,
	}
	build := func() ([]string, error) {
		site, err := loader.Load()
		if err != nil {
			return nil, errtrace.Wrap(err)
		}

		gen := Generator{
			Log:      cmd.log,
			Renderer: &renderer,
			Fs:       cmd.Fs,
			OutDir:   opts.OutputDir,
			Basename: opts.Basename,
			Title:    site.Title,
			Footer:   site.Footer,
		}
		if err := gen.Generate(site.Tabs); err != nil {
			return nil, errtrace.Wrap(err)
		}
		return site.Files, nil
	}

	files, err := build()
	if err != nil || !opts.Watch {
		return errtrace.Wrap(err)
	}

	cmd.log.Printf("Watching %d files for changes", len(files))
	watcher := Watcher{
		Log:   cmd.log,
		Build: build,
	}
	return errtrace.Wrap(watcher.Watch(ctx, files))
}

// site is everything needed to generate pages.
type site struct {
	Title  string
	Tabs   tabs.Set
	Footer *footer.Footer // nil if disabled

	// Files the site was built from.
	Files []string
}

// siteLoader combines the manifest with command line overrides.
type siteLoader struct {
	Log    *log.Logger // debug output
	Warn   *log.Logger
	Loader *manifest.Loader
	Params *params
	Now    func() time.Time
}

func (l *siteLoader) Load() (*site, error) {
	p := l.Params

	m := new(manifest.Manifest)
	var files []string
	if p.Manifest != "" {
		l.Log.Printf("Loading manifest %v", p.Manifest)
		var err error
		m, err = l.Loader.Load(p.Manifest)
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
		files = append(files, p.Manifest)
	}

	snippets, err := l.Loader.Snippets(m)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}

	// -tab paths are relative to the working directory,
	// not the manifest.
	flagSnippets, err := l.Loader.Snippets(&manifest.Manifest{Tabs: p.Tabs})
	if err != nil {
		return nil, errtrace.Wrap(fmt.Errorf("-tab: %w", err))
	}
	snippets = append(snippets, flagSnippets...)
	for _, s := range snippets {
		l.Log.Printf("Tab %q (%v)", s.Title, s.Lang)
	}

	set, err := manifest.Tabs(snippets)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}

	if p.Select != "" {
		set, err = selectTab(set, p.Select)
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
	}

	title := m.Title
	if p.Title != "" {
		title = p.Title
	}

	var foot *footer.Footer
	if !m.Footer.Disabled {
		tag := language.Und
		if m.Footer.Lang != "" {
			tag, err = language.Parse(m.Footer.Lang)
			if err != nil {
				return nil, errtrace.Wrap(fmt.Errorf("footer language: %w", err))
			}
		}
		tag = p.langOr(tag)
		foot = footer.Default(tag, l.Now())
		foot.DarkMode = m.Footer.DarkMode || p.Dark
		if !sameBase(tag, foot.Lang) {
			l.Warn.Printf("Footer is not available in %v, using %v. Available languages: %v",
				tag, foot.Lang, footer.Languages())
		}
	}

	return &site{
		Title:  title,
		Tabs:   set,
		Footer: foot,
		Files:  append(files, manifest.Files(snippets)...),
	}, nil
}

// sameBase reports whether want is unset
// or has the same base language as got.
func sameBase(want, got language.Tag) bool {
	if want == language.Und {
		return true
	}
	wb, _ := want.Base()
	gb, _ := got.Base()
	return wb == gb
}

// selectTab selects a tab by title, or failing that, by index.
func selectTab(set tabs.Set, name string) (tabs.Set, error) {
	if idx := set.IndexOf(name); idx >= 0 {
		return set.Select(idx), nil
	}

	idx, err := strconv.Atoi(name)
	if err != nil {
		return set, errtrace.Wrap(fmt.Errorf("unknown tab %q", name))
	}
	set, err = set.Lookup(idx)
	return set, errtrace.Wrap(err)
}
