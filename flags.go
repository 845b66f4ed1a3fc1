package main

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/peterbourgon/ff/v3"
	"go.abhg.dev/codetabs/internal/flagvalue"
	"go.abhg.dev/codetabs/internal/manifest"
	"golang.org/x/text/language"
)

var (
	errHelp             = flag.ErrHelp
	errInvalidArguments = errors.New("invalid arguments")
)

// _envPrefix is the prefix for environment variables
// that set flags. For example, CODETABS_OUT sets -out.
const _envPrefix = "CODETABS"

// params holds all arguments for codetabs.
type params struct {
	version bool
	help    Help

	Config string
	Debug  flagvalue.FileSwitch

	OutputDir string
	Basename  string
	Home      string
	Embedded  bool

	FrontMatter string
	Highlight   string
	Title       string
	Lang        flagvalue.Language
	Dark        bool
	Tabs        []manifest.TabSpec
	Select      string

	Preview bool
	Watch   bool

	// Manifest is the path to the manifest file, if any.
	Manifest string
}

// cliParser parses the command line arguments for codetabs.
type cliParser struct {
	Stdout io.Writer
	Stderr io.Writer
}

func (cmd *cliParser) newFlagSet() (*params, *flag.FlagSet) {
	flag := flag.NewFlagSet("codetabs", flag.ContinueOnError)
	flag.SetOutput(cmd.Stderr)
	flag.Usage = func() {
		_ = DefaultHelp.Write(cmd.Stderr)
	}

	var p params

	// Filesystem:
	flag.StringVar(&p.OutputDir, "out", "_site", "")
	flag.StringVar(&p.Basename, "basename", "index.html", "")
	flag.StringVar(&p.Home, "home", "", "")

	// HTML output:
	flag.BoolVar(&p.Embedded, "embed", false, "")
	flag.StringVar(&p.FrontMatter, "frontmatter", "", "")
	flag.StringVar(&p.Highlight, "highlight", "", "")

	// Content:
	flag.StringVar(&p.Title, "title", "", "")
	flag.Var(&p.Lang, "lang", "")
	flag.BoolVar(&p.Dark, "dark", false, "")
	flag.Var(flagvalue.ListOf(&p.Tabs), "tab", "")
	flag.StringVar(&p.Select, "select", "", "")

	// Modes:
	flag.BoolVar(&p.Preview, "preview", false, "")
	flag.BoolVar(&p.Watch, "watch", false, "")

	// Program-level:
	flag.StringVar(&p.Config, "config", "", "")
	flag.Var(&p.Debug, "debug", "")
	flag.BoolVar(&p.version, "version", false, "")
	flag.Var(&p.help, "help", "")
	flag.Var(&p.help, "h", "")

	return &p, flag
}

func (cmd *cliParser) Parse(args []string) (*params, error) {
	p, flag := cmd.newFlagSet()
	err := ff.Parse(flag, args,
		ff.WithEnvVarPrefix(_envPrefix),
		ff.WithConfigFileFlag("config"),
		ff.WithConfigFileParser(ff.PlainParser),
	)
	if err != nil {
		return nil, err
	}
	args = flag.Args()

	if p.version {
		fmt.Fprintln(cmd.Stdout, "codetabs", _version)
		return nil, errHelp
	}

	if p.help == DefaultHelp && len(args) > 0 {
		// The user might have done "-h foo"
		// instead of "-h=foo".
		// If the argument is a known help topic,
		// take it.
		var h Help
		if err := h.Set(args[0]); err == nil && h.Known() {
			p.help = h
		}
	}

	switch p.help {
	case NoHelp:
		// proceed as usual
	default:
		if err := p.help.Write(cmd.Stderr); err != nil {
			fmt.Fprintln(cmd.Stderr, err)
		}
		return nil, errHelp
	}

	if p.Preview && p.Watch {
		fmt.Fprintln(cmd.Stderr, "Cannot use -preview with -watch.")
		_ = UsageHelp.Write(cmd.Stderr)
		return nil, errInvalidArguments
	}

	switch len(args) {
	case 0:
		if len(p.Tabs) == 0 {
			p.Manifest = manifest.DefaultFile
		}
	case 1:
		p.Manifest = args[0]
	default:
		fmt.Fprintf(cmd.Stderr, "Expected at most one manifest, got %q.\n", args)
		_ = UsageHelp.Write(cmd.Stderr)
		return nil, errInvalidArguments
	}

	return p, nil
}

// langOr returns the language requested with -lang,
// or fallback if the flag wasn't set.
func (p *params) langOr(fallback language.Tag) language.Tag {
	if tag := p.Lang.Tag(); tag != language.Und {
		return tag
	}
	return fallback
}
