// Command tamilbible resolves Bible citations, looks up passages from the
// bundled Tamil corpus or the remote passage API, annotates text with
// clickable references and serves all of it over HTTP.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/alecthomas/kong"

	"github.com/FocuswithJustin/tamilbible/core/annotate"
	"github.com/FocuswithJustin/tamilbible/core/notes"
	"github.com/FocuswithJustin/tamilbible/core/sqlite"
	"github.com/FocuswithJustin/tamilbible/internal/api"
	"github.com/FocuswithJustin/tamilbible/internal/config"
	"github.com/FocuswithJustin/tamilbible/internal/corpus"
	"github.com/FocuswithJustin/tamilbible/internal/locator"
	"github.com/FocuswithJustin/tamilbible/internal/logging"
	"github.com/FocuswithJustin/tamilbible/internal/precache"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "0.1.0"

// Output streams, replaced in tests.
var (
	stdout io.Writer = os.Stdout
	stdin  io.Reader = os.Stdin
)

// Globals are flags shared by every command.
type Globals struct {
	Config    string `short:"c" help:"Configuration file (default: $CONFIG_PATH or ./config.yaml)" type:"path"`
	LogLevel  string `name:"log-level" help:"Log level: debug, info, warn, error"`
	LogFormat string `name:"log-format" help:"Log format: json, text"`
	Source    string `help:"Default passage source: local, sqlite, youversion, yvp"`
	CorpusDir string `name:"corpus-dir" help:"Local corpus directory" type:"path"`
	SQLite    string `name:"sqlite" help:"SQLite corpus built by build-db" type:"path"`
}

// CLI defines the command-line interface.
type CLI struct {
	Globals

	Serve    ServeCmd    `cmd:"" help:"Start the HTTP API server"`
	Resolve  ResolveCmd  `cmd:"" help:"Resolve a citation to a passage identifier"`
	Lookup   LookupCmd   `cmd:"" help:"Look up a passage by identifier or citation"`
	Annotate AnnotateCmd `cmd:"" help:"Wrap parenthesized citations in text or HTML with markers"`
	Notes    NotesCmd    `cmd:"" help:"Show study notes attached to a passage"`
	Books    BooksCmd    `cmd:"" help:"List the book registry"`
	Precache PrecacheCmd `cmd:"" help:"Write the offline precache manifest"`
	BuildDB  BuildDBCmd  `cmd:"" name:"build-db" help:"Copy the local corpus into a SQLite database"`
	Version  VersionCmd  `cmd:"" help:"Print version information"`
}

// load reads configuration, applies flag overrides and sets up logging.
func (g *Globals) load() (*app, error) {
	cfg, err := config.LoadFile(g.Config)
	if err != nil {
		return nil, err
	}

	if g.LogLevel != "" {
		cfg.Log.Level = g.LogLevel
	}
	if g.LogFormat != "" {
		cfg.Log.Format = g.LogFormat
	}
	if g.Source != "" {
		cfg.Bible.Source = g.Source
	}
	if g.CorpusDir != "" {
		cfg.Bible.CorpusDir = g.CorpusDir
		cfg.Bible.CorpusURL = ""
	}
	if g.SQLite != "" {
		cfg.Bible.SQLitePath = g.SQLite
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	level, _ := logging.ParseLevel(cfg.Log.Level)
	format, _ := logging.ParseFormat(cfg.Log.Format)
	logging.InitLogger(level, format)

	return newApp(cfg), nil
}

// ServeCmd starts the HTTP API.
type ServeCmd struct {
	Host string `help:"Listen address (overrides server.host)"`
	Port int    `short:"p" help:"Listen port (overrides server.port)"`
}

func (c *ServeCmd) Run(g *Globals) error {
	a, err := g.load()
	if err != nil {
		return err
	}
	defer a.Close()

	if c.Host != "" {
		a.cfg.Server.Host = c.Host
	}
	if c.Port != 0 {
		a.cfg.Server.Port = c.Port
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, err := a.Service(ctx)
	if err != nil {
		return err
	}
	idx, err := a.Notes("")
	if err != nil {
		return err
	}

	srv := api.New(a.cfg.Server, api.Deps{
		Service:     svc,
		Registry:    a.registry,
		Notes:       idx,
		ArticlesDir: a.cfg.Bible.ArticlesDir,
		BooksDir:    a.booksDir(),
		Version:     version,
	})
	return srv.Run(ctx)
}

// ResolveCmd resolves a citation.
type ResolveCmd struct {
	Citation []string `arg:"" help:"Citation, e.g. \"John 3:16\" or \"யோவான் 3:16\""`
}

func (c *ResolveCmd) Run(g *Globals) error {
	a, err := g.load()
	if err != nil {
		return err
	}
	defer a.Close()

	citation := strings.Join(c.Citation, " ")
	r := a.resolver.Resolve(citation)
	if r == nil {
		return fmt.Errorf("citation not recognized: %q", citation)
	}
	return writeJSON(stdout, r)
}

// LookupCmd looks up one passage.
type LookupCmd struct {
	Passage string `arg:"" optional:"" help:"Passage identifier, e.g. JHN.3.16 or GEN.1.1-3"`
	Ref     string `help:"Citation to resolve, or the reference to display"`
	BibleID string `name:"bible-id" help:"Remote translation id"`
	From    string `name:"from" help:"Source for this lookup (default: the configured source)"`
	JSON    bool   `help:"Print the passage as JSON"`
}

func (c *LookupCmd) Run(g *Globals) error {
	a, err := g.load()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	svc, err := a.Service(ctx)
	if err != nil {
		return err
	}
	p, err := svc.Lookup(ctx, locator.Request{
		Passage: c.Passage,
		Ref:     c.Ref,
		Source:  c.From,
		BibleID: c.BibleID,
	})
	if err != nil {
		return err
	}

	if c.JSON {
		return writeJSON(stdout, p)
	}
	_, err = fmt.Fprintf(stdout, "%s\n%s\n", p.Reference, p.Content)
	return err
}

// AnnotateCmd annotates a file or standard input.
type AnnotateCmd struct {
	File string `arg:"" optional:"" help:"Input file (default: standard input)" type:"existingfile"`
	HTML bool   `help:"Treat the input as an HTML fragment"`
}

func (c *AnnotateCmd) Run(g *Globals) error {
	a, err := g.load()
	if err != nil {
		return err
	}
	defer a.Close()

	in := stdin
	if c.File != "" {
		f, err := os.Open(c.File)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}
	src, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	if !c.HTML {
		_, err = io.WriteString(stdout, annotate.Text(string(src), a.resolver))
		return err
	}
	out, err := annotate.HTML(string(src), a.resolver)
	if err != nil {
		return err
	}
	_, err = io.WriteString(stdout, out)
	return err
}

// NotesCmd shows the notes on a passage, or a summary of the note file.
type NotesCmd struct {
	Passage string `arg:"" optional:"" help:"Passage identifier or citation"`
	File    string `help:"Notes file (overrides bible.notes_path)" type:"existingfile"`
}

func (c *NotesCmd) Run(g *Globals) error {
	a, err := g.load()
	if err != nil {
		return err
	}
	defer a.Close()

	idx, err := a.Notes(c.File)
	if err != nil {
		return err
	}

	if c.Passage == "" {
		return writeJSON(stdout, map[string]any{
			"notes":    idx.Len(),
			"skipped":  idx.Skipped(),
			"passages": idx.Passages(),
		})
	}

	passageID := c.Passage
	if r := a.resolver.Resolve(c.Passage); r != nil {
		passageID = r.PassageID
	}
	entries := idx.Lookup(passageID)
	if entries == nil {
		entries = []notes.Entry{}
	}
	return writeJSON(stdout, entries)
}

// BooksCmd prints the registry as a table.
type BooksCmd struct {
	JSON bool `help:"Print as JSON"`
}

func (c *BooksCmd) Run(g *Globals) error {
	a, err := g.load()
	if err != nil {
		return err
	}
	defer a.Close()

	list := a.registry.Books()
	if c.JSON {
		return writeJSON(stdout, list)
	}
	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CODE\tNAME\tTAMIL")
	for _, b := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", b.Code, b.Name, b.TamilName())
	}
	return tw.Flush()
}

// PrecacheCmd writes the precache manifest.
type PrecacheCmd struct {
	Articles string `help:"Articles directory (overrides bible.articles_dir)" type:"path"`
	Books    string `help:"Book documents directory (default: <corpus_dir>/books)" type:"path"`
	Out      string `short:"o" help:"Output file (default: standard output)" type:"path"`
}

func (c *PrecacheCmd) Run(g *Globals) error {
	a, err := g.load()
	if err != nil {
		return err
	}
	defer a.Close()

	articles := c.Articles
	if articles == "" {
		articles = a.cfg.Bible.ArticlesDir
	}
	bookDir := c.Books
	if bookDir == "" {
		bookDir = a.booksDir()
	}

	m := precache.Build(articles, bookDir).Stamped(time.Now())
	if c.Out == "" {
		return precache.Write(stdout, m)
	}
	if err := precache.WriteFile(c.Out, m); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Wrote %s (%d articles, %d books)\n", c.Out, len(m.Articles), len(m.BibleBooks))
	return nil
}

// BuildDBCmd exports the local corpus into a SQLite file.
type BuildDBCmd struct {
	Out string `arg:"" help:"Output database path" type:"path"`
}

func (c *BuildDBCmd) Run(g *Globals) error {
	a, err := g.load()
	if err != nil {
		return err
	}
	defer a.Close()

	src := a.localStore()
	if src == nil {
		return errors.New("build-db needs bible.corpus_dir or bible.corpus_url")
	}

	db, err := sqlite.Open(c.Out)
	if err != nil {
		return fmt.Errorf("open %s: %w", c.Out, err)
	}
	defer db.Close()

	stats, err := corpus.Export(context.Background(), src, db)
	if err != nil {
		return err
	}
	logging.Info("corpus exported", "path", c.Out, "driver", sqlite.DriverType())
	fmt.Fprintf(stdout, "Wrote %s: %d books, %d chapters, %d verses\n", c.Out, stats.Books, stats.Chapters, stats.Verses)
	return nil
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	_, err := fmt.Fprintf(stdout, "tamilbible version %s (sqlite: %s)\n", version, sqlite.DriverType())
	return err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("tamilbible"),
		kong.Description("Tamil and English Bible references, passages and study notes"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
