// Package cmd provides CLI command implementations for phUML.
package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"
	"github.com/joho/godotenv"

	"github.com/Benny93/phuml-go/internal/actions"
	"github.com/Benny93/phuml-go/internal/parser"
	"github.com/Benny93/phuml-go/internal/processors"
	"github.com/Benny93/phuml-go/internal/storage"
	"github.com/Benny93/phuml-go/internal/templates"
	"github.com/Benny93/phuml-go/mcp"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Globals are the flags every command receives.
type Globals struct {
	Quiet bool `short:"q" help:"Suppress progress output"`
}

// ParserFlags select the front-end and the fact cache.
type ParserFlags struct {
	Facts    bool   `help:"Read pre-extracted *.facts.json files instead of PHP sources"`
	CacheDir string `type:"path" env:"PHUML_CACHE_DIR" help:"Persist extracted facts in this directory"`
}

// SourceFlags select the code to read.
type SourceFlags struct {
	Directory   string `arg:"" type:"existingdir" help:"Directory holding the PHP sources"`
	Recursive   bool   `short:"r" help:"Also read subdirectories"`
	ParserFlags `embed:""`
}

func (f *SourceFlags) source() actions.Source {
	return actions.Source{Directory: f.Directory, Recursive: f.Recursive}
}

// open returns the code parser and the cache it stores facts in. The caller
// closes the cache.
func (f *ParserFlags) open() (*parser.CodeParser, storage.Backend, error) {
	var traverser parser.Traverser = parser.NewPHPTraverser()
	if f.Facts {
		traverser = parser.NewFactsTraverser()
	}

	cache, err := openCache(f.CacheDir)
	if err != nil {
		return nil, nil, err
	}
	return parser.NewCodeParser(traverser, parser.WithCache(cache)), cache, nil
}

// openCache keeps recent facts in memory and, with a directory, persists them
// in badger.
func openCache(dir string) (storage.Backend, error) {
	memory, err := storage.NewMemoryBackend(storage.DefaultMemoryEntries)
	if err != nil {
		return nil, fmt.Errorf("creating cache: %w", err)
	}
	if dir == "" {
		return memory, nil
	}

	store := storage.NewBadgerBackend()
	if err := store.Initialize(dir, false); err != nil {
		return nil, fmt.Errorf("initializing cache: %w", err)
	}
	return storage.NewTieredBackend(memory, store), nil
}

func progress(g *Globals) actions.ProgressCallback {
	if g.Quiet {
		return nil
	}
	return func(phase string, pct float64) {
		fmt.Printf("\r\033[K%s (%.0f%%)", phase, pct*100)
	}
}

// done ends the progress line.
func done(g *Globals) {
	if !g.Quiet {
		fmt.Println()
	}
}

// DotCmd writes the DOT class diagram of a directory.
type DotCmd struct {
	SourceFlags  `embed:""`
	Output       string `arg:"" type:"path" help:"DOT file to write"`
	Associations bool   `default:"true" negatable:"" help:"Draw associations from typed attributes and constructor parameters"`
}

// Run executes the dot command.
func (c *DotCmd) Run(g *Globals) error {
	p, cache, err := c.open()
	if err != nil {
		return err
	}
	defer func() { _ = cache.Close() }()

	renderer, err := templates.NewTemplateEngine()
	if err != nil {
		return fmt.Errorf("loading templates: %w", err)
	}

	graphviz := processors.NewGraphvizProcessor(renderer, c.Associations)
	action := actions.NewGenerateDotFile(p, graphviz, progress(g))
	if err := action.Generate(context.Background(), c.source(), c.Output); err != nil {
		return err
	}
	done(g)

	color.Green("✓ Wrote %s", c.Output)
	return nil
}

// DiagramCmd renders the class diagram of a directory into a PNG image.
type DiagramCmd struct {
	SourceFlags  `embed:""`
	Output       string `arg:"" type:"path" help:"PNG file to write"`
	Associations bool   `default:"true" negatable:"" help:"Draw associations from typed attributes and constructor parameters"`
	Processor    string `short:"p" enum:"dot,neato" default:"dot" help:"Graphviz layout to run (dot, neato)"`
	DotBinary    string `env:"PHUML_DOT_BINARY" default:"dot" help:"Path to the dot binary"`
	NeatoBinary  string `env:"PHUML_NEATO_BINARY" default:"neato" help:"Path to the neato binary"`
}

// Run executes the diagram command.
func (c *DiagramCmd) Run(g *Globals) error {
	p, cache, err := c.open()
	if err != nil {
		return err
	}
	defer func() { _ = cache.Close() }()

	renderer, err := templates.NewTemplateEngine()
	if err != nil {
		return fmt.Errorf("loading templates: %w", err)
	}

	action, err := actions.NewGenerateClassDiagram(
		p,
		processors.NewGraphvizProcessor(renderer, c.Associations),
		c.imageProcessor(),
		progress(g),
	)
	if err != nil {
		return err
	}
	if err := action.Generate(context.Background(), c.source(), c.Output); err != nil {
		return err
	}
	done(g)

	color.Green("✓ Wrote %s", c.Output)
	return nil
}

func (c *DiagramCmd) imageProcessor() *processors.ExternalCommandProcessor {
	if c.Processor == "neato" {
		return processors.NewNeatoProcessor(c.NeatoBinary)
	}
	return processors.NewDotProcessor(c.DotBinary)
}

// StatisticsCmd reports the statistics of a directory.
type StatisticsCmd struct {
	SourceFlags `embed:""`
	Output      string `arg:"" optional:"" type:"path" help:"File to write the report to (default stdout)"`
	JSON        bool   `help:"Print the statistics as JSON"`
}

// Run executes the statistics command.
func (c *StatisticsCmd) Run(g *Globals) error {
	p, cache, err := c.open()
	if err != nil {
		return err
	}
	defer func() { _ = cache.Close() }()

	ctx := context.Background()

	if c.Output != "" {
		action := actions.NewGenerateStatistics(p, processors.NewStatisticsProcessor(), progress(g))
		if err := action.Generate(ctx, c.source(), c.Output); err != nil {
			return err
		}
		done(g)
		color.Green("✓ Wrote %s", c.Output)
		return nil
	}

	statistics, err := actions.NewGenerateStatistics(p, processors.NewStatisticsProcessor(), nil).Statistics(ctx, c.source())
	if err != nil {
		return err
	}
	if c.JSON {
		data, err := json.MarshalIndent(statistics, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding statistics: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}
	fmt.Print(statistics.String())
	return nil
}

// WatchCmd regenerates a DOT class diagram whenever the sources change.
type WatchCmd struct {
	SourceFlags  `embed:""`
	Output       string        `arg:"" type:"path" help:"DOT file to write"`
	Associations bool          `default:"true" negatable:"" help:"Draw associations from typed attributes and constructor parameters"`
	Debounce     time.Duration `default:"2s" help:"Quiet period after the last change before regenerating"`
}

// Run executes the watch command.
func (c *WatchCmd) Run(g *Globals) error {
	p, cache, err := c.open()
	if err != nil {
		return err
	}
	defer func() { _ = cache.Close() }()

	renderer, err := templates.NewTemplateEngine()
	if err != nil {
		return fmt.Errorf("loading templates: %w", err)
	}

	action := actions.NewGenerateDotFile(p, processors.NewGraphvizProcessor(renderer, c.Associations), nil)
	source := c.source()
	regenerate := func(ctx context.Context) error {
		return action.Generate(ctx, source, c.Output)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := regenerate(ctx); err != nil {
		return err
	}
	color.Green("✓ Wrote %s", c.Output)

	watcher, err := actions.NewWatcher(source, p.Traverser(), regenerate,
		actions.WithDebounce(c.Debounce),
		actions.ExcludingFiles(c.Output),
		actions.OnResult(func(changed int, err error) {
			if err != nil {
				fmt.Fprintf(os.Stderr, "Regenerating %s: %v\n", c.Output, err)
				return
			}
			if !g.Quiet {
				color.Green("✓ %d changed file(s), wrote %s", changed, c.Output)
			}
		}),
	)
	if err != nil {
		return err
	}

	fmt.Println("## Watch Mode")
	fmt.Printf("Watching %s for changes (Ctrl+C to stop)\n\n", source.Directory)

	go func() {
		<-osSignalChannel()
		fmt.Println("\nStopping watch mode...")
		cancel()
	}()

	err = watcher.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("watch error: %w", err)
	}

	fmt.Println("Watch mode stopped.")
	return nil
}

// MCPCmd starts the MCP server.
type MCPCmd struct {
	ParserFlags `embed:""`
}

// Run executes the mcp command.
func (c *MCPCmd) Run() error {
	p, cache, err := c.open()
	if err != nil {
		return err
	}
	defer func() { _ = cache.Close() }()

	renderer, err := templates.NewTemplateEngine()
	if err != nil {
		return fmt.Errorf("loading templates: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		<-osSignalChannel()
		cancel()
	}()

	server := mcp.NewServer(mcp.NewGenerator(p, renderer))

	// No output outside the protocol: stdio carries JSON-RPC only.
	if err := server.Run(ctx, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("serving MCP: %w", err)
	}
	return nil
}

// ClearCacheCmd deletes the persistent fact cache.
type ClearCacheCmd struct {
	CacheDir string `required:"" type:"path" env:"PHUML_CACHE_DIR" help:"Directory of the fact cache"`
	Force    bool   `short:"f" help:"Skip confirmation"`
}

// Run executes the clear-cache command.
func (c *ClearCacheCmd) Run() error {
	if _, err := os.Stat(c.CacheDir); os.IsNotExist(err) {
		return fmt.Errorf("no cache found at %s. Nothing to clean", c.CacheDir)
	}

	store := storage.NewBadgerBackend()
	if err := store.Initialize(c.CacheDir, false); err != nil {
		return fmt.Errorf("initializing cache: %w", err)
	}
	defer func() { _ = store.Close() }()

	count, err := store.Count()
	if err != nil {
		return fmt.Errorf("counting cache entries: %w", err)
	}

	if !c.Force {
		fmt.Printf("Delete %d cached file(s) in %s? [y/N] ", count, c.CacheDir)
		var response string
		_, _ = fmt.Scanln(&response)
		if response != "y" && response != "Y" {
			fmt.Println("Aborted")
			return nil
		}
	}

	if err := store.Clear(); err != nil {
		return fmt.Errorf("clearing cache: %w", err)
	}

	color.Green("Deleted %d cached file(s) from %s", count, c.CacheDir)
	return nil
}

// osSignalChannel returns a channel that receives OS signals for graceful shutdown.
func osSignalChannel() <-chan os.Signal {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	return sigChan
}

// CLI represents the command-line interface.
type CLI struct {
	Globals `embed:""`
	Version kong.VersionFlag `help:"Show version information"`

	// Commands
	Dot        DotCmd        `cmd:"" help:"Generate a Graphviz DOT class diagram"`
	Diagram    DiagramCmd    `cmd:"" help:"Generate a PNG class diagram with dot or neato"`
	Statistics StatisticsCmd `cmd:"" help:"Report class, interface and member statistics"`
	Watch      WatchCmd      `cmd:"" help:"Regenerate a DOT class diagram when sources change"`
	MCP        MCPCmd        `cmd:"" help:"Start MCP server (stdio transport)"`
	ClearCache ClearCacheCmd `cmd:"" help:"Delete the persistent fact cache"`
}

// NewCLI creates a new CLI instance.
func NewCLI() *CLI {
	return &CLI{}
}

// Execute parses args and runs the selected command. Variables from a .env
// file in the working directory are loaded first and fill flag defaults.
func (c *CLI) Execute(args []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	app, err := kong.New(c,
		kong.Name("phuml"),
		kong.Description("Generate UML class diagrams from PHP code"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version": Version,
		},
		kong.Bind(&c.Globals),
	)
	if err != nil {
		return err
	}

	kongCtx, err := app.Parse(args)
	if err != nil {
		return err
	}
	return kongCtx.Run()
}
