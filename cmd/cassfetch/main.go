package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/cassdoc"
	"github.com/fwojciec/cassdoc/chromedp"
	"github.com/fwojciec/cassdoc/crawl"
	"github.com/fwojciec/cassdoc/fs"
	casshttp "github.com/fwojciec/cassdoc/http"
	"github.com/fwojciec/cassdoc/rod"
	cassslog "github.com/fwojciec/cassdoc/slog"
	"github.com/google/uuid"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Backends replaces the backends selected with --backend. Set before
	// calling Run().
	Backends []cassdoc.Backend

	// Sleep replaces the crawler's wait between steps.
	Sleep crawl.SleepFunc
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("cassfetch"),
		kong.Description("Fetch the FCA Handbook CASS pages as plain text files"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Vars{
			"default_base_url": cassdoc.DefaultBaseURL,
			"default_dir":      DefaultDir,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	config, err := cli.Config()
	if err != nil {
		return err
	}

	var logger *slog.Logger
	if cli.Verbose {
		logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug})).
			With("run", uuid.NewString())
	}

	backends := m.Backends
	if backends == nil {
		backends, err = selectBackends(cli.Backend, cli.RenderWait+time.Minute)
		if err != nil {
			return err
		}
	}

	dir := fs.NewDir(cli.Dir)
	var store cassdoc.PageStore = dir
	if logger != nil {
		backends = withLogging(backends, logger)
		store = cassslog.NewLoggingStore(store, logger)
	}

	cmd := &FetchCmd{
		Crawler: &crawl.Crawler{
			Config:   config,
			Backends: backends,
			Store:    store,
			Sleep:    m.Sleep,
		},
		Dir:    cli.Dir,
		AbsDir: dir.AbsPath(),
	}

	return cmd.Run(ctx, stdout, stderr)
}

// DefaultDir is the output directory used when --dir is not given.
const DefaultDir = "fca_handbook_cass"

// CLI defines the command-line interface structure for Kong.
// Every flag defaults to the settings of a full CASS fetch, so running
// without arguments fetches all pages.
type CLI struct {
	Dir        string        `short:"d" default:"${default_dir}" env:"CASSDOC_DIR" help:"Output directory for page files"`
	BaseURL    string        `name:"base-url" default:"${default_base_url}" env:"CASSDOC_BASE_URL" help:"URL prefix for page identifiers"`
	Page       []string      `short:"p" name:"page" sep:"," help:"Page identifiers to fetch (default: all CASS pages)"`
	MinLength  int           `name:"min-length" default:"200" help:"Minimum text length for a page to be saved"`
	RenderWait time.Duration `name:"render-wait" default:"5s" help:"Wait after navigation for client-side rendering"`
	Delay      time.Duration `default:"2s" help:"Pause after each page"`
	Backend    []string      `short:"b" default:"rod,chromedp" sep:"," env:"CASSDOC_BACKEND" help:"Browser backends in priority order (rod, chromedp, http)"`
	Verbose    bool          `short:"v" help:"Log browser and storage operations to stderr"`
}

// Config converts the parsed flags into a crawl configuration.
func (c *CLI) Config() (crawl.Config, error) {
	config := crawl.DefaultConfig()
	config.BaseURL = c.BaseURL
	config.MinLength = c.MinLength
	config.RenderWait = c.RenderWait
	config.PageDelay = c.Delay

	if len(c.Page) > 0 {
		config.PageIDs = nil
		for _, p := range c.Page {
			if p == "" {
				return crawl.Config{}, cassdoc.Errorf(cassdoc.EINVALID, "empty page identifier")
			}
			config.PageIDs = append(config.PageIDs, cassdoc.PageID(p))
		}
	}

	if config.MinLength < 0 {
		return crawl.Config{}, cassdoc.Errorf(cassdoc.EINVALID, "min-length must not be negative")
	}
	return config, nil
}

// selectBackends maps backend names to launchable backends, keeping order.
func selectBackends(names []string, httpTimeout time.Duration) ([]cassdoc.Backend, error) {
	if len(names) == 0 {
		return nil, cassdoc.Errorf(cassdoc.EINVALID, "at least one backend is required")
	}

	backends := make([]cassdoc.Backend, 0, len(names))
	for _, name := range names {
		switch name {
		case rod.BackendName:
			backends = append(backends, rod.Backend())
		case chromedp.BackendName:
			backends = append(backends, chromedp.Backend())
		case casshttp.BackendName:
			backends = append(backends, casshttp.Backend(casshttp.WithTimeout(httpTimeout)))
		default:
			return nil, cassdoc.Errorf(cassdoc.EINVALID, "unknown backend %q", name)
		}
	}
	return backends, nil
}

// withLogging wraps every browser a backend launches with debug logging.
func withLogging(backends []cassdoc.Backend, logger *slog.Logger) []cassdoc.Backend {
	wrapped := make([]cassdoc.Backend, len(backends))
	for i, b := range backends {
		launch := b.Launch
		log := logger.With("backend", b.Name)
		wrapped[i] = cassdoc.Backend{
			Name: b.Name,
			Launch: func(ctx context.Context) (cassdoc.Browser, error) {
				browser, err := launch(ctx)
				if err != nil {
					log.Debug("launch browser", "err", err)
					return nil, err
				}
				log.Debug("launch browser")
				return cassslog.NewLoggingBrowser(browser, log), nil
			},
		}
	}
	return wrapped
}
