package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/cassdoc"
	"github.com/fwojciec/cassdoc/cleanup"
	"github.com/fwojciec/cassdoc/fs"
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

// DefaultDir is the directory cleaned when --dir is not given.
const DefaultDir = "fca_handbook_cass"

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main.
func NewMain() *Main {
	return &Main{}
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Dir     string `short:"d" default:"${default_dir}" env:"CASSDOC_DIR" help:"Directory of page files to clean in place"`
	Verbose bool   `short:"v" help:"Log file operations to stderr"`
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("cassclean"),
		kong.Description("Strip site navigation from fetched CASS page files"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Vars{"default_dir": DefaultDir},
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

	var files cassdoc.PageFiles = fs.NewDir(cli.Dir)
	if cli.Verbose {
		logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug})).
			With("run", uuid.NewString())
		files = cassslog.NewLoggingFiles(files, logger)
	}

	cmd := &CleanCmd{
		Cleaner: &cleanup.Cleaner{Files: files},
		Dir:     cli.Dir,
	}
	return cmd.Run(ctx, stdout)
}

// CleanCmd runs a cleanup and prints one line per file.
type CleanCmd struct {
	Cleaner *cleanup.Cleaner
	Dir     string
}

// Run executes the clean command.
func (c *CleanCmd) Run(ctx context.Context, stdout io.Writer) error {
	result, err := c.Cleaner.Run(ctx, func(e cleanup.ProgressEvent) {
		switch e.Type {
		case cleanup.ProgressCleaned:
			fmt.Fprintf(stdout, "✓ Cleaned %s\n", e.Name)
		case cleanup.ProgressFailed:
			fmt.Fprintf(stdout, "✗ Error cleaning %s: %v\n", filepath.Join(c.Dir, e.Name), e.Error)
		}
	})
	if result == nil {
		if cassdoc.ErrorCode(err) == cassdoc.ENOTFOUND {
			fmt.Fprintf(stdout, "Directory %s not found!\n", c.Dir)
		}
		return err
	}

	fmt.Fprintf(stdout, "\nCleaned %d/%d files successfully\n", result.Cleaned, result.Total)
	return err
}
