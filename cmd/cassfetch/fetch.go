package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/fwojciec/cassdoc"
	"github.com/fwojciec/cassdoc/crawl"
)

// FetchCmd runs a crawl and prints line-oriented progress.
type FetchCmd struct {
	Crawler *crawl.Crawler
	Dir     string
	AbsDir  string
}

// Run executes the fetch command.
func (c *FetchCmd) Run(ctx context.Context, stdout, stderr io.Writer) error {
	progress := func(e crawl.ProgressEvent) {
		switch e.Type {
		case crawl.ProgressBackendFailed:
			fmt.Fprintf(stderr, "Error starting %s browser: %v\n", e.Backend, e.Error)
		case crawl.ProgressBrowserReady:
			fmt.Fprintf(stdout, "Using %s browser for %d pages\n", e.Backend, e.Total)
		case crawl.ProgressStarted:
			fmt.Fprintf(stdout, "Fetching %s...\n", crawl.PageLabel(e.PageID))
		case crawl.ProgressSaved:
			fmt.Fprintf(stdout, "✓ Saved to %s (%d bytes)\n", filepath.Join(c.Dir, e.Path), e.Bytes)
		case crawl.ProgressFailed:
			fmt.Fprintf(stdout, "✗ Failed to scrape %s: %s\n", crawl.PageLabel(e.PageID), describe(e.Error))
		}
	}

	result, err := c.Crawler.Run(ctx, progress)
	if result == nil {
		fmt.Fprintln(stderr, "Failed to start a browser. Hint: Chrome or Chromium must be installed")
		return err
	}

	fmt.Fprintf(stdout, "\nCompleted: %d successful, %d failed\n", result.Saved, result.Failed)
	fmt.Fprintf(stdout, "Files saved in: %s (%s)\n", c.AbsDir, crawl.FormatBytes(result.Bytes))
	return err
}

// describe prefers the application message for application errors.
func describe(err error) string {
	if cassdoc.ErrorCode(err) == cassdoc.EINTERNAL {
		return err.Error()
	}
	return cassdoc.ErrorMessage(err)
}
