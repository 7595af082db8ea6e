// Package crawl fetches the rendered text of a fixed list of handbook pages
// through a browser session and stores each page that has enough content.
package crawl

import (
	"context"
	"fmt"
	"time"

	"github.com/fwojciec/cassdoc"
)

// Defaults for Config.
const (
	DefaultMinLength  = 200
	DefaultRenderWait = 5 * time.Second
	DefaultPageDelay  = 2 * time.Second
)

// Config holds the fetch run settings.
type Config struct {
	// PageIDs are fetched in order.
	PageIDs []cassdoc.PageID

	// BaseURL is prefixed to each page identifier.
	BaseURL string

	// MinLength is the text length a page must exceed to be saved.
	MinLength int

	// RenderWait is how long to wait after navigation for client-side
	// rendering before reading the body text.
	RenderWait time.Duration

	// PageDelay is the pause after each page, whatever its outcome.
	PageDelay time.Duration
}

// DefaultConfig returns the settings for a full CASS fetch.
func DefaultConfig() Config {
	return Config{
		PageIDs:    cassdoc.DefaultPageIDs(),
		BaseURL:    cassdoc.DefaultBaseURL,
		MinLength:  DefaultMinLength,
		RenderWait: DefaultRenderWait,
		PageDelay:  DefaultPageDelay,
	}
}

// SleepFunc blocks for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Crawler fetches every configured page through a single browser session.
type Crawler struct {
	Config   Config
	Backends []cassdoc.Backend
	Store    cassdoc.PageStore

	// Sleep defaults to a context-aware timer.
	Sleep SleepFunc
}

// Result holds the outcome of a fetch run.
type Result struct {
	Backend string
	Saved   int
	Failed  int
	Bytes   int
}

// ProgressEvent reports progress during a fetch run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Backend   string
	PageID    cassdoc.PageID
	URL       string
	Path      string
	Bytes     int
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressBackendFailed ProgressType = iota
	ProgressBrowserReady
	ProgressStarted
	ProgressSaved
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting fetch progress.
type ProgressFunc func(event ProgressEvent)

// Run opens a browser session and fetches every page in Config.PageIDs.
//
// A page whose navigation, extraction or save fails, or whose text is too
// short, is counted as failed and the run continues with the next page. The
// browser session is closed before Run returns. Run only returns an error
// when no browser can be started, when ctx is done, or when closing the
// session fails; in the latter two cases the partial result is returned too.
func (c *Crawler) Run(ctx context.Context, progress ProgressFunc) (result *Result, err error) {
	notify := func(e ProgressEvent) {
		if progress != nil {
			progress(e)
		}
	}

	browser, backend, err := OpenBrowser(ctx, c.Backends, progress)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := browser.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing browser: %w", cerr)
		}
	}()

	total := len(c.Config.PageIDs)
	result = &Result{Backend: backend}
	notify(ProgressEvent{Type: ProgressBrowserReady, Backend: backend, Total: total})

	for i, id := range c.Config.PageIDs {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		url := cassdoc.PageURL(c.Config.BaseURL, id)
		notify(ProgressEvent{Type: ProgressStarted, Completed: i, Total: total, PageID: id, URL: url})

		page, err := c.FetchPage(ctx, browser, id)
		if err == nil {
			err = c.Store.SavePage(ctx, page)
		}

		if err != nil {
			result.Failed++
			notify(ProgressEvent{Type: ProgressFailed, Completed: i + 1, Total: total, PageID: id, URL: url, Error: err})
		} else {
			result.Saved++
			result.Bytes += len(page.Text)
			notify(ProgressEvent{
				Type:      ProgressSaved,
				Completed: i + 1,
				Total:     total,
				PageID:    id,
				URL:       url,
				Path:      cassdoc.PageFileName(id),
				Bytes:     len(page.Text),
			})
		}

		if err := c.sleep(ctx, c.Config.PageDelay); err != nil {
			return result, err
		}
	}

	notify(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total, Backend: backend})
	return result, nil
}

// FetchPage navigates to the page, waits for rendering and returns its body
// text. Text no longer than Config.MinLength is rejected with EINVALID.
func (c *Crawler) FetchPage(ctx context.Context, browser cassdoc.Browser, id cassdoc.PageID) (*cassdoc.Page, error) {
	url := cassdoc.PageURL(c.Config.BaseURL, id)

	if err := browser.Navigate(ctx, url); err != nil {
		return nil, fmt.Errorf("navigating to %s: %w", url, err)
	}

	if err := c.sleep(ctx, c.Config.RenderWait); err != nil {
		return nil, err
	}

	text, err := browser.BodyText(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading body text: %w", err)
	}

	if len(text) <= c.Config.MinLength {
		return nil, cassdoc.Errorf(cassdoc.EINVALID, "content too short (%d bytes)", len(text))
	}

	return &cassdoc.Page{ID: id, URL: url, Text: text}, nil
}

func (c *Crawler) sleep(ctx context.Context, d time.Duration) error {
	if c.Sleep != nil {
		return c.Sleep(ctx, d)
	}
	return Sleep(ctx, d)
}

// Sleep waits for d, returning early with ctx.Err() if ctx is done.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
