// Package chromedp provides a cassdoc.Browser backed by the chromedp
// DevTools protocol driver. It is the fallback when rod cannot start.
package chromedp

import (
	"context"
	"fmt"
	"sync"

	"github.com/chromedp/chromedp"
	"github.com/fwojciec/cassdoc"
)

// BackendName is the name the chromedp backend is selected by.
const BackendName = "chromedp"

// DefaultUserAgent is sent with every navigation.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// Ensure Browser implements cassdoc.Browser at compile time.
var _ cassdoc.Browser = (*Browser)(nil)

// Browser is a single headless Chrome tab driven through chromedp.
// Browser is not safe for concurrent use.
type Browser struct {
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc

	execPath  string
	userAgent string

	closeOnce sync.Once
	closeErr  error
}

// Option configures a Browser.
type Option func(*Browser)

// WithExecPath sets the Chrome binary instead of searching the usual locations.
func WithExecPath(path string) Option {
	return func(b *Browser) {
		b.execPath = path
	}
}

// WithUserAgent overrides DefaultUserAgent.
func WithUserAgent(ua string) Option {
	return func(b *Browser) {
		b.userAgent = ua
	}
}

// Backend returns the chromedp backend for use with batch.OpenBrowser.
func Backend(opts ...Option) cassdoc.Backend {
	return cassdoc.Backend{
		Name: BackendName,
		Launch: func(ctx context.Context) (cassdoc.Browser, error) {
			return NewBrowser(ctx, opts...)
		},
	}
}

// NewBrowser starts headless Chrome and opens a tab.
// Close must be called when the Browser is no longer needed.
func NewBrowser(ctx context.Context, opts ...Option) (*Browser, error) {
	b := &Browser{userAgent: DefaultUserAgent}
	for _, opt := range opts {
		opt(b)
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(b.userAgent),
		chromedp.WindowSize(1920, 1080),
	)
	if b.execPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(b.execPath))
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// The browser process lives as long as the context of the first Run,
	// so it is started on browserCtx rather than on ctx.
	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), allocOpts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	b.allocCancel = allocCancel
	b.browserCtx = browserCtx
	b.browserCancel = browserCancel

	if err := chromedp.Run(browserCtx); err != nil {
		b.browserCancel()
		b.allocCancel()
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	return b, nil
}

// Navigate loads url and waits for the load event.
func (b *Browser) Navigate(ctx context.Context, url string) error {
	return b.run(ctx, chromedp.Navigate(url))
}

// BodyText returns the visible text of the body element.
func (b *Browser) BodyText(ctx context.Context) (string, error) {
	var text string
	if err := b.run(ctx, chromedp.Text("body", &text, chromedp.ByQuery)); err != nil {
		return "", err
	}
	return text, nil
}

// Close closes the browser and releases the allocator.
// Close is safe to call multiple times.
func (b *Browser) Close() error {
	b.closeOnce.Do(func() {
		b.closeErr = chromedp.Cancel(b.browserCtx)
		b.browserCancel()
		b.allocCancel()
	})
	return b.closeErr
}

// run executes actions in the tab, bounded by ctx as well as the browser's
// own lifetime.
func (b *Browser) run(ctx context.Context, actions ...chromedp.Action) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(b.browserCtx)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	if err := chromedp.Run(runCtx, actions...); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return err
	}
	return nil
}
