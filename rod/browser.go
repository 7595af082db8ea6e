// Package rod provides a cassdoc.Browser backed by go-rod Chrome automation.
package rod

import (
	"context"
	"fmt"
	"sync"

	"github.com/fwojciec/cassdoc"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// BackendName is the name the rod backend is selected by.
const BackendName = "rod"

// DefaultUserAgent is sent with every navigation.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// Ensure Browser implements cassdoc.Browser at compile time.
var _ cassdoc.Browser = (*Browser)(nil)

// Browser is a single headless Chrome tab driven through rod.
// Browser is not safe for concurrent use.
type Browser struct {
	launcher *launcher.Launcher
	browser  *rod.Browser
	page     *rod.Page

	userAgent string

	closeOnce sync.Once
	closeErr  error
}

// Option configures a Browser.
type Option func(*Browser)

// WithUserAgent overrides DefaultUserAgent.
func WithUserAgent(ua string) Option {
	return func(b *Browser) {
		b.userAgent = ua
	}
}

// Backend returns the rod backend for use with batch.OpenBrowser.
func Backend(opts ...Option) cassdoc.Backend {
	return cassdoc.Backend{
		Name: BackendName,
		Launch: func(ctx context.Context) (cassdoc.Browser, error) {
			return NewBrowser(ctx, opts...)
		},
	}
}

// NewBrowser launches headless Chrome and opens a blank tab.
// Close must be called when the Browser is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewBrowser(ctx context.Context, opts ...Option) (*Browser, error) {
	b := &Browser{userAgent: DefaultUserAgent}
	for _, opt := range opts {
		opt(b)
	}

	l := launcher.New().
		Context(ctx).
		Set("no-sandbox").
		Set("disable-gpu").
		Set("disable-dev-shm-usage").
		Set("window-size", "1920,1080").
		Leakless(true).
		Headless(true)

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill() // Clean up launched process on connection failure
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		_ = browser.Close()
		l.Kill()
		return nil, fmt.Errorf("opening page: %w", err)
	}

	if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: b.userAgent}); err != nil {
		_ = browser.Close()
		l.Kill()
		return nil, fmt.Errorf("setting user agent: %w", err)
	}

	b.launcher = l
	b.browser = browser
	b.page = page
	return b, nil
}

// Navigate loads url and waits for the load event.
func (b *Browser) Navigate(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	page := b.page.Context(ctx)
	if err := page.Navigate(url); err != nil {
		return err
	}
	return page.WaitLoad()
}

// BodyText returns the rendered inner text of the body element.
func (b *Browser) BodyText(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	body, err := b.page.Context(ctx).Element("body")
	if err != nil {
		return "", err
	}
	return body.Text()
}

// Close shuts down the browser and its launcher process.
// Close is safe to call multiple times.
func (b *Browser) Close() error {
	b.closeOnce.Do(func() {
		if b.browser != nil {
			b.closeErr = b.browser.Close()
		}
		if b.launcher != nil {
			b.launcher.Kill()
		}
	})
	return b.closeErr
}

// LauncherPID returns the process ID of the browser launcher.
// This method exists for testing purposes to verify proper cleanup.
func (b *Browser) LauncherPID() int {
	if b.launcher == nil {
		return 0
	}
	return b.launcher.PID()
}
