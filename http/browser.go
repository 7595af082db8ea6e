// Package http provides a static cassdoc.Browser that fetches pages over
// plain HTTP and reads body text with goquery. It does not execute
// JavaScript, so it only suits pages whose content is server-rendered.
package http

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/cassdoc"
)

// BackendName is the name the static backend is selected by.
const BackendName = "http"

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 30 * time.Second

// DefaultUserAgent is sent with every request.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// Ensure Browser implements cassdoc.Browser at compile time.
var _ cassdoc.Browser = (*Browser)(nil)

// Browser retrieves documents with HTTP GET requests and keeps the last one
// parsed for BodyText.
type Browser struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string

	doc *goquery.Document
}

// Option configures a Browser.
type Option func(*Browser)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(b *Browser) {
		b.timeout = d
	}
}

// WithUserAgent overrides DefaultUserAgent.
func WithUserAgent(ua string) Option {
	return func(b *Browser) {
		b.userAgent = ua
	}
}

// Backend returns the static backend for use with batch.OpenBrowser.
func Backend(opts ...Option) cassdoc.Backend {
	return cassdoc.Backend{
		Name: BackendName,
		Launch: func(ctx context.Context) (cassdoc.Browser, error) {
			return NewBrowser(opts...), nil
		},
	}
}

// NewBrowser creates a new HTTP-based Browser.
func NewBrowser(opts ...Option) *Browser {
	b := &Browser{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(b)
	}

	b.client = &http.Client{
		Timeout: b.timeout,
	}

	return b
}

// Navigate fetches url and parses the response as HTML.
func (b *Browser) Navigate(ctx context.Context, url string) error {
	b.doc = nil

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", b.userAgent)

	resp, err := b.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return err
	}
	b.doc = doc
	return nil
}

// BodyText returns the text of the body element with scripts and styles
// removed, one non-blank line per text line.
func (b *Browser) BodyText(ctx context.Context) (string, error) {
	if b.doc == nil {
		return "", cassdoc.Errorf(cassdoc.EINVALID, "no document loaded")
	}

	body := b.doc.Find("body").Clone()
	body.Find("script, style, noscript, template").Remove()

	var lines []string
	for _, line := range strings.Split(body.Text(), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n"), nil
}

// Close releases resources. For the HTTP browser this only drops the
// current document.
func (b *Browser) Close() error {
	b.doc = nil
	return nil
}
