// Package slog provides log/slog decorators for cassdoc services.
package slog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/cassdoc"
)

// Ensure LoggingBrowser implements cassdoc.Browser.
var _ cassdoc.Browser = (*LoggingBrowser)(nil)

// LoggingBrowser wraps a Browser with debug logging.
type LoggingBrowser struct {
	next   cassdoc.Browser
	logger *slog.Logger
}

// NewLoggingBrowser creates a new LoggingBrowser.
func NewLoggingBrowser(next cassdoc.Browser, logger *slog.Logger) *LoggingBrowser {
	return &LoggingBrowser{next: next, logger: logger}
}

// Navigate logs the URL being loaded and delegates to the wrapped browser.
func (b *LoggingBrowser) Navigate(ctx context.Context, url string) (err error) {
	defer func(begin time.Time) {
		b.logger.Debug("navigate",
			"url", url,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return b.next.Navigate(ctx, url)
}

// BodyText logs the size and checksum of the extracted text.
func (b *LoggingBrowser) BodyText(ctx context.Context) (text string, err error) {
	defer func(begin time.Time) {
		b.logger.Debug("body text",
			"bytes", len(text),
			"checksum", checksum(text),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return b.next.BodyText(ctx)
}

// Close logs and delegates to the wrapped browser.
func (b *LoggingBrowser) Close() (err error) {
	defer func() {
		b.logger.Debug("close browser", "err", err)
	}()
	return b.next.Close()
}

// checksum returns a short content fingerprint for comparing runs in logs.
func checksum(s string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(s))
}
