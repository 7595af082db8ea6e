package cassdoc

import "context"

// Browser is a single browser session that renders pages one at a time.
// Implementations may use browser automation to handle JavaScript-rendered
// content.
type Browser interface {
	// Navigate loads url in the session's page.
	// The context controls timeout and cancellation.
	Navigate(ctx context.Context, url string) error

	// BodyText returns the visible text of the current document body.
	BodyText(ctx context.Context) (string, error)

	// Close terminates the session.
	// Must be called when the Browser is no longer needed.
	Close() error
}

// LaunchFunc starts a new Browser session.
type LaunchFunc func(ctx context.Context) (Browser, error)

// Backend is a named way of starting a Browser. Backends are tried in
// priority order until one launches.
type Backend struct {
	Name   string
	Launch LaunchFunc
}
