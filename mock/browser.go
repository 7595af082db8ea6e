package mock

import (
	"context"

	"github.com/fwojciec/cassdoc"
)

var _ cassdoc.Browser = (*Browser)(nil)

// Browser is a mock implementation of cassdoc.Browser.
type Browser struct {
	NavigateFn func(ctx context.Context, url string) error
	BodyTextFn func(ctx context.Context) (string, error)
	CloseFn    func() error
}

func (b *Browser) Navigate(ctx context.Context, url string) error {
	return b.NavigateFn(ctx, url)
}

func (b *Browser) BodyText(ctx context.Context) (string, error) {
	return b.BodyTextFn(ctx)
}

func (b *Browser) Close() error {
	return b.CloseFn()
}
