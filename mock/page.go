package mock

import (
	"context"

	"github.com/fwojciec/cassdoc"
)

// Compile-time interface verification.
var (
	_ cassdoc.PageStore = (*PageStore)(nil)
	_ cassdoc.PageFiles = (*PageFiles)(nil)
)

// PageStore is a mock implementation of cassdoc.PageStore.
type PageStore struct {
	SavePageFn func(ctx context.Context, page *cassdoc.Page) error
}

func (s *PageStore) SavePage(ctx context.Context, page *cassdoc.Page) error {
	return s.SavePageFn(ctx, page)
}

// PageFiles is a mock implementation of cassdoc.PageFiles.
type PageFiles struct {
	ListTextFilesFn func(ctx context.Context) ([]string, error)
	ReadFileFn      func(ctx context.Context, name string) (string, error)
	WriteFileFn     func(ctx context.Context, name string, content string) error
}

func (f *PageFiles) ListTextFiles(ctx context.Context) ([]string, error) {
	return f.ListTextFilesFn(ctx)
}

func (f *PageFiles) ReadFile(ctx context.Context, name string) (string, error) {
	return f.ReadFileFn(ctx, name)
}

func (f *PageFiles) WriteFile(ctx context.Context, name string, content string) error {
	return f.WriteFileFn(ctx, name, content)
}
