package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/cassdoc"
)

// Compile-time interface verification.
var (
	_ cassdoc.PageStore = (*LoggingStore)(nil)
	_ cassdoc.PageFiles = (*LoggingFiles)(nil)
)

// LoggingStore wraps a PageStore with debug logging.
type LoggingStore struct {
	next   cassdoc.PageStore
	logger *slog.Logger
}

// NewLoggingStore creates a new LoggingStore.
func NewLoggingStore(next cassdoc.PageStore, logger *slog.Logger) *LoggingStore {
	return &LoggingStore{next: next, logger: logger}
}

// SavePage logs the page identifier, size and checksum.
func (s *LoggingStore) SavePage(ctx context.Context, page *cassdoc.Page) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("save page",
			"id", string(page.ID),
			"bytes", len(page.Text),
			"checksum", checksum(page.Text),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SavePage(ctx, page)
}

// LoggingFiles wraps PageFiles with debug logging.
type LoggingFiles struct {
	next   cassdoc.PageFiles
	logger *slog.Logger
}

// NewLoggingFiles creates a new LoggingFiles.
func NewLoggingFiles(next cassdoc.PageFiles, logger *slog.Logger) *LoggingFiles {
	return &LoggingFiles{next: next, logger: logger}
}

// ListTextFiles logs how many files were found.
func (f *LoggingFiles) ListTextFiles(ctx context.Context) (names []string, err error) {
	defer func() {
		f.logger.Debug("list text files", "count", len(names), "err", err)
	}()
	return f.next.ListTextFiles(ctx)
}

// ReadFile logs the file name, size and checksum.
func (f *LoggingFiles) ReadFile(ctx context.Context, name string) (content string, err error) {
	defer func() {
		f.logger.Debug("read file",
			"name", name,
			"bytes", len(content),
			"checksum", checksum(content),
			"err", err,
		)
	}()
	return f.next.ReadFile(ctx, name)
}

// WriteFile logs the file name, size and checksum.
func (f *LoggingFiles) WriteFile(ctx context.Context, name string, content string) (err error) {
	defer func() {
		f.logger.Debug("write file",
			"name", name,
			"bytes", len(content),
			"checksum", checksum(content),
			"err", err,
		)
	}()
	return f.next.WriteFile(ctx, name, content)
}
