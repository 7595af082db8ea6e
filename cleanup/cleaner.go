// Package cleanup rewrites saved handbook page files in place with the site
// navigation stripped.
package cleanup

import (
	"context"
	"fmt"

	"github.com/fwojciec/cassdoc"
)

// Cleaner strips boilerplate from every text file in a PageFiles directory.
type Cleaner struct {
	Files cassdoc.PageFiles

	// Clean defaults to cassdoc.Clean.
	Clean func(text string) string
}

// Result holds the outcome of a cleanup run.
type Result struct {
	Total   int
	Cleaned int
	Changed int
	Failed  int
}

// ProgressEvent reports progress during a cleanup run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Name      string
	Changed   bool
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressCleaned ProgressType = iota
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting cleanup progress.
type ProgressFunc func(event ProgressEvent)

// Run cleans every text file in name order. Listing the files is the only
// fatal step: a missing directory returns ENOTFOUND before any file is
// touched. A file that cannot be read, decoded or written is counted as
// failed and the run continues.
func (c *Cleaner) Run(ctx context.Context, progress ProgressFunc) (*Result, error) {
	notify := func(e ProgressEvent) {
		if progress != nil {
			progress(e)
		}
	}

	names, err := c.Files.ListTextFiles(ctx)
	if err != nil {
		return nil, err
	}

	result := &Result{Total: len(names)}
	for i, name := range names {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		changed, err := c.CleanFile(ctx, name)
		if err != nil {
			result.Failed++
			notify(ProgressEvent{Type: ProgressFailed, Completed: i + 1, Total: len(names), Name: name, Error: err})
			continue
		}

		result.Cleaned++
		if changed {
			result.Changed++
		}
		notify(ProgressEvent{Type: ProgressCleaned, Completed: i + 1, Total: len(names), Name: name, Changed: changed})
	}

	notify(ProgressEvent{Type: ProgressFinished, Completed: len(names), Total: len(names)})
	return result, nil
}

// CleanFile reads the named file, strips boilerplate and writes the result
// back to the same file. The file is rewritten even when nothing changed.
func (c *Cleaner) CleanFile(ctx context.Context, name string) (changed bool, err error) {
	content, err := c.Files.ReadFile(ctx, name)
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", name, err)
	}

	clean := c.Clean
	if clean == nil {
		clean = cassdoc.Clean
	}
	cleaned := clean(content)

	if err := c.Files.WriteFile(ctx, name, cleaned); err != nil {
		return false, fmt.Errorf("writing %s: %w", name, err)
	}
	return cleaned != content, nil
}
