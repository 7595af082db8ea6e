// Package fs provides file-based storage for handbook pages.
package fs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/cassdoc"
)

// Ensure Dir implements the storage interfaces at compile time.
var (
	_ cassdoc.PageStore = (*Dir)(nil)
	_ cassdoc.PageFiles = (*Dir)(nil)
)

// Dir stores one text file per page in a single flat directory.
// Writes go straight to the final path; there is no temp file or rename.
type Dir struct {
	path string
}

// NewDir creates a new Dir rooted at path.
func NewDir(path string) *Dir {
	return &Dir{path: path}
}

// Path returns the directory path.
func (d *Dir) Path() string {
	return d.path
}

// AbsPath returns the absolute directory path, or the path as given if it
// cannot be resolved.
func (d *Dir) AbsPath() string {
	abs, err := filepath.Abs(d.path)
	if err != nil {
		return d.path
	}
	return abs
}

// SavePage writes the page text to cass{id}.txt, creating the directory if needed.
func (d *Dir) SavePage(ctx context.Context, page *cassdoc.Page) error {
	if err := page.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(d.path, 0755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(d.path, cassdoc.PageFileName(page.ID)), []byte(page.Text), 0644)
}

// ListTextFiles returns the names of regular files ending in .txt, sorted.
func (d *Dir) ListTextFiles(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(d.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, cassdoc.Errorf(cassdoc.ENOTFOUND, "directory %s not found", d.path)
	} else if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), cassdoc.TextExt) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// ReadFile returns the content of the named file.
func (d *Dir) ReadFile(ctx context.Context, name string) (string, error) {
	path, err := d.resolve(name)
	if err != nil {
		return "", err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", cassdoc.Errorf(cassdoc.EINVALID, "%s is not valid UTF-8", name)
	}
	return string(b), nil
}

// WriteFile overwrites the named file with content.
func (d *Dir) WriteFile(ctx context.Context, name string, content string) error {
	path, err := d.resolve(name)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0644)
}

// resolve joins name onto the directory, rejecting anything that is not a
// plain file name.
func (d *Dir) resolve(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return "", cassdoc.Errorf(cassdoc.EINVALID, "invalid file name %q", name)
	}
	return filepath.Join(d.path, name), nil
}
