package cassdoc

import "context"

// Page represents the rendered text of one handbook page.
type Page struct {
	ID   PageID
	URL  string
	Text string
}

// Validate returns an error if the page contains invalid fields.
func (p *Page) Validate() error {
	if p.ID == "" {
		return Errorf(EINVALID, "page ID required")
	}
	return nil
}

// PageStore persists fetched pages, one file per page identifier.
type PageStore interface {
	// SavePage writes the page text, replacing any previous content.
	SavePage(ctx context.Context, page *Page) error
}

// PageFiles gives in-place access to previously saved page files.
type PageFiles interface {
	// ListTextFiles returns the names of all text files, sorted.
	// Returns ENOTFOUND if the directory does not exist.
	ListTextFiles(ctx context.Context) ([]string, error)

	// ReadFile returns the content of the named file.
	// Returns EINVALID if the content is not valid UTF-8.
	ReadFile(ctx context.Context, name string) (string, error)

	// WriteFile overwrites the named file with content.
	WriteFile(ctx context.Context, name string, content string) error
}
