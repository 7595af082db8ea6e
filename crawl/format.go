package crawl

import (
	"fmt"

	"github.com/fwojciec/cassdoc"
)

// FormatBytes formats bytes in human-readable form.
func FormatBytes(bytes int) string {
	const (
		KB = 1024
		MB = KB * 1024
	)
	switch {
	case bytes >= MB:
		return fmt.Sprintf("%.1f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.1f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

// PageLabel returns the console label for a page, e.g. "CASS7a".
func PageLabel(id cassdoc.PageID) string {
	return "CASS" + string(id)
}
