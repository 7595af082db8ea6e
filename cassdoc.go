// Package cassdoc scrapes the FCA Handbook CASS sourcebook into local text
// files and strips the site's navigation boilerplate from them.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., rod/, chromedp/, fs/).
package cassdoc

import "strconv"

// DefaultBaseURL is the URL prefix every page identifier is appended to.
const DefaultBaseURL = "https://handbook.fca.org.uk/handbook/cass"

// TextExt is the extension of saved page files.
const TextExt = ".txt"

// PageID identifies a single CASS chapter, schedule or transitional page.
// Examples: "1", "7a", "tp1", "sch3".
type PageID string

// DefaultPageIDs returns the CASS pages in fetch order: chapters 1 to 14,
// then 1a, 7a, the transitional provisions and schedules 1 to 6.
func DefaultPageIDs() []PageID {
	ids := make([]PageID, 0, 23)
	for i := 1; i <= 14; i++ {
		ids = append(ids, PageID(strconv.Itoa(i)))
	}
	ids = append(ids, "1a", "7a", "tp1")
	for i := 1; i <= 6; i++ {
		ids = append(ids, PageID("sch"+strconv.Itoa(i)))
	}
	return ids
}

// PageURL returns the handbook URL for id.
func PageURL(baseURL string, id PageID) string {
	return baseURL + string(id)
}

// PageFileName returns the name of the file holding the text of id.
func PageFileName(id PageID) string {
	return "cass" + string(id) + TextExt
}
