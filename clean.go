package cassdoc

import (
	"regexp"
	"strings"
)

// HeaderMarkers end the site navigation preamble, in priority order.
var HeaderMarkers = []string{
	"Sign Up / Sign In\nSearch\nClear\nHome\nFCA Handbook",
	"FCA Handbook in print\nSign Up / Sign In",
}

// FooterMarkers start the trailing site navigation, in priority order.
var FooterMarkers = []string{
	"Previous Chapter",
	"Next Chapter\nAccessibility",
	"Accessibility\nTerms & Conditions",
}

// sectionStartRe matches a chapter heading such as "CASS 7a" at the start of
// the text or of a line.
var sectionStartRe = regexp.MustCompile(`(?:\A|\n)CASS \d+[a-z]*`)

// Clean applies TrimHeader, TrimToSection and TrimFooter in that order.
// Cleaning already cleaned text returns it unchanged.
func Clean(text string) string {
	text = TrimHeader(text)
	text = TrimToSection(text)
	return TrimFooter(text)
}

// TrimHeader drops everything up to and including the first header marker
// found. Text without any header marker is returned unchanged.
func TrimHeader(text string) string {
	for _, marker := range HeaderMarkers {
		if _, after, ok := strings.Cut(text, marker); ok {
			return strings.TrimSpace(after)
		}
	}
	return text
}

// TrimToSection drops everything before the first "CASS <n>" heading line.
// Text without such a line is returned unchanged.
func TrimToSection(text string) string {
	loc := sectionStartRe.FindStringIndex(text)
	if loc == nil {
		return text
	}
	return strings.TrimSpace(text[loc[0]:])
}

// TrimFooter drops the first footer marker found and everything after it.
// Text without any footer marker is returned unchanged.
func TrimFooter(text string) string {
	for _, marker := range FooterMarkers {
		if before, _, ok := strings.Cut(text, marker); ok {
			return strings.TrimSpace(before)
		}
	}
	return text
}
