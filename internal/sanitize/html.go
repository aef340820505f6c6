// Package sanitize strips unsafe HTML from user-supplied text before it is
// stored. Company profiles and opportunity postings accept free text from
// outside parties, so everything passes through here on the way in.
package sanitize

import (
	"github.com/microcosm-cc/bluemonday"
)

var (
	// StrictPolicy removes all HTML tags and attributes.
	// Use for fields that should only contain plain text (names, titles,
	// locations, industries).
	StrictPolicy = bluemonday.StrictPolicy()

	// UGCPolicy allows safe user-generated content with basic formatting.
	// Permits: <p>, <b>, <i>, <em>, <strong>, <a>, <ul>, <ol>, <li>, <br>
	// Use for fields where basic formatting is acceptable (descriptions).
	UGCPolicy = bluemonday.UGCPolicy()
)

// Text strips all HTML tags and returns plain text.
// Use for: company names, job titles, locations.
func Text(input string) string {
	return StrictPolicy.Sanitize(input)
}

// HTML sanitizes HTML content, allowing safe formatting tags.
// Use for: company bios, opportunity descriptions.
// Removes: <script>, <iframe>, onclick handlers, style attributes.
func HTML(input string) string {
	return UGCPolicy.Sanitize(input)
}

// TextPtr sanitizes an optional plain-text field in place, leaving nil
// untouched so partial updates keep their absent-vs-empty distinction.
func TextPtr(input *string) *string {
	if input == nil {
		return nil
	}
	cleaned := Text(*input)
	return &cleaned
}

// HTMLPtr is TextPtr for fields that allow safe formatting.
func HTMLPtr(input *string) *string {
	if input == nil {
		return nil
	}
	cleaned := HTML(*input)
	return &cleaned
}
