// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Page is one candidate link target from a site's page catalog.
type Page struct {
	// URL is the page address.
	URL string `json:"url" yaml:"url"`

	// Title is the human-readable page name, derived from the URL path when
	// the sitemap carries no explicit title.
	Title string `json:"title" yaml:"title"`
}

// LinkedSegment is one run of annotated article text: either a plain-text
// run (Anchor and URL empty) or a hyperlink run (Text empty).
type LinkedSegment struct {
	// Text is the literal content of a plain run.
	Text string `json:"text,omitempty" yaml:"text,omitempty"`

	// Anchor is the visible, clickable text of a link run.
	Anchor string `json:"anchor,omitempty" yaml:"anchor,omitempty"`

	// URL is the link target of a link run.
	URL string `json:"url,omitempty" yaml:"url,omitempty"`
}

// IsLink reports whether the segment is a hyperlink run.
func (s LinkedSegment) IsLink() bool {
	return s.URL != ""
}

// Paragraph is an ordered sequence of segments separated from its neighbors
// by blank lines in the source article.
type Paragraph []LinkedSegment
