// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render converts finished markdown articles to HTML for pasting
// into a CMS.
package render

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
)

// HTML converts a markdown document to an HTML fragment.
func HTML(markdown []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert(markdown, &buf); err != nil {
		return nil, fmt.Errorf("converting markdown: %w", err)
	}
	return buf.Bytes(), nil
}
