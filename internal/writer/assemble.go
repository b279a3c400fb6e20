// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package writer

import (
	"fmt"
	"strings"

	"github.com/pdiddy/article-engine/pkg/types"
)

// Assemble concatenates generated sections into a single outline-ordered
// document, re-inserting the heading lines that generation stripped. Each
// section becomes a heading line at its own level followed by its content.
// Empty input produces an empty document; there are no other failure modes.
func Assemble(sections []types.GeneratedSection) string {
	blocks := make([]string, 0, len(sections))
	for _, sec := range sections {
		blocks = append(blocks, fmt.Sprintf("\n%s %s\n%s", sec.Level.Marker(), sec.Title, sec.Content))
	}
	return strings.Join(blocks, "\n")
}

// AssembleLegacy reassembles legacy-grammar sections, which are all H3:
// a "## <parent>" group heading is emitted each time ParentTitle changes
// from the previous section, then the section's own "### <title>" heading,
// then its content.
func AssembleLegacy(sections []types.GeneratedSection) string {
	var parts []string
	currentH2 := ""
	started := false

	for _, sec := range sections {
		if !started || sec.ParentTitle != currentH2 {
			currentH2 = sec.ParentTitle
			started = true
			parts = append(parts, fmt.Sprintf("\n## %s\n", currentH2))
		}
		parts = append(parts, fmt.Sprintf("\n### %s\n", sec.Title))
		parts = append(parts, sec.Content)
	}

	return strings.Join(parts, "\n")
}
