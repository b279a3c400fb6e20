// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package docx renders annotated paragraphs as a Word document. Link runs
// become real OOXML hyperlinks (blue, underlined) backed by external
// relationship entries; the package writes the minimal WordprocessingML
// part set directly rather than depending on a full OOXML library.
package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"

	"github.com/pdiddy/article-engine/pkg/types"
)

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Default Extension="xml" ContentType="application/xml"/>
  <Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>
`

const rootRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>
`

const hyperlinkRelType = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/hyperlink"

// Write renders the paragraphs as a .docx archive on w.
func Write(w io.Writer, paras []types.Paragraph) error {
	relIDs := assignRelIDs(paras)

	zw := zip.NewWriter(w)

	parts := []struct {
		name    string
		content string
	}{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", rootRelsXML},
		{"word/document.xml", documentXML(paras, relIDs)},
		{"word/_rels/document.xml.rels", documentRelsXML(paras, relIDs)},
	}

	for _, part := range parts {
		f, err := zw.Create(part.name)
		if err != nil {
			return fmt.Errorf("creating %s: %w", part.name, err)
		}
		if _, err := f.Write([]byte(part.content)); err != nil {
			return fmt.Errorf("writing %s: %w", part.name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("closing docx archive: %w", err)
	}
	return nil
}

// assignRelIDs gives every link segment a relationship ID, in document
// order. Duplicate URLs get distinct IDs; deduplication is the annotator's
// concern, not the renderer's.
func assignRelIDs(paras []types.Paragraph) map[*types.LinkedSegment]string {
	ids := make(map[*types.LinkedSegment]string)
	n := 1 // rId1 is the document part itself in root rels; hyperlink IDs live in document rels.
	for pi := range paras {
		for si := range paras[pi] {
			seg := &paras[pi][si]
			if seg.IsLink() {
				n++
				ids[seg] = fmt.Sprintf("rId%d", n)
			}
		}
	}
	return ids
}

func documentXML(paras []types.Paragraph, relIDs map[*types.LinkedSegment]string) string {
	var b bytes.Buffer
	b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n")
	b.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"><w:body>`)

	for pi := range paras {
		b.WriteString(`<w:p>`)
		for si := range paras[pi] {
			seg := &paras[pi][si]
			if seg.IsLink() {
				fmt.Fprintf(&b, `<w:hyperlink r:id="%s">`, relIDs[seg])
				b.WriteString(`<w:r><w:rPr><w:color w:val="0000FF"/><w:u w:val="single"/></w:rPr>`)
				fmt.Fprintf(&b, `<w:t xml:space="preserve">%s</w:t>`, escape(seg.Anchor))
				b.WriteString(`</w:r></w:hyperlink>`)
			} else if seg.Text != "" {
				fmt.Fprintf(&b, `<w:r><w:t xml:space="preserve">%s</w:t></w:r>`, escape(seg.Text))
			}
		}
		b.WriteString(`</w:p>`)
	}

	b.WriteString(`</w:body></w:document>` + "\n")
	return b.String()
}

func documentRelsXML(paras []types.Paragraph, relIDs map[*types.LinkedSegment]string) string {
	var b bytes.Buffer
	b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n")
	b.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)

	for pi := range paras {
		for si := range paras[pi] {
			seg := &paras[pi][si]
			if seg.IsLink() {
				fmt.Fprintf(&b, `<Relationship Id="%s" Type="%s" Target="%s" TargetMode="External"/>`,
					relIDs[seg], hyperlinkRelType, escape(seg.URL))
			}
		}
	}

	b.WriteString(`</Relationships>` + "\n")
	return b.String()
}

// escape makes a string safe for XML character data and attribute values.
func escape(s string) string {
	var b bytes.Buffer
	xml.EscapeText(&b, []byte(s))
	return b.String()
}
