// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package docx

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/article-engine/pkg/types"
)

func writeAndUnzip(t *testing.T, paras []types.Paragraph) map[string]string {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, paras))

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)

	parts := make(map[string]string)
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		rc.Close()
		require.NoError(t, err)
		parts[f.Name] = string(data)
	}
	return parts
}

func TestWrite_PartSet(t *testing.T) {
	parts := writeAndUnzip(t, []types.Paragraph{
		{{Text: "Hello world."}},
	})

	for _, name := range []string{
		"[Content_Types].xml",
		"_rels/.rels",
		"word/document.xml",
		"word/_rels/document.xml.rels",
	} {
		assert.Contains(t, parts, name)
	}
}

func TestWrite_PlainTextRun(t *testing.T) {
	parts := writeAndUnzip(t, []types.Paragraph{
		{{Text: "Hello world."}},
	})

	doc := parts["word/document.xml"]
	assert.Contains(t, doc, `<w:t xml:space="preserve">Hello world.</w:t>`)
	assert.NotContains(t, doc, "<w:hyperlink")
}

func TestWrite_HyperlinkRun(t *testing.T) {
	parts := writeAndUnzip(t, []types.Paragraph{
		{
			{Text: "Read about "},
			{Text: "", Anchor: "payments", URL: "https://acme.com/payments"},
			{Text: " today."},
		},
	})

	doc := parts["word/document.xml"]
	assert.Contains(t, doc, `<w:hyperlink r:id="rId2">`)
	assert.Contains(t, doc, `<w:color w:val="0000FF"/>`)
	assert.Contains(t, doc, `<w:u w:val="single"/>`)
	assert.Contains(t, doc, `<w:t xml:space="preserve">payments</w:t>`)

	rels := parts["word/_rels/document.xml.rels"]
	assert.Contains(t, rels, `Id="rId2"`)
	assert.Contains(t, rels, `Target="https://acme.com/payments"`)
	assert.Contains(t, rels, `TargetMode="External"`)
}

func TestWrite_MultipleLinksGetDistinctIDs(t *testing.T) {
	parts := writeAndUnzip(t, []types.Paragraph{
		{
			{Anchor: "first", URL: "https://acme.com/a"},
			{Text: " and "},
			{Anchor: "second", URL: "https://acme.com/b"},
		},
		{
			{Anchor: "third", URL: "https://acme.com/c"},
		},
	})

	rels := parts["word/_rels/document.xml.rels"]
	for _, id := range []string{`Id="rId2"`, `Id="rId3"`, `Id="rId4"`} {
		assert.Contains(t, rels, id)
	}
	assert.Contains(t, rels, `Target="https://acme.com/c"`)
}

func TestWrite_EscapesSpecialCharacters(t *testing.T) {
	parts := writeAndUnzip(t, []types.Paragraph{
		{
			{Text: "Fees < 2% & rising"},
			{Anchor: "T&C", URL: "https://acme.com/terms?a=1&b=2"},
		},
	})

	doc := parts["word/document.xml"]
	assert.Contains(t, doc, "Fees &lt; 2% &amp; rising")
	assert.Contains(t, doc, "T&amp;C")

	rels := parts["word/_rels/document.xml.rels"]
	assert.Contains(t, rels, "a=1&amp;b=2")
}

func TestWrite_EmptyDocument(t *testing.T) {
	parts := writeAndUnzip(t, nil)

	doc := parts["word/document.xml"]
	assert.Contains(t, doc, "<w:body></w:body>")
	assert.NotContains(t, parts["word/_rels/document.xml.rels"], "<Relationship ")
}

func TestWrite_ParagraphPerBlock(t *testing.T) {
	parts := writeAndUnzip(t, []types.Paragraph{
		{{Text: "First."}},
		{{Text: "Second."}},
	})

	assert.Equal(t, 2, strings.Count(parts["word/document.xml"], "<w:p>"))
}
