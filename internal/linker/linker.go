// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package linker inserts internal hyperlinks into finished article text.
// One LLM call returns the article with [[anchor text|url]] spans; parsing
// turns that markup back into plain-text and link runs for the document
// renderer.
package linker

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"
	"text/template"

	"github.com/pdiddy/article-engine/internal/ai"
	"github.com/pdiddy/article-engine/pkg/types"
)

const annotateMaxTokens = 8000

// linkPattern matches inserted link spans: [[anchor text|url]].
var linkPattern = regexp.MustCompile(`\[\[([^\]]+)\]\]`)

// annotatePromptTmpl embeds the article, the page catalog, the priority list,
// and the link budget in one instruction. The model must return the article
// verbatim apart from inserted [[anchor|url]] spans.
var annotatePromptTmpl = template.Must(template.New("annotate").Parse(`You are an internal linking specialist. Add internal links to this article.

ARTICLE TO ADD LINKS TO:
{{.Article}}

AVAILABLE PAGES (from sitemap):
{{range .Catalog}}- {{.Title}}: {{.URL}}
{{end}}
PRIORITY URLS (use these first if contextually relevant):
{{if .Priority}}{{range .Priority}}- {{.}}
{{end}}{{else}}None specified
{{end}}
NUMBER OF LINKS TO ADD: {{.Count}}

INSTRUCTIONS:
1. Read the article carefully and identify {{.Count}} opportunities for internal links
2. PRIORITIZE the priority URLs first - if they fit contextually, use them before other pages
3. For each link:
   - Find natural anchor text (2-5 words) that describes the destination page
   - Choose the most relevant page from the available pages
   - Ensure the link fits naturally in the sentence context
   - Do NOT force links where they don't make sense
4. Each URL should be used ONLY ONCE across the entire article
5. Distribute links throughout the article - avoid clustering in one section
6. Links should feel natural, not keyword-stuffed

OUTPUT FORMAT:
Return the article with links in this EXACT format:
- Use double square brackets for links: [[anchor text|URL]]
- Example: "This is a sentence about [[payment processing|https://example.com/payments]] in the article."
- Do NOT use markdown format like [text](url)
- Do NOT use HTML format like <a href="">
- Use ONLY the [[anchor text|URL]] format

CRITICAL RULES:
- Use each URL only once
- Add exactly {{.Count}} links (or fewer if not enough good opportunities)
- Links must be contextually relevant
- Maintain all original article content and structure
- Only add the link syntax, don't modify any other text

Return the complete article with internal links added:`))

type annotatePromptData struct {
	Article  string
	Catalog  []types.Page
	Priority []string
	Count    int
}

// Annotate asks the model to weave count internal links from the page
// catalog into articleText and parses the annotated response into
// paragraphs of plain-text and link runs. No semantic validation is
// performed on the model's choices: URLs outside the catalog or a missed
// count pass through, with duplicates noted on w as a warning only.
func Annotate(ctx context.Context, backend ai.Completer, articleText string, catalog []types.Page, count int, priority []string, w io.Writer) ([]types.Paragraph, error) {
	if len(catalog) == 0 {
		return nil, fmt.Errorf("page catalog is empty")
	}

	var buf bytes.Buffer
	err := annotatePromptTmpl.Execute(&buf, annotatePromptData{
		Article:  articleText,
		Catalog:  catalog,
		Priority: priority,
		Count:    count,
	})
	if err != nil {
		return nil, fmt.Errorf("rendering annotate prompt: %w", err)
	}

	response, err := backend.Complete(ctx, buf.String(), annotateMaxTokens)
	if err != nil {
		return nil, fmt.Errorf("annotating article: %w", err)
	}

	paras := ParseAnnotated(strings.TrimSpace(response))

	for _, url := range DuplicateURLs(paras) {
		fmt.Fprintf(w, "warning: url used more than once: %s\n", url)
	}

	return paras, nil
}

// ParseAnnotated splits annotated article text into paragraphs on blank
// lines and each paragraph into alternating plain-text and link runs. A
// bracket span without the anchor/url separator is preserved verbatim as
// literal text, brackets included, rather than dropped.
func ParseAnnotated(text string) []types.Paragraph {
	var paras []types.Paragraph

	for _, block := range strings.Split(text, "\n\n") {
		if strings.TrimSpace(block) == "" {
			continue
		}

		var para types.Paragraph
		last := 0
		for _, m := range linkPattern.FindAllStringSubmatchIndex(block, -1) {
			if m[0] > last {
				para = append(para, types.LinkedSegment{Text: block[last:m[0]]})
			}

			inner := block[m[2]:m[3]]
			if anchor, url, ok := strings.Cut(inner, "|"); ok {
				para = append(para, types.LinkedSegment{
					Anchor: strings.TrimSpace(anchor),
					URL:    strings.TrimSpace(url),
				})
			} else {
				// Malformed span: keep it as literal text.
				para = append(para, types.LinkedSegment{Text: "[[" + inner + "]]"})
			}

			last = m[1]
		}
		if last < len(block) {
			para = append(para, types.LinkedSegment{Text: block[last:]})
		}

		paras = append(paras, para)
	}

	return paras
}

// DuplicateURLs returns the URLs that appear in more than one link run
// across the whole document, in first-seen order.
func DuplicateURLs(paras []types.Paragraph) []string {
	seen := make(map[string]int)
	var dups []string
	for _, para := range paras {
		for _, seg := range para {
			if !seg.IsLink() {
				continue
			}
			seen[seg.URL]++
			if seen[seg.URL] == 2 {
				dups = append(dups, seg.URL)
			}
		}
	}
	return dups
}
