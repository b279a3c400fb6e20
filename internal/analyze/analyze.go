// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package analyze generates content refresh recommendations for an existing
// article by comparing its section structure against the top-ranking
// competitor articles for a keyword. The output is written in the same
// heading grammar the brief parser accepts, so recommendations can be fed
// straight back into a rewrite run.
package analyze

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/article-engine/internal/ai"
	"github.com/pdiddy/article-engine/pkg/types"
)

const (
	gapMaxTokens             = 3000
	icpFilterMaxTokens       = 3000
	recommendationsMaxTokens = 5000

	defaultMaxCompetitors = 5
)

// CompetitorStructure holds the heading outline scraped from one
// competitor page.
type CompetitorStructure struct {
	URL      string
	Headings []string
}

// Report is the YAML artifact saved alongside the recommendations.
type Report struct {
	Keyword        string   `yaml:"keyword"`
	CompetitorURLs []string `yaml:"competitor_urls"`
	ScrapeFailures []string `yaml:"scrape_failures,omitempty"`
	AnalyzedAt     string   `yaml:"analyzed_at"`
}

// YAML serializes the report for writing to disk.
func (r Report) YAML() ([]byte, error) {
	out, err := yaml.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("marshaling analyze report: %w", err)
	}
	return out, nil
}

// Result bundles the recommendations text with its report.
type Result struct {
	Recommendations string
	Report          Report
}

// Analyze runs the competitor research flow: search for top-ranking pages,
// scrape their heading structures, then make three model calls (gap
// analysis, ICP relevance filter, recommendation generation). Scrape
// failures are reported and skipped; the flow continues with whatever
// structures were collected. Progress is written to w.
func Analyze(ctx context.Context, backend ai.Completer, searcher Searcher, scraper Scraper,
	article, keyword, audienceBrief string, cfg types.AnalyzeConfig, w io.Writer) (*Result, error) {

	maxCompetitors := cfg.MaxCompetitors
	if maxCompetitors <= 0 {
		maxCompetitors = defaultMaxCompetitors
	}

	fmt.Fprintln(w, "Searching for top competitor articles...")
	urls, err := searcher.Search(ctx, keyword, maxCompetitors)
	if err != nil {
		return nil, fmt.Errorf("competitor search: %w", err)
	}
	fmt.Fprintf(w, "Found %d competitor URLs\n", len(urls))

	fmt.Fprintln(w, "Scraping competitor article structures...")
	var structures []CompetitorStructure
	var failures []string
	for i, pageURL := range urls {
		fmt.Fprintf(w, "Scraping %d/%d: %s\n", i+1, len(urls), truncate(pageURL, 50))
		markdown, err := scraper.Scrape(ctx, pageURL)
		if err != nil {
			fmt.Fprintf(w, "Failed to scrape %s: %v\n", pageURL, err)
			failures = append(failures, pageURL)
			continue
		}
		structures = append(structures, CompetitorStructure{
			URL:      pageURL,
			Headings: ExtractHeadings(markdown),
		})
	}
	fmt.Fprintf(w, "Successfully scraped %d competitor articles\n", len(structures))

	if len(structures) == 0 {
		return nil, fmt.Errorf("no competitor structures collected for %q", keyword)
	}

	competitorText := formatStructures(structures)
	articleStructure := strings.Join(ExtractHeadings(article), "\n")

	fmt.Fprintln(w, "Analyzing content gaps...")
	gapPrompt, err := renderPrompt(gapPromptTmpl, gapPromptData{
		ArticleStructure:     articleStructure,
		CompetitorStructures: competitorText,
	})
	if err != nil {
		return nil, err
	}
	gapAnalysis, err := backend.Complete(ctx, gapPrompt, gapMaxTokens)
	if err != nil {
		return nil, fmt.Errorf("gap analysis: %w", err)
	}
	gapAnalysis = StripJSONFence(gapAnalysis)

	fmt.Fprintln(w, "Filtering recommendations for ICP relevance...")
	icpPrompt, err := renderPrompt(icpPromptTmpl, icpPromptData{
		GapAnalysis:   gapAnalysis,
		Article:       article,
		AudienceBrief: audienceBrief,
	})
	if err != nil {
		return nil, err
	}
	filtered, err := backend.Complete(ctx, icpPrompt, icpFilterMaxTokens)
	if err != nil {
		return nil, fmt.Errorf("relevance filter: %w", err)
	}
	filtered = StripJSONFence(filtered)

	fmt.Fprintln(w, "Generating detailed recommendations...")
	recPrompt, err := renderPrompt(recommendationsPromptTmpl, recommendationsPromptData{
		Article:              article,
		CompetitorStructures: competitorText,
		FilteredGaps:         filtered,
		AudienceBrief:        audienceBrief,
		Keyword:              keyword,
	})
	if err != nil {
		return nil, err
	}
	recommendations, err := backend.Complete(ctx, recPrompt, recommendationsMaxTokens)
	if err != nil {
		return nil, fmt.Errorf("recommendation generation: %w", err)
	}

	fmt.Fprintln(w, "Analysis complete")

	return &Result{
		Recommendations: strings.TrimSpace(recommendations),
		Report: Report{
			Keyword:        keyword,
			CompetitorURLs: urls,
			ScrapeFailures: failures,
			AnalyzedAt:     time.Now().UTC().Format(time.RFC3339),
		},
	}, nil
}

// ExtractHeadings returns the H2 and H3 heading lines of a markdown
// document, trimmed, in document order.
func ExtractHeadings(markdown string) []string {
	var headings []string
	for _, line := range strings.Split(markdown, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "### "):
			headings = append(headings, "### "+strings.TrimSpace(strings.TrimPrefix(line, "### ")))
		case strings.HasPrefix(line, "## "):
			headings = append(headings, "## "+strings.TrimSpace(strings.TrimPrefix(line, "## ")))
		}
	}
	return headings
}

// StripJSONFence removes markdown code fence markers that models sometimes
// wrap around JSON responses.
func StripJSONFence(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

func formatStructures(structures []CompetitorStructure) string {
	blocks := make([]string, len(structures))
	for i, comp := range structures {
		blocks[i] = fmt.Sprintf("COMPETITOR %d (%s):\n%s",
			i+1, truncate(comp.URL, 50), strings.Join(comp.Headings, "\n"))
	}
	return strings.Join(blocks, "\n\n")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
