// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analyze

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/pdiddy/article-engine/internal/httputil"
	"github.com/pdiddy/article-engine/pkg/types"
)

// scrapeAPIURL is a package variable so tests can point it at a local server.
var scrapeAPIURL = "https://api.firecrawl.dev/v1/scrape"

// Scraper fetches a page and returns its content as markdown.
type Scraper interface {
	Scrape(ctx context.Context, pageURL string) (string, error)
}

// FirecrawlScraper scrapes pages through the Firecrawl API.
type FirecrawlScraper struct {
	apiKey string
	client *http.Client
}

// NewFirecrawlScraper builds a scraper over the shared HTTP settings.
func NewFirecrawlScraper(apiKey string, cfg types.HTTPConfig) (*FirecrawlScraper, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("scrape API key is required")
	}
	return &FirecrawlScraper{apiKey: apiKey, client: httputil.NewClient(cfg)}, nil
}

type scrapeRequest struct {
	URL     string   `json:"url"`
	Formats []string `json:"formats"`
}

type scrapeResponse struct {
	Success bool `json:"success"`
	Data    struct {
		Markdown string `json:"markdown"`
	} `json:"data"`
}

// Scrape returns the page content as markdown. An empty markdown result is
// an error so callers can count the page as a scrape failure.
func (f *FirecrawlScraper) Scrape(ctx context.Context, pageURL string) (string, error) {
	payload, err := json.Marshal(scrapeRequest{URL: pageURL, Formats: []string{"markdown"}})
	if err != nil {
		return "", fmt.Errorf("encoding scrape request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, scrapeAPIURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("building scrape request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+f.apiKey)

	resp, err := httputil.DoWithRetry(ctx, f.client, req, 0)
	if err != nil {
		return "", fmt.Errorf("scraping %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading scrape response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("scrape API returned %d: %s", resp.StatusCode, string(body))
	}

	var parsed scrapeResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("parsing scrape response: %w", err)
	}
	if parsed.Data.Markdown == "" {
		return "", fmt.Errorf("scrape of %s returned no markdown", pageURL)
	}
	return parsed.Data.Markdown, nil
}
