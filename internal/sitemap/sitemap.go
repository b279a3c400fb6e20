// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sitemap fetches XML sitemaps and turns them into page catalogs
// for the linker.
package sitemap

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pdiddy/article-engine/internal/httputil"
	"github.com/pdiddy/article-engine/pkg/types"
)

// urlSet mirrors the sitemaps.org urlset document.
type urlSet struct {
	XMLName xml.Name   `xml:"urlset"`
	URLs    []urlEntry `xml:"url"`
}

type urlEntry struct {
	Loc string `xml:"loc"`
}

// Fetch downloads and parses the XML sitemap at sitemapURL. Each <loc>
// becomes one Page; sitemaps carry no titles, so the title is derived from
// the last URL path segment (hyphens to spaces, words title-cased).
func Fetch(ctx context.Context, client *http.Client, sitemapURL string, cfg types.HTTPConfig) ([]types.Page, error) {
	resp, err := httputil.Get(ctx, client, sitemapURL, cfg)
	if err != nil {
		return nil, fmt.Errorf("fetching sitemap: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching sitemap: %s returned %d", sitemapURL, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading sitemap body: %w", err)
	}

	var set urlSet
	if err := xml.Unmarshal(body, &set); err != nil {
		return nil, fmt.Errorf("parsing sitemap XML: %w", err)
	}

	var pages []types.Page
	for _, entry := range set.URLs {
		loc := strings.TrimSpace(entry.Loc)
		if loc == "" {
			continue
		}
		pages = append(pages, types.Page{URL: loc, Title: TitleFromURL(loc)})
	}
	return pages, nil
}

// TitleFromURL derives a display title from the last path segment of a URL:
// "https://example.com/blog/payment-processing" becomes "Payment Processing".
func TitleFromURL(url string) string {
	trimmed := strings.TrimRight(url, "/")
	segment := trimmed
	if i := strings.LastIndex(trimmed, "/"); i >= 0 {
		segment = trimmed[i+1:]
	}

	words := strings.Split(strings.ReplaceAll(segment, "-", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
