// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analyze

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pdiddy/article-engine/internal/httputil"
	"github.com/pdiddy/article-engine/pkg/types"
)

// searchAPIURL is a package variable so tests can point it at a local server.
var searchAPIURL = "https://serpapi.com/search.json"

// Searcher returns result URLs for a keyword, best ranked first.
type Searcher interface {
	Search(ctx context.Context, keyword string, limit int) ([]string, error)
}

// SerpSearcher queries the SerpAPI Google search endpoint.
type SerpSearcher struct {
	apiKey string
	client *http.Client
	cfg    types.HTTPConfig
}

// NewSerpSearcher builds a searcher over the shared HTTP settings.
func NewSerpSearcher(apiKey string, cfg types.HTTPConfig) (*SerpSearcher, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("search API key is required")
	}
	return &SerpSearcher{apiKey: apiKey, client: httputil.NewClient(cfg), cfg: cfg}, nil
}

type serpResponse struct {
	OrganicResults []struct {
		Link string `json:"link"`
	} `json:"organic_results"`
}

// Search returns up to limit organic result URLs for the keyword.
func (s *SerpSearcher) Search(ctx context.Context, keyword string, limit int) ([]string, error) {
	q := url.Values{}
	q.Set("q", keyword)
	q.Set("num", strconv.Itoa(limit))
	q.Set("api_key", s.apiKey)

	resp, err := httputil.Get(ctx, s.client, searchAPIURL+"?"+q.Encode(), s.cfg)
	if err != nil {
		return nil, fmt.Errorf("searching %q: %w", keyword, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading search response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search API returned %d: %s", resp.StatusCode, string(body))
	}

	var parsed serpResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("parsing search response: %w", err)
	}

	var urls []string
	for _, r := range parsed.OrganicResults {
		if r.Link == "" {
			continue
		}
		urls = append(urls, r.Link)
		if len(urls) == limit {
			break
		}
	}
	return urls, nil
}
