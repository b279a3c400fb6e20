// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analyze

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/article-engine/internal/httputil"
	"github.com/pdiddy/article-engine/pkg/types"
)

func TestMain(m *testing.M) {
	httputil.RetryBaseDelay = time.Millisecond
	m.Run()
}

func TestSerpSearcher_Search(t *testing.T) {
	var gotQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"q":       r.URL.Query().Get("q"),
			"num":     r.URL.Query().Get("num"),
			"api_key": r.URL.Query().Get("api_key"),
		}
		w.Write([]byte(`{"organic_results": [
			{"link": "https://a.com/1"},
			{"link": "https://b.com/2"},
			{"link": ""},
			{"link": "https://c.com/3"}
		]}`))
	}))
	defer server.Close()

	orig := searchAPIURL
	searchAPIURL = server.URL
	defer func() { searchAPIURL = orig }()

	s, err := NewSerpSearcher("test-key", types.HTTPConfig{})
	require.NoError(t, err)

	urls, err := s.Search(context.Background(), "payment fees", 2)
	require.NoError(t, err)

	assert.Equal(t, []string{"https://a.com/1", "https://b.com/2"}, urls)
	assert.Equal(t, "payment fees", gotQuery["q"])
	assert.Equal(t, "2", gotQuery["num"])
	assert.Equal(t, "test-key", gotQuery["api_key"])
}

func TestSerpSearcher_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid key", http.StatusUnauthorized)
	}))
	defer server.Close()

	orig := searchAPIURL
	searchAPIURL = server.URL
	defer func() { searchAPIURL = orig }()

	s, err := NewSerpSearcher("bad-key", types.HTTPConfig{})
	require.NoError(t, err)

	_, err = s.Search(context.Background(), "kw", 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestNewSerpSearcher_RequiresKey(t *testing.T) {
	_, err := NewSerpSearcher("", types.HTTPConfig{})
	assert.Error(t, err)
}

func TestFirecrawlScraper_Scrape(t *testing.T) {
	var gotAuth string
	var gotBody scrapeRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &gotBody))
		w.Write([]byte(`{"success": true, "data": {"markdown": "## Scraped Section"}}`))
	}))
	defer server.Close()

	orig := scrapeAPIURL
	scrapeAPIURL = server.URL
	defer func() { scrapeAPIURL = orig }()

	f, err := NewFirecrawlScraper("fc-key", types.HTTPConfig{})
	require.NoError(t, err)

	md, err := f.Scrape(context.Background(), "https://rival.com/page")
	require.NoError(t, err)

	assert.Equal(t, "## Scraped Section", md)
	assert.Equal(t, "Bearer fc-key", gotAuth)
	assert.Equal(t, "https://rival.com/page", gotBody.URL)
	assert.Equal(t, []string{"markdown"}, gotBody.Formats)
}

func TestFirecrawlScraper_EmptyMarkdownIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": true, "data": {"markdown": ""}}`))
	}))
	defer server.Close()

	orig := scrapeAPIURL
	scrapeAPIURL = server.URL
	defer func() { scrapeAPIURL = orig }()

	f, err := NewFirecrawlScraper("fc-key", types.HTTPConfig{})
	require.NoError(t, err)

	_, err = f.Scrape(context.Background(), "https://rival.com/page")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no markdown")
}

func TestFirecrawlScraper_RetriesOn429(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			http.Error(w, "rate limited", http.StatusTooManyRequests)
			return
		}
		// The retried POST must still carry the body.
		body, _ := io.ReadAll(r.Body)
		var req scrapeRequest
		require.NoError(t, json.Unmarshal(body, &req))
		assert.Equal(t, "https://rival.com/page", req.URL)
		w.Write([]byte(`{"success": true, "data": {"markdown": "ok"}}`))
	}))
	defer server.Close()

	orig := scrapeAPIURL
	scrapeAPIURL = server.URL
	defer func() { scrapeAPIURL = orig }()

	f, err := NewFirecrawlScraper("fc-key", types.HTTPConfig{})
	require.NoError(t, err)

	md, err := f.Scrape(context.Background(), "https://rival.com/page")
	require.NoError(t, err)
	assert.Equal(t, "ok", md)
	assert.Equal(t, 2, calls)
}

func TestNewFirecrawlScraper_RequiresKey(t *testing.T) {
	_, err := NewFirecrawlScraper("", types.HTTPConfig{})
	assert.Error(t, err)
}
