// Package news fans planned queries out against NewsAPI and merges the hits.
package news

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"sync"
	"time"

	"ideaforge/config"
	"ideaforge/types"
)

// Searcher queries the NewsAPI /v2/everything endpoint.
type Searcher struct {
	cfg        config.NewsConfig
	apiKey     string
	httpClient *http.Client
}

// New creates a Searcher. An empty apiKey disables the gatherer: every
// search returns an empty result.
func New(cfg config.NewsConfig, apiKey string) *Searcher {
	return &Searcher{
		cfg:        cfg,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: time.Duration(cfg.TimeoutSec) * time.Second},
	}
}

type apiResponse struct {
	Articles []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		PublishedAt string `json:"publishedAt"`
		Source      struct {
			Name string `json:"name"`
		} `json:"source"`
	} `json:"articles"`
}

// Search runs all queries in parallel, restricted to the lookback window,
// English, newest first. A failed query logs and contributes nothing; the
// merged result is deduplicated by URL and capped. Never returns an error.
func (s *Searcher) Search(ctx context.Context, queries []string) []types.NewsArticle {
	if s.apiKey == "" {
		log.Println("[news] NEWS_API_KEY not set, skipping news search")
		return nil
	}

	from := time.Now().AddDate(0, 0, -s.cfg.LookbackDays).Format(time.RFC3339)

	results := make([][]types.NewsArticle, len(queries))
	var wg sync.WaitGroup
	for i, q := range queries {
		wg.Add(1)
		go func(i int, q string) {
			defer wg.Done()
			articles, err := s.searchOne(ctx, q, from)
			if err != nil {
				log.Printf("[news] query %q failed: %v", q, err)
				return
			}
			results[i] = articles
		}(i, q)
	}
	wg.Wait()

	var merged []types.NewsArticle
	for _, r := range results {
		merged = append(merged, r...)
	}
	merged = dedupByURL(merged)
	if len(merged) > s.cfg.MaxArticles {
		merged = merged[:s.cfg.MaxArticles]
	}
	return merged
}

func (s *Searcher) searchOne(ctx context.Context, query, from string) ([]types.NewsArticle, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("apiKey", s.apiKey)
	params.Set("language", "en")
	params.Set("sortBy", "publishedAt")
	params.Set("from", from)
	params.Set("pageSize", fmt.Sprint(s.cfg.PageSize))

	req, err := http.NewRequestWithContext(ctx, "GET", s.cfg.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from NewsAPI", resp.StatusCode)
	}

	var parsed apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	articles := make([]types.NewsArticle, 0, len(parsed.Articles))
	for _, a := range parsed.Articles {
		if a.Title == "" || a.Title == "[Removed]" {
			continue
		}
		articles = append(articles, types.NewsArticle{
			Title:       a.Title,
			Description: a.Description,
			URL:         a.URL,
			PublishedAt: a.PublishedAt,
			Source:      a.Source.Name,
		})
	}
	return articles, nil
}

// dedupByURL keeps one article per URL: first-seen position, last-seen value.
func dedupByURL(articles []types.NewsArticle) []types.NewsArticle {
	index := make(map[string]int, len(articles))
	var out []types.NewsArticle
	for _, a := range articles {
		if i, ok := index[a.URL]; ok {
			out[i] = a
			continue
		}
		index[a.URL] = len(out)
		out = append(out, a)
	}
	return out
}
