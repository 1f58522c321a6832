// Package redditsearch gathers discussion context from Reddit's public
// search, paced sequentially to stay under the rate limit.
package redditsearch

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sort"
	"time"

	"github.com/vartanbeno/go-reddit/v2/reddit"

	"ideaforge/config"
	"ideaforge/types"
)

type postSearcher interface {
	SearchPosts(ctx context.Context, query string, subreddit string, opts *reddit.ListPostSearchOptions) ([]*reddit.Post, *reddit.Response, error)
}

// Searcher runs discussion searches via a readonly Reddit client.
type Searcher struct {
	cfg   config.RedditConfig
	posts postSearcher
	sleep func(time.Duration)
}

// New builds a Searcher backed by an unauthenticated Reddit client.
func New(cfg config.RedditConfig) (*Searcher, error) {
	client, err := reddit.NewReadonlyClient(
		reddit.WithUserAgent(cfg.UserAgent),
		reddit.WithHTTPClient(&http.Client{Timeout: time.Duration(cfg.TimeoutSec) * time.Second}),
	)
	if err != nil {
		return nil, fmt.Errorf("reddit client: %w", err)
	}
	return &Searcher{cfg: cfg, posts: client.Subreddit, sleep: time.Sleep}, nil
}

// Search runs the queries one at a time with a fixed delay between requests.
// Reddit's public search throttles bursts, so this pacing is deliberate —
// unlike the news gatherer, which fans out freely. A failed query logs and
// contributes nothing. The merged result is deduplicated by URL, sorted by
// descending score and capped. Never returns an error.
func (s *Searcher) Search(ctx context.Context, queries []string) []types.RedditPost {
	var merged []types.RedditPost
	for i, q := range queries {
		if i > 0 {
			select {
			case <-ctx.Done():
				return finalize(merged, s.cfg.MaxPosts)
			default:
			}
			s.sleep(s.cfg.RequestDelay())
		}
		posts, err := s.searchOne(ctx, q)
		if err != nil {
			log.Printf("[reddit] query %q failed: %v", q, err)
			continue
		}
		merged = append(merged, posts...)
	}
	return finalize(merged, s.cfg.MaxPosts)
}

func (s *Searcher) searchOne(ctx context.Context, query string) ([]types.RedditPost, error) {
	posts, _, err := s.posts.SearchPosts(ctx, query, "", &reddit.ListPostSearchOptions{
		ListPostOptions: reddit.ListPostOptions{
			ListOptions: reddit.ListOptions{Limit: s.cfg.SearchLimit},
			Time:        s.cfg.TimeRange,
		},
		Sort: "relevance",
	})
	if err != nil {
		return nil, err
	}

	out := make([]types.RedditPost, 0, len(posts))
	for _, p := range posts {
		created := ""
		if p.Created != nil {
			created = p.Created.UTC().Format(time.RFC3339)
		}
		out = append(out, types.RedditPost{
			Title:     p.Title,
			Content:   p.Body,
			URL:       "https://www.reddit.com" + p.Permalink,
			Subreddit: p.SubredditName,
			Score:     p.Score,
			CreatedAt: created,
		})
	}
	return out, nil
}

// finalize dedups by URL (first position, last value), sorts by descending
// score and caps the list.
func finalize(posts []types.RedditPost, limit int) []types.RedditPost {
	index := make(map[string]int, len(posts))
	var out []types.RedditPost
	for _, p := range posts {
		if i, ok := index[p.URL]; ok {
			out[i] = p
			continue
		}
		index[p.URL] = len(out)
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
