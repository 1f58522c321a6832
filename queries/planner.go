// Package queries turns a channel profile into five news and five reddit
// search queries biased toward the current date.
package queries

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"ideaforge/config"
	"ideaforge/openai"
	"ideaforge/prompts"
	"ideaforge/types"
)

type completer interface {
	ChatCompletion(ctx context.Context, req openai.ChatRequest) (string, error)
}

// Planner generates the search query plan.
type Planner struct {
	client completer
	cfg    config.OpenAIConfig
	now    func() time.Time
}

// New creates a Planner. now is the clock; pass nil for time.Now.
func New(client completer, cfg config.OpenAIConfig, now func() time.Time) *Planner {
	if now == nil {
		now = time.Now
	}
	return &Planner{client: client, cfg: cfg, now: now}
}

// Plan asks the model for exactly 5 queries per provider. If either array
// comes back short, BOTH are replaced by the deterministic fallback plan —
// never a generated/fallback mix. A completion or parse failure is terminal.
func (p *Planner) Plan(ctx context.Context, analysis types.ChannelAnalysis) (types.SearchQueries, error) {
	topics := prompts.TopicsString(analysis.Topics)
	now := p.now()
	currentYear := now.Year()
	currentMonth := now.Format("January")
	currentDate := now.Format("January 2, 2006")

	content, err := p.client.ChatCompletion(ctx, openai.ChatRequest{
		Model: p.cfg.MiniModel,
		Messages: []openai.Message{
			{Role: "system", Content: prompts.SearchQueryAgentSystem(currentDate, currentYear)},
			{Role: "user", Content: prompts.GenerateSearchQueries(topics, analysis.Style, analysis.TargetAudience, currentDate, currentYear, currentMonth)},
		},
		Temperature: p.cfg.TempHigh,
		JSONMode:    true,
	})
	if err != nil {
		return types.SearchQueries{}, fmt.Errorf("failed to generate search queries: %w", err)
	}

	var raw types.SearchQueries
	if err := json.Unmarshal([]byte(openai.CleanJSON(content)), &raw); err != nil {
		return types.SearchQueries{}, fmt.Errorf("failed to generate search queries: parse: %w", err)
	}

	return normalizePlan(raw, topics), nil
}

// normalizePlan enforces the exactly-5 invariant on both arrays. Longer
// arrays are truncated; a short one discards the entire generated plan.
func normalizePlan(raw types.SearchQueries, topics string) types.SearchQueries {
	if len(raw.NewsQueries) < 5 || len(raw.RedditQueries) < 5 {
		log.Printf("[queries] generated plan short (%d news, %d reddit), using fallback", len(raw.NewsQueries), len(raw.RedditQueries))
		return prompts.FallbackQueries(topics)
	}
	return types.SearchQueries{
		NewsQueries:   raw.NewsQueries[:5],
		RedditQueries: raw.RedditQueries[:5],
	}
}
