// Package ideas synthesizes exactly five video ideas from the channel
// profile and the gathered news/reddit context.
package ideas

import (
	"context"
	"encoding/json"
	"fmt"

	"ideaforge/config"
	"ideaforge/openai"
	"ideaforge/prompts"
	"ideaforge/types"
)

type completer interface {
	ChatCompletion(ctx context.Context, req openai.ChatRequest) (string, error)
}

// Generator produces video ideas without thumbnails; rendering happens in a
// later stage.
type Generator struct {
	client completer
	cfg    config.OpenAIConfig
	count  int
}

// New creates a Generator that always returns exactly count ideas.
func New(client completer, cfg config.OpenAIConfig, count int) *Generator {
	return &Generator{client: client, cfg: cfg, count: count}
}

// Generate asks the model for the ideas and repairs whatever comes back into
// exactly g.count fully-populated entries. A missing or empty ideas array is
// a terminal stage failure.
func (g *Generator) Generate(ctx context.Context, analysis types.ChannelAnalysis, refTitles []string, newsContext, redditContext string) ([]types.VideoIdea, error) {
	topics := prompts.TopicsString(analysis.Topics)

	content, err := g.client.ChatCompletion(ctx, openai.ChatRequest{
		Model: g.cfg.ChatModel,
		Messages: []openai.Message{
			{Role: "system", Content: prompts.VideoStrategistSystem},
			{Role: "user", Content: prompts.GenerateVideoIdeas(analysis, topics, refTitles, newsContext, redditContext)},
		},
		Temperature: g.cfg.TempCreative,
		JSONMode:    true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate video ideas: %w", err)
	}

	var raw struct {
		Ideas []json.RawMessage `json:"ideas"`
	}
	if err := json.Unmarshal([]byte(openai.CleanJSON(content)), &raw); err != nil {
		return nil, fmt.Errorf("failed to generate video ideas: parse: %w", err)
	}
	if len(raw.Ideas) == 0 {
		return nil, fmt.Errorf("failed to generate video ideas: missing or empty ideas array")
	}

	return repairIdeas(raw.Ideas, g.count), nil
}

type rawIdea struct {
	Title            string `json:"title"`
	ThumbnailPrompt  string `json:"thumbnailPrompt"`
	VideoDescription string `json:"videoDescription"`
}

// repairIdeas fills missing fields with templated defaults and forces the
// list to exactly count entries: extras are dropped, a short list is padded
// with defaults so the downstream exactly-five contract always holds.
func repairIdeas(raws []json.RawMessage, count int) []types.VideoIdea {
	out := make([]types.VideoIdea, 0, count)
	for i := 0; i < count; i++ {
		var idea rawIdea
		if i < len(raws) {
			// A malformed element degrades to an all-defaults idea.
			_ = json.Unmarshal(raws[i], &idea)
		}
		out = append(out, repairOne(idea, i))
	}
	return out
}

func repairOne(idea rawIdea, index int) types.VideoIdea {
	title := idea.Title
	if title == "" {
		title = fmt.Sprintf("Video Idea %d", index+1)
	}
	prompt := idea.ThumbnailPrompt
	if prompt == "" {
		subject := idea.Title
		if subject == "" {
			subject = "video"
		}
		prompt = "Create an eye-catching YouTube thumbnail for: " + subject
	}
	desc := idea.VideoDescription
	if desc == "" {
		desc = "Detailed video description coming soon."
	}
	return types.VideoIdea{
		Title:            title,
		ThumbnailPrompt:  prompt,
		VideoDescription: desc,
	}
}
