// Package analysis derives a channel profile: a vision-based thumbnail style
// guide plus a structured content analysis of recent videos.
package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"ideaforge/config"
	"ideaforge/openai"
	"ideaforge/prompts"
	"ideaforge/types"
)

type completer interface {
	ChatCompletion(ctx context.Context, req openai.ChatRequest) (string, error)
}

// Analyzer runs both sub-analyses and combines them into one profile.
type Analyzer struct {
	client  completer
	cfg     config.OpenAIConfig
	samples int
}

// New creates an Analyzer. samples caps how many thumbnails the vision call
// gets to look at.
func New(client completer, cfg config.OpenAIConfig, samples int) *Analyzer {
	return &Analyzer{client: client, cfg: cfg, samples: samples}
}

// AnalyzeChannel produces the full channel profile. The style sub-analysis
// degrades to a default string on any failure; the content sub-analysis does
// not — an unusable response fails the whole stage. The asymmetry is
// deliberate: ideas without a style guide are still useful, ideas without a
// content profile are not.
func (a *Analyzer) AnalyzeChannel(ctx context.Context, videos []types.Video) (types.ChannelAnalysis, error) {
	style := a.analyzeThumbnailStyle(ctx, videos)

	content, err := a.client.ChatCompletion(ctx, openai.ChatRequest{
		Model: a.cfg.ChatModel,
		Messages: []openai.Message{
			{Role: "system", Content: prompts.ChannelAnalystSystem},
			{Role: "user", Content: prompts.AnalyzeChannel(videos)},
		},
		Temperature: a.cfg.TempMedium,
		JSONMode:    true,
	})
	if err != nil {
		return types.ChannelAnalysis{}, fmt.Errorf("failed to analyze channel content: %w", err)
	}

	analysis, err := parseContentAnalysis(content)
	if err != nil {
		return types.ChannelAnalysis{}, fmt.Errorf("failed to analyze channel content: %w", err)
	}
	analysis.ThumbnailStyle = style
	return analysis, nil
}

// analyzeThumbnailStyle asks a vision model for a prescriptive style guide
// built from up to a.samples thumbnail URLs. Never returns an error.
func (a *Analyzer) analyzeThumbnailStyle(ctx context.Context, videos []types.Video) string {
	var urls []string
	for _, v := range videos {
		if v.ThumbnailURL == "" {
			continue
		}
		urls = append(urls, v.ThumbnailURL)
		if len(urls) == a.samples {
			break
		}
	}
	if len(urls) == 0 {
		return prompts.DefaultThumbnailStyle
	}

	content := []any{openai.Text(prompts.AnalyzeThumbnails)}
	for _, u := range urls {
		content = append(content, openai.Image(u))
	}

	style, err := a.client.ChatCompletion(ctx, openai.ChatRequest{
		Model: a.cfg.ChatModel,
		Messages: []openai.Message{
			{Role: "system", Content: prompts.ThumbnailAnalystSystem},
			{Role: "user", Content: content},
		},
		Temperature: a.cfg.TempLow,
		MaxTokens:   a.cfg.VisionMaxTokens,
	})
	if err != nil {
		log.Printf("[analysis] thumbnail style extraction failed, using default: %v", err)
		return prompts.DefaultThumbnailStyle
	}
	return style
}

// parseContentAnalysis is the parse-or-default boundary for the structured
// analysis: every field falls back to its documented default, but an
// unparseable or empty response is an error.
func parseContentAnalysis(content string) (types.ChannelAnalysis, error) {
	var raw map[string]any
	if err := json.Unmarshal([]byte(openai.CleanJSON(content)), &raw); err != nil {
		return types.ChannelAnalysis{}, fmt.Errorf("parse analysis JSON: %w", err)
	}

	return types.ChannelAnalysis{
		Topics:         stringSlice(raw["topics"], prompts.DefaultTopics()),
		Style:          stringField(raw["style"], prompts.DefaultStyle),
		Tone:           stringField(raw["tone"], prompts.DefaultTone),
		TargetAudience: stringField(raw["targetAudience"], prompts.DefaultAudience),
		ContentFormat:  stringField(raw["contentFormat"], prompts.DefaultContentFormat),
	}, nil
}

func stringField(v any, fallback string) string {
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	return fallback
}

func stringSlice(v any, fallback []string) []string {
	arr, ok := v.([]any)
	if !ok {
		return fallback
	}
	var out []string
	for _, item := range arr {
		if s, ok := item.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
