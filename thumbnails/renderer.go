// Package thumbnails renders one image per idea by combining the channel
// style guide with the idea's content prompt.
package thumbnails

import (
	"context"
	"log"

	"ideaforge/config"
	"ideaforge/openai"
	"ideaforge/prompts"
)

type imageGenerator interface {
	GenerateImage(ctx context.Context, req openai.ImageRequest) (string, error)
}

// Renderer generates thumbnail images.
type Renderer struct {
	client      imageGenerator
	cfg         config.OpenAIConfig
	placeholder string
}

// New creates a Renderer. placeholder is returned whenever generation fails.
func New(client imageGenerator, cfg config.OpenAIConfig, placeholder string) *Renderer {
	return &Renderer{client: client, cfg: cfg, placeholder: placeholder}
}

// Render produces one thumbnail URL. The style guide is injected verbatim
// and marked mandatory; the content prompt supplies only what is unique to
// this idea. A failed generation logs and returns the placeholder — a broken
// image never aborts the run.
func (r *Renderer) Render(ctx context.Context, contentPrompt, styleGuide string) string {
	url, err := r.client.GenerateImage(ctx, openai.ImageRequest{
		Model:   r.cfg.ImageModel,
		Prompt:  prompts.GenerateThumbnail(styleGuide, contentPrompt),
		Size:    r.cfg.ImageSize,
		Quality: r.cfg.ImageQuality,
		Style:   r.cfg.ImageStyle,
	})
	if err != nil {
		log.Printf("[thumbnails] generation failed, using placeholder: %v", err)
		return r.placeholder
	}
	return url
}
