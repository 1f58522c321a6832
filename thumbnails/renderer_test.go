package thumbnails

import (
	"context"
	"errors"
	"strings"
	"testing"

	"ideaforge/config"
	"ideaforge/openai"
)

type fakeImages struct {
	url     string
	err     error
	lastReq openai.ImageRequest
}

func (f *fakeImages) GenerateImage(_ context.Context, req openai.ImageRequest) (string, error) {
	f.lastReq = req
	return f.url, f.err
}

func TestRenderComposesStyleAndContent(t *testing.T) {
	fake := &fakeImages{url: "https://images.example.com/out.png"}
	r := New(fake, config.Default().OpenAI, "/placeholder-thumbnail.png")

	got := r.Render(context.Background(), "developer staring at red build output", "neon colors, bold type")
	if got != "https://images.example.com/out.png" {
		t.Fatalf("Render = %q", got)
	}

	if !strings.Contains(fake.lastReq.Prompt, "neon colors, bold type") {
		t.Error("style guide missing from composed prompt")
	}
	if !strings.Contains(fake.lastReq.Prompt, "developer staring at red build output") {
		t.Error("content prompt missing from composed prompt")
	}
	if !strings.Contains(fake.lastReq.Prompt, "DO NOT DEVIATE") {
		t.Error("mandatory style framing missing")
	}
	if fake.lastReq.Size != "1792x1024" || fake.lastReq.Quality != "hd" || fake.lastReq.Style != "natural" {
		t.Errorf("image parameters wrong: %+v", fake.lastReq)
	}
}

func TestRenderFailureYieldsPlaceholder(t *testing.T) {
	fake := &fakeImages{err: errors.New("content policy")}
	r := New(fake, config.Default().OpenAI, "/placeholder-thumbnail.png")

	if got := r.Render(context.Background(), "prompt", "style"); got != "/placeholder-thumbnail.png" {
		t.Fatalf("Render on failure = %q, want placeholder", got)
	}
}
