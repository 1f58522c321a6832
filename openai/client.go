// Package openai is a minimal client for the OpenAI HTTP API: chat
// completions (text and vision, optional JSON mode) and image generation.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"ideaforge/config"
)

// Client talks to an OpenAI-compatible API over plain HTTP.
type Client struct {
	baseURL     string
	apiKey      string
	chatClient  *http.Client
	imageClient *http.Client
}

// New creates a Client from config and the API key.
func New(cfg config.OpenAIConfig, apiKey string) *Client {
	return &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:      apiKey,
		chatClient:  &http.Client{Timeout: time.Duration(cfg.ChatTimeoutSec) * time.Second},
		imageClient: &http.Client{Timeout: time.Duration(cfg.ImageTimeoutSec) * time.Second},
	}
}

// Message is one chat message. Content is either a string or a slice of
// parts (TextPart/ImagePart) for vision requests; it marshals as-is.
type Message struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type TextPart struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type ImagePart struct {
	Type     string   `json:"type"`
	ImageURL ImageURL `json:"image_url"`
}

type ImageURL struct {
	URL    string `json:"url"`
	Detail string `json:"detail,omitempty"`
}

// Text builds a plain text part.
func Text(s string) TextPart { return TextPart{Type: "text", Text: s} }

// Image builds a high-detail image part.
func Image(url string) ImagePart {
	return ImagePart{Type: "image_url", ImageURL: ImageURL{URL: url, Detail: "high"}}
}

// ChatRequest describes one chat completion call.
type ChatRequest struct {
	Model       string
	Messages    []Message
	Temperature float64
	MaxTokens   int
	JSONMode    bool
}

type chatRequestJSON struct {
	Model          string          `json:"model"`
	Messages       []Message       `json:"messages"`
	Temperature    float64         `json:"temperature"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *apiError `json:"error"`
}

type apiError struct {
	Message string `json:"message"`
}

// ChatCompletion runs one completion and returns the raw assistant text.
// An empty completion is an error: every caller needs content.
func (c *Client) ChatCompletion(ctx context.Context, req ChatRequest) (string, error) {
	body := chatRequestJSON{
		Model:       req.Model,
		Messages:    req.Messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}
	if req.JSONMode {
		body.ResponseFormat = &responseFormat{Type: "json_object"}
	}

	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/chat/completions", bytes.NewReader(bodyBytes))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.chatClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("chat request: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBytes, &parsed); err != nil {
		return "", fmt.Errorf("parse chat response: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("openai error: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("openai returned no choices")
	}
	content := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("openai returned empty content")
	}
	return content, nil
}

// ImageRequest describes one image generation call.
type ImageRequest struct {
	Model   string
	Prompt  string
	Size    string
	Quality string
	Style   string
}

type imageRequestJSON struct {
	Model   string `json:"model"`
	Prompt  string `json:"prompt"`
	N       int    `json:"n"`
	Size    string `json:"size"`
	Quality string `json:"quality,omitempty"`
	Style   string `json:"style,omitempty"`
}

type imageResponse struct {
	Data []struct {
		URL string `json:"url"`
	} `json:"data"`
	Error *apiError `json:"error"`
}

// GenerateImage generates a single image and returns its URL.
func (c *Client) GenerateImage(ctx context.Context, req ImageRequest) (string, error) {
	body := imageRequestJSON{
		Model:   req.Model,
		Prompt:  req.Prompt,
		N:       1,
		Size:    req.Size,
		Quality: req.Quality,
		Style:   req.Style,
	}

	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/images/generations", bytes.NewReader(bodyBytes))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.imageClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("image request: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var parsed imageResponse
	if err := json.Unmarshal(respBytes, &parsed); err != nil {
		return "", fmt.Errorf("parse image response: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("openai error: %s", parsed.Error.Message)
	}
	if len(parsed.Data) == 0 || parsed.Data[0].URL == "" {
		return "", fmt.Errorf("no image URL returned")
	}
	return parsed.Data[0].URL, nil
}

// CleanJSON strips markdown fences when the model wraps JSON in ```json ...```.
func CleanJSON(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
