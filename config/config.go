package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server     ServerConfig     `yaml:"server"`
	OpenAI     OpenAIConfig     `yaml:"openai"`
	YouTube    YouTubeConfig    `yaml:"youtube"`
	News       NewsConfig       `yaml:"news"`
	Reddit     RedditConfig     `yaml:"reddit"`
	Ideas      IdeasConfig      `yaml:"ideas"`
	Thumbnails ThumbnailsConfig `yaml:"thumbnails"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type OpenAIConfig struct {
	BaseURL         string  `yaml:"base_url"`
	ChatModel       string  `yaml:"chat_model"`
	MiniModel       string  `yaml:"mini_model"`
	ImageModel      string  `yaml:"image_model"`
	ImageSize       string  `yaml:"image_size"`
	ImageQuality    string  `yaml:"image_quality"`
	ImageStyle      string  `yaml:"image_style"`
	ChatTimeoutSec  int     `yaml:"chat_timeout_sec"`
	ImageTimeoutSec int     `yaml:"image_timeout_sec"`
	VisionMaxTokens int     `yaml:"vision_max_tokens"`
	TempLow         float64 `yaml:"temp_low"`
	TempMedium      float64 `yaml:"temp_medium"`
	TempHigh        float64 `yaml:"temp_high"`
	TempCreative    float64 `yaml:"temp_creative"`
}

type YouTubeConfig struct {
	FetchCount      int `yaml:"fetch_count"`
	DisplayCount    int `yaml:"display_count"`
	FetchMultiplier int `yaml:"fetch_multiplier"`
	MaxFetch        int `yaml:"max_fetch"`
	ShortsMaxSec    int `yaml:"shorts_max_sec"`
}

type NewsConfig struct {
	BaseURL      string `yaml:"base_url"`
	PageSize     int    `yaml:"page_size"`
	MaxArticles  int    `yaml:"max_articles"`
	DisplayCount int    `yaml:"display_count"`
	LookbackDays int    `yaml:"lookback_days"`
	TimeoutSec   int    `yaml:"timeout_sec"`
}

type RedditConfig struct {
	SearchLimit    int    `yaml:"search_limit"`
	MaxPosts       int    `yaml:"max_posts"`
	DisplayCount   int    `yaml:"display_count"`
	TimeRange      string `yaml:"time_range"`
	RequestDelayMS int    `yaml:"request_delay_ms"`
	UserAgent      string `yaml:"user_agent"`
	TimeoutSec     int    `yaml:"timeout_sec"`
}

type IdeasConfig struct {
	Count int `yaml:"count"`
}

type ThumbnailsConfig struct {
	SampleCount     int    `yaml:"sample_count"`
	PlaceholderPath string `yaml:"placeholder_path"`
}

// Default returns the built-in configuration. The per-stage caps are
// contract values, not tunables — config.yaml exists to override endpoints
// and timeouts in dev, not to change result shapes.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Addr: ":8080"},
		OpenAI: OpenAIConfig{
			BaseURL:         "https://api.openai.com/v1",
			ChatModel:       "gpt-4o",
			MiniModel:       "gpt-4o-mini",
			ImageModel:      "dall-e-3",
			ImageSize:       "1792x1024",
			ImageQuality:    "hd",
			ImageStyle:      "natural",
			ChatTimeoutSec:  90,
			ImageTimeoutSec: 120,
			VisionMaxTokens: 3000,
			TempLow:         0.2,
			TempMedium:      0.7,
			TempHigh:        0.8,
			TempCreative:    0.9,
		},
		YouTube: YouTubeConfig{
			FetchCount:      10,
			DisplayCount:    5,
			FetchMultiplier: 3,
			MaxFetch:        50,
			ShortsMaxSec:    60,
		},
		News: NewsConfig{
			BaseURL:      "https://newsapi.org/v2/everything",
			PageSize:     5,
			MaxArticles:  15,
			DisplayCount: 10,
			LookbackDays: 7,
			TimeoutSec:   15,
		},
		Reddit: RedditConfig{
			SearchLimit:    10,
			MaxPosts:       15,
			DisplayCount:   10,
			TimeRange:      "week",
			RequestDelayMS: 1000,
			UserAgent:      "ideaforge/1.0",
			TimeoutSec:     15,
		},
		Ideas:      IdeasConfig{Count: 5},
		Thumbnails: ThumbnailsConfig{SampleCount: 5, PlaceholderPath: "/placeholder-thumbnail.png"},
	}
}

// Load returns the default config with overrides from the YAML file at path
// applied on top. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *RedditConfig) RequestDelay() time.Duration {
	return time.Duration(c.RequestDelayMS) * time.Millisecond
}

// Credentials holds the provider secrets read from the environment.
type Credentials struct {
	OpenAIKey  string
	YouTubeKey string
	NewsKey    string
}

// LoadCredentials reads provider keys from env. NEWS_API_KEY is optional:
// the news gatherer degrades to an empty result without it.
func LoadCredentials() Credentials {
	return Credentials{
		OpenAIKey:  os.Getenv("OPENAI_API_KEY"),
		YouTubeKey: os.Getenv("YOUTUBE_API_KEY"),
		NewsKey:    os.Getenv("NEWS_API_KEY"),
	}
}

// Missing lists required credential names that are not set.
func (c Credentials) Missing() []string {
	var missing []string
	if c.OpenAIKey == "" {
		missing = append(missing, "OPENAI_API_KEY")
	}
	if c.YouTubeKey == "" {
		missing = append(missing, "YOUTUBE_API_KEY")
	}
	return missing
}
