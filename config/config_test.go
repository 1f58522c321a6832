package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.YouTube.FetchCount != 10 || cfg.Ideas.Count != 5 {
		t.Errorf("defaults not applied: %+v", cfg)
	}
	if cfg.Reddit.RequestDelay() != time.Second {
		t.Errorf("RequestDelay = %v, want 1s", cfg.Reddit.RequestDelay())
	}
}

func TestLoadOverlaysFileOnDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "server:\n  addr: \":9090\"\nopenai:\n  chat_model: gpt-4.1\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("Addr = %q", cfg.Server.Addr)
	}
	if cfg.OpenAI.ChatModel != "gpt-4.1" {
		t.Errorf("ChatModel = %q", cfg.OpenAI.ChatModel)
	}
	// untouched sections keep their defaults
	if cfg.News.MaxArticles != 15 || cfg.OpenAI.ImageModel != "dall-e-3" {
		t.Errorf("defaults lost under overlay: %+v", cfg)
	}
}

func TestLoadInvalidYAMLIsAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server: [not a map"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestMissingCredentials(t *testing.T) {
	tests := []struct {
		name  string
		creds Credentials
		want  []string
	}{
		{"all set", Credentials{OpenAIKey: "a", YouTubeKey: "b", NewsKey: "c"}, nil},
		{"news optional", Credentials{OpenAIKey: "a", YouTubeKey: "b"}, nil},
		{"no openai", Credentials{YouTubeKey: "b"}, []string{"OPENAI_API_KEY"}},
		{"nothing", Credentials{}, []string{"OPENAI_API_KEY", "YOUTUBE_API_KEY"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.creds.Missing()
			if len(got) != len(tt.want) {
				t.Fatalf("Missing() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Missing()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}
