package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"ideaforge/analysis"
	"ideaforge/config"
	"ideaforge/ideas"
	"ideaforge/news"
	"ideaforge/openai"
	"ideaforge/pipeline"
	"ideaforge/queries"
	"ideaforge/redditsearch"
	"ideaforge/server"
	"ideaforge/thumbnails"
	"ideaforge/youtube"
)

func main() {
	// Load .env (local dev only — deployments use real env)
	_ = godotenv.Load()

	configPath := flag.String("config", "config.yaml", "path to config file")
	oneShotURL := flag.String("url", "", "run one analysis for this channel URL and print JSON instead of serving")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	creds := config.LoadCredentials()

	ctx := context.Background()
	pipe, err := buildPipeline(ctx, cfg, creds)
	if err != nil {
		log.Fatalf("Failed to build pipeline: %v", err)
	}

	if *oneShotURL != "" {
		runOnce(ctx, pipe, creds, *oneShotURL)
		return
	}

	router := gin.Default()
	_ = router.SetTrustedProxies([]string{"127.0.0.1"})

	handler := server.NewHandler(pipe, creds)
	handler.RegisterRoutes(router)

	httpSrv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("🎬 ideaforge listening on %s", cfg.Server.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Printf("shutdown signal received: %s", sig)
	case err := <-errCh:
		log.Printf("server error: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Printf("http shutdown error: %v", err)
	}
	log.Println("server stopped")
}

func buildPipeline(ctx context.Context, cfg *config.Config, creds config.Credentials) (*pipeline.Pipeline, error) {
	resolver, err := youtube.NewResolver(ctx, cfg.YouTube, creds.YouTubeKey)
	if err != nil {
		return nil, err
	}
	redditSearcher, err := redditsearch.New(cfg.Reddit)
	if err != nil {
		return nil, err
	}

	ai := openai.New(cfg.OpenAI, creds.OpenAIKey)

	return pipeline.New(
		resolver,
		analysis.New(ai, cfg.OpenAI, cfg.Thumbnails.SampleCount),
		queries.New(ai, cfg.OpenAI, nil),
		news.New(cfg.News, creds.NewsKey),
		redditSearcher,
		ideas.New(ai, cfg.OpenAI, cfg.Ideas.Count),
		thumbnails.New(ai, cfg.OpenAI, cfg.Thumbnails.PlaceholderPath),
		cfg,
	), nil
}

// runOnce executes the pipeline once for a channel URL, logging progress and
// printing the result JSON to stdout.
func runOnce(ctx context.Context, pipe *pipeline.Pipeline, creds config.Credentials, channelURL string) {
	if missing := creds.Missing(); len(missing) > 0 {
		log.Fatalf("Missing credentials: %s", strings.Join(missing, ", "))
	}

	result, err := pipe.Run(ctx, channelURL, func(step, message string) {
		log.Printf("[%s] %s", step, message)
	})
	if err != nil {
		log.Fatalf("❌ Analysis failed: %v", err)
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("marshal result: %v", err)
	}
	os.Stdout.Write(append(data, '\n'))
	log.Println("✅ Analysis complete")
}
