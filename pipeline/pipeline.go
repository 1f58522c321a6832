// Package pipeline sequences the seven analysis stages for one channel and
// reports progress through a single injection point, keeping the pipeline
// independent of the transport (SSE or single-shot JSON).
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"ideaforge/config"
	"ideaforge/prompts"
	"ideaforge/types"
)

// ErrNoVideos terminates a run whose channel has no eligible long-form
// uploads.
var ErrNoVideos = errors.New("No videos found for this channel")

// ValidationError wraps a final-result schema violation so the transport can
// report it distinctly from stage errors.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return "Data validation error: " + e.Err.Error()
}

func (e *ValidationError) Unwrap() error { return e.Err }

// ProgressFunc receives progress events as "i/7" step markers with a
// human-readable message.
type ProgressFunc func(step, message string)

// Stage dependencies. Each is the contract one pipeline step drives;
// concrete implementations live in their own packages.
type (
	VideoSource interface {
		Resolve(ctx context.Context, channelURL string) (string, error)
		ListRecentVideos(ctx context.Context, channelID string, count int) ([]types.Video, error)
	}
	Analyzer interface {
		AnalyzeChannel(ctx context.Context, videos []types.Video) (types.ChannelAnalysis, error)
	}
	QueryPlanner interface {
		Plan(ctx context.Context, analysis types.ChannelAnalysis) (types.SearchQueries, error)
	}
	NewsSearcher interface {
		Search(ctx context.Context, queries []string) []types.NewsArticle
	}
	RedditSearcher interface {
		Search(ctx context.Context, queries []string) []types.RedditPost
	}
	IdeaGenerator interface {
		Generate(ctx context.Context, analysis types.ChannelAnalysis, refTitles []string, newsContext, redditContext string) ([]types.VideoIdea, error)
	}
	ThumbnailRenderer interface {
		Render(ctx context.Context, contentPrompt, styleGuide string) string
	}
)

const (
	stepFetch      = "1/7"
	stepAnalyze    = "2/7"
	stepQueries    = "3/7"
	stepNews       = "4/7"
	stepReddit     = "5/7"
	stepIdeas      = "6/7"
	stepThumbnails = "7/7"
)

// Pipeline owns the stage clients for the lifetime of the process; each Run
// is self-contained and holds no shared mutable state.
type Pipeline struct {
	videos   VideoSource
	analyzer Analyzer
	planner  QueryPlanner
	news     NewsSearcher
	reddit   RedditSearcher
	ideas    IdeaGenerator
	thumbs   ThumbnailRenderer
	cfg      *config.Config
	validate *validator.Validate
}

// New wires the pipeline from its stage implementations.
func New(videos VideoSource, analyzer Analyzer, planner QueryPlanner, news NewsSearcher, reddit RedditSearcher, ideas IdeaGenerator, thumbs ThumbnailRenderer, cfg *config.Config) *Pipeline {
	return &Pipeline{
		videos:   videos,
		analyzer: analyzer,
		planner:  planner,
		news:     news,
		reddit:   reddit,
		ideas:    ideas,
		thumbs:   thumbs,
		cfg:      cfg,
		validate: validator.New(),
	}
}

// Run executes the full analysis for one channel URL. Stage-local
// recoverable failures are absorbed inside the stages; any error returned
// here is run-terminal. The final result is schema-validated before being
// handed back.
func (p *Pipeline) Run(ctx context.Context, channelURL string, onProgress ProgressFunc) (*types.AnalysisResult, error) {
	if onProgress == nil {
		onProgress = func(string, string) {}
	}
	runID := uuid.NewString()[:8]
	log.Printf("[pipeline] run %s: analyzing %s", runID, channelURL)

	// Stage 1: fetch videos
	onProgress(stepFetch, "Fetching videos from YouTube...")
	channelID, err := p.videos.Resolve(ctx, channelURL)
	if err != nil {
		return nil, err
	}
	videos, err := p.videos.ListRecentVideos(ctx, channelID, p.cfg.YouTube.FetchCount)
	if err != nil {
		return nil, err
	}
	if len(videos) == 0 {
		return nil, ErrNoVideos
	}
	onProgress(stepFetch, fmt.Sprintf("Found %d videos", len(videos)))

	// Stage 2: channel analysis
	onProgress(stepAnalyze, "Analyzing channel content and thumbnail style")
	analysis, err := p.analyzer.AnalyzeChannel(ctx, videos)
	if err != nil {
		return nil, err
	}
	onProgress(stepAnalyze, "Analysis complete: "+topicsPreview(analysis.Topics))

	// Stage 3: query planning
	onProgress(stepQueries, "Generating search queries")
	queries, err := p.planner.Plan(ctx, analysis)
	if err != nil {
		return nil, err
	}
	onProgress(stepQueries, fmt.Sprintf("Generated %d queries", len(queries.NewsQueries)+len(queries.RedditQueries)))

	// Stages 4+5: both gatherers run concurrently; each paces its own
	// sub-calls. Neither can fail the run.
	onProgress(stepNews, "Searching for latest news and Reddit discussions")
	var newsArticles []types.NewsArticle
	var redditPosts []types.RedditPost
	done := make(chan struct{})
	go func() {
		defer close(done)
		redditPosts = p.reddit.Search(ctx, queries.RedditQueries)
	}()
	newsArticles = p.news.Search(ctx, queries.NewsQueries)
	<-done
	onProgress(stepNews, fmt.Sprintf("Found %d news articles", len(newsArticles)))
	onProgress(stepReddit, fmt.Sprintf("Found %d Reddit posts", len(redditPosts)))

	// Stage 6: idea generation
	onProgress(stepIdeas, "Generating video ideas")
	newsContext := buildNewsContext(newsArticles, p.cfg.News.DisplayCount)
	redditContext := buildRedditContext(redditPosts, p.cfg.Reddit.DisplayCount)
	refTitles := referenceTitles(videos, p.cfg.YouTube.DisplayCount)

	ideaList, err := p.ideas.Generate(ctx, analysis, refTitles, newsContext, redditContext)
	if err != nil {
		return nil, err
	}
	onProgress(stepIdeas, fmt.Sprintf("Generated %d ideas", len(ideaList)))

	// Stage 7: thumbnails, one at a time so progress stays attributable.
	for i := range ideaList {
		onProgress(stepThumbnails, fmt.Sprintf("Generating thumbnail %d/%d...", i+1, len(ideaList)))
		ideaList[i].ThumbnailURL = p.thumbs.Render(ctx, ideaList[i].ThumbnailPrompt, analysis.ThumbnailStyle)
	}
	onProgress(stepThumbnails, "All thumbnails generated")

	result := &types.AnalysisResult{
		ChannelAnalysis: analysis,
		Videos:          capVideos(videos, p.cfg.YouTube.DisplayCount),
		NewsArticles:    capNews(newsArticles, p.cfg.News.DisplayCount),
		RedditPosts:     capReddit(redditPosts, p.cfg.Reddit.DisplayCount),
		VideoIdeas:      ideaList,
	}

	if err := p.validate.Struct(result); err != nil {
		return nil, &ValidationError{Err: formatValidationError(err)}
	}

	log.Printf("[pipeline] run %s: complete, %d ideas", runID, len(result.VideoIdeas))
	return result, nil
}

func topicsPreview(topics []string) string {
	if len(topics) > 3 {
		topics = topics[:3]
	}
	return strings.Join(topics, ", ")
}

func referenceTitles(videos []types.Video, limit int) []string {
	if len(videos) > limit {
		videos = videos[:limit]
	}
	titles := make([]string, 0, len(videos))
	for _, v := range videos {
		titles = append(titles, v.Title)
	}
	return titles
}

// buildNewsContext renders the capped article list for prompt injection, or
// the documented fallback line when nothing was found.
func buildNewsContext(articles []types.NewsArticle, limit int) string {
	if len(articles) == 0 {
		return prompts.NoNewsContext
	}
	if len(articles) > limit {
		articles = articles[:limit]
	}
	lines := make([]string, 0, len(articles))
	for _, a := range articles {
		lines = append(lines, fmt.Sprintf("- %s (%s): %s", a.Title, a.Source, a.Description))
	}
	return strings.Join(lines, "\n")
}

func buildRedditContext(posts []types.RedditPost, limit int) string {
	if len(posts) == 0 {
		return prompts.NoRedditContext
	}
	if len(posts) > limit {
		posts = posts[:limit]
	}
	lines := make([]string, 0, len(posts))
	for _, p := range posts {
		lines = append(lines, fmt.Sprintf("- r/%s: %s (%d upvotes)", p.Subreddit, p.Title, p.Score))
	}
	return strings.Join(lines, "\n")
}

func capVideos(v []types.Video, limit int) []types.Video {
	if len(v) > limit {
		return v[:limit]
	}
	return v
}

func capNews(a []types.NewsArticle, limit int) []types.NewsArticle {
	if len(a) > limit {
		return a[:limit]
	}
	return a
}

func capReddit(p []types.RedditPost, limit int) []types.RedditPost {
	if len(p) > limit {
		return p[:limit]
	}
	return p
}

// formatValidationError flattens validator field errors into one
// field-path-annotated message.
func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Namespace(), fe.Tag()))
	}
	return errors.New(strings.Join(parts, ", "))
}
