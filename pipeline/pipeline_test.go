package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ideaforge/config"
	"ideaforge/types"
)

type fakeVideos struct {
	channelID  string
	resolveErr error
	videos     []types.Video
	listErr    error
}

func (f *fakeVideos) Resolve(_ context.Context, _ string) (string, error) {
	if f.resolveErr != nil {
		return "", f.resolveErr
	}
	return f.channelID, nil
}

func (f *fakeVideos) ListRecentVideos(_ context.Context, _ string, _ int) ([]types.Video, error) {
	return f.videos, f.listErr
}

type fakeAnalyzer struct {
	analysis types.ChannelAnalysis
	err      error
	called   bool
}

func (f *fakeAnalyzer) AnalyzeChannel(_ context.Context, _ []types.Video) (types.ChannelAnalysis, error) {
	f.called = true
	return f.analysis, f.err
}

type fakePlanner struct {
	plan   types.SearchQueries
	err    error
	called bool
}

func (f *fakePlanner) Plan(_ context.Context, _ types.ChannelAnalysis) (types.SearchQueries, error) {
	f.called = true
	return f.plan, f.err
}

type fakeNews struct {
	articles []types.NewsArticle
}

func (f *fakeNews) Search(_ context.Context, _ []string) []types.NewsArticle {
	return f.articles
}

type fakeReddit struct {
	posts []types.RedditPost
}

func (f *fakeReddit) Search(_ context.Context, _ []string) []types.RedditPost {
	return f.posts
}

type fakeIdeas struct {
	ideas         []types.VideoIdea
	err           error
	newsContext   string
	redditContext string
	refTitles     []string
}

func (f *fakeIdeas) Generate(_ context.Context, _ types.ChannelAnalysis, refTitles []string, newsContext, redditContext string) ([]types.VideoIdea, error) {
	f.refTitles = refTitles
	f.newsContext = newsContext
	f.redditContext = redditContext
	return f.ideas, f.err
}

type fakeThumbs struct {
	failFor map[string]bool
	calls   int
}

func (f *fakeThumbs) Render(_ context.Context, contentPrompt, _ string) string {
	f.calls++
	if f.failFor[contentPrompt] {
		return "/placeholder-thumbnail.png"
	}
	return "https://images.example.com/" + strconv.Itoa(f.calls) + ".png"
}

// harness bundles the seven fakes plus the recorded progress trail.
type harness struct {
	videos   *fakeVideos
	analyzer *fakeAnalyzer
	planner  *fakePlanner
	news     *fakeNews
	reddit   *fakeReddit
	ideas    *fakeIdeas
	thumbs   *fakeThumbs
	pipe     *Pipeline
	steps    []string
	messages []string
}

func (h *harness) progress(step, message string) {
	h.steps = append(h.steps, step)
	h.messages = append(h.messages, message)
}

func testVideos(n int) []types.Video {
	videos := make([]types.Video, n)
	for i := range videos {
		videos[i] = types.Video{
			ID:           fmt.Sprintf("vid%d", i+1),
			Title:        fmt.Sprintf("Video %d", i+1),
			Description:  "description",
			ThumbnailURL: fmt.Sprintf("https://i.ytimg.com/vi/vid%d/hq.jpg", i+1),
			PublishedAt:  "2026-08-01T00:00:00Z",
		}
	}
	return videos
}

func testIdeas(n int) []types.VideoIdea {
	ideas := make([]types.VideoIdea, n)
	for i := range ideas {
		ideas[i] = types.VideoIdea{
			Title:            fmt.Sprintf("Idea %d", i+1),
			ThumbnailPrompt:  fmt.Sprintf("prompt %d", i+1),
			VideoDescription: fmt.Sprintf("desc %d", i+1),
		}
	}
	return ideas
}

func fullPlan() types.SearchQueries {
	return types.SearchQueries{
		NewsQueries:   []string{"n1", "n2", "n3", "n4", "n5"},
		RedditQueries: []string{"r1", "r2", "r3", "r4", "r5"},
	}
}

func newHarness() *harness {
	h := &harness{
		videos: &fakeVideos{channelID: "UCtest", videos: testVideos(10)},
		analyzer: &fakeAnalyzer{analysis: types.ChannelAnalysis{
			Topics: []string{"go", "testing"}, Style: "Educational", Tone: "Calm",
			TargetAudience: "developers", ThumbnailStyle: "bold text on dark",
			ContentFormat: "Tutorials",
		}},
		planner: &fakePlanner{plan: fullPlan()},
		news:    &fakeNews{},
		reddit:  &fakeReddit{},
		ideas:   &fakeIdeas{ideas: testIdeas(5)},
		thumbs:  &fakeThumbs{},
	}
	h.pipe = New(h.videos, h.analyzer, h.planner, h.news, h.reddit, h.ideas, h.thumbs, config.Default())
	return h
}

func TestRunFullPipeline(t *testing.T) {
	h := newHarness()
	for i := 0; i < 12; i++ {
		h.news.articles = append(h.news.articles, types.NewsArticle{
			Title: fmt.Sprintf("story %d", i), URL: fmt.Sprintf("https://example.com/%d", i),
		})
		h.reddit.posts = append(h.reddit.posts, types.RedditPost{
			Title: fmt.Sprintf("post %d", i), URL: fmt.Sprintf("https://www.reddit.com/r/golang/%d", i),
			Subreddit: "golang", Score: 100 - i,
		})
	}

	result, err := h.pipe.Run(context.Background(), "https://www.youtube.com/@test", h.progress)
	require.NoError(t, err)

	assert.Len(t, result.Videos, 5, "videos capped for display")
	assert.Len(t, result.VideoIdeas, 5)
	assert.Len(t, result.NewsArticles, 10, "news capped for display")
	assert.Len(t, result.RedditPosts, 10, "reddit capped for display")
	for i, idea := range result.VideoIdeas {
		assert.NotEmpty(t, idea.ThumbnailURL, "idea %d thumbnail", i)
	}

	// step markers never decrease across the run
	prev := 0
	for _, step := range h.steps {
		n, convErr := strconv.Atoi(strings.SplitN(step, "/", 2)[0])
		require.NoError(t, convErr, "malformed step %q", step)
		require.True(t, n >= prev, "step went backwards: %v", h.steps)
		prev = n
	}
	assert.Equal(t, "1/7", h.steps[0])
	assert.Equal(t, "7/7", h.steps[len(h.steps)-1])
	assert.Contains(t, h.messages, "Found 10 videos")
	assert.Contains(t, h.messages, "Found 12 news articles")
	assert.Contains(t, h.messages, "Found 12 Reddit posts")
}

func TestRunNoVideosIsTerminal(t *testing.T) {
	h := newHarness()
	h.videos.videos = nil

	_, err := h.pipe.Run(context.Background(), "https://www.youtube.com/@empty", h.progress)
	require.ErrorIs(t, err, ErrNoVideos)
	assert.False(t, h.analyzer.called, "analysis must not run without videos")
	assert.False(t, h.planner.called)
}

func TestRunResolveFailurePropagates(t *testing.T) {
	h := newHarness()
	h.videos.resolveErr = errors.New("channel not found")

	_, err := h.pipe.Run(context.Background(), "https://www.youtube.com/@gone", nil)
	require.Error(t, err)
	assert.False(t, h.analyzer.called)
}

func TestRunEmptyGatherersUseFallbackContexts(t *testing.T) {
	h := newHarness()

	result, err := h.pipe.Run(context.Background(), "https://www.youtube.com/@quiet", h.progress)
	require.NoError(t, err)

	assert.Equal(t, "No recent news found.", h.ideas.newsContext)
	assert.Equal(t, "No recent Reddit discussions found.", h.ideas.redditContext)
	assert.Empty(t, result.NewsArticles)
	assert.Empty(t, result.RedditPosts)
	assert.Contains(t, h.messages, "Found 0 news articles")
	assert.Contains(t, h.messages, "Found 0 Reddit posts")
}

func TestRunContextsRenderGatheredItems(t *testing.T) {
	h := newHarness()
	h.news.articles = []types.NewsArticle{
		{Title: "Go 1.26 released", Source: "Example Wire", Description: "What changed", URL: "https://example.com/go"},
	}
	h.reddit.posts = []types.RedditPost{
		{Title: "Generics question", Subreddit: "golang", Score: 42, URL: "https://www.reddit.com/r/golang/abc"},
	}

	_, err := h.pipe.Run(context.Background(), "https://www.youtube.com/@test", nil)
	require.NoError(t, err)

	assert.Equal(t, "- Go 1.26 released (Example Wire): What changed", h.ideas.newsContext)
	assert.Equal(t, "- r/golang: Generics question (42 upvotes)", h.ideas.redditContext)
	assert.Equal(t, []string{"Video 1", "Video 2", "Video 3", "Video 4", "Video 5"}, h.ideas.refTitles)
}

func TestRunPartialThumbnailFailures(t *testing.T) {
	h := newHarness()
	h.thumbs.failFor = map[string]bool{"prompt 2": true, "prompt 4": true}

	result, err := h.pipe.Run(context.Background(), "https://www.youtube.com/@test", nil)
	require.NoError(t, err)

	placeholders := 0
	for _, idea := range result.VideoIdeas {
		if idea.ThumbnailURL == "/placeholder-thumbnail.png" {
			placeholders++
		}
	}
	assert.Equal(t, 2, placeholders)
	assert.Equal(t, "/placeholder-thumbnail.png", result.VideoIdeas[1].ThumbnailURL)
	assert.Equal(t, "/placeholder-thumbnail.png", result.VideoIdeas[3].ThumbnailURL)
	assert.Equal(t, 5, h.thumbs.calls, "a failed render must not stop the rest")
}

func TestRunIdeaFailureIsTerminal(t *testing.T) {
	h := newHarness()
	h.ideas.err = errors.New("missing or empty ideas array")

	_, err := h.pipe.Run(context.Background(), "https://www.youtube.com/@test", nil)
	require.Error(t, err)
	assert.Equal(t, 0, h.thumbs.calls, "thumbnails must not render without ideas")
}

func TestRunWrongIdeaCountFailsValidation(t *testing.T) {
	h := newHarness()
	h.ideas.ideas = testIdeas(4)

	_, err := h.pipe.Run(context.Background(), "https://www.youtube.com/@test", nil)
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, err.Error(), "Data validation error:")
	assert.Contains(t, err.Error(), "VideoIdeas")
}

func TestRunNilProgressIsSafe(t *testing.T) {
	h := newHarness()
	_, err := h.pipe.Run(context.Background(), "https://www.youtube.com/@test", nil)
	require.NoError(t, err)
}
