package types

// Video is one uploaded video with the metadata the analysis stages need.
// Produced by the catalog resolver and read-only afterward.
type Video struct {
	ID           string   `json:"id" validate:"required"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	ThumbnailURL string   `json:"thumbnailUrl" validate:"omitempty,url"`
	PublishedAt  string   `json:"publishedAt"`
	ViewCount    string   `json:"viewCount,omitempty"`
	LikeCount    string   `json:"likeCount,omitempty"`
	Tags         []string `json:"tags,omitempty"`
}

// ChannelAnalysis is the structured channel profile plus the free-text
// thumbnail style guide reused verbatim for every rendered thumbnail.
type ChannelAnalysis struct {
	Topics         []string `json:"topics" validate:"required,min=1"`
	Style          string   `json:"style" validate:"required"`
	Tone           string   `json:"tone" validate:"required"`
	TargetAudience string   `json:"targetAudience" validate:"required"`
	ThumbnailStyle string   `json:"thumbnailStyle" validate:"required"`
	ContentFormat  string   `json:"contentFormat" validate:"required"`
}

// SearchQueries always holds exactly five queries per provider. A short
// generation is replaced wholesale by the fallback plan, never mixed.
type SearchQueries struct {
	NewsQueries   []string `json:"newsQueries"`
	RedditQueries []string `json:"redditQueries"`
}

// NewsArticle is one news search hit, keyed by URL for dedup.
type NewsArticle struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url" validate:"required,url"`
	PublishedAt string `json:"publishedAt"`
	Source      string `json:"source"`
}

// RedditPost is one discussion search hit, keyed by URL for dedup.
type RedditPost struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	URL       string `json:"url" validate:"required,url"`
	Subreddit string `json:"subreddit"`
	Score     int    `json:"score"`
	CreatedAt string `json:"createdAt"`
}

// VideoIdea is one generated idea. ThumbnailPrompt describes content only;
// the channel style guide is applied at render time. ThumbnailURL falls back
// to the placeholder path when rendering fails.
type VideoIdea struct {
	Title            string `json:"title" validate:"required"`
	ThumbnailURL     string `json:"thumbnailUrl" validate:"required"`
	ThumbnailPrompt  string `json:"thumbnailPrompt" validate:"required"`
	VideoDescription string `json:"videoDescription" validate:"required"`
}

// AnalysisResult is the terminal aggregate crossing the system boundary.
// It is schema-validated before being emitted.
type AnalysisResult struct {
	ChannelAnalysis ChannelAnalysis `json:"channelAnalysis" validate:"required"`
	Videos          []Video         `json:"videos" validate:"required,min=1,dive"`
	NewsArticles    []NewsArticle   `json:"newsArticles" validate:"dive"`
	RedditPosts     []RedditPost    `json:"redditPosts" validate:"dive"`
	VideoIdeas      []VideoIdea     `json:"videoIdeas" validate:"required,len=5,dive"`
}
