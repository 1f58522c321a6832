// Package prompts holds every model instruction and the documented fallback
// defaults used when a model response omits a field.
package prompts

import (
	"fmt"
	"strings"

	"ideaforge/types"
)

const ThumbnailAnalystSystem = `You are a visual style extraction expert creating specifications for DALL-E image generation.
Analyze the provided thumbnails and create a PRECISE, REPRODUCIBLE style guide.
Focus ONLY on patterns that are CONSISTENT across ALL thumbnails - these define the channel's visual identity.
Your output will be used directly by DALL-E to generate new thumbnails that match this exact style.
Be extremely specific about colors, typography, composition, and visual treatment.
Write as if giving direct instructions to an artist who has never seen these thumbnails.`

const ChannelAnalystSystem = `You are a YouTube content analyst. You MUST respond with valid JSON matching the exact structure requested. All field names must be exactly as specified.`

const VideoStrategistSystem = `You are a creative YouTube content strategist. You MUST respond with valid JSON containing exactly 5 video ideas with complete details.`

// Defaults substituted when the model omits or mangles a field.
const (
	DefaultThumbnailStyle = "Bold text overlays, vibrant colors, high contrast, eye-catching composition"
	DefaultStyle          = "Entertainment"
	DefaultTone           = "Casual"
	DefaultAudience       = "General audience"
	DefaultContentFormat  = "Standard videos"
)

// DefaultTopics is the single-element fallback topics list.
func DefaultTopics() []string { return []string{"General Content"} }

// Fallback context strings used when a gatherer comes back empty.
const (
	NoNewsContext   = "No recent news found."
	NoRedditContext = "No recent Reddit discussions found."
)

func SearchQueryAgentSystem(currentDate string, currentYear int) string {
	return fmt.Sprintf(`You are a search query optimization agent operating on %s. You MUST use the current year %d in all date-specific queries. NEVER use outdated years. You MUST respond with valid JSON matching the exact structure requested with arrays of exactly 5 strings each.`, currentDate, currentYear)
}

const AnalyzeThumbnails = `You are analyzing YouTube thumbnails to create a precise visual style guide for DALL-E image generation.

Your task: Identify the CONSISTENT patterns across ALL thumbnails. Focus ONLY on what repeats in every thumbnail.

Provide a detailed style specification covering:

**COLOR PALETTE:** exact colors, background treatment, saturation.
**TEXT STYLE:** font, size, placement, effects, colors.
**LAYOUT & COMPOSITION:** subject placement and size, background, element arrangement.
**PHOTOGRAPHY STYLE:** image type, angle, lighting, treatment.
**GRAPHIC ELEMENTS:** recurring additions, borders/frames, badges.

Write as direct DALL-E instructions (400-600 words). Be specific and prescriptive. Every detail should be reproducible.`

// AnalyzeChannel builds the content-analysis prompt from the video list.
// Descriptions are truncated to 500 chars to keep the prompt bounded.
func AnalyzeChannel(videos []types.Video) string {
	var sb strings.Builder
	sb.WriteString("Analyze these YouTube videos from a channel and provide a detailed analysis:\n\nVideos:\n")
	for i, v := range videos {
		desc := v.Description
		if len(desc) > 500 {
			desc = desc[:500]
		}
		tags := "None"
		if len(v.Tags) > 0 {
			tags = strings.Join(v.Tags, ", ")
		}
		sb.WriteString(fmt.Sprintf("\n%d. Title: %s\n   Description: %s\n   Tags: %s\n   Views: %s\n", i+1, v.Title, desc, tags, v.ViewCount))
	}
	sb.WriteString(`
You MUST respond with a JSON object in this EXACT format:
{
  "topics": ["topic1", "topic2", "topic3"],
  "style": "Educational",
  "tone": "Professional",
  "targetAudience": "description of target audience",
  "contentFormat": "description of content format"
}

Requirements:
- topics: Array of 3-5 main topics covered (MUST be an array of strings)
- style: Overall content style (e.g., "Educational", "Entertainment", "Tutorial", "Review", "Commentary")
- tone: Communication tone (e.g., "Professional", "Casual", "Humorous", "Energetic", "Calm")
- targetAudience: Detailed description of who watches this content (age, interests, expertise level)
- contentFormat: Format and structure of videos (e.g., "Long-form tutorials", "Quick tips", "Story-driven", "List format")

Analyze the patterns in titles, topics, and how content is presented.
Respond ONLY with valid JSON in the exact format shown above, no other text.`)
	return sb.String()
}

// GenerateSearchQueries builds the query-planning prompt. The date context is
// repeated aggressively because models otherwise drift to stale years.
func GenerateSearchQueries(topics, style, targetAudience, currentDate string, currentYear int, currentMonth string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("CURRENT DATE: %s (%d)\n\n", currentDate, currentYear))
	sb.WriteString("Based on this YouTube channel analysis, generate optimized search queries for TODAY:\n\n")
	sb.WriteString("Channel Analysis:\n")
	sb.WriteString(fmt.Sprintf("- Topics: %s\n- Style: %s\n- Target Audience: %s\n\n", topics, style, targetAudience))
	sb.WriteString(`Generate search queries that will help find:
1. Recent news articles related to these topics (published TODAY or within last 24 hours)
2. Reddit discussions about these topics (active TODAY)

CRITICAL REQUIREMENTS:
- Generate exactly 5 news queries and 5 reddit queries
`)
	sb.WriteString(fmt.Sprintf("- ALL queries MUST use current year %d or \"%s %d\" if date-specific\n", currentYear, currentMonth, currentYear))
	sb.WriteString(fmt.Sprintf("- Use terms like \"latest\", \"today\", \"recent\", %d\n", currentYear))
	sb.WriteString(fmt.Sprintf("- News queries should find BREAKING/TRENDING news from %s\n", currentDate))
	sb.WriteString(`- Reddit queries should find ACTIVE discussions happening NOW
- Mix broad and specific terms
- Make queries diverse to cover different aspects
- DO NOT use outdated dates

You MUST respond with JSON in this EXACT format:
{
  "newsQueries": ["query1", "query2", "query3", "query4", "query5"],
  "redditQueries": ["query1", "query2", "query3", "query4", "query5"]
}

Both arrays MUST contain exactly 5 strings each.
Respond ONLY with valid JSON, no other text.`)
	return sb.String()
}

// GenerateVideoIdeas builds the idea-generation prompt from the channel
// profile, reference titles and the gathered context strings.
func GenerateVideoIdeas(a types.ChannelAnalysis, topics string, refTitles []string, newsContext, redditContext string) string {
	var sb strings.Builder
	sb.WriteString("You are a YouTube content strategist. Generate 5 creative video ideas for this channel.\n\n")
	sb.WriteString("Channel Analysis:\n")
	sb.WriteString(fmt.Sprintf("- Topics: %s\n- Style: %s\n- Tone: %s\n- Target Audience: %s\n- Thumbnail Style: %s\n- Content Format: %s\n\n",
		topics, a.Style, a.Tone, a.TargetAudience, a.ThumbnailStyle, a.ContentFormat))
	sb.WriteString("Recent Channel Videos (for reference):\n")
	for i, t := range refTitles {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, t))
	}
	sb.WriteString(fmt.Sprintf("\nCurrent News Context:\n%s\n\nReddit Discussions Context:\n%s\n\n", newsContext, redditContext))
	sb.WriteString(`Generate 5 video ideas that:
1. Align with the channel's style and topics
2. Leverage current news and trending discussions
3. Are relevant to the target audience
4. Follow the same title format/style as existing videos
5. Would get high engagement

You MUST respond with JSON in this EXACT format:
{
  "ideas": [
    {
      "title": "Compelling video title",
      "thumbnailPrompt": "DALL-E visual prompt",
      "videoDescription": "3-paragraph description with hook, main points, and call to action"
    }
  ]
}

Generate EXACTLY 5 ideas in the ideas array.
Each idea MUST have all three fields: title, thumbnailPrompt, videoDescription.

CRITICAL - thumbnailPrompt requirements:
- Maximum 100 words (strictly enforce - be VERY concise)
- Focus ONLY on the SPECIFIC content for THIS video (what's different from other videos)
- DO NOT repeat the channel's general style - it will be automatically applied
- Describe only: main subject, key text, specific visual metaphors, unique elements
- NO style descriptions (colors, fonts, effects) - those come from channel style

The thumbnailPrompt should describe CONTENT, not STYLE. Style comes from channel analysis.

The videoDescription should be 3 detailed paragraphs.

Respond ONLY with valid JSON, no other text.`)
	return sb.String()
}

// GenerateThumbnail composes the final image prompt: the fixed frame, the
// channel style guide (mandatory) and the per-idea content prompt.
func GenerateThumbnail(channelStyle, thumbnailIdea string) string {
	return fmt.Sprintf(`YouTube video thumbnail, 16:9 widescreen format, professional quality.

MANDATORY STYLE SPECIFICATIONS (DO NOT DEVIATE):
%s

THUMBNAIL CONTENT:
%s

STRICT INSTRUCTIONS:
You MUST replicate the exact visual style described above. This is critical:
- Use ONLY the colors specified in the style reference
- Apply the EXACT typography (font weight, placement, effects) as described
- Follow the EXACT composition and layout pattern specified
- Match the EXACT image treatment (saturation, contrast, lighting style)
- Maintain the same photography or illustration approach described
- The final result must look indistinguishable from the channel's existing thumbnails

Focus on visual consistency with the established style. Do not add creative interpretations beyond what's specified.`, channelStyle, thumbnailIdea)
}

// FallbackQueries builds the deterministic query plan used when the model
// fails to return five queries per provider. Both halves are always replaced
// together.
func FallbackQueries(topics string) types.SearchQueries {
	return types.SearchQueries{
		NewsQueries: []string{
			topics,
			topics + " news",
			topics + " updates",
			topics + " trends",
			"latest " + topics,
		},
		RedditQueries: []string{
			topics,
			topics + " discussion",
			topics + " reddit",
			topics + " community",
			topics + " advice",
		},
	}
}

// TopicsString flattens the topics list for prompt interpolation.
func TopicsString(topics []string) string {
	if len(topics) == 0 {
		return "general content"
	}
	return strings.Join(topics, ", ")
}
