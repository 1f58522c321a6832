// Package youtube resolves channel references and lists a channel's recent
// long-form uploads via the YouTube Data API v3.
package youtube

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"

	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"

	"ideaforge/config"
	"ideaforge/types"
)

// ErrNoUploads means the channel exists but exposes no uploads playlist.
var ErrNoUploads = errors.New("could not find uploads playlist")

// ResolutionError means the channel reference matched no recognized shape or
// resolved to nothing.
type ResolutionError struct {
	URL string
}

func (e *ResolutionError) Error() string {
	return "invalid YouTube channel URL: " + e.URL
}

// Resolver wraps the Data API service.
type Resolver struct {
	svc *yt.Service
	cfg config.YouTubeConfig
}

// NewResolver builds a Resolver authenticated by API key.
func NewResolver(ctx context.Context, cfg config.YouTubeConfig, apiKey string) (*Resolver, error) {
	svc, err := yt.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("youtube service: %w", err)
	}
	return &Resolver{svc: svc, cfg: cfg}, nil
}

type refKind int

const (
	refHandle refKind = iota // /@name
	refChannelID             // /channel/UC...
	refCustom                // /c/name
	refUser                  // /user/name
)

// parseChannelRef detects which of the four channel URL shapes the reference
// uses and extracts the identifying segment. Tried in a fixed order; the
// first match wins.
func parseChannelRef(channelURL string) (refKind, string, error) {
	markers := []struct {
		kind   refKind
		marker string
	}{
		{refHandle, "/@"},
		{refChannelID, "/channel/"},
		{refCustom, "/c/"},
		{refUser, "/user/"},
	}
	for _, m := range markers {
		idx := strings.Index(channelURL, m.marker)
		if idx == -1 {
			continue
		}
		seg := channelURL[idx+len(m.marker):]
		seg = strings.SplitN(seg, "/", 2)[0]
		seg = strings.SplitN(seg, "?", 2)[0]
		if seg == "" {
			continue
		}
		return m.kind, seg, nil
	}
	return 0, "", &ResolutionError{URL: channelURL}
}

// Resolve maps a channel URL to a canonical channel ID. Handles and custom
// names need a search lookup; channel IDs and legacy usernames resolve
// directly.
func (r *Resolver) Resolve(ctx context.Context, channelURL string) (string, error) {
	kind, ref, err := parseChannelRef(channelURL)
	if err != nil {
		return "", err
	}

	switch kind {
	case refChannelID:
		return ref, nil

	case refHandle, refCustom:
		resp, err := r.svc.Search.List([]string{"id"}).
			Q(ref).Type("channel").MaxResults(1).Context(ctx).Do()
		if err != nil {
			return "", fmt.Errorf("channel search: %w", err)
		}
		if len(resp.Items) == 0 || resp.Items[0].Id == nil || resp.Items[0].Id.ChannelId == "" {
			return "", &ResolutionError{URL: channelURL}
		}
		return resp.Items[0].Id.ChannelId, nil

	case refUser:
		resp, err := r.svc.Channels.List([]string{"id"}).
			ForUsername(ref).Context(ctx).Do()
		if err != nil {
			return "", fmt.Errorf("channel lookup: %w", err)
		}
		if len(resp.Items) == 0 || resp.Items[0].Id == "" {
			return "", &ResolutionError{URL: channelURL}
		}
		return resp.Items[0].Id, nil
	}

	return "", &ResolutionError{URL: channelURL}
}

// ListRecentVideos returns up to count most recent uploads longer than the
// shorts cutoff. It over-fetches to compensate for filtered shorts, then
// truncates. An empty result is not an error here; the pipeline decides.
func (r *Resolver) ListRecentVideos(ctx context.Context, channelID string, count int) ([]types.Video, error) {
	chResp, err := r.svc.Channels.List([]string{"contentDetails"}).
		Id(channelID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("channel contentDetails: %w", err)
	}
	if len(chResp.Items) == 0 {
		return nil, fmt.Errorf("channel not found: %s", channelID)
	}
	uploads := ""
	if cd := chResp.Items[0].ContentDetails; cd != nil && cd.RelatedPlaylists != nil {
		uploads = cd.RelatedPlaylists.Uploads
	}
	if uploads == "" {
		return nil, ErrNoUploads
	}

	fetchLimit := count * r.cfg.FetchMultiplier
	if fetchLimit > r.cfg.MaxFetch {
		fetchLimit = r.cfg.MaxFetch
	}

	plResp, err := r.svc.PlaylistItems.List([]string{"snippet", "contentDetails"}).
		PlaylistId(uploads).MaxResults(int64(fetchLimit)).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("playlist items: %w", err)
	}

	var videoIDs []string
	for _, item := range plResp.Items {
		if item.ContentDetails != nil && item.ContentDetails.VideoId != "" {
			videoIDs = append(videoIDs, item.ContentDetails.VideoId)
		}
	}
	if len(videoIDs) == 0 {
		return nil, nil
	}

	vResp, err := r.svc.Videos.List([]string{"snippet", "statistics", "contentDetails"}).
		Id(videoIDs...).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("video details: %w", err)
	}

	var videos []types.Video
	for _, item := range vResp.Items {
		dur := ""
		if item.ContentDetails != nil {
			dur = item.ContentDetails.Duration
		}
		// Shorts never make it into the analysis set.
		if durationSeconds(dur) <= r.cfg.ShortsMaxSec {
			continue
		}
		videos = append(videos, toVideo(item))
		if len(videos) == count {
			break
		}
	}

	log.Printf("[youtube] channel %s: %d uploads fetched, %d long-form kept", channelID, len(vResp.Items), len(videos))
	return videos, nil
}

func toVideo(item *yt.Video) types.Video {
	v := types.Video{ID: item.Id, ViewCount: "0", LikeCount: "0"}
	if sn := item.Snippet; sn != nil {
		v.Title = sn.Title
		v.Description = sn.Description
		v.PublishedAt = sn.PublishedAt
		v.Tags = sn.Tags
		if sn.Thumbnails != nil && sn.Thumbnails.High != nil {
			v.ThumbnailURL = sn.Thumbnails.High.Url
		}
	}
	if st := item.Statistics; st != nil {
		v.ViewCount = strconv.FormatUint(st.ViewCount, 10)
		v.LikeCount = strconv.FormatUint(st.LikeCount, 10)
	}
	return v
}

var durationRe = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// durationSeconds parses an ISO-8601 video duration (PT#H#M#S). Unparseable
// input counts as zero seconds, which the shorts filter then excludes.
func durationSeconds(iso string) int {
	m := durationRe.FindStringSubmatch(iso)
	if m == nil {
		return 0
	}
	h, _ := strconv.Atoi(zeroIfEmpty(m[1]))
	min, _ := strconv.Atoi(zeroIfEmpty(m[2]))
	s, _ := strconv.Atoi(zeroIfEmpty(m[3]))
	return h*3600 + min*60 + s
}

func zeroIfEmpty(s string) string {
	if s == "" {
		return "0"
	}
	return s
}
