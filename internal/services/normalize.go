package services

import (
	"fmt"
	"net/url"

	"github.com/desertthunder/ytview/internal/models"
	"github.com/desertthunder/ytview/internal/shared"
)

// thumbnailPriority lists the renditions tried, in order, when picking a thumbnail.
var thumbnailPriority = []string{"medium", "default"}

// ResolveThumbnail returns the first well-formed http(s) URL among the preferred renditions, or nil.
func ResolveThumbnail(thumbnails map[string]YouTubeThumbnail) *string {
	for _, size := range thumbnailPriority {
		t, ok := thumbnails[size]
		if !ok || !isHTTPURL(t.URL) {
			continue
		}
		u := t.URL
		return &u
	}
	return nil
}

func isHTTPURL(raw string) bool {
	if raw == "" {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %w: %s", shared.ErrUpstream, shared.ErrMalformedBody, fmt.Sprintf(format, args...))
}

// NormalizePlaylists maps upstream playlists 1:1 onto [models.Playlist], keeping upstream order.
//
// Output is capped at [MaxResults]. A resource without an id or snippet fails the whole batch.
func NormalizePlaylists(items []YouTubePlaylist) ([]models.Playlist, error) {
	if len(items) > MaxResults {
		items = items[:MaxResults]
	}

	playlists := make([]models.Playlist, 0, len(items))
	for i, item := range items {
		if item.ID == "" {
			return nil, malformed("playlist %d has no id", i)
		}
		if item.Snippet == nil {
			return nil, malformed("playlist %s has no snippet", item.ID)
		}

		p := models.Playlist{
			ID:           item.ID,
			Title:        item.Snippet.Title,
			Description:  item.Snippet.Description,
			ThumbnailURL: ResolveThumbnail(item.Snippet.Thumbnails),
			PublishedAt:  item.Snippet.PublishedAt,
		}
		if item.ContentDetails != nil {
			p.ItemCount = item.ContentDetails.ItemCount
		}

		playlists = append(playlists, p)
	}

	return playlists, nil
}

// NormalizePlaylistItems maps upstream playlist items 1:1 onto [models.PlaylistItem], keeping upstream order.
//
// The video id comes from snippet.resourceId, falling back to contentDetails. An item with no id, no snippet,
// or no video id fails the whole batch.
func NormalizePlaylistItems(items []YouTubePlaylistItem) ([]models.PlaylistItem, error) {
	if len(items) > MaxResults {
		items = items[:MaxResults]
	}

	out := make([]models.PlaylistItem, 0, len(items))
	for i, item := range items {
		if item.ID == "" {
			return nil, malformed("playlist item %d has no id", i)
		}
		if item.Snippet == nil {
			return nil, malformed("playlist item %s has no snippet", item.ID)
		}

		videoID := ""
		if item.Snippet.ResourceID != nil {
			videoID = item.Snippet.ResourceID.VideoID
		}
		if videoID == "" && item.ContentDetails != nil {
			videoID = item.ContentDetails.VideoID
		}
		if videoID == "" {
			return nil, malformed("playlist item %s has no video id", item.ID)
		}

		out = append(out, models.PlaylistItem{
			ID:           item.ID,
			Title:        item.Snippet.Title,
			Description:  item.Snippet.Description,
			ThumbnailURL: ResolveThumbnail(item.Snippet.Thumbnails),
			VideoID:      videoID,
			PublishedAt:  item.Snippet.PublishedAt,
			Position:     item.Snippet.Position,
		})
	}

	return out, nil
}
