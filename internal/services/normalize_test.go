package services

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/desertthunder/ytview/internal/shared"
)

func TestResolveThumbnail(t *testing.T) {
	tc := []struct {
		name       string
		thumbnails map[string]YouTubeThumbnail
		want       string // empty means nil
	}{
		{
			name: "prefers medium",
			thumbnails: map[string]YouTubeThumbnail{
				"default": {URL: "https://i.ytimg.com/d.jpg"},
				"medium":  {URL: "https://i.ytimg.com/m.jpg"},
				"high":    {URL: "https://i.ytimg.com/h.jpg"},
			},
			want: "https://i.ytimg.com/m.jpg",
		},
		{
			name:       "falls back to default",
			thumbnails: map[string]YouTubeThumbnail{"default": {URL: "https://i.ytimg.com/d.jpg"}},
			want:       "https://i.ytimg.com/d.jpg",
		},
		{
			name: "skips malformed medium",
			thumbnails: map[string]YouTubeThumbnail{
				"medium":  {URL: "not a url"},
				"default": {URL: "http://i.ytimg.com/d.jpg"},
			},
			want: "http://i.ytimg.com/d.jpg",
		},
		{
			name:       "ignores other sizes",
			thumbnails: map[string]YouTubeThumbnail{"high": {URL: "https://i.ytimg.com/h.jpg"}},
		},
		{
			name:       "rejects relative and non-http urls",
			thumbnails: map[string]YouTubeThumbnail{"medium": {URL: "/m.jpg"}, "default": {URL: "ftp://host/d.jpg"}},
		},
		{
			name: "nil map",
		},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveThumbnail(tt.thumbnails)
			switch {
			case tt.want == "" && got != nil:
				t.Errorf("expected nil, got %q", *got)
			case tt.want != "" && got == nil:
				t.Errorf("expected %q, got nil", tt.want)
			case tt.want != "" && *got != tt.want:
				t.Errorf("expected %q, got %q", tt.want, *got)
			}
		})
	}
}

func TestNormalizePlaylists(t *testing.T) {
	t.Run("thumbnailUrl key is always present", func(t *testing.T) {
		playlists, err := NormalizePlaylists([]YouTubePlaylist{
			{ID: "PL1", Snippet: &YouTubeSnippet{Title: "No thumbs"}},
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		data, err := json.Marshal(playlists)
		if err != nil {
			t.Fatalf("failed to marshal: %v", err)
		}
		if !strings.Contains(string(data), `"thumbnailUrl":null`) {
			t.Errorf("expected explicit null thumbnailUrl, got %s", data)
		}
		for _, key := range []string{`"id"`, `"title"`, `"description"`, `"itemCount"`, `"publishedAt"`} {
			if !strings.Contains(string(data), key) {
				t.Errorf("expected key %s in %s", key, data)
			}
		}
	})

	t.Run("missing content details yields zero count", func(t *testing.T) {
		playlists, err := NormalizePlaylists([]YouTubePlaylist{{ID: "PL1", Snippet: &YouTubeSnippet{}}})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if playlists[0].ItemCount != 0 {
			t.Errorf("expected 0, got %d", playlists[0].ItemCount)
		}
	})

	t.Run("shape violations fail the batch", func(t *testing.T) {
		for name, items := range map[string][]YouTubePlaylist{
			"missing id":      {{ID: "PL1", Snippet: &YouTubeSnippet{}}, {Snippet: &YouTubeSnippet{}}},
			"missing snippet": {{ID: "PL1"}},
		} {
			t.Run(name, func(t *testing.T) {
				playlists, err := NormalizePlaylists(items)
				if !errors.Is(err, shared.ErrMalformedBody) || !errors.Is(err, shared.ErrUpstream) {
					t.Errorf("expected malformed upstream error, got %v", err)
				}
				if playlists != nil {
					t.Errorf("expected no partial result, got %v", playlists)
				}
			})
		}
	})
}

func TestNormalizePlaylistItems(t *testing.T) {
	t.Run("video id falls back to content details", func(t *testing.T) {
		item := YouTubePlaylistItem{ID: "IT1", Snippet: &YouTubeSnippet{Position: 4}}
		item.ContentDetails = &struct {
			VideoID          string `json:"videoId"`
			VideoPublishedAt string `json:"videoPublishedAt"`
		}{VideoID: "vid"}

		items, err := NormalizePlaylistItems([]YouTubePlaylistItem{item})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if items[0].VideoID != "vid" || items[0].Position != 4 {
			t.Errorf("unexpected item %+v", items[0])
		}
		if items[0].ThumbnailURL != nil {
			t.Errorf("expected nil thumbnail, got %q", *items[0].ThumbnailURL)
		}
	})

	t.Run("missing video id fails", func(t *testing.T) {
		_, err := NormalizePlaylistItems([]YouTubePlaylistItem{{ID: "IT1", Snippet: &YouTubeSnippet{}}})
		if !errors.Is(err, shared.ErrMalformedBody) {
			t.Errorf("expected ErrMalformedBody, got %v", err)
		}
	})

	t.Run("missing snippet fails", func(t *testing.T) {
		_, err := NormalizePlaylistItems([]YouTubePlaylistItem{{ID: "IT1"}})
		if !errors.Is(err, shared.ErrMalformedBody) {
			t.Errorf("expected ErrMalformedBody, got %v", err)
		}
	})

	t.Run("caps at MaxResults", func(t *testing.T) {
		in := make([]YouTubePlaylistItem, MaxResults+5)
		for i := range in {
			in[i] = YouTubePlaylistItem{
				ID:      "IT",
				Snippet: &YouTubeSnippet{Position: i, ResourceID: &youtubeResourceID{VideoID: "v"}},
			}
		}

		items, err := NormalizePlaylistItems(in)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(items) != MaxResults {
			t.Errorf("expected %d items, got %d", MaxResults, len(items))
		}
		if items[MaxResults-1].Position != MaxResults-1 {
			t.Errorf("expected the first %d items to be kept", MaxResults)
		}
	})
}
