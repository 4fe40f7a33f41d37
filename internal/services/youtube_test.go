package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/desertthunder/ytview/internal/shared"
	tu "github.com/desertthunder/ytview/internal/testing"
)

func TestYouTubeService(t *testing.T) {
	t.Run("NewYouTubeService", func(t *testing.T) {
		t.Run("creates service with default URL", func(t *testing.T) {
			if svc := NewYouTubeService("", nil); svc.baseURL != defaultYTBaseURL {
				t.Errorf("expected baseURL to be %s, got %s", defaultYTBaseURL, svc.baseURL)
			} else if svc.httpClient != http.DefaultClient {
				t.Error("expected http.DefaultClient to be used")
			}
		})

		t.Run("trims trailing slash", func(t *testing.T) {
			if svc := NewYouTubeService("http://localhost:9000/", nil); svc.baseURL != "http://localhost:9000" {
				t.Errorf("expected trimmed baseURL, got %s", svc.baseURL)
			}
		})
	})

	t.Run("Name", func(t *testing.T) {
		if svc := NewYouTubeService("", nil); svc.Name() != "YouTube" {
			t.Errorf("expected name to be 'YouTube', got %s", svc.Name())
		}
	})

	t.Run("ListPlaylists", func(t *testing.T) {
		t.Run("with API key", func(t *testing.T) {
			up := tu.NewFakeUpstream(t)
			up.On("/playlists", http.StatusOK, tu.ListResponse(
				tu.PlaylistResource("PL1", "First", 3),
				tu.PlaylistResource("PL2", "Second", 7),
			))

			svc := NewYouTubeService(up.URL(), nil)
			playlists, err := svc.ListPlaylists(context.Background(), PlaylistQuery{ChannelID: "UC123"}, APIKeyCredential("k3y"))
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if len(playlists) != 2 {
				t.Fatalf("expected 2 playlists, got %d", len(playlists))
			}
			if playlists[0].ID != "PL1" || playlists[1].ID != "PL2" {
				t.Errorf("expected upstream order, got %s, %s", playlists[0].ID, playlists[1].ID)
			}
			if playlists[1].ItemCount != 7 {
				t.Errorf("expected item count 7, got %d", playlists[1].ItemCount)
			}

			calls := up.CallsTo("/playlists")
			if len(calls) != 1 {
				t.Fatalf("expected one upstream call, got %d", len(calls))
			}
			q := calls[0].Query
			if q.Get("part") != "snippet,contentDetails" {
				t.Errorf("unexpected part %q", q.Get("part"))
			}
			if q.Get("maxResults") != "50" {
				t.Errorf("unexpected maxResults %q", q.Get("maxResults"))
			}
			if q.Get("channelId") != "UC123" {
				t.Errorf("unexpected channelId %q", q.Get("channelId"))
			}
			if q.Get("key") != "k3y" {
				t.Errorf("expected key query parameter, got %q", q.Get("key"))
			}
			if calls[0].Authorization != "" {
				t.Errorf("expected no Authorization header, got %q", calls[0].Authorization)
			}
		})

		t.Run("mine with bearer token", func(t *testing.T) {
			up := tu.NewFakeUpstream(t)
			up.On("/playlists", http.StatusOK, tu.ListResponse(tu.PlaylistResource("PL1", "Mine", 1)))

			svc := NewYouTubeService(up.URL(), nil)
			if _, err := svc.ListPlaylists(context.Background(), PlaylistQuery{Mine: true}, BearerCredential("tok")); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			call := up.CallsTo("/playlists")[0]
			if call.Authorization != "Bearer tok" {
				t.Errorf("expected bearer header, got %q", call.Authorization)
			}
			if call.Query.Get("mine") != "true" {
				t.Errorf("expected mine=true, got %q", call.Query.Get("mine"))
			}
			if call.Query.Has("key") || call.Query.Has("channelId") {
				t.Errorf("unexpected query %v", call.Query)
			}
		})

		t.Run("explicit channel wins over mine", func(t *testing.T) {
			up := tu.NewFakeUpstream(t)
			up.On("/playlists", http.StatusOK, tu.ListResponse())

			svc := NewYouTubeService(up.URL(), nil)
			_, err := svc.ListPlaylists(context.Background(), PlaylistQuery{ChannelID: "UC9", Mine: true}, BearerCredential("tok"))
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if q := up.CallsTo("/playlists")[0].Query; q.Get("channelId") != "UC9" || q.Has("mine") {
				t.Errorf("unexpected query %v", q)
			}
		})

		t.Run("empty result is an empty slice", func(t *testing.T) {
			up := tu.NewFakeUpstream(t)
			up.On("/playlists", http.StatusOK, tu.ListResponse())

			svc := NewYouTubeService(up.URL(), nil)
			playlists, err := svc.ListPlaylists(context.Background(), PlaylistQuery{ChannelID: "UC1"}, APIKeyCredential("k"))
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if playlists == nil || len(playlists) != 0 {
				t.Errorf("expected empty non-nil slice, got %#v", playlists)
			}
		})

		t.Run("missing items field", func(t *testing.T) {
			for _, body := range []string{`{"kind":"youtube#playlistListResponse"}`, `null`, `{"items":null}`} {
				up := tu.NewFakeUpstream(t)
				up.On("/playlists", http.StatusOK, body)

				svc := NewYouTubeService(up.URL(), nil)
				playlists, err := svc.ListPlaylists(context.Background(), PlaylistQuery{ChannelID: "UC1"}, APIKeyCredential("k"))
				if !errors.Is(err, shared.ErrUpstream) || !errors.Is(err, shared.ErrMalformedBody) {
					t.Errorf("%s: expected malformed upstream error, got %v", body, err)
				}
				if playlists != nil {
					t.Errorf("%s: expected no playlists, got %#v", body, playlists)
				}
			}
		})

		t.Run("truncates to MaxResults", func(t *testing.T) {
			items := make([]map[string]any, 0, 60)
			for i := range 60 {
				items = append(items, tu.PlaylistResource(fmt.Sprintf("PL%02d", i), "P", i))
			}
			up := tu.NewFakeUpstream(t)
			up.On("/playlists", http.StatusOK, tu.ListResponse(items...))

			svc := NewYouTubeService(up.URL(), nil)
			playlists, err := svc.ListPlaylists(context.Background(), PlaylistQuery{ChannelID: "UC1"}, APIKeyCredential("k"))
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(playlists) != MaxResults {
				t.Errorf("expected %d playlists, got %d", MaxResults, len(playlists))
			}
			if len(up.Calls()) != 1 {
				t.Errorf("expected no pagination, got %d calls", len(up.Calls()))
			}
		})

		t.Run("missing channel", func(t *testing.T) {
			svc := NewYouTubeService("http://127.0.0.1:1", nil)
			_, err := svc.ListPlaylists(context.Background(), PlaylistQuery{}, APIKeyCredential("k"))
			if !errors.Is(err, shared.ErrBadRequest) {
				t.Errorf("expected ErrBadRequest, got %v", err)
			}
		})

		t.Run("mine without bearer", func(t *testing.T) {
			svc := NewYouTubeService("http://127.0.0.1:1", nil)
			_, err := svc.ListPlaylists(context.Background(), PlaylistQuery{Mine: true}, APIKeyCredential("k"))
			if !errors.Is(err, shared.ErrUnauthorized) {
				t.Errorf("expected ErrUnauthorized, got %v", err)
			}
		})

		t.Run("no credential", func(t *testing.T) {
			up := tu.NewFakeUpstream(t)
			svc := NewYouTubeService(up.URL(), nil)
			_, err := svc.ListPlaylists(context.Background(), PlaylistQuery{ChannelID: "UC1"}, Credential{})
			if !errors.Is(err, shared.ErrConfiguration) {
				t.Errorf("expected ErrConfiguration, got %v", err)
			}
			if len(up.Calls()) != 0 {
				t.Error("expected no upstream call")
			}
		})
	})

	t.Run("ListPlaylistItems", func(t *testing.T) {
		t.Run("keeps order and position", func(t *testing.T) {
			up := tu.NewFakeUpstream(t)
			up.On("/playlistItems", http.StatusOK, tu.ListResponse(
				tu.PlaylistItemResource("IT-b", "vidB", 0),
				tu.PlaylistItemResource("IT-a", "vidA", 1),
			))

			svc := NewYouTubeService(up.URL(), nil)
			items, err := svc.ListPlaylistItems(context.Background(), "PL123", BearerCredential("tok"))
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if len(items) != 2 {
				t.Fatalf("expected 2 items, got %d", len(items))
			}
			if items[0].VideoID != "vidB" || items[0].Position != 0 {
				t.Errorf("unexpected first item %+v", items[0])
			}
			if items[1].VideoID != "vidA" || items[1].Position != 1 {
				t.Errorf("unexpected second item %+v", items[1])
			}

			call := up.CallsTo("/playlistItems")[0]
			if call.Query.Get("playlistId") != "PL123" {
				t.Errorf("unexpected playlistId %q", call.Query.Get("playlistId"))
			}
			if call.Query.Get("part") != "snippet,contentDetails" || call.Query.Get("maxResults") != "50" {
				t.Errorf("unexpected query %v", call.Query)
			}
		})

		t.Run("missing playlist", func(t *testing.T) {
			svc := NewYouTubeService("http://127.0.0.1:1", nil)
			if _, err := svc.ListPlaylistItems(context.Background(), "", APIKeyCredential("k")); !errors.Is(err, shared.ErrBadRequest) {
				t.Errorf("expected ErrBadRequest, got %v", err)
			}
		})
	})

	t.Run("MineChannelID", func(t *testing.T) {
		t.Run("resolves first channel", func(t *testing.T) {
			up := tu.NewFakeUpstream(t)
			up.On("/channels", http.StatusOK, map[string]any{"items": []map[string]any{{"id": "UCme"}}})

			svc := NewYouTubeService(up.URL(), nil)
			id, err := svc.MineChannelID(context.Background(), "tok")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if id != "UCme" {
				t.Errorf("expected UCme, got %s", id)
			}

			call := up.CallsTo("/channels")[0]
			if call.Query.Get("mine") != "true" || call.Query.Get("part") != "id" {
				t.Errorf("unexpected query %v", call.Query)
			}
			if call.Authorization != "Bearer tok" {
				t.Errorf("expected bearer header, got %q", call.Authorization)
			}
		})

		t.Run("no channel", func(t *testing.T) {
			up := tu.NewFakeUpstream(t)
			up.On("/channels", http.StatusOK, map[string]any{"items": []map[string]any{}})

			svc := NewYouTubeService(up.URL(), nil)
			_, err := svc.MineChannelID(context.Background(), "tok")
			if !errors.Is(err, shared.ErrNoChannel) || !errors.Is(err, shared.ErrUpstream) {
				t.Errorf("expected ErrNoChannel wrapped in ErrUpstream, got %v", err)
			}
		})

		t.Run("missing token", func(t *testing.T) {
			svc := NewYouTubeService("http://127.0.0.1:1", nil)
			if _, err := svc.MineChannelID(context.Background(), ""); !errors.Is(err, shared.ErrUnauthorized) {
				t.Errorf("expected ErrUnauthorized, got %v", err)
			}
		})
	})

	t.Run("Error Handling", func(t *testing.T) {
		t.Run("non-2xx carries upstream message", func(t *testing.T) {
			up := tu.NewFakeUpstream(t)
			up.On("/playlists", http.StatusForbidden, map[string]any{
				"error": map[string]any{"code": 403, "message": "quota exceeded"},
			})

			svc := NewYouTubeService(up.URL(), nil)
			_, err := svc.ListPlaylists(context.Background(), PlaylistQuery{ChannelID: "UC1"}, APIKeyCredential("k"))
			if !errors.Is(err, shared.ErrUpstream) {
				t.Fatalf("expected ErrUpstream, got %v", err)
			}
			if !strings.Contains(err.Error(), "403") || !strings.Contains(err.Error(), "quota exceeded") {
				t.Errorf("expected status and message in error, got %v", err)
			}
		})

		t.Run("non-JSON error body", func(t *testing.T) {
			up := tu.NewFakeUpstream(t)
			up.On("/playlistItems", http.StatusBadGateway, "upstream exploded")

			svc := NewYouTubeService(up.URL(), nil)
			_, err := svc.ListPlaylistItems(context.Background(), "PL1", APIKeyCredential("k"))
			if !errors.Is(err, shared.ErrUpstream) || !strings.Contains(err.Error(), "upstream exploded") {
				t.Errorf("expected raw body in error, got %v", err)
			}
		})

		t.Run("malformed body", func(t *testing.T) {
			up := tu.NewFakeUpstream(t)
			up.On("/playlists", http.StatusOK, "{not json")

			svc := NewYouTubeService(up.URL(), nil)
			_, err := svc.ListPlaylists(context.Background(), PlaylistQuery{ChannelID: "UC1"}, APIKeyCredential("k"))
			if !errors.Is(err, shared.ErrMalformedBody) {
				t.Errorf("expected ErrMalformedBody, got %v", err)
			}
		})

		t.Run("transport failure", func(t *testing.T) {
			client := &http.Client{Transport: tu.NewMockRoundTripper(nil, errors.New("connection refused"))}
			svc := NewYouTubeService("http://example.com", client)

			_, err := svc.ListPlaylists(context.Background(), PlaylistQuery{ChannelID: "UC1"}, APIKeyCredential("k"))
			if !errors.Is(err, shared.ErrUpstream) {
				t.Errorf("expected ErrUpstream, got %v", err)
			}
		})

		t.Run("unreadable error body", func(t *testing.T) {
			client := &http.Client{Transport: tu.NewMockRoundTripper(&http.Response{
				StatusCode: http.StatusInternalServerError,
				Body:       &tu.FCloser{},
				Header:     http.Header{},
			}, nil)}
			svc := NewYouTubeService("http://example.com", client)

			_, err := svc.ListPlaylistItems(context.Background(), "PL1", APIKeyCredential("k"))
			if !errors.Is(err, shared.ErrUpstream) || !strings.Contains(err.Error(), "unreadable body") {
				t.Errorf("expected unreadable body error, got %v", err)
			}
		})
	})
}
