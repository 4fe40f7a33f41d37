// YouTube Data API v3 implementation of [PlaylistService]
//
// Response types follow https://developers.google.com/youtube/v3/docs
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/desertthunder/ytview/internal/models"
	"github.com/desertthunder/ytview/internal/shared"
)

const (
	defaultYTBaseURL = "https://www.googleapis.com/youtube/v3"

	// MaxResults is the page size requested from upstream. No further pages are fetched.
	MaxResults = 50

	listParts      = "snippet,contentDetails"
	maxErrorBody   = 64 << 10
	maxSuccessBody = 8 << 20
)

// YouTubeThumbnail is one rendition in a snippet's thumbnail set.
type YouTubeThumbnail struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type youtubeResourceID struct {
	Kind    string `json:"kind"`
	VideoID string `json:"videoId"`
}

// YouTubeSnippet holds the fields shared by playlist and playlistItem snippets.
type YouTubeSnippet struct {
	PublishedAt string                      `json:"publishedAt"`
	ChannelID   string                      `json:"channelId"`
	Title       string                      `json:"title"`
	Description string                      `json:"description"`
	Thumbnails  map[string]YouTubeThumbnail `json:"thumbnails"`
	PlaylistID  string                      `json:"playlistId,omitempty"`
	Position    int                         `json:"position,omitempty"`
	ResourceID  *youtubeResourceID          `json:"resourceId,omitempty"`
}

// YouTubePlaylist is a playlist resource returned by playlists.list.
type YouTubePlaylist struct {
	ID             string          `json:"id"`
	Snippet        *YouTubeSnippet `json:"snippet"`
	ContentDetails *struct {
		ItemCount int `json:"itemCount"`
	} `json:"contentDetails"`
}

// YouTubePlaylistItem is a playlistItem resource returned by playlistItems.list.
type YouTubePlaylistItem struct {
	ID             string          `json:"id"`
	Snippet        *YouTubeSnippet `json:"snippet"`
	ContentDetails *struct {
		VideoID          string `json:"videoId"`
		VideoPublishedAt string `json:"videoPublishedAt"`
	} `json:"contentDetails"`
}

type youtubeChannel struct {
	ID string `json:"id"`
}

// YouTubeListResponse is the envelope shared by every *.list endpoint.
type YouTubeListResponse[T any] struct {
	Kind          string `json:"kind"`
	NextPageToken string `json:"nextPageToken"`
	PageInfo      struct {
		TotalResults   int `json:"totalResults"`
		ResultsPerPage int `json:"resultsPerPage"`
	} `json:"pageInfo"`
	Items *[]T `json:"items"`
}

// list returns the decoded items. An absent or null items field is a malformed body; an empty array is not.
func (l YouTubeListResponse[T]) list(resource string) ([]T, error) {
	if l.Items == nil {
		return nil, malformed("%s response has no items", resource)
	}
	return *l.Items, nil
}

type youtubeErrorBody struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// YouTubeService implements [PlaylistService] against the YouTube Data API.
type YouTubeService struct {
	baseURL    string
	httpClient *http.Client
}

// NewYouTubeService creates a new YouTube service instance.
//
// An empty baseURL selects the public API; a nil client selects [http.DefaultClient].
func NewYouTubeService(baseURL string, client *http.Client) *YouTubeService {
	if baseURL == "" {
		baseURL = defaultYTBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &YouTubeService{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: client,
	}
}

// Name returns the service name.
func (y *YouTubeService) Name() string {
	return "YouTube"
}

func (y *YouTubeService) doRequest(ctx context.Context, resource string, params url.Values, cred Credential, result any) error {
	if cred.Kind() == CredentialNone {
		return fmt.Errorf("%w: no credential for %s request", shared.ErrConfiguration, resource)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, y.baseURL+"/"+resource, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	cred.apply(req, params)
	req.URL.RawQuery = params.Encode()
	req.Header.Set("Accept", "application/json")

	resp, err := y.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s request failed: %w", shared.ErrUpstream, resource, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: youtube API error (status %d): %s",
			shared.ErrUpstream, resp.StatusCode, describeErrorBody(resp.Body))
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxSuccessBody)).Decode(result); err != nil {
		return fmt.Errorf("%w: %w: failed to decode %s response: %v", shared.ErrUpstream, shared.ErrMalformedBody, resource, err)
	}

	return nil
}

// describeErrorBody extracts the API error message, falling back to the raw body.
func describeErrorBody(r io.Reader) string {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil {
		return fmt.Sprintf("unreadable body: %v", err)
	}

	var errResp youtubeErrorBody
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Message != "" {
		return errResp.Error.Message
	}
	return strings.TrimSpace(string(body))
}

func listParams(extra map[string]string) url.Values {
	params := url.Values{}
	params.Set("part", listParts)
	params.Set("maxResults", strconv.Itoa(MaxResults))
	for k, v := range extra {
		params.Set(k, v)
	}
	return params
}

// ListPlaylists retrieves the first page of playlists for a channel, or for the token holder when query.Mine is set.
//
// Calls GET /playlists?part=snippet,contentDetails&maxResults=50.
func (y *YouTubeService) ListPlaylists(ctx context.Context, query PlaylistQuery, cred Credential) ([]models.Playlist, error) {
	if query.ChannelID == "" && !query.Mine {
		return nil, fmt.Errorf("%w: missing channelId", shared.ErrBadRequest)
	}
	if query.Mine && query.ChannelID == "" && cred.Kind() != CredentialBearer {
		return nil, fmt.Errorf("%w: listing own playlists requires a user token", shared.ErrUnauthorized)
	}

	params := listParams(nil)
	query.apply(params)

	var response YouTubeListResponse[YouTubePlaylist]
	if err := y.doRequest(ctx, "playlists", params, cred, &response); err != nil {
		return nil, err
	}

	items, err := response.list("playlists")
	if err != nil {
		return nil, err
	}

	return NormalizePlaylists(items)
}

// ListPlaylistItems retrieves the first page of items in a playlist.
//
// Calls GET /playlistItems?part=snippet,contentDetails&maxResults=50.
func (y *YouTubeService) ListPlaylistItems(ctx context.Context, playlistID string, cred Credential) ([]models.PlaylistItem, error) {
	if playlistID == "" {
		return nil, fmt.Errorf("%w: missing playlistId", shared.ErrBadRequest)
	}

	params := listParams(map[string]string{"playlistId": playlistID})

	var response YouTubeListResponse[YouTubePlaylistItem]
	if err := y.doRequest(ctx, "playlistItems", params, cred, &response); err != nil {
		return nil, err
	}

	items, err := response.list("playlistItems")
	if err != nil {
		return nil, err
	}

	return NormalizePlaylistItems(items)
}

// MineChannelID resolves the channel owned by the token holder.
//
// Calls GET /channels?part=id&mine=true.
func (y *YouTubeService) MineChannelID(ctx context.Context, accessToken string) (string, error) {
	if accessToken == "" {
		return "", fmt.Errorf("%w: missing access token", shared.ErrUnauthorized)
	}

	params := url.Values{}
	params.Set("part", "id")
	params.Set("mine", "true")

	var response YouTubeListResponse[youtubeChannel]
	if err := y.doRequest(ctx, "channels", params, BearerCredential(accessToken), &response); err != nil {
		return "", err
	}

	channels, err := response.list("channels")
	if err != nil {
		return "", err
	}
	if len(channels) == 0 || channels[0].ID == "" {
		return "", fmt.Errorf("%w: %w", shared.ErrUpstream, shared.ErrNoChannel)
	}

	return channels[0].ID, nil
}
