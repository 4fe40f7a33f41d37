// package testing contains shared testing utilities
package testing

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
)

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

// UpstreamCall records one request received by [FakeUpstream].
type UpstreamCall struct {
	Method        string
	Path          string
	Query         url.Values
	Form          url.Values
	Authorization string
}

type fakeResponse struct {
	status int
	body   any
}

// FakeUpstream is an httptest server standing in for the video platform and the identity provider.
//
// Routes are keyed by path. Unregistered paths answer 404 with a Google-style error body.
type FakeUpstream struct {
	Server *httptest.Server

	mu     sync.Mutex
	calls  []UpstreamCall
	routes map[string]fakeResponse
}

// NewFakeUpstream starts a server that is closed when the test ends.
func NewFakeUpstream(t *testing.T) *FakeUpstream {
	t.Helper()

	f := &FakeUpstream{routes: map[string]fakeResponse{}}
	f.Server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.Server.Close)
	return f
}

// URL returns the base URL of the server.
func (f *FakeUpstream) URL() string {
	return f.Server.URL
}

// On registers the response for path. A string body is written verbatim, anything else is JSON encoded.
func (f *FakeUpstream) On(path string, status int, body any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.routes[path] = fakeResponse{status: status, body: body}
}

// Calls returns every request received so far.
func (f *FakeUpstream) Calls() []UpstreamCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]UpstreamCall(nil), f.calls...)
}

// CallsTo returns the requests received for path.
func (f *FakeUpstream) CallsTo(path string) []UpstreamCall {
	var out []UpstreamCall
	for _, c := range f.Calls() {
		if c.Path == path {
			out = append(out, c)
		}
	}
	return out
}

func (f *FakeUpstream) serve(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()

	f.mu.Lock()
	f.calls = append(f.calls, UpstreamCall{
		Method:        r.Method,
		Path:          r.URL.Path,
		Query:         r.URL.Query(),
		Form:          r.PostForm,
		Authorization: r.Header.Get("Authorization"),
	})
	resp, ok := f.routes[r.URL.Path]
	f.mu.Unlock()

	if !ok {
		resp = fakeResponse{
			status: http.StatusNotFound,
			body:   map[string]any{"error": map[string]any{"code": 404, "message": "not found"}},
		}
	}

	if s, isString := resp.body.(string); isString {
		w.WriteHeader(resp.status)
		io.WriteString(w, s)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.status)
	json.NewEncoder(w).Encode(resp.body)
}

// PlaylistResource builds a playlists.list item with default and medium thumbnails.
func PlaylistResource(id, title string, itemCount int) map[string]any {
	return map[string]any{
		"id": id,
		"snippet": map[string]any{
			"title":       title,
			"description": title + " description",
			"publishedAt": "2024-01-02T03:04:05Z",
			"thumbnails": map[string]any{
				"default": map[string]any{"url": "https://i.ytimg.com/vi/" + id + "/default.jpg"},
				"medium":  map[string]any{"url": "https://i.ytimg.com/vi/" + id + "/mqdefault.jpg"},
			},
		},
		"contentDetails": map[string]any{"itemCount": itemCount},
	}
}

// PlaylistItemResource builds a playlistItems.list item at the given position.
func PlaylistItemResource(id, videoID string, position int) map[string]any {
	return map[string]any{
		"id": id,
		"snippet": map[string]any{
			"title":       "Video " + videoID,
			"description": "",
			"publishedAt": "2024-02-03T04:05:06Z",
			"position":    position,
			"resourceId":  map[string]any{"kind": "youtube#video", "videoId": videoID},
			"thumbnails": map[string]any{
				"default": map[string]any{"url": "https://i.ytimg.com/vi/" + videoID + "/default.jpg"},
			},
		},
		"contentDetails": map[string]any{"videoId": videoID},
	}
}

// ListResponse wraps items in a *.list envelope.
func ListResponse(items ...map[string]any) map[string]any {
	if items == nil {
		items = []map[string]any{}
	}
	return map[string]any{
		"kind":     "youtube#listResponse",
		"pageInfo": map[string]any{"totalResults": len(items), "resultsPerPage": 50},
		"items":    items,
	}
}
