// package models defines the data model for the playlist viewer
package models

// Playlist is the normalized view of one channel playlist.
type Playlist struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	ThumbnailURL *string `json:"thumbnailUrl"`
	ItemCount    int     `json:"itemCount"`
	PublishedAt  string  `json:"publishedAt"`
}

// PlaylistItem is the normalized view of one entry in a playlist.
type PlaylistItem struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	ThumbnailURL *string `json:"thumbnailUrl"`
	VideoID      string  `json:"videoId"`
	PublishedAt  string  `json:"publishedAt"`
	Position     int     `json:"position"`
}

// SessionCredential is the per-browser credential set carried in cookies.
//
// It is parsed once at the HTTP boundary and passed down by value.
type SessionCredential struct {
	AccessToken  string
	RefreshToken string
	ChannelID    string
}

// HasAccessToken reports whether the session carries a usable bearer token.
//
// The access cookie expires with the token, so presence implies it has not expired.
func (s SessionCredential) HasAccessToken() bool {
	return s.AccessToken != ""
}

// CanRefresh reports whether a refresh token is available for renewing the access token.
func (s SessionCredential) CanRefresh() bool {
	return s.RefreshToken != ""
}
