// package services defines the upstream clients used by the HTTP proxy
//
// YouTube Data API v3, Google OAuth2
package services

import (
	"context"
	"net/http"
	"net/url"

	"github.com/desertthunder/ytview/internal/models"
	"golang.org/x/oauth2"
)

// PlaylistService lists normalized playlists and playlist items from the video platform.
type PlaylistService interface {
	// ListPlaylists returns up to [MaxResults] playlists matching the query, in upstream order.
	ListPlaylists(ctx context.Context, query PlaylistQuery, cred Credential) ([]models.Playlist, error)

	// ListPlaylistItems returns up to [MaxResults] items of the playlist, in upstream order.
	ListPlaylistItems(ctx context.Context, playlistID string, cred Credential) ([]models.PlaylistItem, error)

	// MineChannelID resolves the channel owned by the holder of the access token.
	MineChannelID(ctx context.Context, accessToken string) (string, error)
}

// OAuthService performs the authorization-code flow against the identity provider.
type OAuthService interface {
	// AuthCodeURL returns the provider URL the browser is redirected to.
	AuthCodeURL(state string) (string, error)

	// Exchange trades an authorization code for tokens.
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)

	// Refresh trades a refresh token for a new access token.
	Refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error)
}

// PlaylistQuery selects whose playlists are listed: an explicit channel or the caller's own.
type PlaylistQuery struct {
	ChannelID string
	Mine      bool
}

func (q PlaylistQuery) apply(params url.Values) {
	if q.ChannelID != "" {
		params.Set("channelId", q.ChannelID)
		return
	}
	if q.Mine {
		params.Set("mine", "true")
	}
}

// CredentialKind names how an upstream request is authenticated.
type CredentialKind string

const (
	CredentialNone   CredentialKind = "none"
	CredentialBearer CredentialKind = "bearer"
	CredentialAPIKey CredentialKind = "api_key"
)

// Credential authenticates one upstream request, either as a user (bearer token) or anonymously (API key).
type Credential struct {
	Bearer string
	APIKey string
}

// BearerCredential wraps an OAuth access token.
func BearerCredential(token string) Credential {
	return Credential{Bearer: token}
}

// APIKeyCredential wraps a static API key.
func APIKeyCredential(key string) Credential {
	return Credential{APIKey: key}
}

// Kind reports which credential is used; a bearer token wins over an API key.
func (c Credential) Kind() CredentialKind {
	switch {
	case c.Bearer != "":
		return CredentialBearer
	case c.APIKey != "":
		return CredentialAPIKey
	default:
		return CredentialNone
	}
}

// apply attaches the credential to the request: bearer tokens as a header, API keys as a query parameter.
func (c Credential) apply(req *http.Request, params url.Values) {
	switch c.Kind() {
	case CredentialBearer:
		req.Header.Set("Authorization", "Bearer "+c.Bearer)
	case CredentialAPIKey:
		params.Set("key", c.APIKey)
	}
}
