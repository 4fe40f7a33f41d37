// Google OAuth2 implementation of [OAuthService]
package services

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/desertthunder/ytview/internal/shared"
	"golang.org/x/oauth2"
)

const (
	googleAuthURL  = "https://accounts.google.com/o/oauth2/v2/auth"
	googleTokenURL = "https://oauth2.googleapis.com/token"
)

// Scopes requested during authorization: read-only video access plus basic profile.
var Scopes = []string{
	"https://www.googleapis.com/auth/youtube.readonly",
	"profile",
	"email",
}

// GoogleOAuth implements [OAuthService] with [oauth2.Config].
type GoogleOAuth struct {
	config               *oauth2.Config
	includeGrantedScopes bool
	httpClient           *http.Client
}

// NewGoogleOAuth creates the provider client from the YouTube credentials and upstream endpoints.
//
// Missing client settings are reported per call with [shared.ErrConfiguration], so a server without OAuth
// credentials can still serve API-key lookups.
func NewGoogleOAuth(creds shared.YouTubeConfig, upstream shared.UpstreamConfig, client *http.Client) *GoogleOAuth {
	authURL, tokenURL := upstream.AuthURL, upstream.TokenURL
	if authURL == "" {
		authURL = googleAuthURL
	}
	if tokenURL == "" {
		tokenURL = googleTokenURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &GoogleOAuth{
		config: &oauth2.Config{
			ClientID:     creds.ClientID,
			ClientSecret: creds.ClientSecret,
			RedirectURL:  creds.RedirectURI,
			Scopes:       Scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:   authURL,
				TokenURL:  tokenURL,
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		includeGrantedScopes: creds.IncludeGrantedScopes,
		httpClient:           client,
	}
}

func (g *GoogleOAuth) configured() error {
	if g.config.ClientID == "" || g.config.RedirectURL == "" {
		return fmt.Errorf("%w: OAuth client id or redirect URI is not set", shared.ErrConfiguration)
	}
	return nil
}

// withClient makes the oauth2 package use the service's bounded HTTP client.
func (g *GoogleOAuth) withClient(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, g.httpClient)
}

// RedirectURI returns the configured callback URL.
func (g *GoogleOAuth) RedirectURI() string {
	return g.config.RedirectURL
}

// AuthCodeURL returns the authorization URL with offline access and forced consent.
func (g *GoogleOAuth) AuthCodeURL(state string) (string, error) {
	if err := g.configured(); err != nil {
		return "", err
	}

	return g.config.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
		oauth2.SetAuthURLParam("include_granted_scopes", strconv.FormatBool(g.includeGrantedScopes)),
	), nil
}

// Exchange trades the authorization code for tokens (grant_type=authorization_code).
func (g *GoogleOAuth) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	if err := g.configured(); err != nil {
		return nil, err
	}
	if code == "" {
		return nil, fmt.Errorf("%w: missing authorization code", shared.ErrBadRequest)
	}

	token, err := g.config.Exchange(g.withClient(ctx), code)
	if err != nil {
		return nil, fmt.Errorf("%w: token exchange failed: %w", shared.ErrAuthFailed, err)
	}
	if token.AccessToken == "" {
		return nil, fmt.Errorf("%w: token endpoint returned no access token", shared.ErrAuthFailed)
	}

	return token, nil
}

// Refresh obtains a new access token from a refresh token.
func (g *GoogleOAuth) Refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error) {
	if err := g.configured(); err != nil {
		return nil, err
	}
	if refreshToken == "" {
		return nil, shared.ErrNoRefreshToken
	}

	src := g.config.TokenSource(g.withClient(ctx), &oauth2.Token{RefreshToken: refreshToken})
	token, err := src.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrRefreshFailed, err)
	}

	return token, nil
}
