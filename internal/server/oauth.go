package server

import (
	"crypto/subtle"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytview/internal/models"
	"github.com/desertthunder/ytview/internal/services"
	"github.com/desertthunder/ytview/internal/shared"
)

// Provider is the only identity provider served under /api/auth/{provider}.
const Provider = "youtube"

const authFailedMessage = "Authentication failed"

// AuthHandler runs the authorization-code flow: redirect to the provider, then exchange the code,
// resolve the user's channel and store the session cookies.
type AuthHandler struct {
	config    *shared.Config
	oauth     services.OAuthService
	playlists services.PlaylistService
	logger    *log.Logger
}

// NewAuthHandler creates the start & callback handlers.
func NewAuthHandler(config *shared.Config, oauth services.OAuthService, playlists services.PlaylistService, logger *log.Logger) *AuthHandler {
	return &AuthHandler{config: config, oauth: oauth, playlists: playlists, logger: logger}
}

// Routes returns the HTTP routes this handler serves.
func (h *AuthHandler) Routes() []Route {
	return []Route{
		{Method: http.MethodGet, Path: "/api/auth/{provider}", Handler: h.Start},
		{Method: http.MethodGet, Path: "/api/auth/{provider}/callback", Handler: h.Callback},
		{Method: http.MethodGet, Path: "/api/auth/callback", Handler: h.Callback},
	}
}

// knownProvider reports whether the path names a served provider. The bare callback alias has none.
func knownProvider(r *http.Request) bool {
	p := r.PathValue("provider")
	return p == "" || p == Provider
}

// Start redirects the browser to the provider's consent screen with a fresh state token.
func (h *AuthHandler) Start(w http.ResponseWriter, r *http.Request) {
	if !knownProvider(r) {
		writeError(w, r, h.logger, fmt.Errorf("%w: provider %q", shared.ErrUnknownRoute, r.PathValue("provider")), "")
		return
	}

	state := shared.GenerateID()
	authURL, err := h.oauth.AuthCodeURL(state)
	if err != nil {
		writeError(w, r, h.logger, err, "Server configuration error")
		return
	}

	writeState(w, state)
	http.Redirect(w, r, authURL, http.StatusFound)
}

// Callback completes the flow. On success it sets the session cookies and redirects to the listing page.
func (h *AuthHandler) Callback(w http.ResponseWriter, r *http.Request) {
	if !knownProvider(r) {
		writeError(w, r, h.logger, fmt.Errorf("%w: provider %q", shared.ErrUnknownRoute, r.PathValue("provider")), "")
		return
	}

	q := r.URL.Query()
	code := q.Get("code")
	if code == "" {
		err := fmt.Errorf("%w: provider returned error=%q error_description=%q",
			shared.ErrBadRequest, q.Get("error"), q.Get("error_description"))
		writeError(w, r, h.logger, err, "Missing authorization code")
		return
	}

	expected := cookieValue(r, StateCookie)
	if expected != "" {
		clearState(w)
	}
	if h.config.Auth.VerifyState && !stateMatches(expected, q.Get("state")) {
		writeError(w, r, h.logger, shared.ErrInvalidState, "Invalid state parameter")
		return
	}

	token, err := h.oauth.Exchange(r.Context(), code)
	if err != nil {
		upstreamCalls.WithLabelValues("token_exchange", outcome(err)).Inc()
		writeError(w, r, h.logger, err, authFailedMessage)
		return
	}
	upstreamCalls.WithLabelValues("token_exchange", outcome(nil)).Inc()

	channelID, err := h.playlists.MineChannelID(r.Context(), token.AccessToken)
	upstreamCalls.WithLabelValues("channel_lookup", outcome(err)).Inc()
	if err != nil {
		writeError(w, r, h.logger, fmt.Errorf("%w: %w", shared.ErrAuthFailed, err), authFailedMessage)
		return
	}

	WriteSession(w, models.SessionCredential{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		ChannelID:    channelID,
	})

	h.logger.Info("authenticated", "channel", channelID)
	http.Redirect(w, r, h.listingURL(channelID), http.StatusFound)
}

func stateMatches(expected, got string) bool {
	if expected == "" || got == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(got)) == 1
}

// listingURL builds {base}{listing_path}?channelId=id, where base is the redirect URI up to "/api/auth".
// Without that segment the result is relative.
func (h *AuthHandler) listingURL(channelID string) string {
	base := ""
	if i := strings.Index(h.config.Credentials.YouTube.RedirectURI, "/api/auth"); i >= 0 {
		base = h.config.Credentials.YouTube.RedirectURI[:i]
	}

	path := h.config.Server.ListingPath
	if path == "" {
		path = "/playlists"
	}

	return base + path + "?channelId=" + url.QueryEscape(channelID)
}
