package server

import (
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytview/internal/models"
	"github.com/desertthunder/ytview/internal/services"
	"github.com/desertthunder/ytview/internal/shared"
)

// ProxyHandler serves normalized playlists and playlist items from the upstream API.
type ProxyHandler struct {
	config    *shared.Config
	playlists services.PlaylistService
	oauth     services.OAuthService
	logger    *log.Logger
}

// NewProxyHandler creates the playlist & playlist item handlers.
func NewProxyHandler(config *shared.Config, playlists services.PlaylistService, oauth services.OAuthService, logger *log.Logger) *ProxyHandler {
	return &ProxyHandler{config: config, playlists: playlists, oauth: oauth, logger: logger}
}

// Routes returns the HTTP routes this handler serves.
func (h *ProxyHandler) Routes() []Route {
	return []Route{
		{Method: http.MethodGet, Path: "/api/playlists", Handler: h.Playlists},
		{Method: http.MethodGet, Path: "/api/playlist-items", Handler: h.PlaylistItems},
	}
}

// resolveCredential picks the upstream credential for one request. First match wins:
//
//  1. session access token
//  2. refreshed access token, when auth.refresh_on_expiry is set and a refresh cookie exists
//  3. 401 when auth.strict is set
//  4. static API key, or a configuration error when none is set
func (h *ProxyHandler) resolveCredential(w http.ResponseWriter, r *http.Request, session models.SessionCredential) (services.Credential, error) {
	if session.HasAccessToken() {
		credentialSource.WithLabelValues("session").Inc()
		return services.BearerCredential(session.AccessToken), nil
	}

	if h.canRefresh(session) {
		token, err := h.oauth.Refresh(r.Context(), session.RefreshToken)
		upstreamCalls.WithLabelValues("token_refresh", outcome(err)).Inc()
		if err == nil {
			writeAccessToken(w, token.AccessToken)
			if token.RefreshToken != "" && token.RefreshToken != session.RefreshToken {
				http.SetCookie(w, newCookie(RefreshTokenCookie, token.RefreshToken, 0))
			}
			credentialSource.WithLabelValues("refresh").Inc()
			return services.BearerCredential(token.AccessToken), nil
		}
		h.logger.Warn("token refresh failed, falling back", "err", err)
	}

	if h.config.Auth.Strict {
		return services.Credential{}, fmt.Errorf("%w: no session", shared.ErrUnauthorized)
	}

	key := h.config.Credentials.YouTube.APIKey
	if key == "" {
		h.logger.Error("YouTube API key is not configured")
		return services.Credential{}, fmt.Errorf("%w: YouTube API key is not configured", shared.ErrConfiguration)
	}

	credentialSource.WithLabelValues("api_key").Inc()
	return services.APIKeyCredential(key), nil
}

func (h *ProxyHandler) canRefresh(session models.SessionCredential) bool {
	return h.config.Auth.RefreshOnExpiry && session.CanRefresh()
}

// Playlists handles GET /api/playlists?channelId=.
//
// Without a channelId the caller's own playlists are listed, which needs a user token from the session
// or from a refresh.
func (h *ProxyHandler) Playlists(w http.ResponseWriter, r *http.Request) {
	session := ParseSession(r)
	channelID := r.URL.Query().Get("channelId")
	missingChannel := fmt.Errorf("%w: missing channelId", shared.ErrBadRequest)
	if channelID == "" && !session.HasAccessToken() && !h.canRefresh(session) {
		writeError(w, r, h.logger, missingChannel, "Missing channelId")
		return
	}

	cred, err := h.resolveCredential(w, r, session)
	if channelID == "" && cred.Kind() != services.CredentialBearer {
		writeError(w, r, h.logger, missingChannel, "Missing channelId")
		return
	}
	if err != nil {
		writeError(w, r, h.logger, err, "Failed to fetch playlists")
		return
	}

	playlists, err := h.playlists.ListPlaylists(r.Context(), services.PlaylistQuery{
		ChannelID: channelID,
		Mine:      channelID == "",
	}, cred)
	upstreamCalls.WithLabelValues("playlists", outcome(err)).Inc()
	if err != nil {
		writeError(w, r, h.logger, err, "Failed to fetch playlists")
		return
	}

	writeJSON(w, h.logger, http.StatusOK, playlists)
}

// PlaylistItems handles GET /api/playlist-items?playlistId=.
func (h *ProxyHandler) PlaylistItems(w http.ResponseWriter, r *http.Request) {
	playlistID := r.URL.Query().Get("playlistId")
	if playlistID == "" {
		writeError(w, r, h.logger, fmt.Errorf("%w: missing playlistId", shared.ErrBadRequest), "Missing playlistId")
		return
	}

	cred, err := h.resolveCredential(w, r, ParseSession(r))
	if err != nil {
		writeError(w, r, h.logger, err, "Failed to fetch playlist items")
		return
	}

	items, err := h.playlists.ListPlaylistItems(r.Context(), playlistID, cred)
	upstreamCalls.WithLabelValues("playlist_items", outcome(err)).Inc()
	if err != nil {
		writeError(w, r, h.logger, err, "Failed to fetch playlist items")
		return
	}

	writeJSON(w, h.logger, http.StatusOK, items)
}
