package server

import (
	"net/http"

	"github.com/desertthunder/ytview/internal/models"
)

// Cookie names carrying the browser session.
const (
	AccessTokenCookie  = "session_access_token"
	RefreshTokenCookie = "session_refresh_token"
	ChannelIDCookie    = "session_channel_id"
	StateCookie        = "session_oauth_state"
)

const (
	sessionMaxAge = 3600
	stateMaxAge   = 600
)

func cookieValue(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}

// ParseSession reads the session cookies once at the handler boundary. Absent cookies yield empty fields.
func ParseSession(r *http.Request) models.SessionCredential {
	return models.SessionCredential{
		AccessToken:  cookieValue(r, AccessTokenCookie),
		RefreshToken: cookieValue(r, RefreshTokenCookie),
		ChannelID:    cookieValue(r, ChannelIDCookie),
	}
}

// newCookie builds an HttpOnly, Secure, SameSite=Lax cookie scoped to /. A zero maxAge omits Max-Age.
func newCookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}
}

// WriteSession stores the credential as cookies. The refresh token is only written when one was granted.
func WriteSession(w http.ResponseWriter, cred models.SessionCredential) {
	writeAccessToken(w, cred.AccessToken)
	if cred.RefreshToken != "" {
		http.SetCookie(w, newCookie(RefreshTokenCookie, cred.RefreshToken, 0))
	}
	if cred.ChannelID != "" {
		http.SetCookie(w, newCookie(ChannelIDCookie, cred.ChannelID, sessionMaxAge))
	}
}

func writeAccessToken(w http.ResponseWriter, token string) {
	http.SetCookie(w, newCookie(AccessTokenCookie, token, sessionMaxAge))
}

func writeState(w http.ResponseWriter, state string) {
	http.SetCookie(w, newCookie(StateCookie, state, stateMaxAge))
}

func clearState(w http.ResponseWriter) {
	http.SetCookie(w, newCookie(StateCookie, "", -1))
}
