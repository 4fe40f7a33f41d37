package shared

import "fmt"

var (
	// Configuration errors
	ErrInvalidConfig = fmt.Errorf("invalid configuration")
	ErrConfiguration = fmt.Errorf("server configuration error")

	// Request errors
	ErrBadRequest   = fmt.Errorf("bad request")
	ErrUnauthorized = fmt.Errorf("unauthorized")
	ErrRateLimited  = fmt.Errorf("rate limited")
	ErrUnknownRoute = fmt.Errorf("not found")

	// Authentication errors
	ErrAuthFailed     = fmt.Errorf("authentication failed")
	ErrInvalidState   = fmt.Errorf("invalid state parameter")
	ErrRefreshFailed  = fmt.Errorf("token refresh failed")
	ErrNoRefreshToken = fmt.Errorf("no refresh token available")
	ErrNoChannel      = fmt.Errorf("no channel found for account")

	// Upstream errors
	ErrUpstream      = fmt.Errorf("upstream request failed")
	ErrMalformedBody = fmt.Errorf("malformed upstream response")
)
