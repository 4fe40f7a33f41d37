// Package server exposes the playlist viewer backend over HTTP.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (first added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering, so patterns such as
// /api/auth/{provider} work and a wrong method yields a JSON 405.
//
// # Handler Interface
//
// Handlers implement [Handler], returning a [Route] per endpoint so a group of related endpoints can be registered at
// once. [AuthHandler] serves the OAuth flow and [ProxyHandler] serves the playlist endpoints.
//
// # Sessions
//
// The browser session lives in three cookies (session_access_token, session_refresh_token, session_channel_id).
// [ParseSession] reads them once per request into a [models.SessionCredential]; handlers never touch raw cookies.
//
// # Credential Resolution
//
// Proxy requests use the session access token when present. Otherwise, if auth.refresh_on_expiry is set, the refresh
// token is exchanged for a new access token. Failing that, auth.strict answers 401 and the default policy falls back
// to the static API key.
//
// # Errors
//
// Services return sentinel errors from the shared package. Handlers map them to a status code in one place and send a
// generic {"error": "..."} body; the detail only goes to the log.
package server
