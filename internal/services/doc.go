// Package services implements the upstream clients behind the HTTP proxy: the YouTube Data API and Google OAuth2.
//
// # Playlist Service
//
// [PlaylistService] abstracts the two list endpoints the proxy exposes plus the channel lookup used after login.
// [YouTubeService] implements it with plain GET requests against the Data API v3.
//
// Every list call requests part=snippet,contentDetails with maxResults=50 and never follows nextPageToken, so
// large playlists and channels are truncated to [MaxResults] entries.
//
// # Credentials
//
// A [Credential] is either a user bearer token (sent in the Authorization header) or a static API key (sent as
// the key query parameter). Which one a request uses is decided by the caller; the service only applies it.
//
// # OAuth
//
// [GoogleOAuth] wraps [oauth2.Config] for the authorization-code flow: building the consent URL, exchanging the
// code, and (when enabled by configuration) refreshing an access token.
//
// # Normalization
//
// Upstream resources are mapped 1:1 onto [models.Playlist] and [models.PlaylistItem] in upstream order.
// Thumbnails fall back from "medium" to "default" to null. Resources missing an id or snippet are shape
// violations and fail the whole response instead of producing partial records.
//
// # Error Handling
//
// Errors wrap sentinels from the shared package:
//   - [shared.ErrBadRequest] : a required key was empty
//   - [shared.ErrUnauthorized] : the operation needs a user token
//   - [shared.ErrConfiguration] : no credential or OAuth client configured
//   - [shared.ErrUpstream] : transport failure, non-2xx status, or malformed body
//   - [shared.ErrAuthFailed] : the token endpoint rejected the code
package services
