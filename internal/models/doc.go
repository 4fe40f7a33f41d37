// Package models defines the entities exchanged between the upstream proxy and the presentation layer.
//
// The package contains two categories of types:
//
// 1. Normalized views: read-only shapes derived from video platform responses on every request
//   - [Playlist] : playlist metadata for list pages
//   - [PlaylistItem] : one video entry of a playlist, with its position
//
// 2. Session state: values carried by browser cookies between requests
//   - [SessionCredential] : bearer token, refresh token and owning channel id
//
// Nothing here is persisted. Every field of a normalized view is always present when serialized;
// a missing thumbnail is encoded as JSON null rather than omitted.
package models
