// Package tasks runs multi-request jobs against the playlist service with progress reporting.
//
// # Channel Export
//
// [Exporter.ExportChannel] lists a channel's playlists, then fetches the items of each playlist with a bounded worker
// pool and writes one file per playlist plus a playlists index and an export_manifest.json summary.
//
// A failed playlist is recorded in the manifest and does not stop the export; a failed playlist listing does.
//
// # Progress Reporting
//
// Operations accept a send-only channel of [ProgressUpdate]. Updates use select with default, so a slow or absent
// reader never blocks the export. Pass nil to disable progress.
package tasks
