package tasks

import (
	"fmt"

	"github.com/desertthunder/ytview/internal/services"
)

// ProgressUpdate represents a progress event during a long-running operation.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
}

// Phase of an export.
type Phase int

const (
	FetchPlaylists Phase = iota
	FetchItems
	WriteManifest
)

func (p Phase) String() string {
	switch p {
	case FetchPlaylists:
		return "fetch_playlists"
	case FetchItems:
		return "fetch_items"
	case WriteManifest:
		return "write_manifest"
	default:
		return ""
	}
}

// Exporter fetches playlists and their items with a fixed upstream credential.
type Exporter struct {
	playlists services.PlaylistService
	cred      services.Credential
}

// NewExporter creates an [Exporter].
func NewExporter(playlists services.PlaylistService, cred services.Credential) *Exporter {
	return &Exporter{playlists: playlists, cred: cred}
}

func (e *Exporter) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

func playlistsFetchedUpdate(total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchPlaylists,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Found %d playlists", total),
	}
}

func itemsDoneUpdate(step, total int, res PlaylistExportResult) ProgressUpdate {
	msg := fmt.Sprintf("Exported %s (%d items)", res.Title, res.Items)
	if res.Err != nil {
		msg = fmt.Sprintf("Failed %s: %v", res.Title, res.Err)
	}
	return ProgressUpdate{Phase: FetchItems, Step: step, Total: total, Message: msg}
}
