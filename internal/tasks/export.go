package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/desertthunder/ytview/internal/formatter"
	"github.com/desertthunder/ytview/internal/models"
	"github.com/desertthunder/ytview/internal/services"
	"github.com/desertthunder/ytview/internal/shared"
)

const (
	defaultWorkers = 4
	maxWorkers     = 8
	manifestName   = "export_manifest.json"
)

// ExportOpts contains configuration for channel exports.
type ExportOpts struct {
	Format     formatter.Format // csv, md or text; ignored when JSON is set
	JSON       bool             // write pretty JSON instead of Format
	OutputDir  string           // default: ytview_export_{epoch}
	NumWorkers int              // concurrent playlist fetches (default 4, max 8)
}

func (o ExportOpts) ext() string {
	if o.JSON {
		return "json"
	}
	switch o.Format {
	case formatter.CSV:
		return "csv"
	case formatter.Markdown:
		return "md"
	default:
		return "txt"
	}
}

// PlaylistExportResult is the outcome for one playlist.
type PlaylistExportResult struct {
	PlaylistID string `json:"playlistId"`
	Title      string `json:"title"`
	Items      int    `json:"items"`
	File       string `json:"file,omitempty"`
	Error      string `json:"error,omitempty"`
	Err        error  `json:"-"`

	index int
}

// ExportResult summarizes an export and is written as the manifest.
type ExportResult struct {
	ChannelID       string                 `json:"channelId,omitempty"`
	ExportedAt      time.Time              `json:"exportedAt"`
	TotalPlaylists  int                    `json:"totalPlaylists"`
	Successful      int                    `json:"successful"`
	Failed          int                    `json:"failed"`
	OutputDirectory string                 `json:"outputDirectory"`
	IndexFile       string                 `json:"indexFile"`
	ManifestPath    string                 `json:"-"`
	Results         []PlaylistExportResult `json:"results"`
}

type exportJob struct {
	index    int
	playlist models.Playlist
}

// ExportChannel exports every playlist matched by query (first page only) with its items.
func (e *Exporter) ExportChannel(ctx context.Context, progress chan<- ProgressUpdate, query services.PlaylistQuery, opts ExportOpts) (*ExportResult, error) {
	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("ytview_export_%d", time.Now().Unix())
	}
	if opts.Format == "" {
		opts.Format = formatter.Text
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = defaultWorkers
	}
	if opts.NumWorkers > maxWorkers {
		opts.NumWorkers = maxWorkers
	}

	playlists, err := e.playlists.ListPlaylists(ctx, query, e.cred)
	if err != nil {
		return nil, fmt.Errorf("failed to list playlists: %w", err)
	}
	e.sendProgress(progress, playlistsFetchedUpdate(len(playlists)))

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	result := &ExportResult{
		ChannelID:       query.ChannelID,
		ExportedAt:      time.Now().UTC(),
		TotalPlaylists:  len(playlists),
		OutputDirectory: opts.OutputDir,
		Results:         make([]PlaylistExportResult, len(playlists)),
	}

	title := query.ChannelID
	if title == "" {
		title = "My playlists"
	}
	index, err := renderPlaylists(opts, title, playlists)
	if err != nil {
		return nil, err
	}
	result.IndexFile = filepath.Join(opts.OutputDir, "playlists."+opts.ext())
	if err := formatter.WriteExport(result.IndexFile, index); err != nil {
		return nil, err
	}

	jobs := make(chan exportJob, len(playlists))
	results := make(chan PlaylistExportResult, len(playlists))

	var wg sync.WaitGroup
	for range opts.NumWorkers {
		wg.Add(1)
		go e.exportWorker(ctx, &wg, jobs, results, opts)
	}

	for i, p := range playlists {
		jobs <- exportJob{index: i, playlist: p}
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for res := range results {
		completed++
		result.Results[res.index] = res
		if res.Err != nil {
			result.Failed++
		} else {
			result.Successful++
		}
		e.sendProgress(progress, itemsDoneUpdate(completed, len(playlists), res))
	}

	if err := ctx.Err(); err != nil {
		return result, err
	}

	e.sendProgress(progress, ProgressUpdate{Phase: WriteManifest, Step: 1, Total: 1, Message: "Writing manifest"})
	manifest, err := shared.MarshalJSON(result, true)
	if err != nil {
		return result, fmt.Errorf("failed to marshal manifest: %w", err)
	}
	result.ManifestPath = filepath.Join(opts.OutputDir, manifestName)
	if err := formatter.WriteExport(result.ManifestPath, manifest); err != nil {
		return result, fmt.Errorf("export completed but failed to write manifest: %w", err)
	}

	return result, nil
}

// exportWorker fetches and writes playlists from the jobs channel until it is drained or ctx is done.
func (e *Exporter) exportWorker(ctx context.Context, wg *sync.WaitGroup, jobs <-chan exportJob, results chan<- PlaylistExportResult, opts ExportOpts) {
	defer wg.Done()

	for job := range jobs {
		res := PlaylistExportResult{PlaylistID: job.playlist.ID, Title: job.playlist.Title, index: job.index}
		if err := ctx.Err(); err != nil {
			res.Err = err
		} else {
			res = e.exportPlaylist(ctx, job, opts)
		}
		if res.Err != nil {
			res.Error = res.Err.Error()
		}
		results <- res
	}
}

func (e *Exporter) exportPlaylist(ctx context.Context, job exportJob, opts ExportOpts) PlaylistExportResult {
	res := PlaylistExportResult{PlaylistID: job.playlist.ID, Title: job.playlist.Title, index: job.index}

	name, err := exportFileName(job.playlist.ID, opts.ext())
	if err != nil {
		res.Err = err
		return res
	}

	items, err := e.playlists.ListPlaylistItems(ctx, job.playlist.ID, e.cred)
	if err != nil {
		res.Err = fmt.Errorf("failed to fetch items: %w", err)
		return res
	}
	res.Items = len(items)

	data, err := renderItems(opts, job.playlist.Title, items)
	if err != nil {
		res.Err = err
		return res
	}

	path := filepath.Join(opts.OutputDir, name)
	if err := formatter.WriteExport(path, data); err != nil {
		res.Err = err
		return res
	}
	res.File = path
	return res
}

// exportFileName names a playlist's output file. Ids that are not a single plain path element are rejected.
func exportFileName(id, ext string) (string, error) {
	if id == "" || id == "." || id == ".." || strings.ContainsAny(id, `/\`) || filepath.Base(id) != id {
		return "", fmt.Errorf("%w: unsafe playlist id %q", shared.ErrUpstream, id)
	}
	return id + "." + ext, nil
}

func renderPlaylists(opts ExportOpts, title string, playlists []models.Playlist) ([]byte, error) {
	if opts.JSON {
		return shared.MarshalJSON(playlists, true)
	}
	return formatter.Playlists(opts.Format, title, playlists)
}

func renderItems(opts ExportOpts, title string, items []models.PlaylistItem) ([]byte, error) {
	if opts.JSON {
		return shared.MarshalJSON(items, true)
	}
	return formatter.PlaylistItems(opts.Format, title, items)
}
