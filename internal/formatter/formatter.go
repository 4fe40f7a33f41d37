// package formatter renders normalized playlists and playlist items as CSV, Markdown or plain text
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/desertthunder/ytview/internal/models"
)

// Format names an export format.
type Format string

const (
	CSV      Format = "csv"
	Markdown Format = "md"
	Text     Format = "text"
)

// ParseFormat accepts csv, md (or markdown) and text (or txt).
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "csv":
		return CSV, nil
	case "md", "markdown":
		return Markdown, nil
	case "text", "txt", "":
		return Text, nil
	default:
		return "", fmt.Errorf("unknown format %q (want csv, md or text)", s)
	}
}

func thumbnail(u *string) string {
	if u == nil {
		return ""
	}
	return *u
}

func writeCSV(headers []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// PlaylistsToCSV converts playlists to CSV with columns: ID, Title, Description, Items, Published, Thumbnail
func PlaylistsToCSV(playlists []models.Playlist) ([]byte, error) {
	rows := make([][]string, 0, len(playlists))
	for _, p := range playlists {
		rows = append(rows, []string{
			p.ID, p.Title, p.Description, strconv.Itoa(p.ItemCount), p.PublishedAt, thumbnail(p.ThumbnailURL),
		})
	}
	return writeCSV([]string{"ID", "Title", "Description", "Items", "Published", "Thumbnail"}, rows)
}

// ItemsToCSV converts playlist items to CSV with columns: Position, ID, VideoID, Title, Published, Thumbnail
func ItemsToCSV(items []models.PlaylistItem) ([]byte, error) {
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, []string{
			strconv.Itoa(it.Position), it.ID, it.VideoID, it.Title, it.PublishedAt, thumbnail(it.ThumbnailURL),
		})
	}
	return writeCSV([]string{"Position", "ID", "VideoID", "Title", "Published", "Thumbnail"}, rows)
}

// PlaylistsToMarkdown renders playlists as a numbered list with thumbnails
func PlaylistsToMarkdown(title string, playlists []models.Playlist) []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# %s\n\n", title)
	fmt.Fprintf(&buf, "**Playlists**: %d\n\n", len(playlists))

	for i, p := range playlists {
		fmt.Fprintf(&buf, "%d. **%s** (`%s`) %d items\n", i+1, p.Title, p.ID, p.ItemCount)
		if t := thumbnail(p.ThumbnailURL); t != "" {
			fmt.Fprintf(&buf, "   ![%s](%s)\n", p.Title, t)
		}
		if p.Description != "" {
			fmt.Fprintf(&buf, "   %s\n", p.Description)
		}
	}

	return buf.Bytes()
}

// ItemsToMarkdown renders playlist items as a numbered list of video links
func ItemsToMarkdown(title string, items []models.PlaylistItem) []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# %s\n\n", title)
	fmt.Fprintf(&buf, "**Videos**: %d\n\n", len(items))

	for _, it := range items {
		fmt.Fprintf(&buf, "%d. [%s](https://www.youtube.com/watch?v=%s)\n", it.Position+1, it.Title, it.VideoID)
	}

	return buf.Bytes()
}

// PlaylistsToText converts playlists to plain text
func PlaylistsToText(playlists []models.Playlist) []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Playlists: %d\n\n", len(playlists))
	for i, p := range playlists {
		fmt.Fprintf(&buf, "%d. %s [%s] (%d items)\n", i+1, p.Title, p.ID, p.ItemCount)
	}

	return buf.Bytes()
}

// ItemsToText converts playlist items to plain text
func ItemsToText(items []models.PlaylistItem) []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Videos: %d\n\n", len(items))
	for _, it := range items {
		fmt.Fprintf(&buf, "%d. %s [%s]\n", it.Position+1, it.Title, it.VideoID)
	}

	return buf.Bytes()
}

// Playlists renders playlists in the given format.
func Playlists(format Format, title string, playlists []models.Playlist) ([]byte, error) {
	switch format {
	case CSV:
		return PlaylistsToCSV(playlists)
	case Markdown:
		return PlaylistsToMarkdown(title, playlists), nil
	case Text:
		return PlaylistsToText(playlists), nil
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

// PlaylistItems renders playlist items in the given format.
func PlaylistItems(format Format, title string, items []models.PlaylistItem) ([]byte, error) {
	switch format {
	case CSV:
		return ItemsToCSV(items)
	case Markdown:
		return ItemsToMarkdown(title, items), nil
	case Text:
		return ItemsToText(items), nil
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

// WriteExport writes rendered data to path.
func WriteExport(path string, data []byte) error {
	if path == "" {
		return fmt.Errorf("empty output path")
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
