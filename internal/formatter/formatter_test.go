package formatter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/ytview/internal/models"
)

func ptr(s string) *string { return &s }

var (
	testPlaylists = []models.Playlist{
		{ID: "PL1", Title: "Favourites", Description: "Best of", ItemCount: 12, PublishedAt: "2024-01-02T03:04:05Z", ThumbnailURL: ptr("https://i.ytimg.com/pl1.jpg")},
		{ID: "PL2", Title: "Watch, later", ItemCount: 0},
	}
	testItems = []models.PlaylistItem{
		{ID: "IT1", Title: "First", VideoID: "vidA", Position: 0},
		{ID: "IT2", Title: "Second", VideoID: "vidB", Position: 1, ThumbnailURL: ptr("https://i.ytimg.com/vidB.jpg")},
	}
)

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"csv": CSV, "MD": Markdown, "markdown": Markdown, "txt": Text, "": Text} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("%q: expected %s, got %s (%v)", in, want, got, err)
		}
	}

	if _, err := ParseFormat("xml"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestExporters(t *testing.T) {
	t.Run("PlaylistsToCSV", func(t *testing.T) {
		data, err := PlaylistsToCSV(testPlaylists)
		if err != nil {
			t.Fatalf("PlaylistsToCSV failed: %v", err)
		}

		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		if len(lines) != 3 {
			t.Fatalf("expected header + 2 rows, got %d lines", len(lines))
		}
		if lines[0] != "ID,Title,Description,Items,Published,Thumbnail" {
			t.Errorf("unexpected headers %q", lines[0])
		}
		if !strings.Contains(lines[1], "https://i.ytimg.com/pl1.jpg") {
			t.Errorf("missing thumbnail in %q", lines[1])
		}
		if !strings.HasPrefix(lines[2], `PL2,"Watch, later",,0,,`) {
			t.Errorf("expected quoted title and empty thumbnail, got %q", lines[2])
		}
	})

	t.Run("ItemsToCSV", func(t *testing.T) {
		data, err := ItemsToCSV(testItems)
		if err != nil {
			t.Fatalf("ItemsToCSV failed: %v", err)
		}
		output := string(data)

		if !strings.HasPrefix(output, "Position,ID,VideoID,Title,Published,Thumbnail\n") {
			t.Errorf("CSV missing headers, got: %s", output)
		}
		if !strings.Contains(output, "0,IT1,vidA,First") || !strings.Contains(output, "1,IT2,vidB,Second") {
			t.Errorf("CSV missing rows, got: %s", output)
		}
	})

	t.Run("PlaylistsToMarkdown", func(t *testing.T) {
		output := string(PlaylistsToMarkdown("UC123", testPlaylists))

		for _, want := range []string{"# UC123", "**Playlists**: 2", "1. **Favourites** (`PL1`) 12 items", "![Favourites](https://i.ytimg.com/pl1.jpg)", "Best of"} {
			if !strings.Contains(output, want) {
				t.Errorf("markdown missing %q:\n%s", want, output)
			}
		}
	})

	t.Run("ItemsToMarkdown", func(t *testing.T) {
		output := string(ItemsToMarkdown("PL1", testItems))

		if !strings.Contains(output, "2. [Second](https://www.youtube.com/watch?v=vidB)") {
			t.Errorf("markdown missing video link:\n%s", output)
		}
	})

	t.Run("Text", func(t *testing.T) {
		if output := string(PlaylistsToText(testPlaylists)); !strings.Contains(output, "1. Favourites [PL1] (12 items)") {
			t.Errorf("unexpected text output:\n%s", output)
		}
		if output := string(ItemsToText(testItems)); !strings.Contains(output, "1. First [vidA]") {
			t.Errorf("unexpected text output:\n%s", output)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		data, err := PlaylistsToCSV(nil)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if strings.Count(string(data), "\n") != 1 {
			t.Errorf("expected only headers, got %q", data)
		}
		if !strings.Contains(string(ItemsToText(nil)), "Videos: 0") {
			t.Error("expected zero count")
		}
	})
}

func TestDispatch(t *testing.T) {
	for _, f := range []Format{CSV, Markdown, Text} {
		if _, err := Playlists(f, "t", testPlaylists); err != nil {
			t.Errorf("Playlists(%s): %v", f, err)
		}
		if _, err := PlaylistItems(f, "t", testItems); err != nil {
			t.Errorf("PlaylistItems(%s): %v", f, err)
		}
	}

	if _, err := Playlists("xml", "t", nil); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestWriteExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	if err := WriteExport(path, []byte("a,b\n")); err != nil {
		t.Fatalf("WriteExport failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil || string(data) != "a,b\n" {
		t.Errorf("unexpected file content %q (%v)", data, err)
	}

	if err := WriteExport("", nil); err == nil {
		t.Error("expected error for empty path")
	}
}
