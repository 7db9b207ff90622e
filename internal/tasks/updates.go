package tasks

import (
	"fmt"

	"github.com/desertthunder/songtabs/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	FetchSongs Phase = iota
	FetchTab
	ExportSong
	WriteManifest
)

func (p Phase) String() string {
	switch p {
	case FetchSongs:
		return "fetch_songs"
	case FetchTab:
		return "fetch_tab"
	case ExportSong:
		return "export_song"
	case WriteManifest:
		return "write_manifest"
	default:
		return ""
	}
}

func fetchPageUpdate(page models.Page, found int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchSongs,
		Step:    page.Number(),
		Message: fmt.Sprintf("Fetching songs (page %d, %d found so far)...", page.Number(), found),
	}
}

func foundSongsUpdate(songs []models.Song) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchSongs,
		Step:    len(songs),
		Total:   len(songs),
		Message: fmt.Sprintf("Found %d songs", len(songs)),
		Data:    songs,
	}
}

func fetchTabUpdate(step, total int, song models.Song) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchTab,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Fetching: %s - %s...", step, total, song.Artist, song.Title),
	}
}

func exportCompletedUpdate(step, total int, song models.Song, file string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportSong,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s (%s)", step, total, song.Title, file),
	}
}

func exportFailedUpdate(step, total int, song models.Song, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportSong,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, song.Title, err),
	}
}

func writeManifestUpdate(path string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WriteManifest,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Writing manifest to %s", path),
	}
}
