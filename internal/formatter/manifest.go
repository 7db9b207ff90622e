package formatter

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// ExportManifest summarizes a bulk export run.
type ExportManifest struct {
	ExportedAt time.Time       `json:"exported_at"`
	Format     Format          `json:"format"`
	Transpose  int             `json:"transpose"`
	TotalSongs int             `json:"total_songs"`
	Successful int             `json:"successful"`
	Failed     int             `json:"failed"`
	Songs      []ManifestEntry `json:"songs"`
}

// ManifestEntry records the outcome for one song. File is set on success, Error on failure.
type ManifestEntry struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Artist string `json:"artist"`
	File   string `json:"file,omitempty"`
	Error  string `json:"error,omitempty"`
}

// WriteManifest writes m as indented JSON to path.
func WriteManifest(m ExportManifest, path string) error {
	if m.Songs == nil {
		m.Songs = []ManifestEntry{}
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}
