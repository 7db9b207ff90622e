// package formatter renders songs and their tabs to export formats (plain text, Markdown, JSON, YAML, CSV)
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/desertthunder/songtabs/internal/chords"
	"github.com/desertthunder/songtabs/internal/models"
	"github.com/desertthunder/songtabs/internal/shared"
	"gopkg.in/yaml.v3"
)

// Format names an export format.
type Format string

const (
	FormatText     Format = "txt"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
)

// Formats lists the formats accepted by [Export].
var Formats = []Format{FormatText, FormatMarkdown, FormatJSON, FormatYAML}

// ParseFormat resolves a format name, accepting common aliases (text, md, yml).
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "txt", "text", "":
		return FormatText, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: unsupported format %q", shared.ErrInvalidFlag, name)
}

// Valid reports whether f is one of [Formats].
func (f Format) Valid() bool {
	return slices.Contains(Formats, f)
}

// Ext returns the file extension for f, without the dot.
func (f Format) Ext() string {
	switch f {
	case FormatMarkdown:
		return "md"
	case FormatYAML:
		return "yaml"
	default:
		return string(f)
	}
}

// NewSongExport builds a [models.SongExport] with the tab text transposed by semitones.
func NewSongExport(song models.Song, tab models.Tab, videos []models.Video, semitones int) models.SongExport {
	if videos == nil {
		videos = []models.Video{}
	}
	if semitones != 0 {
		tab.Text = chords.TransposeTab(tab.Text, semitones)
	}
	return models.SongExport{Song: song, Tab: tab, Videos: videos, Transpose: semitones}
}

// Export renders export in the given format.
func Export(format Format, export models.SongExport) ([]byte, error) {
	switch format {
	case FormatText:
		return ExportToText(export)
	case FormatMarkdown:
		return ExportToMarkdown(export)
	case FormatJSON:
		return ExportToJSON(export)
	case FormatYAML:
		return ExportToYAML(export)
	}
	return nil, fmt.Errorf("%w: unsupported format %q", shared.ErrInvalidFlag, format)
}

// ExportToText renders a song as a plain text header followed by the tab.
func ExportToText(export models.SongExport) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "%s - %s\n", export.Song.Title, export.Song.Artist)
	if export.Transpose != 0 {
		fmt.Fprintf(&buf, "Transposed: %s\n", signed(export.Transpose))
	}
	buf.WriteString("\n")
	buf.WriteString(export.Tab.Text)
	if !strings.HasSuffix(export.Tab.Text, "\n") {
		buf.WriteString("\n")
	}

	if len(export.Videos) > 0 {
		buf.WriteString("\nVideos:\n")
		for _, v := range export.Videos {
			fmt.Fprintf(&buf, "  [%s] %s\n", v.VideoType, v.URL)
		}
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown renders a song as a Markdown document with the tab in a fenced block.
func ExportToMarkdown(export models.SongExport) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# %s\n\n", export.Song.Title)
	fmt.Fprintf(&buf, "**Artist**: %s\n", export.Song.Artist)
	if export.Transpose != 0 {
		fmt.Fprintf(&buf, "**Transposed**: %s semitones\n", signed(export.Transpose))
	}

	fence := "```"
	for strings.Contains(export.Tab.Text, fence) {
		fence += "`"
	}

	buf.WriteString("\n## Tab\n\n")
	buf.WriteString(fence + "\n")
	buf.WriteString(export.Tab.Text)
	if !strings.HasSuffix(export.Tab.Text, "\n") {
		buf.WriteString("\n")
	}
	buf.WriteString(fence + "\n")

	if len(export.Videos) > 0 {
		buf.WriteString("\n## Videos\n\n")
		for i, v := range export.Videos {
			label := v.VideoType
			if label == "" {
				label = "video " + strconv.Itoa(i+1)
			}
			fmt.Fprintf(&buf, "- [%s](%s)\n", label, v.URL)
		}
	}

	return buf.Bytes(), nil
}

// ExportToJSON renders a song as indented JSON.
func ExportToJSON(export models.SongExport) ([]byte, error) {
	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return append(data, '\n'), nil
}

// ExportToYAML renders a song as YAML; the tab text is emitted as a literal block.
func ExportToYAML(export models.SongExport) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)

	if err := enc.Encode(export); err != nil {
		return nil, fmt.Errorf("failed to marshal YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to flush YAML: %w", err)
	}
	return buf.Bytes(), nil
}

// SongsToCSV renders a song listing with columns: ID, Title, Artist.
func SongsToCSV(songs []models.Song) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"ID", "Title", "Artist"}); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, song := range songs {
		record := []string{strconv.FormatInt(song.ID, 10), song.Title, song.Artist}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// Filename returns the export file name for a song: <id>-<slug>.<ext>.
func Filename(song models.Song, format Format) string {
	slug := shared.Slugify(song.Title)
	if slug == "" {
		return fmt.Sprintf("%d.%s", song.ID, format.Ext())
	}
	return fmt.Sprintf("%d-%s.%s", song.ID, slug, format.Ext())
}

// WriteExport renders export into dir and returns the path written.
func WriteExport(export models.SongExport, format Format, dir string) (string, error) {
	data, err := Export(format, export)
	if err != nil {
		return "", err
	}

	if dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create directory: %w", err)
		}
	}

	path := filepath.Join(dir, Filename(export.Song, format))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}

	return path, nil
}

// FormatNames returns the accepted format names for help text.
func FormatNames() string {
	names := make([]string, 0, len(Formats))
	for _, f := range Formats {
		names = append(names, string(f))
	}
	slices.Sort(names)
	return strings.Join(names, ", ")
}

func signed(n int) string {
	if n > 0 {
		return "+" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
