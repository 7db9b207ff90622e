package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/desertthunder/songtabs/internal/chords"
	"github.com/desertthunder/songtabs/internal/formatter"
	"github.com/desertthunder/songtabs/internal/models"
	"github.com/desertthunder/songtabs/internal/shared"
	"github.com/urfave/cli/v3"
)

// parseSongID reads the positional song ID argument.
func parseSongID(cmd *cli.Command) (int64, error) {
	raw := strings.TrimSpace(cmd.StringArg("id"))
	if raw == "" {
		return 0, fmt.Errorf("%w: song ID is required", shared.ErrMissingArgument)
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: song ID must be a positive integer, got %q", shared.ErrInvalidArgument, raw)
	}
	return id, nil
}

// TabShow prints a song's tab transposed by --transpose semitones.
//
// Without --format only the tab text is printed; with it the song is rendered through the formatter
// along with its videos.
func (r *Runner) TabShow(ctx context.Context, cmd *cli.Command) error {
	id, err := parseSongID(cmd)
	if err != nil {
		return err
	}

	var format formatter.Format
	if name := cmd.String("format"); name != "" {
		if format, err = formatter.ParseFormat(name); err != nil {
			return err
		}
	}

	if err := r.requireUser(); err != nil {
		return err
	}

	semitones := cmd.Int("transpose")
	useCache := !cmd.Bool("no-cache")
	song := models.Song{ID: id}

	var data []byte
	if format == "" {
		tab, cached, err := r.engine.FetchTab(ctx, song, useCache)
		if err != nil {
			return err
		}
		r.logger.Debug("fetched tab", "song", id, "cached", cached)
		data = []byte(ensureNewline(chords.TransposeTab(tab.Text, semitones)))
	} else {
		export, err := r.engine.LoadSong(ctx, song, semitones, useCache)
		if err != nil {
			return err
		}
		if export.Song.Title == "" {
			export.Song.Title = fmt.Sprintf("Song #%d", id)
		}
		if data, err = formatter.Export(format, export); err != nil {
			return err
		}
	}

	if path := cmd.String("output"); path != "" {
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("failed to write file: %w", err)
		}
		r.logger.Info("tab written", "song", id, "path", path)
		return r.writePlain("✓ Tab written to %s\n", path)
	}

	if _, err := r.output.Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// Transpose transposes a local tab file, or stdin when no file is given.
func (r *Runner) Transpose(ctx context.Context, cmd *cli.Command) error {
	semitones := cmd.Int("semitones")

	var data []byte
	var err error
	if path := cmd.StringArg("file"); path != "" && path != "-" {
		data, err = os.ReadFile(path)
	} else {
		data, err = io.ReadAll(r.input)
	}
	if err != nil {
		return fmt.Errorf("failed to read tab: %w", err)
	}

	r.logger.Debug("transposing", "semitones", semitones, "bytes", len(data))

	if _, err := io.WriteString(r.output, chords.TransposeTab(string(data), semitones)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// Videos lists a song's reference videos and optionally opens one.
func (r *Runner) Videos(ctx context.Context, cmd *cli.Command) error {
	id, err := parseSongID(cmd)
	if err != nil {
		return err
	}
	if err := r.requireUser(); err != nil {
		return err
	}

	videos, err := r.tabs.Videos(ctx, id)
	if err != nil {
		return err
	}

	if n := cmd.Int("open"); n != 0 {
		if n < 1 || n > len(videos) {
			return fmt.Errorf("%w: --open must be between 1 and %d", shared.ErrInvalidFlag, len(videos))
		}
		url := videos[n-1].URL
		if err := r.openURL(url); err != nil {
			r.logger.Warnf("failed to open browser automatically %v", err)
			return r.writePlain("Please open this URL in your browser:\n%s\n", url)
		}
		return r.writePlain("→ Opened %s\n", url)
	}

	if cmd.Bool("json") {
		return r.writeJSON(videos, cmd.Bool("pretty"))
	}

	if len(videos) == 0 {
		return r.writePlain("No videos for song %d.\n", id)
	}

	r.writePlain("Found %d videos:\n\n", len(videos))
	for i, v := range videos {
		label := v.VideoType
		if label == "" {
			label = "video"
		}
		r.writePlain("%d. [%s] %s\n", i+1, label, v.URL)
	}
	return nil
}

func ensureNewline(s string) string {
	if s == "" || strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}
