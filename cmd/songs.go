package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/songtabs/internal/formatter"
	"github.com/desertthunder/songtabs/internal/models"
	"github.com/desertthunder/songtabs/internal/shared"
	"github.com/desertthunder/songtabs/internal/tasks"
	"github.com/urfave/cli/v3"
)

// pageFromFlags builds a page from --limit/--offset, falling back to the configured page size.
func (r *Runner) pageFromFlags(cmd *cli.Command) models.Page {
	limit := cmd.Int("limit")
	if limit <= 0 {
		limit = r.config.Display.PageSize
	}
	page := models.NewPage(limit)
	page.Offset = max(0, cmd.Int("offset"))
	return page
}

// SongsList lists one page of the signed-in user's songs.
func (r *Runner) SongsList(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireUser(); err != nil {
		return err
	}

	page := r.pageFromFlags(cmd)
	r.logger.Debug("listing songs", "limit", page.Limit, "offset", page.Offset)

	songs, err := r.tabs.Songs(ctx, page)
	if err != nil {
		return err
	}

	return r.printSongs(cmd, songs, page, "songs list")
}

// SongsSearch searches the signed-in user's songs by title.
func (r *Runner) SongsSearch(ctx context.Context, cmd *cli.Command) error {
	query := strings.TrimSpace(cmd.StringArg("query"))
	if query == "" {
		return fmt.Errorf("%w: query is required", shared.ErrMissingArgument)
	}
	if err := r.requireUser(); err != nil {
		return err
	}

	page := r.pageFromFlags(cmd)
	r.logger.Debug("searching songs", "query", query, "limit", page.Limit, "offset", page.Offset)

	songs, err := r.tabs.SearchSongs(ctx, query, page)
	if err != nil {
		return err
	}

	return r.printSongs(cmd, songs, page, fmt.Sprintf("songs search %q", query))
}

func (r *Runner) printSongs(cmd *cli.Command, songs []models.Song, page models.Page, again string) error {
	switch {
	case cmd.Bool("json"):
		return r.writeJSON(songs, cmd.Bool("pretty"))
	case cmd.Bool("csv"):
		data, err := formatter.SongsToCSV(songs)
		if err != nil {
			return err
		}
		_, err = r.output.Write(data)
		return err
	}

	if len(songs) == 0 {
		return r.writePlain("No songs found.\n")
	}

	r.writePlain("Page %d: %d songs\n\n", page.Number(), len(songs))
	for i, s := range songs {
		r.writePlain("%d. %s\n", page.Offset+i+1, s.Title)
		if s.Artist != "" {
			r.writePlain("   Artist: %s\n", s.Artist)
		}
		r.writePlain("   ID: %d\n", s.ID)
	}

	if page.HasNext(len(songs)) {
		next := page.Next()
		r.writePlain("\nMore: songtabs %s --limit %d --offset %d\n", again, next.Limit, next.Offset)
	}
	return nil
}

// SongsExport writes every song's tab and videos to files with a manifest.
func (r *Runner) SongsExport(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}
	if err := r.requireUser(); err != nil {
		return err
	}

	opts := tasks.BulkExportOpts{
		Format:     format,
		OutputDir:  cmd.String("out"),
		NumWorkers: cmd.Int("workers"),
		RateLimit:  cmd.Float("rate"),
		Transpose:  cmd.Int("transpose"),
		Query:      strings.TrimSpace(cmd.String("query")),
		PageSize:   r.config.Display.PageSize,
		UseCache:   !cmd.Bool("no-cache"),
	}

	r.logger.Info("starting export", "format", format, "workers", opts.NumWorkers, "transpose", opts.Transpose)
	r.writePlain("Exporting songs as %s...\n\n", format)

	progressCh := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			switch update.Phase {
			case tasks.FetchSongs:
				r.writePlain("📥 %s\n", update.Message)
			case tasks.FetchTab:
				r.writePlain("   %s\n", update.Message)
			case tasks.ExportSong:
				r.writePlain("   [%d/%d] %s\n", update.Step, update.Total, update.Message)
			case tasks.WriteManifest:
				r.writePlain("\n📝 %s\n", update.Message)
			}
		}
	}()

	result, err := r.engine.BulkExport(ctx, progressCh, opts)
	close(progressCh)
	<-done

	if err != nil && result == nil {
		return err
	}

	r.writePlain("\n")
	r.writePlainHeader("Export Complete!")
	r.writePlain("Directory: %s\n", result.OutputDirectory)
	r.writePlain("Exported: %d/%d\n", result.SuccessfulExports, result.TotalSongs)
	if result.ManifestPath != "" {
		r.writePlain("Manifest: %s\n", result.ManifestPath)
	}

	if result.FailedExports > 0 {
		r.writePlain("\nFailed to export %d songs:\n", result.FailedExports)
		for _, res := range result.Results {
			if !res.Success {
				r.writePlain("  - %s (#%d): %v\n", res.Song.Title, res.Song.ID, res.Error)
			}
		}
	}

	return err
}
