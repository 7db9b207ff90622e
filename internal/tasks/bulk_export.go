package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/desertthunder/songtabs/internal/formatter"
	"github.com/desertthunder/songtabs/internal/models"
	"github.com/desertthunder/songtabs/internal/shared"
	"golang.org/x/time/rate"
)

const (
	DefaultWorkers   = 5
	MaxWorkers       = 10
	DefaultRateLimit = 5.0
	ManifestName     = "manifest.json"
)

// BulkExportOpts contains configuration for bulk song exports.
type BulkExportOpts struct {
	Format     formatter.Format // Export format (default: txt)
	OutputDir  string           // Output directory (default: songtabs_export_{epoch})
	NumWorkers int              // Concurrent workers (default: 5, max: 10)
	RateLimit  float64          // Songs started per second (default: 5)
	Transpose  int              // Semitones applied to every tab
	Query      string           // Export only songs matching this search
	PageSize   int              // Listing page size (default: 10)
	UseCache   bool             // Read tabs through the cache
}

// SongExportResult is the outcome of exporting one song.
type SongExportResult struct {
	Song    models.Song
	File    string
	Success bool
	Error   error
}

// BulkExportResult summarizes a bulk export.
type BulkExportResult struct {
	TotalSongs        int
	SuccessfulExports int
	FailedExports     int
	OutputDirectory   string
	ManifestPath      string
	Results           []SongExportResult
}

func (o *BulkExportOpts) defaults() {
	if o.Format == "" {
		o.Format = formatter.FormatText
	}
	if o.OutputDir == "" {
		o.OutputDir = fmt.Sprintf("songtabs_export_%d", time.Now().Unix())
	}
	if o.NumWorkers <= 0 {
		o.NumWorkers = DefaultWorkers
	}
	if o.NumWorkers > MaxWorkers {
		o.NumWorkers = MaxWorkers
	}
	if o.RateLimit <= 0 {
		o.RateLimit = DefaultRateLimit
	}
}

// BulkExport exports every song in the library (or every match of opts.Query) concurrently
// with rate limiting and progress tracking.
//
// Songs that fail are recorded in the result and the manifest; they do not stop the export.
func (e *SongEngine) BulkExport(ctx context.Context, prog chan<- ProgressUpdate, opts BulkExportOpts) (*BulkExportResult, error) {
	opts.defaults()

	if !opts.Format.Valid() {
		return nil, fmt.Errorf("%w: unsupported format %q", shared.ErrInvalidFlag, opts.Format)
	}

	songs, err := e.CollectSongs(ctx, prog, opts.Query, opts.PageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list songs: %w", err)
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	result := &BulkExportResult{
		TotalSongs:      len(songs),
		OutputDirectory: opts.OutputDir,
		Results:         make([]SongExportResult, 0, len(songs)),
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)

	jobs := make(chan models.Song, len(songs))
	results := make(chan SongExportResult, len(songs))

	var wg sync.WaitGroup
	for range opts.NumWorkers {
		wg.Add(1)
		go e.exportWorker(ctx, &wg, jobs, results, opts)
	}

	go func() {
		defer close(jobs)
		for i, song := range songs {
			if err := limiter.Wait(ctx); err != nil {
				return
			}
			e.sendProgress(prog, fetchTabUpdate(i+1, len(songs), song))
			jobs <- song
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for res := range results {
		completed++
		result.Results = append(result.Results, res)

		if res.Success {
			result.SuccessfulExports++
			e.sendProgress(prog, exportCompletedUpdate(completed, len(songs), res.Song, filepath.Base(res.File)))
		} else {
			result.FailedExports++
			e.sendProgress(prog, exportFailedUpdate(completed, len(songs), res.Song, res.Error))
		}
	}

	slices.SortFunc(result.Results, func(a, b SongExportResult) int {
		switch {
		case a.Song.ID < b.Song.ID:
			return -1
		case a.Song.ID > b.Song.ID:
			return 1
		}
		return 0
	})

	manifestPath := filepath.Join(opts.OutputDir, ManifestName)
	e.sendProgress(prog, writeManifestUpdate(manifestPath))
	if err := formatter.WriteManifest(buildManifest(result, opts), manifestPath); err != nil {
		return result, fmt.Errorf("export completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = manifestPath

	if err := ctx.Err(); err != nil {
		return result, err
	}
	return result, nil
}

// exportWorker is a worker goroutine that exports songs from the jobs channel.
func (e *SongEngine) exportWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	jobs <-chan models.Song,
	results chan<- SongExportResult,
	opts BulkExportOpts,
) {
	defer wg.Done()

	for song := range jobs {
		if ctx.Err() != nil {
			return
		}
		results <- e.exportSingleSong(ctx, song, opts)
	}
}

// exportSingleSong loads one song and writes it in the requested format.
func (e *SongEngine) exportSingleSong(ctx context.Context, song models.Song, opts BulkExportOpts) SongExportResult {
	result := SongExportResult{Song: song}

	export, err := e.LoadSong(ctx, song, opts.Transpose, opts.UseCache)
	if err != nil {
		result.Error = err
		return result
	}

	path, err := formatter.WriteExport(export, opts.Format, opts.OutputDir)
	if err != nil {
		result.Error = fmt.Errorf("%s export failed: %w", opts.Format, err)
		return result
	}

	result.File = path
	result.Success = true
	return result
}

func buildManifest(result *BulkExportResult, opts BulkExportOpts) formatter.ExportManifest {
	m := formatter.ExportManifest{
		ExportedAt: time.Now().UTC(),
		Format:     opts.Format,
		Transpose:  opts.Transpose,
		TotalSongs: result.TotalSongs,
		Successful: result.SuccessfulExports,
		Failed:     result.FailedExports,
		Songs:      make([]formatter.ManifestEntry, 0, len(result.Results)),
	}

	for _, r := range result.Results {
		entry := formatter.ManifestEntry{ID: r.Song.ID, Title: r.Song.Title, Artist: r.Song.Artist}
		if r.Success {
			entry.File = filepath.Base(r.File)
		} else if r.Error != nil {
			entry.Error = r.Error.Error()
		}
		m.Songs = append(m.Songs, entry)
	}
	return m
}
