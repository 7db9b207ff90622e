// package tasks implements library operations against the tab backend.
//
// The core abstraction is SongEngine, which pages through song listings, loads tabs through the cache,
// and runs bulk exports. Operations emit progress updates via channels for non-blocking status reporting.
package tasks

import (
	"context"
	"errors"
	"fmt"

	"github.com/desertthunder/songtabs/internal/formatter"
	"github.com/desertthunder/songtabs/internal/models"
	"github.com/desertthunder/songtabs/internal/services"
	"github.com/desertthunder/songtabs/internal/shared"
)

// TabCacher stores untransposed tab text by song. [repositories.TabCacheRepository] implements it.
type TabCacher interface {
	Get(songID int64) (*models.CachedTab, error)
	Put(song models.Song, text string) (*models.CachedTab, error)
}

// SongEngine runs multi-request operations against a [services.TabService].
type SongEngine struct {
	svc   services.TabService
	cache TabCacher
}

// NewSongEngine creates a new SongEngine. cache may be nil.
func NewSongEngine(svc services.TabService, cache TabCacher) *SongEngine {
	return &SongEngine{svc: svc, cache: cache}
}

// sendProgress sends a progress update through the channel without blocking.
func (e *SongEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// CollectSongs walks every page of the listing (or of the search results when query is set)
// until a page comes back shorter than pageSize.
func (e *SongEngine) CollectSongs(ctx context.Context, progress chan<- ProgressUpdate, query string, pageSize int) ([]models.Song, error) {
	if e.svc == nil {
		return nil, fmt.Errorf("%w: tab service not initialized", shared.ErrServiceUnavailable)
	}

	var all []models.Song
	page := models.NewPage(pageSize)

	for {
		if err := ctx.Err(); err != nil {
			return all, err
		}

		e.sendProgress(progress, fetchPageUpdate(page, len(all)))

		var songs []models.Song
		var err error
		if query != "" {
			songs, err = e.svc.SearchSongs(ctx, query, page)
		} else {
			songs, err = e.svc.Songs(ctx, page)
		}
		if err != nil {
			return all, err
		}

		all = append(all, songs...)
		if !page.HasNext(len(songs)) {
			break
		}
		page = page.Next()
	}

	e.sendProgress(progress, foundSongsUpdate(all))
	return all, nil
}

// FetchTab returns the untransposed tab for song, reading through the cache when useCache is set.
//
// The second return value reports whether the text came from the cache. Cache write failures are ignored.
func (e *SongEngine) FetchTab(ctx context.Context, song models.Song, useCache bool) (*models.Tab, bool, error) {
	tab, _, cached, err := e.fetchTab(ctx, song, useCache)
	return tab, cached, err
}

// fetchTab loads the tab for song and resolves its metadata.
//
// A song without a title is treated as a bare ID: its title and artist are taken from the cache entry
// when one exists, and the entry's metadata is never replaced by the bare song.
func (e *SongEngine) fetchTab(ctx context.Context, song models.Song, useCache bool) (*models.Tab, models.Song, bool, error) {
	if e.svc == nil {
		return nil, song, false, fmt.Errorf("%w: tab service not initialized", shared.ErrServiceUnavailable)
	}

	if e.cache != nil {
		cached, err := e.cache.Get(song.ID)
		switch {
		case err == nil:
			if song.Title == "" {
				song = cached.Song
			}
			if useCache {
				return &models.Tab{Text: cached.Text}, song, true, nil
			}
		case useCache && !errors.Is(err, shared.ErrNotCached):
			return nil, song, false, err
		}
	}

	tab, err := e.svc.Tab(ctx, song.ID)
	if err != nil {
		return nil, song, false, err
	}

	if e.cache != nil {
		_, _ = e.cache.Put(song, tab.Text)
	}

	return tab, song, false, nil
}

// LoadSong fetches the tab and videos for song and returns them transposed by semitones.
//
// When song has no title, the exported song carries whatever metadata the cache holds for its ID.
func (e *SongEngine) LoadSong(ctx context.Context, song models.Song, semitones int, useCache bool) (models.SongExport, error) {
	tab, song, _, err := e.fetchTab(ctx, song, useCache)
	if err != nil {
		return models.SongExport{}, err
	}

	videos, err := e.svc.Videos(ctx, song.ID)
	if err != nil {
		return models.SongExport{}, err
	}

	return formatter.NewSongExport(song, *tab, videos, semitones), nil
}
