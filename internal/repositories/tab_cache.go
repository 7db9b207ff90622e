package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/songtabs/internal/models"
	"github.com/desertthunder/songtabs/internal/shared"
)

// TabCacheRepository keeps fetched tabs keyed by song ID.
//
// Text is stored exactly as the backend returned it; transposition is applied on read by callers.
type TabCacheRepository struct {
	db  DB
	ttl time.Duration
}

// NewTabCacheRepository creates a [TabCacheRepository]. A zero ttl keeps entries forever.
func NewTabCacheRepository(db DB, ttl time.Duration) *TabCacheRepository {
	return &TabCacheRepository{db: db, ttl: ttl}
}

// Put stores text for song, replacing any previous entry.
//
// An untitled song keeps the title and artist already stored for its ID.
func (r *TabCacheRepository) Put(song models.Song, text string) (*models.CachedTab, error) {
	tab := models.NewCachedTab(song, text)
	tab.SetID(shared.GenerateID())
	tab.FetchedAt = now()

	if err := tab.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO tabs (id, song_id, title, artist, text, fetched_at) VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(song_id) DO UPDATE SET
			title = CASE WHEN excluded.title = '' THEN tabs.title ELSE excluded.title END,
			artist = CASE WHEN excluded.title = '' THEN tabs.artist ELSE excluded.artist END,
			text = excluded.text, fetched_at = excluded.fetched_at
	`
	if _, err := r.db.Exec(query, tab.ID(), song.ID, song.Title, song.Artist, text, tab.FetchedAt); err != nil {
		return nil, fmt.Errorf("failed to cache tab: %w", err)
	}

	return tab, nil
}

// Get returns the cached tab for songID, or an error wrapping [shared.ErrNotCached] when absent or stale.
func (r *TabCacheRepository) Get(songID int64) (*models.CachedTab, error) {
	var (
		id        string
		title     string
		artist    string
		text      string
		fetchedAt time.Time
	)

	err := r.db.QueryRow(
		"SELECT id, title, artist, text, fetched_at FROM tabs WHERE song_id = ?", songID,
	).Scan(&id, &title, &artist, &text, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: song %d", shared.ErrNotCached, songID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query tab: %w", err)
	}

	if r.ttl > 0 && now().Sub(fetchedAt) > r.ttl {
		return nil, fmt.Errorf("%w: song %d is stale", shared.ErrNotCached, songID)
	}

	tab := &models.CachedTab{Song: models.Song{ID: songID, Title: title, Artist: artist}, Text: text, FetchedAt: fetchedAt}
	tab.SetID(id)
	return tab, nil
}

// Delete removes the cached tab for songID.
func (r *TabCacheRepository) Delete(songID int64) error {
	if _, err := r.db.Exec("DELETE FROM tabs WHERE song_id = ?", songID); err != nil {
		return fmt.Errorf("failed to delete tab: %w", err)
	}
	return nil
}

// Purge removes every cached tab and returns how many were removed.
func (r *TabCacheRepository) Purge() (int64, error) {
	res, err := r.db.Exec("DELETE FROM tabs")
	if err != nil {
		return 0, fmt.Errorf("failed to purge tabs: %w", err)
	}
	return res.RowsAffected()
}

// Count returns the number of cached tabs.
func (r *TabCacheRepository) Count() (int, error) {
	var n int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM tabs").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count tabs: %w", err)
	}
	return n, nil
}
