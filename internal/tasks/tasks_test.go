package tasks

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/desertthunder/songtabs/internal/models"
	"github.com/desertthunder/songtabs/internal/repositories"
	"github.com/desertthunder/songtabs/internal/shared"
	tu "github.com/desertthunder/songtabs/internal/testing"
)

type memoryCache struct {
	mu     sync.Mutex
	tabs   map[int64]string
	songs  map[int64]models.Song
	puts   int
	getErr error
}

func newMemoryCache() *memoryCache {
	return &memoryCache{tabs: map[int64]string{}, songs: map[int64]models.Song{}}
}

func (c *memoryCache) Get(songID int64) (*models.CachedTab, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, c.getErr
	}
	text, ok := c.tabs[songID]
	if !ok {
		return nil, shared.ErrNotCached
	}
	song, ok := c.songs[songID]
	if !ok {
		song = models.Song{ID: songID}
	}
	return models.NewCachedTab(song, text), nil
}

func (c *memoryCache) Put(song models.Song, text string) (*models.CachedTab, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.puts++
	c.tabs[song.ID] = text
	c.songs[song.ID] = song
	return models.NewCachedTab(song, text), nil
}

func TestCollectSongs(t *testing.T) {
	t.Run("Walks Pages Until Short Page", func(t *testing.T) {
		svc := &tu.MockTabService{SongList: tu.SampleSongs(23)}
		engine := NewSongEngine(svc, nil)

		songs, err := engine.CollectSongs(context.Background(), nil, "", 10)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(songs) != 23 {
			t.Errorf("expected 23 songs, got %d", len(songs))
		}
		if svc.CallCount("Songs") != 3 {
			t.Errorf("expected 3 page requests, got %d", svc.CallCount("Songs"))
		}
	})

	t.Run("Exact Multiple Requests Trailing Empty Page", func(t *testing.T) {
		svc := &tu.MockTabService{SongList: tu.SampleSongs(20)}
		songs, err := NewSongEngine(svc, nil).CollectSongs(context.Background(), nil, "", 10)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(songs) != 20 || svc.CallCount("Songs") != 3 {
			t.Errorf("expected 20 songs over 3 requests, got %d over %d", len(songs), svc.CallCount("Songs"))
		}
	})

	t.Run("Uses Search When Query Set", func(t *testing.T) {
		svc := &tu.MockTabService{SongList: []models.Song{
			{ID: 1, Title: "Wonderwall"}, {ID: 2, Title: "Creep"}, {ID: 3, Title: "Wonder of You"},
		}}

		songs, err := NewSongEngine(svc, nil).CollectSongs(context.Background(), nil, "wonder", 0)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(songs) != 2 {
			t.Errorf("expected 2 matches, got %d", len(songs))
		}
		if svc.CallCount("Songs") != 0 || svc.CallCount("SearchSongs") != 1 {
			t.Errorf("unexpected calls %v", svc.Calls)
		}
	})

	t.Run("Reports Progress", func(t *testing.T) {
		svc := &tu.MockTabService{SongList: tu.SampleSongs(5)}
		prog := make(chan ProgressUpdate, 10)

		if _, err := NewSongEngine(svc, nil).CollectSongs(context.Background(), prog, "", 10); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		close(prog)

		var last ProgressUpdate
		for u := range prog {
			last = u
		}
		if last.Phase != FetchSongs || last.Total != 5 {
			t.Errorf("unexpected final update %+v", last)
		}
	})

	t.Run("Service Error", func(t *testing.T) {
		svc := &tu.MockTabService{Err: shared.ErrNotAuthenticated}
		if _, err := NewSongEngine(svc, nil).CollectSongs(context.Background(), nil, "", 10); !errors.Is(err, shared.ErrNotAuthenticated) {
			t.Errorf("expected ErrNotAuthenticated, got %v", err)
		}
	})

	t.Run("Nil Service", func(t *testing.T) {
		if _, err := NewSongEngine(nil, nil).CollectSongs(context.Background(), nil, "", 10); !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("expected ErrServiceUnavailable, got %v", err)
		}
	})
}

func TestFetchTab(t *testing.T) {
	song := models.Song{ID: 7, Title: "Creep", Artist: "Radiohead"}

	t.Run("Populates Cache", func(t *testing.T) {
		svc := &tu.MockTabService{Tabs: map[int64]string{7: "G  B  C  Cm"}}
		cache := newMemoryCache()
		engine := NewSongEngine(svc, cache)

		tab, cached, err := engine.FetchTab(context.Background(), song, true)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if cached {
			t.Error("expected first fetch to miss the cache")
		}
		if tab.Text != "G  B  C  Cm" || cache.tabs[7] != "G  B  C  Cm" {
			t.Errorf("unexpected tab %q / cache %q", tab.Text, cache.tabs[7])
		}

		_, cached, err = engine.FetchTab(context.Background(), song, true)
		if err != nil || !cached {
			t.Errorf("expected cache hit, got cached=%v err=%v", cached, err)
		}
		if svc.CallCount("Tab") != 1 {
			t.Errorf("expected 1 backend call, got %d", svc.CallCount("Tab"))
		}
	})

	t.Run("Bypass Cache Refreshes", func(t *testing.T) {
		svc := &tu.MockTabService{Tabs: map[int64]string{7: "new"}}
		cache := newMemoryCache()
		cache.tabs[7] = "old"

		tab, cached, err := NewSongEngine(svc, cache).FetchTab(context.Background(), song, false)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if cached || tab.Text != "new" || cache.tabs[7] != "new" {
			t.Errorf("expected refreshed text, got %q cached=%v cache=%q", tab.Text, cached, cache.tabs[7])
		}
	})

	t.Run("Cache Error Propagates", func(t *testing.T) {
		cache := newMemoryCache()
		cache.getErr = errors.New("disk on fire")

		_, _, err := NewSongEngine(&tu.MockTabService{}, cache).FetchTab(context.Background(), song, true)
		if err == nil || !strings.Contains(err.Error(), "disk on fire") {
			t.Errorf("expected cache error, got %v", err)
		}
	})

	t.Run("No Cache", func(t *testing.T) {
		svc := &tu.MockTabService{Tabs: map[int64]string{7: "Am"}}
		tab, cached, err := NewSongEngine(svc, nil).FetchTab(context.Background(), song, true)
		if err != nil || cached || tab.Text != "Am" {
			t.Errorf("unexpected result %v %v %v", tab, cached, err)
		}
	})
}

// newSQLiteCache returns a tab cache backed by an in-memory database.
func newSQLiteCache(t *testing.T) *repositories.TabCacheRepository {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	return repositories.NewTabCacheRepository(db, 0)
}

func TestFetchTabBareSong(t *testing.T) {
	song := models.Song{ID: 7, Title: "Wonderwall", Artist: "Oasis"}
	bare := models.Song{ID: 7}

	t.Run("Refresh Keeps Cached Metadata", func(t *testing.T) {
		svc := &tu.MockTabService{Tabs: map[int64]string{7: "Em7  G  Dsus4"}}
		cache := newSQLiteCache(t)
		if _, err := cache.Put(song, "old"); err != nil {
			t.Fatalf("failed to seed cache: %v", err)
		}

		tab, cached, err := NewSongEngine(svc, cache).FetchTab(context.Background(), bare, false)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if cached || tab.Text != "Em7  G  Dsus4" {
			t.Errorf("expected fresh text, got %q cached=%v", tab.Text, cached)
		}

		entry, err := cache.Get(7)
		if err != nil {
			t.Fatalf("failed to read cache: %v", err)
		}
		if entry.Song != song {
			t.Errorf("expected cached song %+v, got %+v", song, entry.Song)
		}
		if entry.Text != "Em7  G  Dsus4" {
			t.Errorf("expected refreshed text, got %q", entry.Text)
		}
	})

	t.Run("Cache Miss Keeps Cached Metadata", func(t *testing.T) {
		svc := &tu.MockTabService{Tabs: map[int64]string{7: "C"}}
		cache := newSQLiteCache(t)
		cache.Put(song, "C")
		cache.Delete(7)

		if _, _, err := NewSongEngine(svc, cache).FetchTab(context.Background(), bare, true); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		entry, err := cache.Get(7)
		if err != nil {
			t.Fatalf("failed to read cache: %v", err)
		}
		if entry.Song != bare {
			t.Errorf("expected untitled song %+v, got %+v", bare, entry.Song)
		}
	})

	t.Run("Load Uses Cached Metadata", func(t *testing.T) {
		svc := &tu.MockTabService{}
		cache := newSQLiteCache(t)
		if _, err := cache.Put(song, "Em7  G"); err != nil {
			t.Fatalf("failed to seed cache: %v", err)
		}

		export, err := NewSongEngine(svc, cache).LoadSong(context.Background(), bare, 0, true)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if export.Song != song {
			t.Errorf("expected song %+v, got %+v", song, export.Song)
		}
		if svc.CallCount("Tab") != 0 {
			t.Errorf("expected cache hit, got %d backend calls", svc.CallCount("Tab"))
		}
	})

	t.Run("Titled Song Wins", func(t *testing.T) {
		svc := &tu.MockTabService{Tabs: map[int64]string{7: "C"}}
		cache := newSQLiteCache(t)
		cache.Put(song, "C")

		renamed := models.Song{ID: 7, Title: "Wonderwall (Live)", Artist: "Oasis"}
		export, err := NewSongEngine(svc, cache).LoadSong(context.Background(), renamed, 0, false)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if export.Song != renamed {
			t.Errorf("expected song %+v, got %+v", renamed, export.Song)
		}
		if entry, _ := cache.Get(7); entry == nil || entry.Song != renamed {
			t.Errorf("expected cache to hold %+v, got %+v", renamed, entry)
		}
	})
}

func TestLoadSong(t *testing.T) {
	svc := &tu.MockTabService{
		Tabs:     map[int64]string{1: "Am  G  C\nHello world"},
		VideoMap: map[int64][]models.Video{1: {{ID: 9, VideoType: "lesson", URL: "https://example.com/v"}}},
	}
	cache := newMemoryCache()
	engine := NewSongEngine(svc, cache)

	export, err := engine.LoadSong(context.Background(), models.Song{ID: 1, Title: "x"}, 1, true)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if export.Tab.Text != "A#m  G#  C#\nHello world" {
		t.Errorf("unexpected transposed text %q", export.Tab.Text)
	}
	if len(export.Videos) != 1 || export.Transpose != 1 {
		t.Errorf("unexpected export %+v", export)
	}
	if cache.tabs[1] != "Am  G  C\nHello world" {
		t.Errorf("expected cache to hold untransposed text, got %q", cache.tabs[1])
	}
}

func TestPhaseString(t *testing.T) {
	tc := map[Phase]string{
		FetchSongs:    "fetch_songs",
		FetchTab:      "fetch_tab",
		ExportSong:    "export_song",
		WriteManifest: "write_manifest",
		Phase(99):     "",
	}
	for p, want := range tc {
		if p.String() != want {
			t.Errorf("Phase(%d).String() = %q, want %q", p, p.String(), want)
		}
	}
}
