// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/desertthunder/songtabs/internal/models"
)

// MockTabService is a test double for [services.TabService].
//
// Zero-value fields produce empty results; set Err to make every call fail.
type MockTabService struct {
	mu sync.Mutex

	SongList []models.Song
	Tabs     map[int64]string
	VideoMap map[int64][]models.Video
	Err      error

	user  *models.User
	Calls []string
}

func (m *MockTabService) record(call string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, call)
}

func (m *MockTabService) Authenticate(ctx context.Context, idToken string) (*models.User, error) {
	m.record("Authenticate")
	if m.Err != nil {
		return nil, m.Err
	}
	user := &models.User{Name: "Test User", Email: "test@example.com", SessionJWT: "jwt-" + idToken}
	m.SetUser(user)
	return user, nil
}

func (m *MockTabService) SetUser(user *models.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.user = user
}

func (m *MockTabService) User() *models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user
}

func (m *MockTabService) Songs(ctx context.Context, page models.Page) ([]models.Song, error) {
	m.record("Songs")
	if m.Err != nil {
		return nil, m.Err
	}
	return window(m.SongList, page), nil
}

func (m *MockTabService) SearchSongs(ctx context.Context, query string, page models.Page) ([]models.Song, error) {
	m.record("SearchSongs")
	if m.Err != nil {
		return nil, m.Err
	}
	var matches []models.Song
	for _, s := range m.SongList {
		if strings.Contains(strings.ToLower(s.Title), strings.ToLower(query)) {
			matches = append(matches, s)
		}
	}
	return window(matches, page), nil
}

func (m *MockTabService) Tab(ctx context.Context, songID int64) (*models.Tab, error) {
	m.record("Tab")
	if m.Err != nil {
		return nil, m.Err
	}
	text, ok := m.Tabs[songID]
	if !ok {
		return nil, errors.New("tab not found")
	}
	return &models.Tab{Text: text}, nil
}

func (m *MockTabService) Videos(ctx context.Context, songID int64) ([]models.Video, error) {
	m.record("Videos")
	if m.Err != nil {
		return nil, m.Err
	}
	videos := m.VideoMap[songID]
	if videos == nil {
		videos = []models.Video{}
	}
	return videos, nil
}

func (m *MockTabService) Name() string { return "mock" }

// CallCount returns how many times the named method was called.
func (m *MockTabService) CallCount(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.Calls {
		if c == name {
			n++
		}
	}
	return n
}

func window(songs []models.Song, page models.Page) []models.Song {
	if page.Offset >= len(songs) {
		return []models.Song{}
	}
	end := min(len(songs), page.Offset+page.Limit)
	return songs[page.Offset:end]
}

// SampleSongs returns n songs with sequential IDs starting at 1.
func SampleSongs(n int) []models.Song {
	songs := make([]models.Song, n)
	for i := range songs {
		songs[i] = models.Song{ID: int64(i + 1), Title: fmt.Sprintf("Song %d", i+1), Artist: "Artist"}
	}
	return songs
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		t.Errorf("Directory does not exist: %s", path)
		return
	}
	if !info.IsDir() {
		t.Errorf("Path is not a directory: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
