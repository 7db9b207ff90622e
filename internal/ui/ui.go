package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/songtabs/internal/models"
	"github.com/desertthunder/songtabs/internal/services"
	"github.com/desertthunder/songtabs/internal/shared"
	"github.com/desertthunder/songtabs/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	SongListView ViewState = iota
	SearchInputView
	SearchResultsView
	SongView
)

func (v ViewState) String() string {
	switch v {
	case SongListView:
		return "songs"
	case SearchInputView:
		return "search"
	case SearchResultsView:
		return "results"
	case SongView:
		return "song"
	default:
		return ""
	}
}

// Options configures a [Model].
type Options struct {
	PageSize    int                    // Songs per page (default: 10)
	ScrollSpeed int                    // Initial auto-scroll speed (default: 20)
	Logger      *log.Logger            // Logger; the TUI owns the terminal so this should write to a file
	OpenURL     func(url string) error // Opens a video URL (default: shared.OpenBrowser)
}

// Model represents the TUI application state.
type Model struct {
	ctx    context.Context
	view   ViewState
	svc    services.TabService
	engine *tasks.SongEngine
	logger *log.Logger
	width  int
	height int
	help   help.Model
	keys   keyMap

	songList  list.Model
	songsPage models.Page
	songCount int

	searchInput  textinput.Model
	query        string
	results      list.Model
	resultsPage  models.Page
	resultsCount int

	loading bool
	status  string
	err     error

	song    *SongState
	origin  ViewState
	openURL func(string) error
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, svc services.TabService, engine *tasks.SongEngine, opts Options) *Model {
	if opts.PageSize <= 0 {
		opts.PageSize = models.DefaultPageSize
	}
	if opts.ScrollSpeed <= 0 {
		opts.ScrollSpeed = DefaultScrollSpeed
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.OpenURL == nil {
		opts.OpenURL = shared.OpenBrowser
	}

	input := textinput.New()
	input.Placeholder = "Search songs..."
	input.CharLimit = 200

	m := &Model{
		ctx:         ctx,
		view:        SongListView,
		svc:         svc,
		engine:      engine,
		logger:      opts.Logger,
		help:        help.New(),
		keys:        newKeyMap(),
		songsPage:   models.NewPage(opts.PageSize),
		resultsPage: models.NewPage(opts.PageSize),
		searchInput: input,
		openURL:     opts.OpenURL,
	}
	m.song = newSongState(opts.ScrollSpeed)
	m.songList = newSongList("Your Songs", nil, 0, 0)
	m.results = newSongList("Search Results", nil, 0, 0)
	return m
}

// CurrentView returns the active view.
func (m *Model) CurrentView() ViewState {
	return m.view
}

// Init initializes the TUI by fetching the first page of the user's songs.
func (m *Model) Init() tea.Cmd {
	m.loading = true
	return m.fetchSongs(m.songsPage, "")
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.songList.SetSize(m.listSize())
		m.results.SetSize(m.listSize())
		m.song.resize(msg.Width, max(0, msg.Height-6))
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case SongListView:
			return m.handleSongListKeys(msg)
		case SearchInputView:
			return m.handleSearchInputKeys(msg)
		case SearchResultsView:
			return m.handleResultsKeys(msg)
		case SongView:
			return m.handleSongKeys(msg)
		}

	case songsFetchedMsg:
		return m.handleSongsFetched(msg)

	case tabFetchedMsg:
		if m.song.song == nil || msg.songID != m.song.song.ID {
			return m, nil
		}
		if msg.err != nil {
			m.logger.Error("failed to fetch tab", "song", msg.songID, "error", msg.err)
			m.status = "failed to fetch tab"
			return m, nil
		}
		m.song.setTab(msg.text)
		if msg.cached {
			m.status = "loaded from cache"
		}
		return m, nil

	case videosFetchedMsg:
		if m.song.song == nil || msg.songID != m.song.song.ID {
			return m, nil
		}
		if msg.err != nil {
			m.logger.Warn("failed to fetch videos", "song", msg.songID, "error", msg.err)
			m.song.setVideos(nil)
			return m, nil
		}
		m.song.setVideos(msg.videos)
		return m, nil

	case scrollTickMsg:
		if m.view != SongView || !m.song.scrolling || msg.seq != m.song.scrollSeq {
			return m, nil
		}
		m.song.advance()
		return m, m.scrollTick()

	case browserOpenedMsg:
		if msg.err != nil {
			m.logger.Warn("failed to open browser", "url", msg.url, "error", msg.err)
			m.status = "could not open browser: " + msg.url
		} else {
			m.status = "opened " + msg.url
		}
		return m, nil
	}

	return m.updateActive(msg)
}

func (m *Model) handleSongsFetched(msg songsFetchedMsg) (tea.Model, tea.Cmd) {
	m.loading = false
	if msg.err != nil {
		m.logger.Error("failed to fetch songs", "query", msg.query, "error", msg.err)
		if msg.query != "" {
			m.status = "failed to fetch search results"
		} else {
			m.status = "Failed to fetch songs"
		}
		m.err = msg.err
		return m, nil
	}

	m.err = nil
	m.status = ""
	w, h := m.listSize()
	if msg.query == "" {
		m.songsPage = msg.page
		m.songCount = len(msg.songs)
		m.songList = newSongList(fmt.Sprintf("Your Songs (page %d)", msg.page.Number()), msg.songs, w, h)
		return m, nil
	}

	m.query = msg.query
	m.resultsPage = msg.page
	m.resultsCount = len(msg.songs)
	m.results = newSongList(fmt.Sprintf("Results for %q (page %d)", msg.query, msg.page.Number()), msg.songs, w, h)
	m.view = SearchResultsView
	return m, nil
}

func (m *Model) listSize() (int, int) {
	return max(0, m.width-4), max(0, m.height-6)
}

func (m *Model) handleSongListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "enter":
		if song, ok := selectedSong(m.songList); ok {
			return m, m.openSong(song, SongListView)
		}
		return m, nil
	case "n":
		if m.songsPage.HasNext(m.songCount) && !m.loading {
			m.loading = true
			return m, m.fetchSongs(m.songsPage.Next(), "")
		}
		return m, nil
	case "p":
		if m.songsPage.HasPrev() && !m.loading {
			m.loading = true
			return m, m.fetchSongs(m.songsPage.Prev(), "")
		}
		return m, nil
	case "r":
		m.loading = true
		return m, m.fetchSongs(m.songsPage, "")
	case "/":
		m.view = SearchInputView
		m.searchInput.SetValue("")
		return m, m.searchInput.Focus()
	}

	var cmd tea.Cmd
	m.songList, cmd = m.songList.Update(msg)
	return m, cmd
}

func (m *Model) handleSearchInputKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.searchInput.Blur()
		m.view = SongListView
		return m, nil
	case "enter":
		query := strings.TrimSpace(m.searchInput.Value())
		if query == "" {
			return m, nil
		}
		m.searchInput.Blur()
		m.loading = true
		return m, m.fetchSongs(models.NewPage(m.resultsPage.Limit), query)
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

func (m *Model) handleResultsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = SongListView
		return m, nil
	case "enter":
		if song, ok := selectedSong(m.results); ok {
			return m, m.openSong(song, SearchResultsView)
		}
		return m, nil
	case "n":
		if m.resultsPage.HasNext(m.resultsCount) && !m.loading {
			m.loading = true
			return m, m.fetchSongs(m.resultsPage.Next(), m.query)
		}
		return m, nil
	case "p":
		if m.resultsPage.HasPrev() && !m.loading {
			m.loading = true
			return m, m.fetchSongs(m.resultsPage.Prev(), m.query)
		}
		return m, nil
	case "/":
		m.view = SearchInputView
		m.searchInput.SetValue(m.query)
		return m, m.searchInput.Focus()
	}

	var cmd tea.Cmd
	m.results, cmd = m.results.Update(msg)
	return m, cmd
}

func (m *Model) handleSongKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := m.song

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		s.stopScrolling()
		m.view = m.origin
		m.status = ""
		return m, nil
	case "+", "=":
		s.transpose(1)
		return m, nil
	case "-", "_":
		s.transpose(-1)
		return m, nil
	case "s":
		if s.toggleScrolling() {
			return m, m.scrollTick()
		}
		return m, nil
	case "]":
		s.faster()
		if s.scrolling {
			return m, m.restartScroll()
		}
		return m, nil
	case "[":
		s.slower()
		if s.scrolling {
			return m, m.restartScroll()
		}
		return m, nil
	case "v":
		s.toggleVideoPanel()
		return m, nil
	case "tab":
		if s.videoOpen {
			s.nextVideo()
		}
		return m, nil
	case "o":
		if url := s.selectedVideoURL(); url != "" && s.videoOpen {
			return m, m.openVideo(url)
		}
		return m, nil
	case "<":
		if s.videoOpen {
			s.resizePanel(PanelStep)
		}
		return m, nil
	case ">":
		if s.videoOpen {
			s.resizePanel(-PanelStep)
		}
		return m, nil
	}

	var cmd tea.Cmd
	s.viewport, cmd = s.viewport.Update(msg)
	return m, cmd
}

func (m *Model) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case SongListView:
		m.songList, cmd = m.songList.Update(msg)
	case SearchInputView:
		m.searchInput, cmd = m.searchInput.Update(msg)
	case SearchResultsView:
		m.results, cmd = m.results.Update(msg)
	case SongView:
		m.song.viewport, cmd = m.song.viewport.Update(msg)
	}
	return m, cmd
}

// openSong switches to the song view and starts loading its tab and videos.
func (m *Model) openSong(song models.Song, origin ViewState) tea.Cmd {
	m.origin = origin
	m.view = SongView
	m.status = ""
	m.song.load(song)
	return tea.Batch(m.fetchTab(song), m.fetchVideos(song))
}

func (m *Model) fetchSongs(page models.Page, query string) tea.Cmd {
	ctx := m.ctx
	svc := m.svc
	return func() tea.Msg {
		var songs []models.Song
		var err error
		if query != "" {
			songs, err = svc.SearchSongs(ctx, query, page)
		} else {
			songs, err = svc.Songs(ctx, page)
		}
		return songsFetchedMsg{page: page, query: query, songs: songs, err: err}
	}
}

func (m *Model) fetchTab(song models.Song) tea.Cmd {
	ctx := m.ctx
	engine := m.engine
	return func() tea.Msg {
		tab, cached, err := engine.FetchTab(ctx, song, true)
		if err != nil {
			return tabFetchedMsg{songID: song.ID, err: err}
		}
		return tabFetchedMsg{songID: song.ID, text: tab.Text, cached: cached}
	}
}

func (m *Model) fetchVideos(song models.Song) tea.Cmd {
	ctx := m.ctx
	svc := m.svc
	return func() tea.Msg {
		videos, err := svc.Videos(ctx, song.ID)
		return videosFetchedMsg{songID: song.ID, videos: videos, err: err}
	}
}

func (m *Model) scrollTick() tea.Cmd {
	seq := m.song.scrollSeq
	return tea.Tick(m.song.interval(), func(time.Time) tea.Msg {
		return scrollTickMsg{seq: seq}
	})
}

// restartScroll invalidates the pending tick and schedules one at the new interval.
func (m *Model) restartScroll() tea.Cmd {
	m.song.scrollSeq++
	return m.scrollTick()
}

func (m *Model) openVideo(url string) tea.Cmd {
	open := m.openURL
	return func() tea.Msg {
		return browserOpenedMsg{url: url, err: open(url)}
	}
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	var body string
	switch m.view {
	case SongListView:
		body = m.renderSongList()
	case SearchInputView:
		body = m.renderSearchInput()
	case SearchResultsView:
		body = m.renderResults()
	case SongView:
		body = m.renderSong()
	}

	return body + "\n" + m.renderStatus()
}

func (m *Model) renderStatus() string {
	switch {
	case m.loading:
		return styles.help.Render("Loading...")
	case m.err != nil && m.status != "":
		return styles.err.Render(m.status)
	case m.status != "":
		return styles.help.Render(m.status)
	}
	return ""
}

func (m *Model) renderSongList() string {
	pager := pagerLine(m.songsPage, m.songCount)
	return fmt.Sprintf("%s\n%s\n%s", m.songList.View(), pager, m.help.ShortHelpView(m.keys.listHelp()))
}

func (m *Model) renderSearchInput() string {
	title := styles.title.Render("Search")
	return fmt.Sprintf("%s\n%s\n\n%s", title, m.searchInput.View(), m.help.ShortHelpView([]key.Binding{m.keys.enter, m.keys.back}))
}

func (m *Model) renderResults() string {
	pager := pagerLine(m.resultsPage, m.resultsCount)
	return fmt.Sprintf("%s\n%s\n%s", m.results.View(), pager, m.help.ShortHelpView(m.keys.listHelp()))
}

func (m *Model) renderSong() string {
	return m.song.render(m.help.ShortHelpView(m.keys.songHelp(m.song.videoOpen)))
}

// pagerLine renders "Page N" with the available directions.
func pagerLine(page models.Page, count int) string {
	parts := []string{fmt.Sprintf("Page %d", page.Number())}
	if page.HasPrev() {
		parts = append(parts, "← p")
	}
	if page.HasNext(count) {
		parts = append(parts, "n →")
	}
	return styles.help.Render(strings.Join(parts, "  "))
}

// Transpose returns the net semitone offset of the open song.
func (m *Model) Transpose() int {
	return m.song.transposer.Offset()
}
