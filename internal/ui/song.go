package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/songtabs/internal/chords"
	"github.com/desertthunder/songtabs/internal/models"
)

const (
	DefaultScrollSpeed = 20
	MinScrollSpeed     = 5
	ScrollSpeedStep    = 10

	// Auto-scroll moves scrollStepPx per tick; one terminal line is lineHeightPx.
	scrollStepPx = 0.5
	lineHeightPx = 16.0

	MinPanelWidth     = 20
	MaxPanelWidth     = 60
	DefaultPanelWidth = MinPanelWidth
	PanelStep         = 4
)

// SongState holds the song view: the transposed tab, auto-scroll and the video panel.
type SongState struct {
	song       *models.Song
	text       string
	loaded     bool
	transposer chords.Transposer
	viewport   viewport.Model

	scrolling bool
	speed     int
	scrollSeq int
	scrollAcc float64

	videos     []models.Video
	video      int
	videoOpen  bool
	panelWidth int

	width  int
	height int
}

func newSongState(speed int) *SongState {
	return &SongState{
		speed:      speed,
		panelWidth: DefaultPanelWidth,
		viewport:   viewport.New(0, 0),
	}
}

// load resets the view for song. Speed and panel width carry over between songs.
func (s *SongState) load(song models.Song) {
	s.song = &song
	s.text = ""
	s.loaded = false
	s.transposer.Reset()
	s.stopScrolling()
	s.videos = nil
	s.video = 0
	s.videoOpen = false
	s.viewport.SetContent("Loading tab...")
	s.viewport.GotoTop()
}

func (s *SongState) setTab(text string) {
	s.text = text
	s.loaded = true
	s.refresh()
	s.viewport.GotoTop()
}

// setVideos stores the song's videos and selects the first one.
func (s *SongState) setVideos(videos []models.Video) {
	s.videos = videos
	s.video = 0
}

func (s *SongState) transpose(semitones int) {
	if !s.loaded {
		return
	}
	s.text = s.transposer.Step(s.text, semitones)
	s.refresh()
}

func (s *SongState) refresh() {
	s.viewport.SetContent(s.text)
}

// toggleScrolling flips auto-scroll and reports whether it is now running.
func (s *SongState) toggleScrolling() bool {
	if s.scrolling {
		s.stopScrolling()
		return false
	}
	s.scrolling = true
	s.scrollSeq++
	return true
}

func (s *SongState) stopScrolling() {
	s.scrolling = false
	s.scrollSeq++
	s.scrollAcc = 0
}

func (s *SongState) faster() {
	s.speed += ScrollSpeedStep
}

func (s *SongState) slower() {
	s.speed = max(MinScrollSpeed, s.speed-ScrollSpeedStep)
}

// interval is the delay between scroll ticks at the current speed.
func (s *SongState) interval() time.Duration {
	ms := 3000 / max(0.1, float64(s.speed))
	return time.Duration(ms * float64(time.Millisecond))
}

// advance applies one scroll tick, moving down a line each time a full line height accumulates.
func (s *SongState) advance() {
	s.scrollAcc += scrollStepPx
	for s.scrollAcc >= lineHeightPx {
		s.scrollAcc -= lineHeightPx
		s.viewport.LineDown(1)
	}
}

func (s *SongState) toggleVideoPanel() {
	s.videoOpen = !s.videoOpen
	s.resize(s.width, s.height)
}

func (s *SongState) nextVideo() {
	if len(s.videos) == 0 {
		return
	}
	s.video = (s.video + 1) % len(s.videos)
}

func (s *SongState) selectedVideoURL() string {
	if s.video < 0 || s.video >= len(s.videos) {
		return ""
	}
	return s.videos[s.video].URL
}

// resizePanel changes the video panel width by delta columns within [MinPanelWidth, MaxPanelWidth].
func (s *SongState) resizePanel(delta int) {
	s.panelWidth = min(MaxPanelWidth, max(MinPanelWidth, s.panelWidth+delta))
	s.resize(s.width, s.height)
}

func (s *SongState) resize(width, height int) {
	s.width = width
	s.height = height

	w := width
	if s.videoOpen {
		w -= s.panelWidth + 2
	}
	s.viewport.Width = max(0, w)
	s.viewport.Height = max(0, height)
}

func (s *SongState) header() string {
	if s.song == nil {
		return ""
	}

	title := s.song.Title
	if s.song.Artist != "" {
		title += " - " + s.song.Artist
	}

	meta := []string{fmt.Sprintf("Transpose: %+d", s.transposer.Offset())}
	if s.scrolling {
		meta = append(meta, fmt.Sprintf("Scrolling (speed %d)", s.speed))
	} else {
		meta = append(meta, fmt.Sprintf("Speed %d", s.speed))
	}
	return styles.title.Render(title) + "\n" + styles.help.Render(strings.Join(meta, "  "))
}

func (s *SongState) renderPanel() string {
	var b strings.Builder
	b.WriteString(styles.ok.Render("Videos"))
	b.WriteString("\n\n")

	if len(s.videos) == 0 {
		b.WriteString(styles.warn.Render("No videos"))
	}
	for i, v := range s.videos {
		label := v.VideoType
		if label == "" {
			label = fmt.Sprintf("video %d", i+1)
		}
		if i == s.video {
			b.WriteString(styles.active.Render("> " + label))
		} else {
			b.WriteString("  " + label)
		}
		b.WriteString("\n")
	}
	if url := s.selectedVideoURL(); url != "" {
		b.WriteString("\n" + styles.help.Render(url))
	}

	return styles.panel.Width(s.panelWidth).Height(s.viewport.Height).Render(b.String())
}

func (s *SongState) render(help string) string {
	body := s.viewport.View()
	if s.videoOpen {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, s.renderPanel())
	}
	return fmt.Sprintf("%s\n\n%s\n%s", s.header(), body, help)
}
