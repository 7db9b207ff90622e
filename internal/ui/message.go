package ui

import (
	"github.com/desertthunder/songtabs/internal/models"
)

// songsFetchedMsg carries one page of songs, either the user's listing or search results.
type songsFetchedMsg struct {
	page  models.Page
	query string
	songs []models.Song
	err   error
}

// tabFetchedMsg carries the untransposed tab text for a song.
type tabFetchedMsg struct {
	songID int64
	text   string
	cached bool
	err    error
}

// videosFetchedMsg carries the reference videos for a song.
type videosFetchedMsg struct {
	songID int64
	videos []models.Video
	err    error
}

// scrollTickMsg advances auto-scroll. Ticks from an older seq are stale and dropped.
type scrollTickMsg struct {
	seq int
}

// browserOpenedMsg reports the outcome of opening a video URL.
type browserOpenedMsg struct {
	url string
	err error
}
