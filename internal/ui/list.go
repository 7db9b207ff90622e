package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/songtabs/internal/models"
)

var _ list.Item = songItem{}

// songItem wraps [models.Song] to implement [list.Item].
type songItem struct {
	song models.Song
}

func (i songItem) FilterValue() string { return i.song.Title }
func (i songItem) Title() string       { return i.song.Title }
func (i songItem) Description() string {
	if i.song.Artist == "" {
		return fmt.Sprintf("#%d", i.song.ID)
	}
	return i.song.Artist
}

// newSongList builds a list of songs with filtering and the list's own quit binding disabled.
func newSongList(title string, songs []models.Song, width, height int) list.Model {
	items := make([]list.Item, len(songs))
	for i, s := range songs {
		items[i] = songItem{song: s}
	}

	l := list.New(items, list.NewDefaultDelegate(), width, height)
	l.Title = title
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.KeyMap.Quit.SetEnabled(false)
	return l
}

// selectedSong returns the song under the cursor.
func selectedSong(l list.Model) (models.Song, bool) {
	item, ok := l.SelectedItem().(songItem)
	if !ok {
		return models.Song{}, false
	}
	return item.song, true
}
