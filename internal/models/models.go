// package models defines the data model for the songtabs client
package models

import (
	"time"
)

// Model defines the base interface for persistent models.
type Model interface {
	ID() string           // ID returns the unique identifier for this model
	CreatedAt() time.Time // CreatedAt returns when this model was created
	Validate() error      // Validate checks if the model's data is valid and returns an error if not
}

// Song is a song record as listed by the backend.
type Song struct {
	ID     int64  `json:"id" yaml:"id"`
	Title  string `json:"title" yaml:"title"`
	Artist string `json:"artist" yaml:"artist"`
}

// Tab holds the chord chart text for a song.
type Tab struct {
	Text string `json:"text" yaml:"text"`
}

// Video is a reference video for a song; VideoType labels it ("lesson", "live", ...).
type Video struct {
	ID        int64  `json:"id" yaml:"id"`
	VideoType string `json:"video_type" yaml:"video_type"`
	URL       string `json:"url" yaml:"url"`
}

// User is the signed-in user as returned by the backend's Google auth exchange.
type User struct {
	ID         int64  `json:"id,omitempty"`
	Name       string `json:"name"`
	Email      string `json:"email,omitempty"`
	Picture    string `json:"picture,omitempty"`
	SessionJWT string `json:"session_jwt"`
}

// Authenticated reports whether u carries a session token.
func (u *User) Authenticated() bool {
	return u != nil && u.SessionJWT != ""
}

// SongExport bundles a song with its tab and videos for export.
//
// Transpose records the semitone offset already applied to Tab.Text.
type SongExport struct {
	Song      Song    `json:"song" yaml:"song"`
	Tab       Tab     `json:"tab" yaml:"tab"`
	Videos    []Video `json:"videos" yaml:"videos"`
	Transpose int     `json:"transpose" yaml:"transpose"`
}
