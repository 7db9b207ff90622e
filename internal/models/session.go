package models

import (
	"errors"
	"time"
)

// UserDataSession is the session name under which the signed-in [User] is stored.
const UserDataSession = "user_data"

// UserDataTTL is how long a sign-in is remembered.
const UserDataTTL = 7 * 24 * time.Hour

// Session is a named value that stops being valid at ExpiresAt.
type Session struct {
	id        string
	Name      string
	Value     string
	ExpiresAt time.Time
	createdAt time.Time
}

// NewSession creates a session named name holding value for ttl from now.
func NewSession(name, value string, ttl time.Duration) *Session {
	now := time.Now().UTC()
	return &Session{Name: name, Value: value, ExpiresAt: now.Add(ttl), createdAt: now}
}

func (s *Session) ID() string               { return s.id }
func (s *Session) SetID(id string)          { s.id = id }
func (s *Session) CreatedAt() time.Time     { return s.createdAt }
func (s *Session) SetCreatedAt(t time.Time) { s.createdAt = t }

// Expired reports whether the session is no longer valid at now.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

func (s *Session) Validate() error {
	if s.Name == "" {
		return errors.New("session name is required")
	}
	if s.ExpiresAt.IsZero() {
		return errors.New("session expiry is required")
	}
	return nil
}

// CachedTab is a tab kept locally, always in its original key.
type CachedTab struct {
	id        string
	Song      Song
	Text      string
	FetchedAt time.Time
}

// NewCachedTab creates a cache entry for song fetched now.
func NewCachedTab(song Song, text string) *CachedTab {
	return &CachedTab{Song: song, Text: text, FetchedAt: time.Now().UTC()}
}

func (c *CachedTab) ID() string           { return c.id }
func (c *CachedTab) SetID(id string)      { c.id = id }
func (c *CachedTab) CreatedAt() time.Time { return c.FetchedAt }

func (c *CachedTab) Validate() error {
	if c.Song.ID <= 0 {
		return errors.New("song id must be positive")
	}
	return nil
}
