// package services defines interface TabService for interacting with the tab backend
package services

import (
	"context"

	"github.com/desertthunder/songtabs/internal/models"
)

// TabService defines the operations the client needs from the tab backend.
type TabService interface {
	// Authenticate exchanges a Google ID token for a backend session and remembers the returned user.
	Authenticate(ctx context.Context, idToken string) (*models.User, error)

	// SetUser sets the user whose session token is sent with every request.
	SetUser(user *models.User)

	// User returns the current user, or nil.
	User() *models.User

	// Songs lists the user's songs for one page.
	Songs(ctx context.Context, page models.Page) ([]models.Song, error)

	// SearchSongs lists songs matching query for one page.
	SearchSongs(ctx context.Context, query string, page models.Page) ([]models.Song, error)

	// Tab fetches the chord chart for a song.
	Tab(ctx context.Context, songID int64) (*models.Tab, error)

	// Videos fetches the reference videos for a song.
	Videos(ctx context.Context, songID int64) ([]models.Video, error)

	// Name returns the name of the backend.
	Name() string
}
