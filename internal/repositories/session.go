package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/songtabs/internal/models"
	"github.com/desertthunder/songtabs/internal/shared"
)

// SessionRepository persists [models.Session] values by name.
type SessionRepository struct {
	db DB
}

// NewSessionRepository creates a new [SessionRepository] with the given database connection
func NewSessionRepository(db DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Save stores value under name for ttl, replacing any previous value.
func (r *SessionRepository) Save(name, value string, ttl time.Duration) (*models.Session, error) {
	session := models.NewSession(name, value, ttl)
	session.SetID(shared.GenerateID())
	session.SetCreatedAt(now())
	session.ExpiresAt = now().Add(ttl)

	if err := session.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO sessions (id, name, value, expires_at, created_at) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET value = excluded.value, expires_at = excluded.expires_at, created_at = excluded.created_at
	`
	_, err := r.db.Exec(query, session.ID(), session.Name, session.Value, session.ExpiresAt, session.CreatedAt())
	if err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return session, nil
}

// Load returns the session stored under name.
//
// A missing or expired session returns an error wrapping [shared.ErrNotAuthenticated]; expired rows are deleted.
func (r *SessionRepository) Load(name string) (*models.Session, error) {
	var (
		id        string
		value     string
		expiresAt time.Time
		createdAt time.Time
	)

	err := r.db.QueryRow(
		"SELECT id, value, expires_at, created_at FROM sessions WHERE name = ?", name,
	).Scan(&id, &value, &expiresAt, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: no %s session", shared.ErrNotAuthenticated, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query session: %w", err)
	}

	session := &models.Session{Name: name, Value: value, ExpiresAt: expiresAt}
	session.SetID(id)
	session.SetCreatedAt(createdAt)

	if session.Expired(now()) {
		if err := r.Delete(name); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", shared.ErrNotAuthenticated, shared.ErrSessionExpired)
	}

	return session, nil
}

// Delete removes the session stored under name. Deleting a missing session is not an error.
func (r *SessionRepository) Delete(name string) error {
	if _, err := r.db.Exec("DELETE FROM sessions WHERE name = ?", name); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Purge removes every expired session and returns how many were removed.
func (r *SessionRepository) Purge() (int64, error) {
	res, err := r.db.Exec("DELETE FROM sessions WHERE expires_at <= ?", now())
	if err != nil {
		return 0, fmt.Errorf("failed to purge sessions: %w", err)
	}
	return res.RowsAffected()
}

// UserSession stores the signed-in [models.User] as JSON in the "user_data" session.
type UserSession struct {
	repo *SessionRepository
}

// NewUserSession creates a [UserSession] backed by repo.
func NewUserSession(repo *SessionRepository) *UserSession {
	return &UserSession{repo: repo}
}

// Login remembers user for [models.UserDataTTL].
func (s *UserSession) Login(user *models.User) error {
	if !user.Authenticated() {
		return fmt.Errorf("%w: user has no session token", shared.ErrInvalidInput)
	}

	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}

	_, err = s.repo.Save(models.UserDataSession, string(data), models.UserDataTTL)
	return err
}

// Current returns the remembered user, or an error wrapping [shared.ErrNotAuthenticated].
func (s *UserSession) Current() (*models.User, error) {
	session, err := s.repo.Load(models.UserDataSession)
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := json.Unmarshal([]byte(session.Value), &user); err != nil {
		return nil, fmt.Errorf("%w: corrupt user session: %v", shared.ErrNotAuthenticated, err)
	}

	return &user, nil
}

// Logout forgets the signed-in user.
func (s *UserSession) Logout() error {
	return s.repo.Delete(models.UserDataSession)
}

// PurgeExpired removes every expired session, not just the user's.
func (s *UserSession) PurgeExpired() (int64, error) {
	return s.repo.Purge()
}
