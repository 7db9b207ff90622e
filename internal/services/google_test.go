package services

import (
	"errors"
	"net/url"
	"testing"

	"github.com/desertthunder/songtabs/internal/shared"
	"golang.org/x/oauth2"
)

func TestGoogleOAuth(t *testing.T) {
	creds := shared.GoogleConfig{
		ClientID:     "client",
		ClientSecret: "secret",
		RedirectURI:  "http://127.0.0.1:8085/callback",
	}

	t.Run("NewGoogleOAuthConfig", func(t *testing.T) {
		t.Run("Builds Config", func(t *testing.T) {
			cfg, err := NewGoogleOAuthConfig(creds)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if cfg.Endpoint.TokenURL != "https://oauth2.googleapis.com/token" {
				t.Errorf("unexpected token URL %s", cfg.Endpoint.TokenURL)
			}
			if len(cfg.Scopes) != 3 || cfg.Scopes[0] != "openid" {
				t.Errorf("unexpected scopes %v", cfg.Scopes)
			}
		})

		t.Run("Missing Credentials", func(t *testing.T) {
			_, err := NewGoogleOAuthConfig(shared.GoogleConfig{ClientID: "client"})
			if !errors.Is(err, shared.ErrMissingCredentials) {
				t.Errorf("expected ErrMissingCredentials, got %v", err)
			}
		})
	})

	t.Run("GoogleAuthURL", func(t *testing.T) {
		cfg, _ := NewGoogleOAuthConfig(creds)
		raw := GoogleAuthURL(cfg, "state-123")

		u, err := url.Parse(raw)
		if err != nil {
			t.Fatalf("failed to parse auth URL: %v", err)
		}
		q := u.Query()
		if q.Get("state") != "state-123" {
			t.Errorf("expected state, got %q", q.Get("state"))
		}
		if q.Get("client_id") != "client" {
			t.Errorf("expected client_id, got %q", q.Get("client_id"))
		}
		if q.Get("redirect_uri") != creds.RedirectURI {
			t.Errorf("expected redirect_uri, got %q", q.Get("redirect_uri"))
		}
		if q.Get("scope") != "openid email profile" {
			t.Errorf("unexpected scope %q", q.Get("scope"))
		}
	})

	t.Run("IDToken", func(t *testing.T) {
		t.Run("Present", func(t *testing.T) {
			tok := (&oauth2.Token{AccessToken: "a"}).WithExtra(map[string]any{"id_token": "id-xyz"})
			got, err := IDToken(tok)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if got != "id-xyz" {
				t.Errorf("expected id-xyz, got %s", got)
			}
		})

		t.Run("Missing", func(t *testing.T) {
			if _, err := IDToken(&oauth2.Token{AccessToken: "a"}); !errors.Is(err, shared.ErrNoIDToken) {
				t.Errorf("expected ErrNoIDToken, got %v", err)
			}
		})

		t.Run("Nil Token", func(t *testing.T) {
			if _, err := IDToken(nil); !errors.Is(err, shared.ErrNoIDToken) {
				t.Errorf("expected ErrNoIDToken, got %v", err)
			}
		})
	})
}
