package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/songtabs/internal/server"
	"github.com/desertthunder/songtabs/internal/services"
	"github.com/desertthunder/songtabs/internal/shared"
	"github.com/urfave/cli/v3"
	"golang.org/x/oauth2"
)

const defaultOAuthTimeout = 2 * time.Minute

// AuthLogin signs in with Google, trades the ID token for a backend session and stores it.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	if !r.config.HasGoogleCredentials() {
		return fmt.Errorf("%w: set credentials.google.client_id and client_secret in your config", shared.ErrMissingCredentials)
	}
	if r.tabs == nil {
		return fmt.Errorf("%w: tab service not initialized", shared.ErrServiceUnavailable)
	}

	token, err := r.doOAuth(ctx, cmd.Duration("timeout"), !cmd.Bool("no-browser"))
	if err != nil {
		return err
	}

	idToken, err := services.IDToken(token)
	if err != nil {
		return err
	}

	r.logger.Info("exchanging Google ID token for a backend session")
	user, err := r.tabs.Authenticate(ctx, idToken)
	if err != nil {
		return err
	}

	if r.sessions != nil {
		if err := r.sessions.Login(user); err != nil {
			r.logger.Warn("failed to store session", "error", err)
			r.writePlain("⚠ Signed in, but the session could not be saved; run 'songtabs setup database'\n")
		}
	}

	return r.writePlain("✓ Signed in as %s\n", displayName(user.Name, user.Email))
}

// AuthLogout forgets the stored session.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	if r.sessions == nil {
		return fmt.Errorf("%w: session store not initialized", shared.ErrServiceUnavailable)
	}

	if err := r.sessions.Logout(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	if r.tabs != nil {
		r.tabs.SetUser(nil)
	}

	r.logger.Info("session cleared")
	return r.writePlain("✓ Signed out\n")
}

// AuthStatus reports the stored user.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	if r.sessions == nil {
		return fmt.Errorf("%w: session store not initialized", shared.ErrServiceUnavailable)
	}

	user, err := r.sessions.Current()
	switch {
	case errors.Is(err, shared.ErrNotAuthenticated), errors.Is(err, shared.ErrSessionExpired):
		if cmd.Bool("json") {
			return r.writeJSON(map[string]any{"authenticated": false}, cmd.Bool("pretty"))
		}
		return r.writePlain("✗ Not signed in\n")
	case err != nil:
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(map[string]any{
			"authenticated": true,
			"name":          user.Name,
			"email":         user.Email,
		}, cmd.Bool("pretty"))
	}

	r.writePlain("✓ Signed in\n")
	if user.Name != "" {
		r.writePlain("Name: %s\n", user.Name)
	}
	r.writePlain("Email: %s\n", user.Email)
	r.writePlain("Backend: %s\n", r.config.API.BaseURL)
	return nil
}

// doOAuth executes the OAuth2 authorization flow with a local HTTP server
func (r *Runner) doOAuth(ctx context.Context, timeout time.Duration, openBrowser bool) (*oauth2.Token, error) {
	oauthConfig, err := services.NewGoogleOAuthConfig(r.config.Credentials.Google)
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = defaultOAuthTimeout
	}

	state := shared.GenerateID()
	handler := server.NewOAuthHandler(oauthConfig, state)
	callback := server.NewCallbackServer(r.config.Server.Addr(), handler, r.logger)
	if err := callback.Start(); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrServiceUnavailable, err)
	}

	authURL := services.GoogleAuthURL(oauthConfig, state)

	if openBrowser {
		r.writePlain("→ Opening browser for Google sign-in...\n")
		if err := r.openURL(authURL); err != nil {
			r.logger.Warnf("failed to open browser automatically %v", err)
			r.writePlainln("⚠ Could not open browser automatically.")
			r.writePlain("Please open this URL in your browser:\n%s\n\n", authURL)
		}
	} else {
		r.writePlain("Open this URL in your browser:\n%s\n\n", authURL)
	}

	r.writePlain("→ Waiting for authorization (%v timeout)...\n", timeout)
	return callback.Wait(ctx, timeout)
}

func displayName(name, email string) string {
	switch {
	case name != "" && email != "":
		return fmt.Sprintf("%s <%s>", name, email)
	case name != "":
		return name
	default:
		return email
	}
}
