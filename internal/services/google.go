package services

import (
	"fmt"

	"github.com/desertthunder/songtabs/internal/shared"
	"golang.org/x/oauth2"
)

// GoogleEndpoint is Google's OAuth 2.0 endpoint.
var GoogleEndpoint = oauth2.Endpoint{
	AuthURL:   "https://accounts.google.com/o/oauth2/auth",
	TokenURL:  "https://oauth2.googleapis.com/token",
	AuthStyle: oauth2.AuthStyleInParams,
}

var googleScopes = []string{"openid", "email", "profile"}

// NewGoogleOAuthConfig builds the OAuth2 config used to obtain a Google ID token.
func NewGoogleOAuthConfig(creds shared.GoogleConfig) (*oauth2.Config, error) {
	if creds.ClientID == "" || creds.ClientSecret == "" {
		return nil, fmt.Errorf("%w: google client_id and client_secret are required", shared.ErrMissingCredentials)
	}

	return &oauth2.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		RedirectURL:  creds.RedirectURI,
		Scopes:       googleScopes,
		Endpoint:     GoogleEndpoint,
	}, nil
}

// GoogleAuthURL returns the consent page URL for state.
func GoogleAuthURL(config *oauth2.Config, state string) string {
	return config.AuthCodeURL(state, oauth2.AccessTypeOnline, oauth2.SetAuthURLParam("prompt", "select_account"))
}

// IDToken extracts the OpenID Connect ID token from a token response.
func IDToken(tok *oauth2.Token) (string, error) {
	if tok == nil {
		return "", shared.ErrNoIDToken
	}
	idToken, ok := tok.Extra("id_token").(string)
	if !ok || idToken == "" {
		return "", shared.ErrNoIDToken
	}
	return idToken, nil
}
