// Package services defines the [TabService] interface for the tab backend and implements it over HTTP.
//
// # Tab Backend
//
// [TabsClient] talks to the REST backend (default http://localhost:3000/api):
//   - POST /auth/google exchanges a Google ID token for a user with a session JWT
//   - GET /songs?limit&offset lists songs; adding query searches
//   - GET /tabs/{id} returns the chord chart text
//   - GET /videos/{id} returns the reference videos
//
// Every request except the auth exchange sends the session JWT as a bearer token and is
// throttled by a [rate.Limiter].
//
// # Google Sign-In
//
// [NewGoogleOAuthConfig] and [IDToken] cover the client side of the OAuth2 authorization code flow.
// The callback itself is handled by the server package; the resulting ID token is passed to
// [TabsClient.Authenticate].
//
// # Error Handling
//
// Services use typed errors from shared package:
//   - [shared.ErrNotAuthenticated] : no session, or the backend answered 401/403
//   - [shared.ErrAPIRequest] : any other non-2xx status
//   - [shared.ErrServiceUnavailable] : the request never completed
//   - [shared.ErrNoIDToken] : Google returned no id_token
//
// # Raw Access
//
// [APIService] returns undecoded responses for the "api" debug commands.
package services
