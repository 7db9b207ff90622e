// Package server provides HTTP routing, middleware, and the OAuth callback used for Google sign-in.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
// [RequestLogger] and [Recoverer] are the two middlewares the callback server installs.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # OAuth Callback Handler
//
// [OAuthHandler] implements the OAuth2 authorization code callback flow.
//
// The handler validates the state parameter, exchanges the authorization code for tokens,
// and sends the result through a channel. It only processes one callback.
//
// # Callback Server
//
// [CallbackServer] runs the handler on localhost while "auth login" waits for the browser to come back.
// It shuts itself down once a result arrives or the wait times out.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
