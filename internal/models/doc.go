// Package models defines domain entities and persistence interfaces for songtabs.
//
// The package contains two categories of types:
//
// 1. Data Transfer Objects (DTOs): JSON records exchanged with the tab backend
//   - [Song] : Title and artist listed in "your songs" and search results
//   - [Tab] : Chord chart text for a song
//   - [Video] : Reference video attached to a song
//   - [User] : Signed-in user returned by the backend, carrying the session JWT
//
// 2. Persistent Entities: Database-backed records kept on the local machine
//   - [Session] : Named session value with an expiry, replacing the browser cookie
//   - [CachedTab] : Untransposed tab text kept to avoid re-fetching
//
// Persistent entities implement the [Model] interface. [Page] holds the limit/offset paging rules shared by the CLI and TUI.
package models
