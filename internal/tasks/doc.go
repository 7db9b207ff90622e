// Package tasks runs multi-request operations against the tab backend with real-time progress reporting.
//
// # Core Operations
//
// [SongEngine] provides:
//
//  1. [SongEngine.CollectSongs] : walk every page of the song listing or of a search
//     - Requests pages of models.DefaultPageSize until one comes back short
//
//  2. [SongEngine.FetchTab] / [SongEngine.LoadSong] : load a tab through the cache
//     - Cached text is always untransposed; transposition happens on the way out
//
//  3. [SongEngine.BulkExport] : export the library to files
//     - Worker pool (default 5, max 10) fed by a rate limited producer
//     - One <id>-<slug>.<ext> file per song plus manifest.json
//     - Failed songs are recorded and do not stop the export
//
// # Progress Reporting
//
// All operations use non-blocking channels for progress updates.
//
// The [ProgressUpdate] struct contains phase, step counters, messages, and optional data for advanced UI rendering.
// Updates use select with default to prevent blocking.
//
// # Tab Caching
//
// The optional [TabCacher] interface enables tab persistence (repositories.TabCacheRepository).
// Cache writes are silent; a failing cache never fails a fetch.
package tasks
