// Package repositories implements SQLite persistence for local client state.
//
// Key Implementations:
//   - [SessionRepository] : Named values with an expiry; expired rows read as missing and are purged
//   - [UserSession] : Stores the signed-in user under "user_data" for seven days, like the browser cookie did
//   - [TabCacheRepository] : Untransposed tab text keyed by song ID
//
// Rows are keyed by v4 UUIDs from [shared.GenerateID]. Lookups that find nothing return errors wrapping
// [shared.ErrNotAuthenticated] or [shared.ErrNotCached] so callers can branch with errors.Is.
package repositories
