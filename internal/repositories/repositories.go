// package repositories provides persistence layer implementations for all model types.
package repositories

import (
	"database/sql"
	"time"
)

// now is swapped in tests to move the clock.
var now = func() time.Time { return time.Now().UTC() }

// DB is the subset of [sql.DB] used by the repositories.
type DB interface {
	Exec(query string, args ...any) (sql.Result, error)
	QueryRow(query string, args ...any) *sql.Row
}
