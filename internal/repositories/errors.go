package repositories

import "errors"

// ErrNotFound is returned by memory-backed writes against missing rows. The
// Postgres repositories surface sql.ErrNoRows for the same condition.
var ErrNotFound = errors.New("record not found")
