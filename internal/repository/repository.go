package repository

import "errors"

// ErrNotFound is returned when a lookup by id (or the single-user fetch)
// matches no row. Handlers map it to the 404 page.
var ErrNotFound = errors.New("record not found")
