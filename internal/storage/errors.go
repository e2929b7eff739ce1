package storage

import "errors"

// ErrNotFound is returned when no client matches the requested email.
var ErrNotFound = errors.New("client not found")
