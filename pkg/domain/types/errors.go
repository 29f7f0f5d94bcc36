package types

import "errors"

// ErrNotFound is the shared sentinel for missing records. Repository
// backends wrap it so callers can use errors.Is without knowing which
// backend served the request.
var ErrNotFound = errors.New("not found")
