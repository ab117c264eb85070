package database

import "errors"

// ErrMissingID indicates a write that requires an already-persisted record.
var ErrMissingID = errors.New("favorite must have an id")
