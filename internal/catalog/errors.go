package catalog

import "errors"

var (
	// ErrSourceNotFound means the candidate does not exist; the loader moves on quietly.
	ErrSourceNotFound = errors.New("catalog source not found")
	ErrMissingColumn  = errors.New("missing required column")
	ErrInvalidRecord  = errors.New("invalid record")
	ErrEmptyCatalog   = errors.New("catalog has no records")
	ErrDuplicateID    = errors.New("duplicate content_id")
)
