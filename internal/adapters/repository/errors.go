package repository

import "errors"

// Sentinel kinds for storage errors.
var (
	ErrNoData  = errors.New("no stored data")
	ErrCorrupt = errors.New("stored data corrupt")
	ErrClosed  = errors.New("store closed")
)
