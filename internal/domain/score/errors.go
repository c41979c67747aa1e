package score

import "errors"

// Sentinel kinds for score parsing errors.
var (
	ErrMalformed = errors.New("malformed score input")
)
