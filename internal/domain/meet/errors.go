package meet

import "errors"

// Sentinel kinds for meet state errors. These are expected validation
// failures surfaced to callers, never faults.
var (
	ErrNoActiveRoster   = errors.New("no athletes in roster")
	ErrUnknownAthlete   = errors.New("athlete not in meet roster")
	ErrUnknownEvent     = errors.New("unknown event")
	ErrIncompleteScores = errors.New("event scores incomplete")
)
