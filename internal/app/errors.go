package service

import "errors"

// Sentinel kinds for service-level validation failures. All of these
// are expected in normal use and map to client errors at the API
// boundary; none of them indicates corruption.
var (
	ErrGroupNotFound        = errors.New("group not found")
	ErrAthleteNotFound      = errors.New("athlete not found")
	ErrInvalidSkillLevel    = errors.New("invalid skill level")
	ErrMeetInProgress       = errors.New("a meet is already in progress")
	ErrNoMeet               = errors.New("no meet in progress")
	ErrInvalidScore         = errors.New("score out of range")
	ErrInvalidImport        = errors.New("import payload missing groups")
	ErrConfirmationRequired = errors.New("confirmation required")
)
