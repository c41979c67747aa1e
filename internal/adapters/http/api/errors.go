package api

import (
	"errors"
	"net/http"

	service "github.com/gymlab/palaestra/internal/app"
	"github.com/gymlab/palaestra/internal/domain/meet"
	"github.com/gymlab/palaestra/internal/domain/score"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest = errors.New("bad request")
	ErrNotFound   = errors.New("not found")
)

// statusFor maps service and domain errors onto HTTP semantics.
// Everything a user can trigger maps below 500.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrGroupNotFound),
		errors.Is(err, service.ErrAthleteNotFound),
		errors.Is(err, service.ErrNoMeet):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, service.ErrMeetInProgress):
		return http.StatusConflict, "meet_in_progress"
	case errors.Is(err, meet.ErrNoActiveRoster),
		errors.Is(err, meet.ErrUnknownAthlete),
		errors.Is(err, meet.ErrUnknownEvent),
		errors.Is(err, meet.ErrIncompleteScores),
		errors.Is(err, service.ErrInvalidSkillLevel),
		errors.Is(err, service.ErrInvalidScore),
		errors.Is(err, service.ErrInvalidImport),
		errors.Is(err, service.ErrConfirmationRequired),
		errors.Is(err, score.ErrMalformed),
		errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest, "validation_failed"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

// writeServiceError renders err with the mapped status.
func writeServiceError(w http.ResponseWriter, err error) {
	status, code := statusFor(err)
	writeError(w, status, code, err)
}
