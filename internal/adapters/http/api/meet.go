package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gymlab/palaestra/internal/domain/model"
	"github.com/gymlab/palaestra/internal/domain/score"
	"github.com/gymlab/palaestra/pkg/metrics"
)

// MeetHandler handles meet lifecycle and scoring requests.
type MeetHandler struct {
	deps Dependencies
}

// NewMeetHandler creates a new meet handler.
func NewMeetHandler(deps Dependencies) *MeetHandler {
	return &MeetHandler{deps: deps}
}

type startMeetRequest struct {
	Name    string `json:"name"`
	GroupID string `json:"groupId"`
}

type activeEventRequest struct {
	Event string `json:"event"`
}

// scoreRequest carries raw score text exactly as the judge typed it.
// Parsing happens here at the boundary; the meet state only ever
// sees validated values.
type scoreRequest struct {
	Event     string `json:"event"`
	AthleteID string `json:"athleteId"`
	Raw       string `json:"raw"`
}

// HandleMeet handles POST /meet (start), GET /meet and DELETE /meet
// (cancel).
func (h *MeetHandler) HandleMeet(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		var req startMeetRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %v", ErrBadRequest, err))
			return
		}
		m, err := h.deps.StartMeet(r.Context(), req.Name, req.GroupID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, m)
	case http.MethodGet:
		m, err := h.deps.CurrentMeet(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, m)
	case http.MethodDelete:
		if err := h.deps.CancelMeet(r.Context()); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		http.NotFound(w, r)
	}
}

// HandleActiveEvent handles PUT /meet/active-event. An empty event
// clears the focus.
func (h *MeetHandler) HandleActiveEvent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		http.NotFound(w, r)
		return
	}
	var req activeEventRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %v", ErrBadRequest, err))
		return
	}
	if err := h.deps.SetActiveEvent(r.Context(), model.Event(req.Event)); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleScores handles PUT /meet/scores. Raw text with no digits
// clears the athlete's score; malformed text is rejected per-field
// and leaves all state untouched.
func (h *MeetHandler) HandleScores(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		http.NotFound(w, r)
		return
	}
	var req scoreRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %v", ErrBadRequest, err))
		return
	}

	parsed, err := score.Parse(req.Raw)
	if err != nil {
		metrics.RecordParseFailure()
		writeServiceError(w, err)
		return
	}
	var v *float64
	if !parsed.Empty {
		v = &parsed.Value
	}

	if err := h.deps.UpdateScore(r.Context(), model.Event(req.Event), req.AthleteID, v); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleEventComplete handles POST /meet/events/{event}/complete.
func (h *MeetHandler) HandleEventComplete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	rest := strings.TrimPrefix(r.URL.Path, "/meet/events/")
	parts := strings.Split(strings.Trim(rest, "/"), "/")
	if len(parts) != 2 || parts[1] != "complete" {
		http.NotFound(w, r)
		return
	}
	if err := h.deps.MarkEventComplete(r.Context(), model.Event(parts[0])); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleComplete handles POST /meet/complete: final standings are
// computed, the meet is archived, and the archive record returned.
func (h *MeetHandler) HandleComplete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	completed, err := h.deps.CompleteMeet(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, completed)
}
