package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gymlab/palaestra/internal/domain/model"
)

// GroupsHandler handles group and athlete management requests.
type GroupsHandler struct {
	deps Dependencies
}

// NewGroupsHandler creates a new groups handler.
func NewGroupsHandler(deps Dependencies) *GroupsHandler {
	return &GroupsHandler{deps: deps}
}

type groupRequest struct {
	Name       string   `json:"name"`
	SkillLevel string   `json:"skillLevel"`
	Athletes   []string `json:"athletes"`
}

type athleteRequest struct {
	Name string `json:"name"`
}

// HandleGroups handles GET /groups and POST /groups.
func (h *GroupsHandler) HandleGroups(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, h.deps.Groups(r.Context()))
	case http.MethodPost:
		var req groupRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %v", ErrBadRequest, err))
			return
		}
		g, err := h.deps.CreateGroup(r.Context(), req.Name, model.SkillLevel(req.SkillLevel), req.Athletes)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, g)
	default:
		http.NotFound(w, r)
	}
}

// HandleGroup dispatches /groups/{id} and /groups/{id}/athletes[/{aid}].
func (h *GroupsHandler) HandleGroup(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/groups/")
	parts := strings.Split(strings.Trim(rest, "/"), "/")

	switch {
	case len(parts) == 1 && parts[0] != "":
		h.handleOne(w, r, parts[0])
	case len(parts) == 2 && parts[1] == "athletes":
		h.handleAddAthlete(w, r, parts[0])
	case len(parts) == 3 && parts[1] == "athletes":
		h.handleRemoveAthlete(w, r, parts[0], parts[2])
	default:
		http.NotFound(w, r)
	}
}

func (h *GroupsHandler) handleOne(w http.ResponseWriter, r *http.Request, id string) {
	switch r.Method {
	case http.MethodGet:
		g, err := h.deps.Group(r.Context(), id)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, g)
	case http.MethodPut:
		var req groupRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %v", ErrBadRequest, err))
			return
		}
		g, err := h.deps.UpdateGroup(r.Context(), id, req.Name, model.SkillLevel(req.SkillLevel))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, g)
	case http.MethodDelete:
		if err := h.deps.DeleteGroup(r.Context(), id); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		http.NotFound(w, r)
	}
}

func (h *GroupsHandler) handleAddAthlete(w http.ResponseWriter, r *http.Request, groupID string) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req athleteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %v", ErrBadRequest, err))
		return
	}
	a, err := h.deps.AddAthlete(r.Context(), groupID, req.Name)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

func (h *GroupsHandler) handleRemoveAthlete(w http.ResponseWriter, r *http.Request, groupID, athleteID string) {
	if r.Method != http.MethodDelete {
		http.NotFound(w, r)
		return
	}
	if err := h.deps.RemoveAthlete(r.Context(), groupID, athleteID); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
