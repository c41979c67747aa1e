package api

import (
	"fmt"
	"io"
	"net/http"
)

// DataHandler serves whole-state export, import and wipe.
type DataHandler struct {
	deps Dependencies
}

// NewDataHandler creates a new data handler.
func NewDataHandler(deps Dependencies) *DataHandler {
	return &DataHandler{deps: deps}
}

type clearRequest struct {
	Confirm bool `json:"confirm"`
}

// HandleExport handles GET /data/export: the full state blob.
func (h *DataHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	blob, err := h.deps.Export(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="palaestra-export.json"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(blob)
}

// HandleImport handles POST /data/import. The payload is validated
// before any state changes; a rejected import mutates nothing.
func (h *DataHandler) HandleImport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %v", ErrBadRequest, err))
		return
	}
	if err := h.deps.Import(r.Context(), payload); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleClear handles POST /data/clear. Requires an explicit
// confirmation in the body; a bare request is refused.
func (h *DataHandler) HandleClear(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req clearRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %v", ErrBadRequest, err))
		return
	}
	if err := h.deps.ClearAll(r.Context(), req.Confirm); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
