// Package api declares HTTP contracts and route registration helpers.
//
// The API is the command surface for the UI layer: raw input comes in,
// serialized state goes out, and every decision is delegated to the
// service behind the Dependencies interface.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gymlab/palaestra/internal/domain/model"
	"github.com/gymlab/palaestra/pkg/metrics"
)

// Dependencies bundles everything the handlers need. Using an
// interface keeps this layer loosely coupled to the service
// implementation in internal/app.
type Dependencies interface {
	// Group repository commands.
	Groups(ctx context.Context) []model.Group
	Group(ctx context.Context, id string) (model.Group, error)
	CreateGroup(ctx context.Context, name string, skill model.SkillLevel, athleteNames []string) (model.Group, error)
	UpdateGroup(ctx context.Context, id, name string, skill model.SkillLevel) (model.Group, error)
	DeleteGroup(ctx context.Context, id string) error
	AddAthlete(ctx context.Context, groupID, name string) (model.Athlete, error)
	RemoveAthlete(ctx context.Context, groupID, athleteID string) error

	// Meet lifecycle commands.
	StartMeet(ctx context.Context, name, groupID string) (*model.Meet, error)
	CurrentMeet(ctx context.Context) (*model.Meet, error)
	SetActiveEvent(ctx context.Context, e model.Event) error
	UpdateScore(ctx context.Context, e model.Event, athleteID string, v *float64) error
	MarkEventComplete(ctx context.Context, e model.Event) error
	Results(ctx context.Context) (model.MeetResults, error)
	CompleteMeet(ctx context.Context) (model.CompletedMeet, error)
	CancelMeet(ctx context.Context) error
	History(ctx context.Context) []model.CompletedMeet

	// Whole-state commands.
	Export(ctx context.Context) ([]byte, error)
	Import(ctx context.Context, payload []byte) error
	ClearAll(ctx context.Context, confirm bool) error
}

// Server wires HTTP routes for the business API.
type Server struct {
	groupsHandler  *GroupsHandler
	meetHandler    *MeetHandler
	resultsHandler *ResultsHandler
	dataHandler    *DataHandler
	healthHandler  *HealthHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies) *Server {
	return &Server{
		groupsHandler:  NewGroupsHandler(deps),
		meetHandler:    NewMeetHandler(deps),
		resultsHandler: NewResultsHandler(deps),
		dataHandler:    NewDataHandler(deps),
		healthHandler:  NewHealthHandler(),
	}
}

// Register attaches all HTTP routes to mux. Specific paths first.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.Handle("/metrics", metrics.Handler())

	mux.HandleFunc("/groups", MetricsMiddleware(s.groupsHandler.HandleGroups, "groups"))
	mux.HandleFunc("/groups/", MetricsMiddleware(s.groupsHandler.HandleGroup, "group"))

	mux.HandleFunc("/meet", MetricsMiddleware(s.meetHandler.HandleMeet, "meet"))
	mux.HandleFunc("/meet/active-event", MetricsMiddleware(s.meetHandler.HandleActiveEvent, "meet_active_event"))
	mux.HandleFunc("/meet/scores", MetricsMiddleware(s.meetHandler.HandleScores, "meet_scores"))
	mux.HandleFunc("/meet/events/", MetricsMiddleware(s.meetHandler.HandleEventComplete, "meet_event_complete"))
	mux.HandleFunc("/meet/complete", MetricsMiddleware(s.meetHandler.HandleComplete, "meet_complete"))
	mux.HandleFunc("/meet/results", MetricsMiddleware(s.resultsHandler.HandleResults, "meet_results"))

	mux.HandleFunc("/history", MetricsMiddleware(s.resultsHandler.HandleHistory, "history"))

	mux.HandleFunc("/data/export", MetricsMiddleware(s.dataHandler.HandleExport, "data_export"))
	mux.HandleFunc("/data/import", MetricsMiddleware(s.dataHandler.HandleImport, "data_import"))
	mux.HandleFunc("/data/clear", MetricsMiddleware(s.dataHandler.HandleClear, "data_clear"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// decodeJSON reads a request body into v, limiting its size.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	return dec.Decode(v)
}

// maxBodyBytes bounds request bodies; state blobs are small.
const maxBodyBytes = 4 << 20
