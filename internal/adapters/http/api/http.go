// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/okian/gaffer/internal/adapters/repository"
	service "github.com/okian/gaffer/internal/app"
	"github.com/okian/gaffer/internal/domain/formation"
	"github.com/okian/gaffer/internal/domain/player"
	"github.com/okian/gaffer/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Formation catalog reads.
	Formations(ctx context.Context) []string
	FormationSlots(ctx context.Context, id string) ([]formation.Slot, error)

	// Session lifecycle and roster commands.
	CreateSession(ctx context.Context, formationID string) (SessionView, error)
	GetSession(ctx context.Context, sessionID string) (SessionView, error)
	SelectFormation(ctx context.Context, sessionID, formationID string) (SessionView, error)
	AddStockPlayer(ctx context.Context, sessionID, name string) (PlayerView, error)
	AddCustomPlayer(ctx context.Context, sessionID, name string, attrs player.Attributes) (PlayerView, error)
	UpdatePlayer(ctx context.Context, sessionID string, index int, name string, attrs player.Attributes) (PlayerView, error)
	RemovePlayer(ctx context.Context, sessionID string, index int) error

	// Derived reads.
	Layout(ctx context.Context, sessionID string) ([]Marker, error)
	GenerateReport(ctx context.Context, sessionID string) (string, error)
}

// Read shapes returned by squad queries.
type (
	SessionView = types.SessionView
	PlayerView  = types.PlayerView
	Marker      = types.Marker
)

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler     *HealthHandler
	statsHandler      *StatsHandler
	formationsHandler *FormationsHandler
	sessionsHandler   *SessionsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:     NewHealthHandler(),
		statsHandler:      NewStatsHandler(statsProvider),
		formationsHandler: NewFormationsHandler(deps),
		sessionsHandler:   NewSessionsHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/formations", MetricsMiddleware(s.formationsHandler.HandleList, "formations"))
	mux.HandleFunc("/formations/", MetricsMiddleware(s.formationsHandler.HandleGet, "formation"))
	mux.HandleFunc("/sessions", MetricsMiddleware(s.sessionsHandler.HandleCreate, "sessions"))
	mux.HandleFunc("/sessions/", MetricsMiddleware(s.sessionsHandler.HandleSession, "session"))
}

// attributesRequest mirrors the OpenAPI schema for player attributes.
type attributesRequest struct {
	Pace      int `json:"pace"`
	Passing   int `json:"passing"`
	Stamina   int `json:"stamina"`
	Awareness int `json:"awareness"`
	Tackling  int `json:"tackling"`
}

func (a attributesRequest) toAttributes() player.Attributes {
	return player.Attributes{
		Pace:      a.Pace,
		Passing:   a.Passing,
		Stamina:   a.Stamina,
		Awareness: a.Awareness,
		Tackling:  a.Tackling,
	}
}

// createSessionRequest mirrors the OpenAPI schema for POST /sessions.
type createSessionRequest struct {
	Formation string `json:"formation,omitempty"`
}

// selectFormationRequest mirrors PUT /sessions/{id}/formation.
type selectFormationRequest struct {
	Formation string `json:"formation"`
}

func (s selectFormationRequest) validate() error {
	if strings.TrimSpace(s.Formation) == "" {
		return errors.New("missing formation")
	}
	return nil
}

// addPlayerRequest mirrors POST /sessions/{id}/players.
type addPlayerRequest struct {
	Source     string             `json:"source"`
	Name       string             `json:"name"`
	Attributes *attributesRequest `json:"attributes,omitempty"`
}

func (p addPlayerRequest) validate() error {
	switch {
	case strings.TrimSpace(p.Name) == "":
		return errors.New("missing name")
	case p.Source != "stock" && p.Source != "custom":
		return errors.New("source must be stock or custom")
	case p.Source == "custom" && p.Attributes == nil:
		return errors.New("missing attributes for custom player")
	}
	return nil
}

// updatePlayerRequest mirrors PUT /sessions/{id}/players/{index}.
type updatePlayerRequest struct {
	Name       string             `json:"name"`
	Attributes *attributesRequest `json:"attributes"`
}

func (p updatePlayerRequest) validate() error {
	switch {
	case strings.TrimSpace(p.Name) == "":
		return errors.New("missing name")
	case p.Attributes == nil:
		return errors.New("missing attributes")
	}
	return nil
}

type formationListResponse struct {
	Formations []string `json:"formations"`
}

type formationResponse struct {
	ID    string           `json:"id"`
	Slots []formation.Slot `json:"slots"`
}

type reportResponse struct {
	Report string `json:"report"`
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

// writeServiceError translates service errors to HTTP status codes.
func writeServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, service.ErrNoSuchSession), errors.Is(err, service.ErrNoSuchPlayer):
		writeError(w, http.StatusNotFound, "not_found", Wrap(op, err))
	case errors.Is(err, formation.ErrUnknownFormation),
		errors.Is(err, player.ErrUnknownPlayer),
		errors.Is(err, player.ErrInvalidAttribute),
		errors.Is(err, player.ErrEmptyName):
		writeError(w, http.StatusBadRequest, "bad_request", Wrap(op, err))
	case errors.Is(err, service.ErrRosterFull):
		writeError(w, http.StatusConflict, "roster_full", Wrap(op, err))
	case errors.Is(err, repository.ErrTooManySessions):
		writeError(w, http.StatusTooManyRequests, "too_many_sessions", Wrap(op, err))
	case errors.Is(err, service.ErrReportUnavailable):
		writeError(w, http.StatusServiceUnavailable, "report_unavailable", Wrap(op, err))
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
	}
}
