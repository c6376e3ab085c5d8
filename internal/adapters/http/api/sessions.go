// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
)

// SessionsHandler handles session lifecycle and roster requests.
type SessionsHandler struct {
	deps Dependencies
}

// NewSessionsHandler creates a new sessions handler.
func NewSessionsHandler(deps Dependencies) *SessionsHandler {
	return &SessionsHandler{deps: deps}
}

// HandleCreate handles POST /sessions requests.
func (h *SessionsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	const op = "api.create_session"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	// An empty body is allowed and selects the default formation.
	var req createSessionRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
	}
	view, err := h.deps.CreateSession(r.Context(), req.Formation)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

// HandleSession dispatches requests under /sessions/{id}.
//
// Supported routes:
//
//	GET    /sessions/{id}
//	PUT    /sessions/{id}/formation
//	POST   /sessions/{id}/players
//	PUT    /sessions/{id}/players/{index}
//	DELETE /sessions/{id}/players/{index}
//	GET    /sessions/{id}/layout
//	POST   /sessions/{id}/report
func (h *SessionsHandler) HandleSession(w http.ResponseWriter, r *http.Request) {
	const op = "api.session"
	rest := strings.TrimPrefix(r.URL.Path, "/sessions/")
	parts := strings.Split(rest, "/")
	if len(parts) == 0 || parts[0] == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	sessionID := parts[0]

	switch {
	case len(parts) == 1:
		h.handleGet(w, r, sessionID)
	case len(parts) == 2 && parts[1] == "formation":
		h.handleSelectFormation(w, r, sessionID)
	case len(parts) == 2 && parts[1] == "players":
		h.handleAddPlayer(w, r, sessionID)
	case len(parts) == 3 && parts[1] == "players":
		h.handlePlayerByIndex(w, r, sessionID, parts[2])
	case len(parts) == 2 && parts[1] == "layout":
		h.handleLayout(w, r, sessionID)
	case len(parts) == 2 && parts[1] == "report":
		h.handleReport(w, r, sessionID)
	default:
		http.NotFound(w, r)
	}
}

// handleGet handles GET /sessions/{id}.
func (h *SessionsHandler) handleGet(w http.ResponseWriter, r *http.Request, sessionID string) {
	const op = "api.get_session"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	view, err := h.deps.GetSession(r.Context(), sessionID)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// handleSelectFormation handles PUT /sessions/{id}/formation.
func (h *SessionsHandler) handleSelectFormation(w http.ResponseWriter, r *http.Request, sessionID string) {
	const op = "api.select_formation"
	if r.Method != http.MethodPut {
		http.NotFound(w, r)
		return
	}
	var req selectFormationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	view, err := h.deps.SelectFormation(r.Context(), sessionID, req.Formation)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// handleAddPlayer handles POST /sessions/{id}/players.
func (h *SessionsHandler) handleAddPlayer(w http.ResponseWriter, r *http.Request, sessionID string) {
	const op = "api.add_player"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req addPlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	var (
		view PlayerView
		err  error
	)
	if req.Source == "stock" {
		view, err = h.deps.AddStockPlayer(r.Context(), sessionID, req.Name)
	} else {
		view, err = h.deps.AddCustomPlayer(r.Context(), sessionID, req.Name, req.Attributes.toAttributes())
	}
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

// handlePlayerByIndex handles PUT and DELETE /sessions/{id}/players/{index}.
func (h *SessionsHandler) handlePlayerByIndex(w http.ResponseWriter, r *http.Request, sessionID, indexStr string) {
	const op = "api.player_by_index"
	index, err := strconv.Atoi(indexStr)
	if err != nil || index < 0 {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	switch r.Method {
	case http.MethodPut:
		var req updatePlayerRequest
		if derr := json.NewDecoder(r.Body).Decode(&req); derr != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, derr))
			return
		}
		if verr := req.validate(); verr != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, verr))
			return
		}
		view, uerr := h.deps.UpdatePlayer(r.Context(), sessionID, index, req.Name, req.Attributes.toAttributes())
		if uerr != nil {
			writeServiceError(w, op, uerr)
			return
		}
		writeJSON(w, http.StatusOK, view)
	case http.MethodDelete:
		if derr := h.deps.RemovePlayer(r.Context(), sessionID, index); derr != nil {
			writeServiceError(w, op, derr)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		http.NotFound(w, r)
	}
}

// handleLayout handles GET /sessions/{id}/layout.
func (h *SessionsHandler) handleLayout(w http.ResponseWriter, r *http.Request, sessionID string) {
	const op = "api.get_layout"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	markers, err := h.deps.Layout(r.Context(), sessionID)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, markers)
}

// handleReport handles POST /sessions/{id}/report.
func (h *SessionsHandler) handleReport(w http.ResponseWriter, r *http.Request, sessionID string) {
	const op = "api.generate_report"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	text, err := h.deps.GenerateReport(r.Context(), sessionID)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, reportResponse{Report: text})
}
