// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/okian/gaffer/internal/domain/formation"
)

// FormationDependencies defines the interface for formation catalog reads.
type FormationDependencies interface {
	Formations(ctx context.Context) []string
	FormationSlots(ctx context.Context, id string) ([]formation.Slot, error)
}

// FormationsHandler handles formation catalog requests.
type FormationsHandler struct {
	deps FormationDependencies
}

// NewFormationsHandler creates a new formations handler.
func NewFormationsHandler(deps FormationDependencies) *FormationsHandler {
	return &FormationsHandler{deps: deps}
}

// HandleList handles GET /formations requests.
func (h *FormationsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, formationListResponse{Formations: h.deps.Formations(r.Context())})
}

// HandleGet handles GET /formations/{id} requests.
func (h *FormationsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_formation"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	// Extract path parameter after /formations/
	id := strings.TrimPrefix(r.URL.Path, "/formations/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	slots, err := h.deps.FormationSlots(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, formationResponse{ID: id, Slots: slots})
}
