package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/plebrun/ttroster/internal/api/request"
	"github.com/plebrun/ttroster/internal/api/response"
	"github.com/plebrun/ttroster/internal/model"
	"github.com/plebrun/ttroster/internal/services/lineup"
)

// CompositionHandler exposes the assignment and composition validators
type CompositionHandler struct {
	lineup *lineup.Service
	logger *slog.Logger
}

// NewCompositionHandler creates a new composition handler
func NewCompositionHandler(lineupService *lineup.Service, logger *slog.Logger) *CompositionHandler {
	return &CompositionHandler{lineup: lineupService, logger: logger}
}

// ValidateAssignment handles POST /api/v1/validate/assignment
func (h *CompositionHandler) ValidateAssignment(w http.ResponseWriter, r *http.Request) {
	var req request.ValidateAssignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	key, err := req.CompositionKey()
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	decision, err := h.lineup.CheckAssignment(r.Context(), key, model.LicenseID(req.Player), model.TeamID(req.Team))
	if err != nil {
		h.writeError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.DecisionFromModel(decision))
}

// ValidateComposition handles POST /api/v1/validate/composition
func (h *CompositionHandler) ValidateComposition(w http.ResponseWriter, r *http.Request) {
	var req request.ValidateCompositionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	key, err := req.CompositionKey()
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	state, err := h.lineup.TeamState(r.Context(), key, model.TeamID(req.Team))
	if err != nil {
		h.writeError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.TeamStateFromModel(state))
}

// Assign handles POST /api/v1/compositions/{team}/players: it validates
// against the latest snapshot and commits only when the check passes
func (h *CompositionHandler) Assign(w http.ResponseWriter, r *http.Request) {
	teamID := model.TeamID(mux.Vars(r)["team"])

	var req request.ValidateAssignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	key, err := req.CompositionKey()
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	decision, err := h.lineup.CommitAssignment(r.Context(), key, model.LicenseID(req.Player), teamID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	status := http.StatusOK
	if !decision.CanAssign {
		status = http.StatusConflict
	}
	response.JSON(w, status, response.DecisionFromModel(decision))
}

// Remove handles DELETE /api/v1/compositions/{team}/players/{license}
func (h *CompositionHandler) Remove(w http.ResponseWriter, r *http.Request) {
	license := model.LicenseID(mux.Vars(r)["license"])

	var req request.Day
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	key, err := req.CompositionKey()
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	if err := h.lineup.RemovePlayer(r.Context(), key, license); err != nil {
		h.writeError(w, err)
		return
	}
	response.NoContent(w)
}

func (h *CompositionHandler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrTeamNotFound), errors.Is(err, model.ErrPlayerNotFound):
		response.JSON(w, http.StatusNotFound, response.Error{Error: err.Error()})
	default:
		h.logger.Error("composition handler error", slog.String("error", err.Error()))
		response.Internal(w)
	}
}
