package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/plebrun/ttroster/internal/api/request"
	"github.com/plebrun/ttroster/internal/api/response"
	"github.com/plebrun/ttroster/internal/model"
	"github.com/plebrun/ttroster/internal/services/defaults"
)

// DefaultsHandler exposes the defaults-application engine
type DefaultsHandler struct {
	defaults *defaults.Service
	logger   *slog.Logger
}

// NewDefaultsHandler creates a new defaults handler
func NewDefaultsHandler(defaultsService *defaults.Service, logger *slog.Logger) *DefaultsHandler {
	return &DefaultsHandler{defaults: defaultsService, logger: logger}
}

// Apply handles POST /api/v1/defaults/apply
func (h *DefaultsHandler) Apply(w http.ResponseWriter, r *http.Request) {
	var req request.ApplyDefaultsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	epreuve := model.Epreuve(req.Epreuve)
	phase := model.Phase(req.Phase)
	if (epreuve != model.EpreuveChampionnat && epreuve != model.EpreuveParis) ||
		(phase != model.PhaseAller && phase != model.PhaseRetour) || req.Journee <= 0 {
		response.BadRequest(w, request.ErrInvalidDay.Error())
		return
	}

	compositions, err := h.defaults.ApplyToJournee(r.Context(), epreuve, phase, req.Journee)
	if err != nil {
		h.logger.Error("applying defaults", slog.String("error", err.Error()))
		response.Internal(w)
		return
	}

	out := make([]response.Composition, 0, len(compositions))
	for _, comp := range compositions {
		out = append(out, response.CompositionFromModel(comp))
	}
	response.JSON(w, http.StatusOK, out)
}
