package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/plebrun/ttroster/internal/api/request"
	"github.com/plebrun/ttroster/internal/api/response"
	"github.com/plebrun/ttroster/internal/dependencies/clock"
	"github.com/plebrun/ttroster/internal/model"
	"github.com/plebrun/ttroster/internal/storage"
)

// AvailabilityHandler records player responses for a match day
type AvailabilityHandler struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// NewAvailabilityHandler creates a new availability handler
func NewAvailabilityHandler(store storage.Storage, clk clock.Clock, logger *slog.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{storage: store, clock: clk, logger: logger}
}

// Set handles PUT /api/v1/availability/{license}
func (h *AvailabilityHandler) Set(w http.ResponseWriter, r *http.Request) {
	license := model.LicenseID(mux.Vars(r)["license"])

	var req request.SetAvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	key, err := req.CompositionKey()
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	avail, err := h.storage.GetAvailability(r.Context(), key)
	if errors.Is(err, model.ErrAvailabilityNotFound) {
		avail = model.NewAvailability(key)
	} else if err != nil {
		h.logger.Error("reading availability", slog.String("error", err.Error()))
		response.Internal(w)
		return
	}

	avail.Set(license, req.Available, req.Comment)
	avail.UpdatedAt = h.clock.Now()

	if err := h.storage.SaveAvailability(r.Context(), avail); err != nil {
		h.logger.Error("saving availability", slog.String("error", err.Error()))
		response.Internal(w)
		return
	}
	response.NoContent(w)
}
