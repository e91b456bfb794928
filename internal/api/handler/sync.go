package handler

import (
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/plebrun/ttroster/internal/api/response"
	"github.com/plebrun/ttroster/internal/model"
	syncservice "github.com/plebrun/ttroster/internal/services/sync"
)

// SyncHandler triggers federation syncs
type SyncHandler struct {
	engine  *syncservice.Engine
	logger  *slog.Logger
	running atomic.Bool
}

// NewSyncHandler creates a new sync handler
func NewSyncHandler(engine *syncservice.Engine, logger *slog.Logger) *SyncHandler {
	return &SyncHandler{engine: engine, logger: logger}
}

// Run handles POST /api/v1/sync. Only one sync may run at a time.
func (h *SyncHandler) Run(w http.ResponseWriter, r *http.Request) {
	if h.engine == nil {
		response.JSON(w, http.StatusServiceUnavailable, response.Error{Error: "federation sync is not configured"})
		return
	}
	if !h.running.CompareAndSwap(false, true) {
		response.JSON(w, http.StatusConflict, response.Error{Error: model.ErrSyncInProgress.Error()})
		return
	}
	defer h.running.Store(false)

	report, err := h.engine.Run(r.Context())
	if err != nil {
		// The report carries the error and any partial progress
		response.JSON(w, http.StatusBadGateway, response.SyncReportFromModel(report))
		return
	}
	response.JSON(w, http.StatusOK, response.SyncReportFromModel(report))
}
