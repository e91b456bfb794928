package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/plebrun/ttroster/internal/api/handler"
	"github.com/plebrun/ttroster/internal/dependencies/clock"
	"github.com/plebrun/ttroster/internal/middleware"
	"github.com/plebrun/ttroster/internal/services/calendar"
	"github.com/plebrun/ttroster/internal/services/defaults"
	"github.com/plebrun/ttroster/internal/services/lineup"
	syncservice "github.com/plebrun/ttroster/internal/services/sync"
	"github.com/plebrun/ttroster/internal/storage"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger          *slog.Logger
	Storage         storage.Storage
	Clock           clock.Clock
	LineupService   *lineup.Service
	DefaultsService *defaults.Service
	CalendarService *calendar.Service
	// SyncEngine may be nil when no federation client is configured
	SyncEngine *syncservice.Engine
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	compositionHandler := handler.NewCompositionHandler(cfg.LineupService, cfg.Logger)
	defaultsHandler := handler.NewDefaultsHandler(cfg.DefaultsService, cfg.Logger)
	availabilityHandler := handler.NewAvailabilityHandler(cfg.Storage, cfg.Clock, cfg.Logger)
	calendarHandler := handler.NewCalendarHandler(cfg.Storage, cfg.CalendarService, cfg.Logger)
	syncHandler := handler.NewSyncHandler(cfg.SyncEngine, cfg.Logger)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Recovery(cfg.Logger))
	api.Use(middleware.Logging(cfg.Logger))

	// Validation endpoints, pure reads
	api.HandleFunc("/validate/assignment", compositionHandler.ValidateAssignment).Methods(http.MethodPost)
	api.HandleFunc("/validate/composition", compositionHandler.ValidateComposition).Methods(http.MethodPost)

	// Composition mutations
	api.HandleFunc("/compositions/{team}/players", compositionHandler.Assign).Methods(http.MethodPost)
	api.HandleFunc("/compositions/{team}/players/{license}", compositionHandler.Remove).Methods(http.MethodDelete)

	// Defaults and availability
	api.HandleFunc("/defaults/apply", defaultsHandler.Apply).Methods(http.MethodPost)
	api.HandleFunc("/availability/{license}", availabilityHandler.Set).Methods(http.MethodPut)

	// Calendar and sync
	api.HandleFunc("/calendar/next", calendarHandler.Next).Methods(http.MethodGet)
	api.HandleFunc("/sync", syncHandler.Run).Methods(http.MethodPost)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
