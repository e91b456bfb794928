package handler

import (
	"log/slog"
	"net/http"

	"github.com/plebrun/ttroster/internal/api/response"
	"github.com/plebrun/ttroster/internal/model"
	"github.com/plebrun/ttroster/internal/services/calendar"
	"github.com/plebrun/ttroster/internal/storage"
)

// CalendarHandler exposes the match-day index
type CalendarHandler struct {
	storage  storage.Storage
	calendar *calendar.Service
	logger   *slog.Logger
}

// NewCalendarHandler creates a new calendar handler
func NewCalendarHandler(store storage.Storage, calendarService *calendar.Service, logger *slog.Logger) *CalendarHandler {
	return &CalendarHandler{storage: store, calendar: calendarService, logger: logger}
}

// Next handles GET /api/v1/calendar/next: the competition and match day
// whose earliest date is the closest upcoming one
func (h *CalendarHandler) Next(w http.ResponseWriter, r *http.Request) {
	teams, err := h.storage.ListTeams(r.Context())
	if err != nil {
		h.logger.Error("listing teams", slog.String("error", err.Error()))
		response.Internal(w)
		return
	}

	matchesByTeam := make(map[model.TeamID][]model.Match, len(teams))
	teamValues := make([]model.Team, 0, len(teams))
	for _, team := range teams {
		matches, err := h.storage.GetMatchesForTeam(r.Context(), team.ID)
		if err != nil {
			h.logger.Error("listing matches", slog.String("error", err.Error()))
			response.Internal(w)
			return
		}
		matchesByTeam[team.ID] = matches
		teamValues = append(teamValues, *team)
	}

	idx := calendar.BuildIndex(teamValues, matchesByTeam)
	selection := h.calendar.NextJournee(idx)
	response.JSON(w, http.StatusOK, response.NextJourneeFromModel(selection))
}
