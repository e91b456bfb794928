package response

import (
	"time"

	"github.com/plebrun/ttroster/internal/model"
	"github.com/plebrun/ttroster/internal/services/calendar"
	"github.com/plebrun/ttroster/internal/services/lineup"
	"github.com/plebrun/ttroster/internal/services/sync"
)

// Decision is the outcome of an assignment check
type Decision struct {
	CanAssign bool   `json:"can_assign"`
	Reason    string `json:"reason,omitempty"`
}

// DecisionFromModel converts a lineup.Decision
func DecisionFromModel(d lineup.Decision) Decision {
	return Decision{CanAssign: d.CanAssign, Reason: d.Reason}
}

// TeamState is the aggregate validity of a team's roster
type TeamState struct {
	Valid              bool     `json:"valid"`
	Reason             string   `json:"reason,omitempty"`
	OffendingPlayerIDs []string `json:"offending_player_ids,omitempty"`
}

// TeamStateFromModel converts a lineup.StateResult
func TeamStateFromModel(s lineup.StateResult) TeamState {
	ids := make([]string, len(s.OffendingPlayers))
	for i, id := range s.OffendingPlayers {
		ids[i] = string(id)
	}
	if len(ids) == 0 {
		ids = nil
	}
	return TeamState{Valid: s.Valid, Reason: s.Reason, OffendingPlayerIDs: ids}
}

// Composition is a roster document in API responses
type Composition struct {
	Epreuve  string              `json:"epreuve"`
	Phase    string              `json:"phase"`
	Journee  int                 `json:"journee"`
	Category string              `json:"category"`
	Teams    map[string][]string `json:"teams"`
}

// CompositionFromModel converts a model.Composition
func CompositionFromModel(c *model.Composition) Composition {
	teams := make(map[string][]string, len(c.Teams))
	for teamID, roster := range c.Teams {
		ids := make([]string, len(roster))
		for i, id := range roster {
			ids[i] = string(id)
		}
		teams[string(teamID)] = ids
	}
	return Composition{
		Epreuve:  string(c.Key.Epreuve),
		Phase:    string(c.Key.Phase),
		Journee:  c.Key.Journee,
		Category: string(c.Key.Category),
		Teams:    teams,
	}
}

// SyncReport summarizes a sync run
type SyncReport struct {
	RunID      string    `json:"run_id"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Teams      int       `json:"teams"`
	Players    int       `json:"players"`
	Matches    int       `json:"matches"`
	Success    bool      `json:"success"`
	Error      string    `json:"error,omitempty"`
}

// SyncReportFromModel converts a sync.Report
func SyncReportFromModel(r *sync.Report) SyncReport {
	return SyncReport{
		RunID:      r.RunID,
		StartedAt:  r.StartedAt,
		FinishedAt: r.FinishedAt,
		Teams:      r.Teams,
		Players:    r.Players,
		Matches:    r.Matches,
		Success:    r.Success,
		Error:      r.Error,
	}
}

// NextJournee is the default competition/match-day selection
type NextJournee struct {
	Epreuve string `json:"epreuve"`
	Phase   string `json:"phase"`
	Journee int    `json:"journee"`
}

// NextJourneeFromModel converts a calendar.Selection
func NextJourneeFromModel(s calendar.Selection) NextJournee {
	return NextJournee{
		Epreuve: string(s.Epreuve),
		Phase:   string(s.Phase),
		Journee: s.Journee,
	}
}

// Error is a structured error payload
type Error struct {
	Error string `json:"error"`
}
