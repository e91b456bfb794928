// Package defaults applies saved template rosters to live match days,
// filtering each templated player through current availability and burn
// state.
package defaults

import (
	"log/slog"

	"github.com/plebrun/ttroster/internal/model"
	"github.com/plebrun/ttroster/internal/services/classify"
)

// legacyRosterCap caps rosters filled from a template.
//
// This is deliberately distinct from classify.MaxPlayersForTeam: the
// historical defaults path always capped at 5, even for teams whose
// capacity is 4. Kept until domain owners confirm the intended behavior.
const legacyRosterCap = 5

// Engine turns template rosters into concrete compositions
type Engine struct {
	logger *slog.Logger
}

// NewEngine creates a new defaults engine
func NewEngine(logger *slog.Logger) *Engine {
	return &Engine{logger: logger}
}

// Apply produces concrete rosters from one category's template, keeping
// template order. A templated player is dropped when they are not marked
// available, when the team already reached the cap, or when their current
// burn state forbids the team (team number 0 exempt).
func (e *Engine) Apply(
	template *model.DefaultComposition,
	avail *model.Availability,
	players map[model.LicenseID]*model.Player,
	teams map[model.TeamID]*model.Team,
	epreuve model.Epreuve,
	phase model.Phase,
) map[model.TeamID][]model.LicenseID {
	out := make(map[model.TeamID][]model.LicenseID)
	if template == nil {
		return out
	}

	for teamID, templated := range template.Teams {
		team := teams[teamID]
		if team == nil {
			continue
		}
		ctx := model.ContextFor(team.Epreuve, team.Category)
		teamNumber := classify.TeamNumber(team.Name)

		var roster []model.LicenseID
		for _, id := range templated {
			if len(roster) >= legacyRosterCap {
				break
			}
			if !avail.IsAvailable(id) {
				continue
			}
			player := players[id]
			if player == nil {
				continue
			}
			if burned := player.BurnedTeamNumber(ctx, phase); teamNumber != 0 && burned != 0 && burned > teamNumber {
				e.logger.Debug("defaults: dropping burned player",
					slog.String("player", string(id)),
					slog.String("team", string(teamID)),
					slog.Int("burned_for", burned),
				)
				continue
			}
			roster = append(roster, id)
		}
		if len(roster) > 0 {
			out[teamID] = roster
		}
	}

	return out
}

// ApplyForJournee runs Apply for both gender categories of one match day
// in a single pass and returns the combined compositions, keyed the way
// they will be persisted
func (e *Engine) ApplyForJournee(
	templates map[model.Category]*model.DefaultComposition,
	avails map[model.Category]*model.Availability,
	players map[model.LicenseID]*model.Player,
	teams map[model.TeamID]*model.Team,
	epreuve model.Epreuve,
	phase model.Phase,
	journee int,
) map[model.CompositionKey]*model.Composition {
	out := make(map[model.CompositionKey]*model.Composition)

	for _, category := range []model.Category{model.CategoryMasculine, model.CategoryFeminine} {
		rosters := e.Apply(templates[category], avails[category], players, teams, epreuve, phase)
		if len(rosters) == 0 {
			continue
		}
		key := model.CompositionKey{
			Epreuve:  epreuve,
			Phase:    phase,
			Journee:  journee,
			Category: category,
		}
		comp := model.NewComposition(key)
		for teamID, roster := range rosters {
			comp.Teams[teamID] = roster
		}
		out[key] = comp
	}

	return out
}
