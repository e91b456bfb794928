package sync

import (
	"github.com/plebrun/ttroster/internal/model"
	"github.com/plebrun/ttroster/internal/services/burn"
	"github.com/plebrun/ttroster/internal/services/classify"
)

// contextCounts is one player's match counts across rule contexts and
// phases, rebuilt from the full match history on every sync
type contextCounts map[model.RuleContext]map[model.Phase]model.MatchCountByTeam

func (c contextCounts) bump(ctx model.RuleContext, phase model.Phase, teamNumber int) {
	byPhase, ok := c[ctx]
	if !ok {
		byPhase = make(map[model.Phase]model.MatchCountByTeam)
		c[ctx] = byPhase
	}
	counts, ok := byPhase[phase]
	if !ok {
		counts = make(model.MatchCountByTeam)
		byPhase[phase] = counts
	}
	counts[teamNumber]++
}

// accumulateCounts rebuilds every player's per-context per-phase match
// counts from the full synced match history
func accumulateCounts(teams []*model.Team, matchesByTeam map[model.TeamID][]model.Match) map[model.LicenseID]contextCounts {
	out := make(map[model.LicenseID]contextCounts)

	for _, team := range teams {
		teamNumber := classify.TeamNumber(team.Name)
		for _, m := range matchesByTeam[team.ID] {
			if !m.Played {
				continue
			}

			var ruleCtx model.RuleContext
			phase := m.Phase
			switch {
			case m.Epreuve == model.EpreuveParis:
				ruleCtx = model.ContextParis
				// Single Paris season, no aller/retour split
				phase = model.PhaseAller
			case m.IsFemale:
				ruleCtx = model.ContextFeminine
			default:
				ruleCtx = model.ContextMasculine
			}

			for _, license := range m.OwnPlayers {
				counts, ok := out[license]
				if !ok {
					counts = make(contextCounts)
					out[license] = counts
				}
				counts.bump(ruleCtx, phase, teamNumber)
			}
		}
	}

	return out
}

// applyBurnState replaces the player's materialized burn fields from the
// recomputed counts. Per rule context the update is tri-state: write when
// the player has matches in that context, explicitly clear when stale
// data exists but the context is now empty, and leave untouched when the
// context never had data.
func applyBurnState(player *model.Player, counts contextCounts) {
	for _, ruleCtx := range model.RuleContexts {
		byPhase := counts[ruleCtx]

		if len(byPhase) == 0 {
			// Explicit clear only when stale data exists
			if player.MatchCounts != nil {
				delete(player.MatchCounts, ruleCtx)
			}
			if player.BurnedTeam != nil {
				delete(player.BurnedTeam, ruleCtx)
			}
			continue
		}

		if player.MatchCounts == nil {
			player.MatchCounts = make(map[model.RuleContext]map[model.Phase]model.MatchCountByTeam)
		}
		player.MatchCounts[ruleCtx] = byPhase

		burned := make(map[model.Phase]int)
		for phase, teamCounts := range byPhase {
			if b := burn.ForContext(ruleCtx, teamCounts); b != 0 {
				burned[phase] = b
			}
		}
		if player.BurnedTeam == nil {
			player.BurnedTeam = make(map[model.RuleContext]map[model.Phase]int)
		}
		if len(burned) > 0 {
			player.BurnedTeam[ruleCtx] = burned
		} else {
			delete(player.BurnedTeam, ruleCtx)
		}
	}
}
