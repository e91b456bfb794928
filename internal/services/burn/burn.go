// Package burn computes the "brûlé" state restricting which teams a
// player may still play for, from their per-team match counts.
package burn

import (
	"sort"

	"github.com/plebrun/ttroster/internal/model"
)

// parisBurnThreshold is the number of matches in a higher-ranked team
// that burns every lower-ranked team under the Paris rule
const parisBurnThreshold = 3

// Standard applies the standard championship rule: the team where the
// player's 2nd cumulative match occurred, counted in ascending team-number
// order, burns the player. Returns 0 when the player is not burned.
func Standard(counts model.MatchCountByTeam) int {
	if counts.Total() < 2 {
		return 0
	}
	teams := make([]int, 0, len(counts))
	for team := range counts {
		teams = append(teams, team)
	}
	sort.Ints(teams)

	// Walk the expanded appearance list in team-number order; the entry
	// at index 1 is the burning team
	seen := 0
	for _, team := range teams {
		seen += counts[team]
		if seen >= 2 {
			return team
		}
	}
	return 0
}

// Paris applies the Paris championship rule: a team T is burned as soon
// as the player has played 3 or more matches in any strictly
// lower-numbered team. The result is the smallest such T, or 0 when no
// team is burned.
func Paris(counts model.MatchCountByTeam) int {
	teams := make([]int, 0, len(counts))
	for team := range counts {
		teams = append(teams, team)
	}
	sort.Ints(teams)

	for i, t := range teams {
		for _, l := range teams[:i] {
			if counts[l] >= parisBurnThreshold {
				return t
			}
		}
	}
	return 0
}

// ForContext applies the rule variant governing the given context
func ForContext(ctx model.RuleContext, counts model.MatchCountByTeam) int {
	if ctx == model.ContextParis {
		return Paris(counts)
	}
	return Standard(counts)
}

// Future simulates one additional match in candidateTeam and reapplies
// the context's rule, for the "this assignment will burn the player"
// advisory. It shares the rule functions with the retrospective
// calculation so the two can never diverge.
func Future(ctx model.RuleContext, counts model.MatchCountByTeam, candidateTeam int) int {
	simulated := counts.Clone()
	if simulated == nil {
		simulated = make(model.MatchCountByTeam, 1)
	}
	simulated[candidateTeam]++
	return ForContext(ctx, simulated)
}
