// Package lineup decides whether player-to-team assignments are legal and
// whether a full team composition is in a valid state.
//
// Every function here is pure over the snapshot it is handed: callers own
// the read-modify-write cycle and must re-validate against the latest
// snapshot before committing an accepted assignment.
package lineup

import (
	"fmt"

	"github.com/plebrun/ttroster/internal/model"
	"github.com/plebrun/ttroster/internal/services/burn"
	"github.com/plebrun/ttroster/internal/services/classify"
)

// maxWomenInMasculineTeam is the gender quota for standard championship
// men's teams
const maxWomenInMasculineTeam = 2

// dayTwoJournee is the only match day the cross-team carry-over rule
// applies to
const dayTwoJournee = 2

// Snapshot is the immutable state a validation call runs against
type Snapshot struct {
	Players map[model.LicenseID]*model.Player
	Teams   map[model.TeamID]*model.Team

	// Current is the composition being edited; may be nil when empty
	Current *model.Composition

	// DayOne is the journée-1 composition of the same phase and category,
	// consulted by the day-2 carry-over rule; may be nil
	DayOne *model.Composition
}

func (s Snapshot) player(id model.LicenseID) *model.Player {
	if s.Players == nil {
		return nil
	}
	return s.Players[id]
}

func (s Snapshot) team(id model.TeamID) *model.Team {
	if s.Teams == nil {
		return nil
	}
	return s.Teams[id]
}

// Decision is the outcome of a prospective assignment check. CanAssign
// true with a non-empty Reason is an advisory: the assignment is allowed
// but should be surfaced as a warning.
type Decision struct {
	CanAssign bool
	Reason    string
}

func deny(format string, args ...any) Decision {
	return Decision{CanAssign: false, Reason: fmt.Sprintf(format, args...)}
}

// CanAssign checks whether the player may be added to the team's roster
// for the given phase and match day. First failing check wins.
func CanAssign(snap Snapshot, playerID model.LicenseID, teamID model.TeamID, phase model.Phase, journee int, maxPlayers int) Decision {
	player := snap.player(playerID)
	team := snap.team(teamID)
	if player == nil || team == nil {
		return deny("unknown player or team")
	}

	roster := rosterWithout(snap.Current.Roster(teamID), playerID)

	// 1. Capacity
	if len(roster) >= maxPlayers {
		return deny("%s is full (%d players max)", team.Name, maxPlayers)
	}

	// 2. Nationality quota: at most one foreign player per team
	if player.Nationality.IsForeign() && countForeign(snap, roster) >= 1 {
		return deny("only one foreign player is allowed per team")
	}

	ctx := model.ContextFor(team.Epreuve, team.Category)
	teamNumber := classify.TeamNumber(team.Name)

	// 3. Gender quota, standard championship only
	if team.Epreuve != model.EpreuveParis && team.Category == model.CategoryMasculine {
		if player.Gender == model.GenderFemale && countWomen(snap, roster) >= maxWomenInMasculineTeam {
			return deny("a men's team may field at most %d women", maxWomenInMasculineTeam)
		}
	}

	// 4. Burn rule. A player burned for team number B may only play for
	// teams numbered B or above; team number 0 is exempt.
	burned := player.BurnedTeamNumber(ctx, phase)
	if teamNumber != 0 && burned != 0 && burned > teamNumber {
		return deny("%s is burned for team %d", player.DisplayName, burned)
	}

	// 5. Day-2 cross-team rule, standard championship only: at most one
	// player who appeared on day 1 for a lower-numbered team
	if team.Epreuve != model.EpreuveParis && journee == dayTwoJournee && teamNumber != 0 {
		if isCarryOver(snap, playerID, teamNumber) && countCarryOvers(snap, roster, teamNumber) >= 1 {
			return deny("only one day-1 player from a lower-numbered team may play on day 2")
		}
	}

	// Advisory: warn when this match would newly burn the player
	counts := player.CountsFor(ctx, phase)
	if future := burn.Future(ctx, counts, teamNumber); teamNumber != 0 && future != 0 && future != burn.ForContext(ctx, counts) {
		return Decision{
			CanAssign: true,
			Reason:    fmt.Sprintf("%s will be burned for team %d after this match", player.DisplayName, future),
		}
	}

	return Decision{CanAssign: true}
}

// rosterWithout returns the roster excluding the candidate, so that
// re-validating an already-assigned player does not count them twice
func rosterWithout(roster []model.LicenseID, candidate model.LicenseID) []model.LicenseID {
	out := make([]model.LicenseID, 0, len(roster))
	for _, id := range roster {
		if id != candidate {
			out = append(out, id)
		}
	}
	return out
}

func countForeign(snap Snapshot, roster []model.LicenseID) int {
	n := 0
	for _, id := range roster {
		if p := snap.player(id); p != nil && p.Nationality.IsForeign() {
			n++
		}
	}
	return n
}

func countWomen(snap Snapshot, roster []model.LicenseID) int {
	n := 0
	for _, id := range roster {
		if p := snap.player(id); p != nil && p.Gender == model.GenderFemale {
			n++
		}
	}
	return n
}

// isCarryOver reports whether the player appeared on day 1 for a team
// numbered strictly below teamNumber
func isCarryOver(snap Snapshot, playerID model.LicenseID, teamNumber int) bool {
	dayOneTeam, ok := snap.DayOne.TeamOf(playerID)
	if !ok {
		return false
	}
	team := snap.team(dayOneTeam)
	if team == nil {
		return false
	}
	n := classify.TeamNumber(team.Name)
	return n != 0 && n < teamNumber
}

func countCarryOvers(snap Snapshot, roster []model.LicenseID, teamNumber int) int {
	n := 0
	for _, id := range roster {
		if isCarryOver(snap, id, teamNumber) {
			n++
		}
	}
	return n
}
