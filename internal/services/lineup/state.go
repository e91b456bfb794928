package lineup

import (
	"fmt"
	"strings"

	"github.com/plebrun/ttroster/internal/model"
	"github.com/plebrun/ttroster/internal/services/classify"
)

// Rating floors by division level for men's teams
var masculineRatingFloor = map[int]int{1: 1800, 2: 1600, 3: 1400}

const (
	feminineLevel1Floor = 1100
	feminineLevel2Floor = 900
	// feminineLevel2MaxBelow is how many sub-900 players a women's
	// level-2 team may field
	feminineLevel2MaxBelow = 2
)

const reasonSeparator = "; "

// StateResult is the aggregate validity of a full team composition
type StateResult struct {
	Valid            bool
	Reason           string
	OffendingPlayers []model.LicenseID
}

// violationSet accumulates violations, deduplicating reason text and
// offending players
type violationSet struct {
	reasons   []string
	seen      map[string]bool
	offending []model.LicenseID
	offSeen   map[model.LicenseID]bool
}

func newViolationSet() *violationSet {
	return &violationSet{
		seen:    make(map[string]bool),
		offSeen: make(map[model.LicenseID]bool),
	}
}

func (v *violationSet) add(reason string, players ...model.LicenseID) {
	if !v.seen[reason] {
		v.seen[reason] = true
		v.reasons = append(v.reasons, reason)
	}
	for _, id := range players {
		if !v.offSeen[id] {
			v.offSeen[id] = true
			v.offending = append(v.offending, id)
		}
	}
}

func (v *violationSet) result() StateResult {
	if len(v.reasons) == 0 {
		return StateResult{Valid: true}
	}
	return StateResult{
		Valid:            false,
		Reason:           strings.Join(v.reasons, reasonSeparator),
		OffendingPlayers: v.offending,
	}
}

// ValidateTeamState re-derives every per-player rule from the team's
// current full roster, plus the minimum-rating-by-division rule, and
// aggregates all violations. It is a pure recomputation: call it on every
// composition or availability change, since another team's roster can
// cascade into this one's burn states.
func ValidateTeamState(snap Snapshot, teamID model.TeamID, phase model.Phase, journee int, maxPlayers int) StateResult {
	team := snap.team(teamID)
	if team == nil {
		return StateResult{Valid: true}
	}
	roster := snap.Current.Roster(teamID)
	if len(roster) == 0 {
		return StateResult{Valid: true}
	}

	violations := newViolationSet()
	ctx := model.ContextFor(team.Epreuve, team.Category)
	teamNumber := classify.TeamNumber(team.Name)

	// Capacity: everyone past the cap is offending
	if len(roster) > maxPlayers {
		violations.add(
			fmt.Sprintf("%s is full (%d players max)", team.Name, maxPlayers),
			roster[maxPlayers:]...,
		)
	}

	// Nationality quota
	var foreign []model.LicenseID
	for _, id := range roster {
		if p := snap.player(id); p != nil && p.Nationality.IsForeign() {
			foreign = append(foreign, id)
		}
	}
	if len(foreign) > 1 {
		violations.add("only one foreign player is allowed per team", foreign...)
	}

	// Gender quota, standard championship only
	if team.Epreuve != model.EpreuveParis && team.Category == model.CategoryMasculine {
		var women []model.LicenseID
		for _, id := range roster {
			if p := snap.player(id); p != nil && p.Gender == model.GenderFemale {
				women = append(women, id)
			}
		}
		if len(women) > maxWomenInMasculineTeam {
			violations.add(
				fmt.Sprintf("a men's team may field at most %d women", maxWomenInMasculineTeam),
				women...,
			)
		}
	}

	// Burn rule per player
	if teamNumber != 0 {
		for _, id := range roster {
			p := snap.player(id)
			if p == nil {
				continue
			}
			if burned := p.BurnedTeamNumber(ctx, phase); burned != 0 && burned > teamNumber {
				violations.add(
					fmt.Sprintf("%s is burned for team %d", p.DisplayName, burned),
					id,
				)
			}
		}
	}

	// Day-2 carry-over rule, standard championship only
	if team.Epreuve != model.EpreuveParis && journee == dayTwoJournee && teamNumber != 0 {
		var carryOvers []model.LicenseID
		for _, id := range roster {
			if isCarryOver(snap, id, teamNumber) {
				carryOvers = append(carryOvers, id)
			}
		}
		if len(carryOvers) > 1 {
			violations.add(
				"only one day-1 player from a lower-numbered team may play on day 2",
				carryOvers[1:]...,
			)
		}
	}

	checkRatingRule(snap, team, roster, violations)

	return violations.result()
}

// checkRatingRule applies the minimum-rating-by-division rule. Divisions
// that do not parse to a recognized level bypass the rule; unrated
// players are never counted against it.
func checkRatingRule(snap Snapshot, team *model.Team, roster []model.LicenseID, violations *violationSet) {
	rule, ok := classify.DivisionRatingRule(team.Division)
	if !ok {
		return
	}

	below := func(floor int) []model.LicenseID {
		var ids []model.LicenseID
		for _, id := range roster {
			p := snap.player(id)
			if p == nil || p.Points == nil {
				continue
			}
			if *p.Points < floor {
				ids = append(ids, id)
			}
		}
		return ids
	}

	if !rule.Feminine {
		floor := masculineRatingFloor[rule.Level]
		if floor == 0 {
			return
		}
		if ids := below(floor); len(ids) > 0 {
			violations.add(
				fmt.Sprintf("players below %d points are not allowed in %s", floor, team.Division),
				ids...,
			)
		}
		return
	}

	switch rule.Level {
	case 1:
		if ids := below(feminineLevel1Floor); len(ids) > 0 {
			violations.add(
				fmt.Sprintf("players below %d points are not allowed in %s", feminineLevel1Floor, team.Division),
				ids...,
			)
		}
	case 2:
		if ids := below(feminineLevel2Floor); len(ids) > feminineLevel2MaxBelow {
			violations.add(
				fmt.Sprintf("at most %d players below %d points are allowed in %s",
					feminineLevel2MaxBelow, feminineLevel2Floor, team.Division),
				ids...,
			)
		}
	}
}

// ApplyAvailability merges the availability cross-check into a state
// result: every assigned player without an explicit available=true
// response is an additional violation. This runs at the calling layer, on
// top of ValidateTeamState.
func ApplyAvailability(res StateResult, snap Snapshot, teamID model.TeamID, avail *model.Availability) StateResult {
	roster := snap.Current.Roster(teamID)
	var missing []model.LicenseID
	for _, id := range roster {
		if !avail.IsAvailable(id) {
			missing = append(missing, id)
		}
	}
	if len(missing) == 0 {
		return res
	}

	merged := newViolationSet()
	if !res.Valid {
		for _, r := range strings.Split(res.Reason, reasonSeparator) {
			merged.add(r, res.OffendingPlayers...)
		}
	}
	merged.add("some assigned players are not marked available", missing...)
	return merged.result()
}
