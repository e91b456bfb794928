package model

import "time"

// Nationality classifies a player for the foreign-player quota
type Nationality string

const (
	NationalityFrench  Nationality = "FR"
	NationalityEU      Nationality = "EU"
	NationalityForeign Nationality = "ETR"
)

// IsForeign reports whether the nationality counts against the
// one-foreign-player-per-team quota
func (n Nationality) IsForeign() bool {
	return n != NationalityFrench && n != NationalityEU
}

// Gender is a player's registered gender
type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
)

// MatchCountByTeam maps a team number to the number of matches a player
// has played in that team
type MatchCountByTeam map[int]int

// Total returns the total number of matches across all teams
func (m MatchCountByTeam) Total() int {
	total := 0
	for _, n := range m {
		total += n
	}
	return total
}

// Clone returns a copy that can be mutated independently
func (m MatchCountByTeam) Clone() MatchCountByTeam {
	out := make(MatchCountByTeam, len(m))
	for team, n := range m {
		out[team] = n
	}
	return out
}

// Player is a club member pulled from the federation roster.
//
// BurnedTeam and MatchCounts are materialized caches: they are rebuilt
// wholesale from the full match history on every sync and must never be
// mutated incrementally. The user-managed fields (ChatMentionID,
// ManualParticipation, Temporary) survive syncs unless Temporary is set,
// in which case the next sync fully replaces the record.
type Player struct {
	License     LicenseID
	DisplayName string
	Nationality Nationality
	Gender      Gender

	// Points is the player's official rating; nil when the federation
	// has no rating on record
	Points *int

	Temporary  bool
	Wheelchair bool

	// User-managed fields, preserved across syncs
	ChatMentionID       string
	ManualParticipation map[string]bool

	// BurnedTeam holds, per rule context and phase, the team number the
	// player is currently burned into. Absence of a key means not burned.
	BurnedTeam map[RuleContext]map[Phase]int

	// MatchCounts holds, per rule context and phase, how many matches the
	// player played in each team number. Kept alongside BurnedTeam for
	// diagnostics and for the future-burn simulation.
	MatchCounts map[RuleContext]map[Phase]MatchCountByTeam

	CreatedAt time.Time
	UpdatedAt time.Time
}

// BurnedTeamNumber returns the team number the player is burned into for
// the given context and phase, or 0 if not burned
func (p *Player) BurnedTeamNumber(ctx RuleContext, phase Phase) int {
	if p.BurnedTeam == nil {
		return 0
	}
	return p.BurnedTeam[ctx][phase]
}

// CountsFor returns the player's match counts for the given context and
// phase; the result may be nil
func (p *Player) CountsFor(ctx RuleContext, phase Phase) MatchCountByTeam {
	if p.MatchCounts == nil {
		return nil
	}
	return p.MatchCounts[ctx][phase]
}

// Rating returns the player's points, or 0 when unrated
func (p *Player) Rating() int {
	if p.Points == nil {
		return 0
	}
	return *p.Points
}
